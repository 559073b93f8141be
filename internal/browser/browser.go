// Package browser opens the web UI in the user's browser, best-effort.
package browser

import (
	"os/exec"
	"runtime"

	"github.com/hissain/fastrep/internal/logger"
)

// Open launches the default browser at url. Failures are logged and
// otherwise ignored; the server does not depend on a browser opening.
func Open(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		logger.Warn("browser launch failed", "module", "browser", "action", "request", "resource", "browser", "result", "failed", "url", url, "error", err)
		return
	}
	// Detach; the browser process outlives us and we never wait on it.
	go func() { _ = cmd.Wait() }()
}
