package ai

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultToolName is the local command-line text-generation tool fastrep
// falls back to when no direct provider is configured or the direct call fails.
const DefaultToolName = "cline"

// LocalTool invokes a command-line text-generation tool. The tool receives
// the prompt as an argument and writes its result to a caller-specified file
// in the process temp dir; the file is removed on every exit path.
type LocalTool struct {
	path string
}

// NewLocalTool creates a local tool client. An empty path means DefaultToolName.
func NewLocalTool(path string) *LocalTool {
	if path == "" {
		path = DefaultToolName
	}
	return &LocalTool{path: path}
}

// Available reports whether the tool is on the execution path.
func (t *LocalTool) Available() bool {
	_, err := exec.LookPath(t.path)
	return err == nil
}

// Name returns the provider name.
func (t *LocalTool) Name() string {
	return "local:" + t.path
}

// Test sends a short prompt and returns the response.
func (t *LocalTool) Test(ctx context.Context) (string, error) {
	return t.Complete(ctx, "", "Hello world")
}

// Complete runs the tool with the combined prompt. The call is bounded by
// the context deadline; on timeout the process is killed and the context
// error is returned.
func (t *LocalTool) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	if _, err := exec.LookPath(t.path); err != nil {
		return "", fmt.Errorf("local tool %q not found: %w", t.path, err)
	}

	prompt := content
	if systemPrompt != "" {
		prompt = systemPrompt + "\n\n" + content
	}

	// Process-private temp location with a time + uuid suffix so concurrent
	// report requests never collide.
	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("fastrep-%d-%s.out", time.Now().UnixNano(), uuid.New().String()))
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, t.path, prompt, "--output", outPath, "--non-interactive")
	// The tool must never wait on interactive input.
	cmd.Stdin = nil

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("execute %s: %w, stderr: %s", t.path, err, strings.TrimSpace(stderr.String()))
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("read %s output: %w", t.path, err)
	}

	return string(out), nil
}
