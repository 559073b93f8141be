package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hissain/fastrep/internal/browser"
	"github.com/hissain/fastrep/internal/handler"
	transport "github.com/hissain/fastrep/internal/http"
	"github.com/hissain/fastrep/internal/logger"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.cfg.Addr
			if port > 0 {
				host, _, err := net.SplitHostPort(a.cfg.Addr)
				if err != nil || host == "" {
					host = "127.0.0.1"
				}
				addr = fmt.Sprintf("%s:%d", host, port)
			}

			logHandler := handler.NewLogHandler(a.logs, a.settings)
			reportHandler := handler.NewReportHandler(a.reports)
			settingsHandler := handler.NewSettingsHandler(a.settings)

			router := transport.NewRouter(logHandler, reportHandler, settingsHandler, a.cfg.StaticDir)

			// Handle graceful shutdown
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				logger.Info("shutting down", "module", "cli", "action", "serve", "resource", "server", "result", "ok")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = router.Shutdown(shutdownCtx)
			}()

			ui, err := a.settings.GetUISettings(cmd.Context())
			if err == nil && ui.AutoBrowser {
				go func() {
					// Give the listener a moment before pointing a browser at it.
					time.Sleep(500 * time.Millisecond)
					browser.Open("http://" + addr)
				}()
			}

			fmt.Printf("Starting FastRep server on http://%s\n", addr)
			if err := router.Start(addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				logger.Error("server stopped", "module", "cli", "action", "serve", "resource", "server", "result", "failed", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides FASTREP_ADDR)")

	return cmd
}
