// Package cli implements the fastrep command surface.
package cli

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hissain/fastrep/internal/config"
	"github.com/hissain/fastrep/internal/db"
	"github.com/hissain/fastrep/internal/logger"
	"github.com/hissain/fastrep/internal/repository"
	"github.com/hissain/fastrep/internal/service"
	"github.com/hissain/fastrep/internal/snowflake"
)

// app wires the shared collaborators for every subcommand.
type app struct {
	cfg      config.Config
	conn     *sql.DB
	logs     service.LogService
	settings service.SettingsService
	reports  service.ReportService
}

func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "fastrep",
		Short:         "Track your daily work activities and generate reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	rootCmd.AddCommand(newLogCmd(a))
	rootCmd.AddCommand(newViewCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newClearCmd(a))
	rootCmd.AddCommand(newProjectsCmd(a))
	rootCmd.AddCommand(newServeCmd(a))

	return rootCmd
}

func (a *app) init() error {
	a.cfg = config.Load()
	logger.Init(logger.ParseLevel(a.cfg.LogLevel))

	if err := snowflake.Init(1); err != nil {
		return fmt.Errorf("init snowflake: %w", err)
	}

	conn, err := db.Open(a.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.conn = conn

	logRepo := repository.NewLogRepository(conn)
	settingsRepo := repository.NewSettingsRepository(conn)

	a.logs = service.NewLogService(logRepo)
	a.settings = service.NewSettingsService(settingsRepo)

	enricher := service.NewEnrichService(settingsRepo, service.EnrichOptions{})
	a.reports = service.NewReportService(logRepo, settingsRepo, enricher, nil)

	return nil
}

func (a *app) close() {
	if a.conn != nil {
		_ = a.conn.Close()
	}
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
