package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hissain/fastrep/internal/service"
)

func newLogCmd(a *app) *cobra.Command {
	var project, description, date string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Add a new work log entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.logs.Create(cmd.Context(), project, description, date)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Log entry added successfully (ID: %d)\n", entry.ID)
			fmt.Printf("  Project: %s\n", entry.Project)
			fmt.Printf("  Date: %s\n", entry.Date.Format("2006-01-02"))
			fmt.Printf("  Description: %s\n", entry.Description)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project name (defaults to Misc)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Work description (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newViewCmd(a *app) *cobra.Command {
	var mode, start, end string
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "View logs and generate reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := service.GenerateParams{Mode: mode}

			if start != "" {
				t, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("start date must be in YYYY-MM-DD format")
				}
				params.Start = &t
			}
			if end != "" {
				t, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("end date must be in YYYY-MM-DD format")
				}
				params.End = &t
			}

			report, err := a.reports.Generate(cmd.Context(), params)
			if err != nil {
				return err
			}

			if asHTML {
				fmt.Println(report.HTML)
			} else {
				fmt.Println(report.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "weekly", "Report period (weekly/biweekly/monthly)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Custom start date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "Custom end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Print the HTML rendering")

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.logs.List(cmd.Context(), 0)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No log entries found.")
				return nil
			}

			fmt.Printf("\n%-6s %-12s %-20s %s\n", "ID", "Date", "Project", "Description")
			fmt.Println(dashes(80))

			for _, e := range entries {
				desc := e.Description
				if len(desc) > 40 {
					desc = desc[:40] + "..."
				}
				fmt.Printf("%-6d %-12s %-20s %s\n", e.ID, e.Date.Format("2006-01-02"), e.Project, desc)
			}

			fmt.Printf("\nTotal entries: %d\n", len(entries))
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	var id int64
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a log entry by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipConfirm && !confirm(fmt.Sprintf("Are you sure you want to delete log entry #%d?", id)) {
				fmt.Println("Deletion cancelled.")
				return nil
			}

			if err := a.logs.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("log entry #%d: %w", id, err)
			}

			fmt.Printf("✓ Log entry #%d deleted successfully.\n", id)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&id, "id", "i", 0, "Log entry ID to delete (required)")
	cmd.Flags().BoolVarP(&skipConfirm, "confirm", "y", false, "Skip confirmation prompt")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all log entries from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipConfirm && !confirm("This will delete ALL log entries. Are you sure?") {
				fmt.Println("Clear operation cancelled.")
				return nil
			}

			deleted, err := a.logs.Clear(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("✓ %d log entries cleared successfully.\n", deleted)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "confirm", "y", false, "Skip confirmation prompt")

	return cmd
}

func newProjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.logs.Projects(cmd.Context())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Println("\nProjects:")
			fmt.Println(dashes(40))
			for _, p := range projects {
				fmt.Printf("  • %s\n", p)
			}
			fmt.Printf("\nTotal projects: %d\n", len(projects))
			return nil
		},
	}
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
