package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"family-planner/internal/model"
	"family-planner/internal/service"
)

func newStatsCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			stats, err := a.stats.Compute(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, stats)
			}
			_, _ = fmt.Fprintf(stdout, "Total:      %d\n", stats.Total)
			_, _ = fmt.Fprintf(stdout, "Completed:  %d (%.1f%%)\n", stats.Completed, stats.CompletionRate)
			_, _ = fmt.Fprintf(stdout, "Today:      %d\n", stats.Today)
			_, _ = fmt.Fprintf(stdout, "Overdue:    %d\n", stats.Overdue)

			priorities := make([]model.Priority, 0, len(stats.PriorityStats))
			for p := range stats.PriorityStats {
				priorities = append(priorities, p)
			}
			sort.Slice(priorities, func(i, j int) bool { return priorities[i] > priorities[j] })
			for _, p := range priorities {
				_, _ = fmt.Fprintf(stdout, "  %-7s %d\n", p.String()+":", stats.PriorityStats[p])
			}
			return nil
		},
	}
}

func newExportCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file-name]",
		Short: "Export tasks and categories to a JSON file in the export directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			path, err := a.transfer.Export(cmd.Context(), userID, name)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Exported to %s\n", path)
			return nil
		},
	}
}

func newImportCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import [path]",
		Short: "Add the tasks of an export file as new tasks",
		Long:  "Adds every task of an export file as a new task. Importing the same file twice duplicates its tasks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			n, err := a.transfer.Import(cmd.Context(), userID, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Imported %d tasks\n", n)
			return nil
		},
	}
}

func newTemplateCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Save and inspect day templates",
	}

	var date string
	save := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the tasks of a day as a named template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			tasks, err := a.tasks.ListDay(cmd.Context(), userID, day)
			if err != nil {
				return err
			}
			if err := a.templates.Save(cmd.Context(), userID, args[0], tasks); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Saved template %q with %d tasks\n", args[0], len(tasks))
			return nil
		},
	}
	save.Flags().StringVarP(&date, "date", "d", "today", "day to snapshot (YYYY-MM-DD)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List template names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			names, err := a.templates.List(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, names)
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(stdout, name)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the items of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			items, err := a.templates.Get(cmd.Context(), userID, args[0])
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, items)
			}
			for _, item := range items {
				flag := " "
				if item.IsMandatory {
					flag = "!"
				}
				_, _ = fmt.Fprintf(stdout, "  %s %-6s %s\n", flag, item.Priority, item.Title)
			}
			return nil
		},
	}

	cmd.AddCommand(save, list, show)
	return cmd
}

func newBackupCmd(stdout io.Writer, env func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write today's auto-backup for every user that has it enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			if err := a.backups.BackupAll(cmd.Context(), time.Now()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Backups written to %s\n", a.cfg.BackupDir)
			return nil
		},
	}
}

func newDigestCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the day summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			summary, err := a.digest.DaySummary(cmd.Context(), userID, day)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(stdout, summary)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "today", "day to summarize (YYYY-MM-DD)")
	return cmd
}

func newDaemonCmd(stderr io.Writer, env func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the backup and digest schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDaemon(ctx, env(), stderr)
		},
	}
}

func runDaemon(ctx context.Context, a *app, stderr io.Writer) error {
	scheduler := service.NewSchedulerService(time.Local, a.log.Named("scheduler"))

	if _, err := scheduler.ScheduleDaily("auto-backup", a.cfg.BackupTime, a.backups.BackupAll); err != nil {
		return fmt.Errorf("schedule backup: %w", err)
	}
	if a.cfg.DigestInterval > 0 {
		if _, err := scheduler.ScheduleInterval("digest", a.cfg.DigestInterval, a.digest.NotifyAll); err != nil {
			return fmt.Errorf("schedule digest: %w", err)
		}
	}

	// Catch up on a backup missed while the daemon was down.
	scheduler.RunNow("auto-backup", a.backups.BackupAll)

	scheduler.Start()
	a.log.Info("planner daemon started",
		zap.String("backup_time", a.cfg.BackupTime),
		zap.Duration("digest_interval", a.cfg.DigestInterval))
	_, _ = fmt.Fprintln(stderr, "planner daemon running, press Ctrl+C to stop")

	<-ctx.Done()
	scheduler.Stop()
	a.log.Info("planner daemon stopped")
	return nil
}
