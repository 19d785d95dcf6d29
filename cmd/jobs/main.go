// Command jobs runs the batch entry points against the database directly:
// the daily overdue sweep and the period CSV export. An external scheduler
// (cron, systemd timer) decides when; this binary only does the work.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/guardsys/guardsys/internal/config"
	"github.com/guardsys/guardsys/internal/db"
	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/notify"
	"github.com/guardsys/guardsys/internal/report"
	"github.com/guardsys/guardsys/internal/repo"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Guardsys batch jobs",
	}
	rootCmd.AddCommand(sweepCmd(), exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connect(cfg config.Config) (*repo.EventRepo, *repo.SweepRunRepo, error) {
	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return repo.NewEventRepo(database), repo.NewSweepRunRepo(database), nil
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run the daily overdue sweep once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			events, runs, err := connect(cfg)
			if err != nil {
				return err
			}

			mailer := notify.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
			sweeper := maintenance.NewSweeper(events, mailer, cfg.AdminEmail)
			sweeper.ThresholdDays = cfg.EscalationDays

			started := time.Now()
			today := started.UTC().Truncate(24 * time.Hour)
			res, err := sweeper.Run(context.Background(), today)
			if err != nil {
				return err
			}
			if err := runs.Record(context.Background(), started, time.Now(), res); err != nil {
				slog.Error("record sweep run", "err", err)
			}

			fmt.Printf("sweep done: %d events, %d overdue, %d notified, %d failed, %d escalated\n",
				res.Total, res.Overdue, res.Notified, res.Failed, res.Escalated)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the maintenance period report as CSV to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			events, _, err := connect(cfg)
			if err != nil {
				return err
			}

			// year/month are accepted for compatibility with the report
			// consumers; the export always covers every event.
			if month < 1 || month > 12 {
				return fmt.Errorf("invalid month %d", month)
			}

			items, err := events.ListForSweep(context.Background())
			if err != nil {
				return err
			}
			return report.WriteCSV(os.Stdout, items)
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "report year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "report month")

	return cmd
}
