package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/repo"
	"github.com/robfig/cron/v3"
)

// Run starts the in-process daily sweep. The sweep itself is re-entrant, so
// an overlapping external `jobs sweep` run cannot corrupt anything, it only
// duplicates notifications. Blocks forever; call in a goroutine.
func Run(sweeper *maintenance.Sweeper, runs *repo.SweepRunRepo) {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		started := time.Now()
		today := started.UTC().Truncate(24 * time.Hour)
		res, err := sweeper.Run(context.Background(), today)
		if err != nil {
			slog.Error("scheduler: sweep run", "err", err)
			return
		}
		if err := runs.Record(context.Background(), started, time.Now(), res); err != nil {
			slog.Error("scheduler: record sweep run", "err", err)
		}
		slog.Info("scheduler: sweep completed",
			"total", res.Total, "overdue", res.Overdue,
			"notified", res.Notified, "failed", res.Failed, "escalated", res.Escalated)
	})
	if err != nil {
		slog.Error("scheduler: add daily sweep", "err", err)
		return
	}
	c.Start()
	select {}
}
