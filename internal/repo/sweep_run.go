package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/guardsys/guardsys/internal/maintenance"
)

// SweepRun is one recorded execution of the daily overdue sweep.
type SweepRun struct {
	ID         int       `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Overdue    int       `json:"overdue"`
	Notified   int       `json:"notified"`
	Failed     int       `json:"failed"`
	Escalated  int       `json:"escalated"`
}

// SweepRunRepo records sweep executions for operational history.
type SweepRunRepo struct {
	DB *sql.DB
}

// NewSweepRunRepo returns a new SweepRunRepo.
func NewSweepRunRepo(db *sql.DB) *SweepRunRepo {
	return &SweepRunRepo{DB: db}
}

// Record appends one run.
func (r *SweepRunRepo) Record(ctx context.Context, startedAt, finishedAt time.Time, res maintenance.SweepResult) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sweep_runs (started_at, finished_at, total, overdue, notified, failed, escalated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		startedAt, finishedAt, res.Total, res.Overdue, res.Notified, res.Failed, res.Escalated,
	)
	return err
}

// ListRecent returns the latest runs, newest first.
func (r *SweepRunRepo) ListRecent(ctx context.Context, limit int) ([]SweepRun, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, started_at, finished_at, total, overdue, notified, failed, escalated
		 FROM sweep_runs
		 ORDER BY started_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []SweepRun
	for rows.Next() {
		var s SweepRun
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.FinishedAt, &s.Total,
			&s.Overdue, &s.Notified, &s.Failed, &s.Escalated); err != nil {
			return nil, err
		}
		runs = append(runs, s)
	}
	return runs, rows.Err()
}
