package maintenance

import (
	"errors"
	"time"

	"github.com/guardsys/guardsys/internal/models"
)

// ErrBackdated is returned when MarkDone is called with a completion date
// earlier than the event's current last_done_at. Completions only ever move
// forward; a stale date is rejected, not silently reordered.
var ErrBackdated = errors.New("completion date precedes last recorded completion")

// NewEvent builds the initial maintenance event for an asset: nothing done
// yet, next due computed from the creation date, not overdue.
func NewEvent(assetID int, p *models.Periodicity, createdAt time.Time) (*models.MaintenanceEvent, error) {
	next, err := ComputeNextDue(p, createdAt)
	if err != nil {
		return nil, err
	}
	return &models.MaintenanceEvent{
		AssetID:       assetID,
		PeriodicityID: p.ID,
		LastDoneAt:    nil,
		NextDueAt:     next,
		IsOverdue:     false,
	}, nil
}

// MarkDone records a completed maintenance pass: last_done_at moves to when,
// next_due_at is recomputed from when, and the overdue flag is refreshed
// against today. Only the single latest completion is kept; there is no
// completion history. Since the new due date is strictly after when, the
// flag is false whenever today <= when.
func MarkDone(e *models.MaintenanceEvent, p *models.Periodicity, when, today time.Time) error {
	if e.LastDoneAt != nil && when.Before(*e.LastDoneAt) {
		return ErrBackdated
	}
	next, err := ComputeNextDue(p, when)
	if err != nil {
		return err
	}
	e.LastDoneAt = &when
	e.NextDueAt = next
	RecalcOverdue(e, today)
	return nil
}

// RecalcOverdue rewrites the cached overdue flag from the due date. Called
// by MarkDone and by the daily sweep; never implicitly on read.
func RecalcOverdue(e *models.MaintenanceEvent, today time.Time) {
	e.IsOverdue = Overdue(e, today)
}

// Overdue reports whether the event's due date has passed, by direct date
// comparison. This is the authoritative check; the stored flag is a cache.
func Overdue(e *models.MaintenanceEvent, today time.Time) bool {
	return e.NextDueAt.Before(today)
}
