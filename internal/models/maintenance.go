package models

import "time"

// Periodicity kinds.
const (
	KindMonthly   = "MONTHLY"
	KindQuarterly = "QUARTERLY"
	KindCustom    = "CUSTOM"
)

// Periodicity is a named recurrence policy. MONTHLY and QUARTERLY use fixed
// 30/90-day offsets regardless of calendar month length; IntervalDays applies
// only to CUSTOM. A periodicity cannot be deleted while events reference it,
// so historical events keep their original recurrence behavior.
type Periodicity struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	IntervalDays int    `json:"interval_days"`
}

// MaintenanceEvent is the live schedule state for one asset's maintenance
// cycle: the last completion, the next due date, and an overdue flag.
//
// IsOverdue is a cache, not a live-computed property. It is rewritten by
// MarkDone and by the daily sweep; between sweeps it may be stale relative
// to NextDueAt. Anything that needs an authoritative answer compares
// NextDueAt against today directly.
type MaintenanceEvent struct {
	ID            int        `json:"id"`
	AssetID       int        `json:"asset_id"`
	PeriodicityID int        `json:"periodicity_id"`
	LastDoneAt    *time.Time `json:"last_done_at,omitempty"`
	NextDueAt     time.Time  `json:"next_due_at"`
	IsOverdue     bool       `json:"is_overdue"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
