package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/guardsys/guardsys/internal/metrics"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/guardsys/guardsys/internal/notify"
)

// DefaultEscalationDays is how long an event may stay overdue before it is
// included in the aggregated administrator escalation.
const DefaultEscalationDays = 3

// SweepItem is one maintenance event joined with the display and contact
// data the sweep needs. ResponsibleEmail is empty when the main responsible
// has no contact address; that event is skipped silently, not failed.
type SweepItem struct {
	Event            models.MaintenanceEvent
	AssetName        string
	AssetAddress     string
	ResponsibleName  string
	ResponsibleEmail string
}

// EventStore is the sweep's view of persistence.
type EventStore interface {
	// ListForSweep returns every maintenance event with its asset and
	// main-responsible contact data.
	ListForSweep(ctx context.Context) ([]SweepItem, error)
	// SetOverdue persists the recomputed overdue flag for one event.
	SetOverdue(ctx context.Context, eventID int, overdue bool) error
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Total     int `json:"total"`
	Overdue   int `json:"overdue"`
	Notified  int `json:"notified"`
	Failed    int `json:"failed"`
	Escalated int `json:"escalated"`
}

// Sweeper is the daily overdue pass: it classifies every event by direct
// date comparison, mails the responsible for each overdue one, and sends a
// single aggregated escalation to the administrator for events overdue
// longer than ThresholdDays.
//
// The sweep is re-entrant but not idempotent: running it twice on the same
// day sends duplicate notifications and a duplicate escalation. Delivery is
// at-least-once; recipients are expected to tolerate repeats.
type Sweeper struct {
	Store         EventStore
	Mailer        notify.Mailer
	AdminEmail    string
	ThresholdDays int
	Log           *slog.Logger
}

// NewSweeper wires a sweeper with the default escalation threshold.
func NewSweeper(store EventStore, mailer notify.Mailer, adminEmail string) *Sweeper {
	return &Sweeper{
		Store:         store,
		Mailer:        mailer,
		AdminEmail:    adminEmail,
		ThresholdDays: DefaultEscalationDays,
		Log:           slog.Default(),
	}
}

// Run executes one sweep as of today. Classification never trusts the
// stored overdue flag; the flag is rewritten for every event afterwards so
// reads between sweeps see at worst yesterday's truth. A failed notification
// is logged, redirected to the administrator, and never stops the run: each
// event is processed independently.
func (s *Sweeper) Run(ctx context.Context, today time.Time) (SweepResult, error) {
	items, err := s.Store.ListForSweep(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("sweep: list events: %w", err)
	}

	res := SweepResult{Total: len(items)}
	var escalation []SweepItem

	for _, it := range items {
		overdue := Overdue(&it.Event, today)
		if err := s.Store.SetOverdue(ctx, it.Event.ID, overdue); err != nil {
			s.Log.Error("sweep: persist overdue flag", "event_id", it.Event.ID, "err", err)
		}
		if !overdue {
			continue
		}
		res.Overdue++

		if s.overdueDays(&it.Event, today) > s.ThresholdDays {
			escalation = append(escalation, it)
		}

		if it.ResponsibleEmail == "" {
			// No contact address: silent skip, not a failure.
			continue
		}
		if err := s.notifyResponsible(it); err != nil {
			res.Failed++
			metrics.IncNotifications("failed")
			s.Log.Warn("sweep: notify responsible",
				"event_id", it.Event.ID, "to", it.ResponsibleEmail, "err", err)
			s.notifyAdminOfFailure(it, err)
			continue
		}
		res.Notified++
		metrics.IncNotifications("sent")
	}

	if len(escalation) > 0 {
		res.Escalated = len(escalation)
		s.escalate(escalation)
	}

	metrics.SetOverdueEvents(res.Overdue)
	metrics.IncSweepRuns()
	return res, nil
}

func (s *Sweeper) overdueDays(e *models.MaintenanceEvent, today time.Time) int {
	return int(today.Sub(e.NextDueAt).Hours() / 24)
}

func (s *Sweeper) notifyResponsible(it SweepItem) error {
	subject := "Overdue maintenance for asset: " + it.AssetName
	body := fmt.Sprintf("Asset: %s\nAddress: %s\nMaintenance was due: %s\n",
		it.AssetName, it.AssetAddress, it.Event.NextDueAt.Format("2006-01-02"))
	return s.Mailer.Send(subject, body, it.ResponsibleEmail)
}

// notifyAdminOfFailure is the fallback path for a failed delivery. Its own
// failure is only logged; nothing on the sweep path aborts the run.
func (s *Sweeper) notifyAdminOfFailure(it SweepItem, cause error) {
	if s.AdminEmail == "" {
		return
	}
	if err := s.Mailer.Send("Maintenance notification delivery failure", cause.Error(), s.AdminEmail); err != nil {
		s.Log.Warn("sweep: fallback admin notification", "err", err)
	}
}

// escalate sends one aggregated message for all events overdue past the
// threshold. No deduplication across runs.
func (s *Sweeper) escalate(items []SweepItem) {
	if s.AdminEmail == "" {
		return
	}
	subject := fmt.Sprintf("Escalation: maintenance overdue more than %d days", s.ThresholdDays)
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s, overdue since %s",
			it.AssetName, it.Event.NextDueAt.Format("2006-01-02")))
	}
	if err := s.Mailer.Send(subject, strings.Join(lines, "\n"), s.AdminEmail); err != nil {
		s.Log.Warn("sweep: escalation notification", "err", err)
	}
}
