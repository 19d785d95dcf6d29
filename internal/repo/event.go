package repo

import (
	"context"
	"database/sql"

	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/models"
)

const eventColumns = `id, asset_id, periodicity_id, last_done_at, next_due_at, is_overdue, created_at, updated_at`

// EventRepo persists maintenance events. It also implements
// maintenance.EventStore for the daily sweep.
type EventRepo struct {
	DB *sql.DB
}

// NewEventRepo returns a new EventRepo.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{DB: db}
}

func scanEvent(row interface{ Scan(...any) error }) (*models.MaintenanceEvent, error) {
	e := &models.MaintenanceEvent{}
	err := row.Scan(&e.ID, &e.AssetID, &e.PeriodicityID, &e.LastDoneAt,
		&e.NextDueAt, &e.IsOverdue, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new event with the state prepared by maintenance.NewEvent.
func (r *EventRepo) Create(ctx context.Context, e *models.MaintenanceEvent) (*models.MaintenanceEvent, error) {
	created, err := scanEvent(r.DB.QueryRowContext(ctx,
		`INSERT INTO maintenance_events (asset_id, periodicity_id, last_done_at, next_due_at, is_overdue)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+eventColumns,
		e.AssetID, e.PeriodicityID, e.LastDoneAt, e.NextDueAt, e.IsOverdue,
	))
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

// GetByID returns one event.
func (r *EventRepo) GetByID(ctx context.Context, id int) (*models.MaintenanceEvent, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM maintenance_events WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// GetByAssetID returns the asset's event, or ErrNotFound when the asset has
// no maintenance schedule.
func (r *EventRepo) GetByAssetID(ctx context.Context, assetID int) (*models.MaintenanceEvent, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM maintenance_events WHERE asset_id = $1 ORDER BY id LIMIT 1`,
		assetID))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// SaveDone persists the state transition made by maintenance.MarkDone.
// Last-writer-wins: there is no version check, a concurrent SaveDone on the
// same event simply overwrites.
func (r *EventRepo) SaveDone(ctx context.Context, e *models.MaintenanceEvent) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE maintenance_events
		 SET last_done_at = $1, next_due_at = $2, is_overdue = $3, updated_at = NOW()
		 WHERE id = $4`,
		e.LastDoneAt, e.NextDueAt, e.IsOverdue, e.ID,
	)
	return translate(err)
}

// SetOverdue persists the sweep's recomputed overdue flag for one event.
func (r *EventRepo) SetOverdue(ctx context.Context, eventID int, overdue bool) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE maintenance_events SET is_overdue = $1, updated_at = NOW() WHERE id = $2`,
		overdue, eventID,
	)
	return translate(err)
}

// ListForSweep returns every event joined with its asset and the main
// responsible's display name and email. Archived assets are included: an
// archived asset still carries its maintenance obligation until restored or
// the event is removed with it.
func (r *EventRepo) ListForSweep(ctx context.Context) ([]maintenance.SweepItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT e.id, e.asset_id, e.periodicity_id, e.last_done_at, e.next_due_at,
		        e.is_overdue, e.created_at, e.updated_at,
		        a.name, a.address, u.username, COALESCE(u.email, '')
		 FROM maintenance_events e
		 JOIN assets a ON a.id = e.asset_id
		 JOIN users u ON u.id = a.main_responsible_id
		 ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []maintenance.SweepItem
	for rows.Next() {
		var it maintenance.SweepItem
		e := &it.Event
		if err := rows.Scan(&e.ID, &e.AssetID, &e.PeriodicityID, &e.LastDoneAt,
			&e.NextDueAt, &e.IsOverdue, &e.CreatedAt, &e.UpdatedAt,
			&it.AssetName, &it.AssetAddress, &it.ResponsibleName, &it.ResponsibleEmail); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
