package repo

import (
	"context"
	"database/sql"

	"github.com/guardsys/guardsys/internal/models"
)

// PeriodicityRepo persists recurrence policies. Policies referenced by
// maintenance events cannot be deleted (RESTRICT), so events keep their
// historical recurrence behavior.
type PeriodicityRepo struct {
	DB *sql.DB
}

// NewPeriodicityRepo returns a new PeriodicityRepo.
func NewPeriodicityRepo(db *sql.DB) *PeriodicityRepo {
	return &PeriodicityRepo{DB: db}
}

// Create inserts a new periodicity. Validation (CUSTOM interval >= 1) is the
// caller's job; the repo stores what it is given.
func (r *PeriodicityRepo) Create(ctx context.Context, p *models.Periodicity) (*models.Periodicity, error) {
	created := &models.Periodicity{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO periodicities (name, kind, interval_days)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, kind, interval_days`,
		p.Name, p.Kind, p.IntervalDays,
	).Scan(&created.ID, &created.Name, &created.Kind, &created.IntervalDays)
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

// GetByID returns one periodicity.
func (r *PeriodicityRepo) GetByID(ctx context.Context, id int) (*models.Periodicity, error) {
	p := &models.Periodicity{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, kind, interval_days FROM periodicities WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Kind, &p.IntervalDays)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// Delete removes a periodicity. Yields ErrReferenced while events use it.
func (r *PeriodicityRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM periodicities WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all periodicities ordered by id.
func (r *PeriodicityRepo) List(ctx context.Context) ([]models.Periodicity, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, kind, interval_days FROM periodicities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Periodicity
	for rows.Next() {
		var p models.Periodicity
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.IntervalDays); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
