package repo

import (
	"context"
	"database/sql"

	"github.com/guardsys/guardsys/internal/models"
)

const orgColumns = `id, name, COALESCE(inn,''), COALESCE(kpp,''), COALESCE(requisites,''), COALESCE(contacts,'')`

// OrgRepo persists owner organizations.
type OrgRepo struct {
	DB *sql.DB
}

// NewOrgRepo returns a new OrgRepo.
func NewOrgRepo(db *sql.DB) *OrgRepo {
	return &OrgRepo{DB: db}
}

func scanOrg(row interface{ Scan(...any) error }) (*models.Organization, error) {
	o := &models.Organization{}
	if err := row.Scan(&o.ID, &o.Name, &o.INN, &o.KPP, &o.Requisites, &o.Contacts); err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new organization.
func (r *OrgRepo) Create(ctx context.Context, o *models.Organization) (*models.Organization, error) {
	created, err := scanOrg(r.DB.QueryRowContext(ctx,
		`INSERT INTO organizations (name, inn, kpp, requisites, contacts)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+orgColumns,
		o.Name, o.INN, o.KPP, o.Requisites, o.Contacts,
	))
	return created, translate(err)
}

// GetByID returns one organization.
func (r *OrgRepo) GetByID(ctx context.Context, id int) (*models.Organization, error) {
	o, err := scanOrg(r.DB.QueryRowContext(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return o, nil
}

// Update rewrites an organization.
func (r *OrgRepo) Update(ctx context.Context, o *models.Organization) (*models.Organization, error) {
	updated, err := scanOrg(r.DB.QueryRowContext(ctx,
		`UPDATE organizations
		 SET name = $1, inn = $2, kpp = $3, requisites = $4, contacts = $5
		 WHERE id = $6
		 RETURNING `+orgColumns,
		o.Name, o.INN, o.KPP, o.Requisites, o.Contacts, o.ID,
	))
	return updated, translate(err)
}

// Delete removes an organization. The FK from assets is RESTRICT, so a
// referenced organization yields ErrReferenced and nothing is removed.
func (r *OrgRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns organizations ordered by name.
func (r *OrgRepo) List(ctx context.Context, limit, offset int) ([]models.Organization, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+orgColumns+` FROM organizations ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *o)
	}
	return orgs, rows.Err()
}
