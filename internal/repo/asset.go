package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guardsys/guardsys/internal/audit"
	"github.com/guardsys/guardsys/internal/models"
)

const assetColumns = `id, name, address, organization_id, equipment, notes,
	main_responsible_id, deputy_responsible_id, status, is_deleted,
	deleted_at, COALESCE(deleted_reason,''), created_at, updated_at`

// AssetRepo persists guarded assets. Every mutation runs in one transaction
// together with its audit entry: if the audit append fails, the mutation
// rolls back. Assets are only ever soft-deleted through Archive.
type AssetRepo struct {
	DB    *sql.DB
	Audit *audit.Recorder
}

// NewAssetRepo returns a new AssetRepo.
func NewAssetRepo(db *sql.DB, rec *audit.Recorder) *AssetRepo {
	return &AssetRepo{DB: db, Audit: rec}
}

func scanAsset(row interface{ Scan(...any) error }) (*models.Asset, error) {
	a := &models.Asset{}
	err := row.Scan(
		&a.ID, &a.Name, &a.Address, &a.OrganizationID, &a.Equipment, &a.Notes,
		&a.MainResponsibleID, &a.DeputyResponsibleID, &a.Status, &a.IsDeleted,
		&a.DeletedAt, &a.DeletedReason, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new asset and appends its creation audit entry.
func (r *AssetRepo) Create(ctx context.Context, actorID *int, a *models.Asset) (*models.Asset, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	created, err := scanAsset(tx.QueryRowContext(ctx,
		`INSERT INTO assets (name, address, organization_id, equipment, notes, main_responsible_id, deputy_responsible_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+assetColumns,
		a.Name, a.Address, a.OrganizationID, a.Equipment, a.Notes,
		a.MainResponsibleID, a.DeputyResponsibleID,
	))
	if err != nil {
		return nil, translate(err)
	}

	if err := r.Audit.Record(ctx, tx, actorID, models.EntityAsset, created.ID,
		nil, audit.SnapshotAsset(created)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID returns one asset, archived or not.
func (r *AssetRepo) GetByID(ctx context.Context, id int) (*models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// Update rewrites the editable fields of an asset and appends the
// before/after audit entry in the same transaction.
func (r *AssetRepo) Update(ctx context.Context, actorID *int, a *models.Asset) (*models.Asset, error) {
	return r.mutate(ctx, actorID, a.ID, func(tx *sql.Tx) (*models.Asset, error) {
		return scanAsset(tx.QueryRowContext(ctx,
			`UPDATE assets
			 SET name = $1, address = $2, organization_id = $3, equipment = $4,
			     notes = $5, main_responsible_id = $6, deputy_responsible_id = $7,
			     updated_at = NOW()
			 WHERE id = $8
			 RETURNING `+assetColumns,
			a.Name, a.Address, a.OrganizationID, a.Equipment, a.Notes,
			a.MainResponsibleID, a.DeputyResponsibleID, a.ID,
		))
	})
}

// Archive soft-deletes the asset: is_deleted, ARCHIVED status, timestamp and
// reason are set together.
func (r *AssetRepo) Archive(ctx context.Context, actorID *int, id int, reason string, now time.Time) (*models.Asset, error) {
	return r.mutate(ctx, actorID, id, func(tx *sql.Tx) (*models.Asset, error) {
		return scanAsset(tx.QueryRowContext(ctx,
			`UPDATE assets
			 SET is_deleted = true, status = $1, deleted_at = $2, deleted_reason = $3, updated_at = NOW()
			 WHERE id = $4
			 RETURNING `+assetColumns,
			models.StatusArchived, now, reason, id,
		))
	})
}

// Restore un-archives the asset. deleted_reason is deliberately left in
// place; only the flag, status and timestamp are reset.
func (r *AssetRepo) Restore(ctx context.Context, actorID *int, id int) (*models.Asset, error) {
	return r.mutate(ctx, actorID, id, func(tx *sql.Tx) (*models.Asset, error) {
		return scanAsset(tx.QueryRowContext(ctx,
			`UPDATE assets
			 SET is_deleted = false, status = $1, deleted_at = NULL, updated_at = NOW()
			 WHERE id = $2
			 RETURNING `+assetColumns,
			models.StatusActive, id,
		))
	})
}

// mutate runs one audited asset mutation: snapshot before, apply, snapshot
// after, append the audit entry, commit.
func (r *AssetRepo) mutate(ctx context.Context, actorID *int, id int, apply func(*sql.Tx) (*models.Asset, error)) (*models.Asset, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	before, err := scanAsset(tx.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, translate(err)
	}

	after, err := apply(tx)
	if err != nil {
		return nil, translate(err)
	}

	if err := r.Audit.Record(ctx, tx, actorID, models.EntityAsset, id,
		audit.SnapshotAsset(before), audit.SnapshotAsset(after)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit asset mutation: %w", err)
	}
	return after, nil
}

// List returns non-archived assets, optionally filtered by a search string
// over name, address, and notes. limit/offset for pagination.
func (r *AssetRepo) List(ctx context.Context, search string, limit, offset int) ([]models.Asset, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if search != "" {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+assetColumns+` FROM assets
			 WHERE is_deleted = false AND (name ILIKE $1 OR address ILIKE $1 OR notes ILIKE $1)
			 ORDER BY id LIMIT $2 OFFSET $3`,
			"%"+search+"%", limit, offset)
	} else {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+assetColumns+` FROM assets
			 WHERE is_deleted = false
			 ORDER BY id LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}
