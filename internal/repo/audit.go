package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/guardsys/guardsys/internal/models"
)

// AuditRepo is the read side of the audit log. Writes go through
// audit.Recorder inside mutation transactions; nothing here ever updates or
// deletes an entry.
type AuditRepo struct {
	DB *sql.DB
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{DB: db}
}

// List returns audit entries, newest first.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, action, entity, entity_id, actor_id, COALESCE(message,''), before, after, created_at
		 FROM audit_log
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ListForEntity returns the mutation history of one entity, newest first.
func (r *AuditRepo) ListForEntity(ctx context.Context, entity string, entityID, limit, offset int) ([]models.AuditEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, action, entity, entity_id, actor_id, COALESCE(message,''), before, after, created_at
		 FROM audit_log
		 WHERE entity = $1 AND entity_id = $2
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		entity, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanAuditEntry(rows *sql.Rows) (*models.AuditEntry, error) {
	e := &models.AuditEntry{}
	var before, after []byte
	if err := rows.Scan(&e.ID, &e.Action, &e.Entity, &e.EntityID, &e.ActorID,
		&e.Message, &before, &after, &e.CreatedAt); err != nil {
		return nil, err
	}
	if len(before) > 0 {
		if err := json.Unmarshal(before, &e.Before); err != nil {
			return nil, err
		}
	}
	if len(after) > 0 {
		if err := json.Unmarshal(after, &e.After); err != nil {
			return nil, err
		}
	}
	return e, nil
}
