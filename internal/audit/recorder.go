package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/guardsys/guardsys/internal/models"
)

// Execer is the slice of database/sql shared by *sql.DB and *sql.Tx. The
// recorder takes it per call so the audit insert can run inside the same
// transaction as the mutation it describes: if the audit write fails, the
// whole mutation rolls back.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Recorder appends audit entries. Entries are never updated or deleted.
type Recorder struct{}

// NewRecorder returns an audit recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one entry. before == nil marks a creation; the action is
// derived from it, never passed in.
func (rec *Recorder) Record(ctx context.Context, ex Execer, actorID *int, entity string, entityID int, before, after map[string]any) error {
	action := models.AuditUpdated
	if before == nil {
		action = models.AuditCreated
	}

	beforeJSON, err := marshalSnapshot(before)
	if err != nil {
		return fmt.Errorf("audit: encode before snapshot: %w", err)
	}
	afterJSON, err := marshalSnapshot(after)
	if err != nil {
		return fmt.Errorf("audit: encode after snapshot: %w", err)
	}

	_, err = ex.ExecContext(ctx,
		`INSERT INTO audit_log (action, entity, entity_id, actor_id, before, after) VALUES ($1, $2, $3, $4, $5, $6)`,
		action, entity, entityID, actorID, beforeJSON, afterJSON,
	)
	if err != nil {
		return fmt.Errorf("audit: append entry: %w", err)
	}
	return nil
}

func marshalSnapshot(snap map[string]any) (any, error) {
	if snap == nil {
		return nil, nil
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return b, nil
}
