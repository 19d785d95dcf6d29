package models

import "time"

// Audit actions.
const (
	AuditCreated = "created"
	AuditUpdated = "updated"
)

// Audited entity kinds.
const (
	EntityAsset        = "ASSET"
	EntityOrganization = "ORGANIZATION"
	EntityUser         = "USER"
	EntityMaintenance  = "MAINTENANCE"
	EntityDocument     = "DOCUMENT"
)

// AuditEntry is one immutable before/after record of an entity mutation.
// Entries are append-only: never updated, never deleted. Before is nil for
// newly created entities. Snapshots map field names to scalar values;
// referenced entities are captured as their ids.
type AuditEntry struct {
	ID        int            `json:"id"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  int            `json:"entity_id"`
	ActorID   *int           `json:"actor_id,omitempty"`
	Message   string         `json:"message,omitempty"`
	Before    map[string]any `json:"before,omitempty"`
	After     map[string]any `json:"after,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
