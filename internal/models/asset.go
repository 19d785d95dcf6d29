package models

import "time"

// Asset status values.
const (
	StatusActive   = "ACTIVE"
	StatusArchived = "ARCHIVED"
)

// Asset is a guarded site or equipment unit under maintenance obligation.
// IsDeleted and Status are always set together: an asset is soft-deleted
// iff its status is ARCHIVED. Assets are never hard-deleted.
type Asset struct {
	ID                  int        `json:"id"`
	Name                string     `json:"name"`
	Address             string     `json:"address"`
	OrganizationID      int        `json:"organization_id"`
	Equipment           string     `json:"equipment"`
	Notes               string     `json:"notes,omitempty"`
	MainResponsibleID   int        `json:"main_responsible_id"`
	DeputyResponsibleID *int       `json:"deputy_responsible_id,omitempty"`
	Status              string     `json:"status"`
	IsDeleted           bool       `json:"is_deleted"`
	DeletedAt           *time.Time `json:"deleted_at,omitempty"`
	DeletedReason       string     `json:"deleted_reason,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Archived reports whether the asset is soft-deleted.
func (a *Asset) Archived() bool {
	return a.IsDeleted
}
