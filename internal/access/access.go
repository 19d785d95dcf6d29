// Package access holds the authorization predicates gating asset mutations.
// Decisions depend only on the actor's role, capability flags, and the
// asset's responsibility assignment; they never touch storage.
package access

import (
	"errors"

	"github.com/guardsys/guardsys/internal/models"
)

// ErrDenied signals an authorization failure at a gated mutation entry point.
var ErrDenied = errors.New("permission denied")

// CanEdit reports whether the actor may modify the asset. Admins and
// superusers always may; a RESPONSIBLE actor only for assets where they are
// the main or deputy responsible; observers never.
func CanEdit(actor *models.User, asset *models.Asset) bool {
	if actor.IsAdmin() {
		return true
	}
	switch actor.Role {
	case models.RoleResponsible:
		return assignedTo(actor, asset)
	case models.RoleObserver:
		return false
	default:
		return false
	}
}

// CanArchive reports whether the actor may soft-delete the asset. Admins and
// superusers always may; otherwise the actor needs both the can_soft_delete
// capability and a responsibility assignment on the asset.
func CanArchive(actor *models.User, asset *models.Asset) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.CanSoftDelete && assignedTo(actor, asset)
}

// CanRestore reports whether the actor may un-archive the asset. Restoring
// is deliberately stricter than archiving: admins and superusers only. This
// is a distinct rule, not derived from CanArchive.
func CanRestore(actor *models.User, _ *models.Asset) bool {
	return actor.IsAdmin()
}

// EnsureCanEdit returns ErrDenied when CanEdit is false.
func EnsureCanEdit(actor *models.User, asset *models.Asset) error {
	if !CanEdit(actor, asset) {
		return ErrDenied
	}
	return nil
}

// EnsureCanArchive returns ErrDenied when CanArchive is false.
func EnsureCanArchive(actor *models.User, asset *models.Asset) error {
	if !CanArchive(actor, asset) {
		return ErrDenied
	}
	return nil
}

// EnsureCanRestore returns ErrDenied when CanRestore is false.
func EnsureCanRestore(actor *models.User, asset *models.Asset) error {
	if !CanRestore(actor, asset) {
		return ErrDenied
	}
	return nil
}

func assignedTo(actor *models.User, asset *models.Asset) bool {
	if asset.MainResponsibleID == actor.ID {
		return true
	}
	return asset.DeputyResponsibleID != nil && *asset.DeputyResponsibleID == actor.ID
}
