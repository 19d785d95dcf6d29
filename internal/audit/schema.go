// Package audit produces the append-only before/after trail around entity
// mutations. Snapshots come from static per-entity schemas (an ordered list
// of field name/accessor pairs fixed at build time) instead of runtime
// reflection, so what gets recorded is explicit and reviewable.
package audit

import "github.com/guardsys/guardsys/internal/models"

// Field is one entry of an entity schema: a stable field name and an
// accessor returning a scalar snapshot value. Reference fields return the
// referenced entity's id, never a nested object.
type Field[T any] struct {
	Name  string
	Value func(T) any
}

// Snapshot applies a schema to an entity. An accessor that panics (e.g. a
// broken relation behind it) records the field as nil; one unreadable field
// must never abort the audit write.
func Snapshot[T any](schema []Field[T], entity T) map[string]any {
	out := make(map[string]any, len(schema))
	for _, f := range schema {
		out[f.Name] = safeValue(f, entity)
	}
	return out
}

func safeValue[T any](f Field[T], entity T) (v any) {
	defer func() {
		if recover() != nil {
			v = nil
		}
	}()
	return f.Value(entity)
}

// AssetSchema is the audited field set of a guarded asset. Order matters
// only for review diffs; the snapshot itself is a map.
var AssetSchema = []Field[*models.Asset]{
	{Name: "name", Value: func(a *models.Asset) any { return a.Name }},
	{Name: "address", Value: func(a *models.Asset) any { return a.Address }},
	{Name: "organization", Value: func(a *models.Asset) any { return a.OrganizationID }},
	{Name: "equipment", Value: func(a *models.Asset) any { return a.Equipment }},
	{Name: "notes", Value: func(a *models.Asset) any { return a.Notes }},
	{Name: "main_responsible", Value: func(a *models.Asset) any { return a.MainResponsibleID }},
	{Name: "deputy_responsible", Value: func(a *models.Asset) any {
		if a.DeputyResponsibleID == nil {
			return nil
		}
		return *a.DeputyResponsibleID
	}},
	{Name: "status", Value: func(a *models.Asset) any { return a.Status }},
	{Name: "is_deleted", Value: func(a *models.Asset) any { return a.IsDeleted }},
	{Name: "deleted_at", Value: func(a *models.Asset) any {
		if a.DeletedAt == nil {
			return nil
		}
		return a.DeletedAt.Format("2006-01-02T15:04:05Z07:00")
	}},
	{Name: "deleted_reason", Value: func(a *models.Asset) any { return a.DeletedReason }},
}

// SnapshotAsset captures the audited state of an asset. Returns nil for a
// nil asset, which marks a creation in the recorded entry.
func SnapshotAsset(a *models.Asset) map[string]any {
	if a == nil {
		return nil
	}
	return Snapshot(AssetSchema, a)
}
