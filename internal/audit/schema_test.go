package audit

import (
	"testing"
	"time"

	"github.com/guardsys/guardsys/internal/models"
)

func TestSnapshotAsset(t *testing.T) {
	deputy := 5
	deleted := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	a := &models.Asset{
		ID:                  1,
		Name:                "Warehouse 4",
		Address:             "Main st 10",
		OrganizationID:      2,
		Equipment:           "cameras",
		Notes:               "gate code 1234",
		MainResponsibleID:   3,
		DeputyResponsibleID: &deputy,
		Status:              models.StatusArchived,
		IsDeleted:           true,
		DeletedAt:           &deleted,
		DeletedReason:       "sold",
	}

	snap := SnapshotAsset(a)
	if snap["name"] != "Warehouse 4" || snap["address"] != "Main st 10" {
		t.Errorf("unexpected snapshot: %v", snap)
	}
	if snap["organization"] != 2 || snap["main_responsible"] != 3 {
		t.Errorf("reference fields must record ids: %v", snap)
	}
	if snap["deputy_responsible"] != 5 {
		t.Errorf("deputy id: got %v", snap["deputy_responsible"])
	}
	if snap["is_deleted"] != true || snap["deleted_reason"] != "sold" {
		t.Errorf("archive fields: %v", snap)
	}
	if snap["deleted_at"] != "2024-03-01T12:00:00Z" {
		t.Errorf("deleted_at: got %v", snap["deleted_at"])
	}
}

func TestSnapshotAsset_NilFields(t *testing.T) {
	a := &models.Asset{ID: 1, Name: "n"}
	snap := SnapshotAsset(a)
	if snap["deputy_responsible"] != nil {
		t.Errorf("nil deputy must snapshot as nil, got %v", snap["deputy_responsible"])
	}
	if snap["deleted_at"] != nil {
		t.Errorf("nil deleted_at must snapshot as nil, got %v", snap["deleted_at"])
	}
}

func TestSnapshotAsset_Nil(t *testing.T) {
	if snap := SnapshotAsset(nil); snap != nil {
		t.Errorf("nil asset must snapshot as nil, got %v", snap)
	}
}

func TestSnapshot_PanickingAccessor(t *testing.T) {
	schema := []Field[*models.Asset]{
		{Name: "ok", Value: func(a *models.Asset) any { return a.Name }},
		{Name: "broken", Value: func(a *models.Asset) any { return *a.DeputyResponsibleID }},
	}
	snap := Snapshot(schema, &models.Asset{Name: "n"})
	if snap["ok"] != "n" {
		t.Errorf("healthy field lost: %v", snap)
	}
	if v, present := snap["broken"]; !present || v != nil {
		t.Errorf("panicking accessor must record nil, got %v (present=%v)", v, present)
	}
}
