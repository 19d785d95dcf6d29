package audit

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guardsys/guardsys/internal/models"
)

func TestRecorder_Record_Creation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	actor := 7
	mock.ExpectExec(`INSERT INTO audit_log \(action, entity, entity_id, actor_id, before, after\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs(models.AuditCreated, models.EntityAsset, 1, &actor, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := NewRecorder()
	after := SnapshotAsset(&models.Asset{ID: 1, Name: "n"})
	if err := rec.Record(context.Background(), db, &actor, models.EntityAsset, 1, nil, after); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRecorder_Record_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(models.AuditUpdated, models.EntityAsset, 1, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := NewRecorder()
	before := SnapshotAsset(&models.Asset{ID: 1, Name: "old"})
	after := SnapshotAsset(&models.Asset{ID: 1, Name: "new"})
	if err := rec.Record(context.Background(), db, nil, models.EntityAsset, 1, before, after); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
