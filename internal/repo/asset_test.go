package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guardsys/guardsys/internal/audit"
	"github.com/guardsys/guardsys/internal/models"
)

var assetCols = []string{
	"id", "name", "address", "organization_id", "equipment", "notes",
	"main_responsible_id", "deputy_responsible_id", "status", "is_deleted",
	"deleted_at", "deleted_reason", "created_at", "updated_at",
}

func activeAssetRow(id int, name string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(assetCols).
		AddRow(id, name, "addr", 1, "", "", 2, nil, models.StatusActive, false, nil, "", now, now)
}

func TestAssetRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	actor := 9
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO assets`).
		WithArgs("obj-1", "addr", 1, "", "", 2, nil).
		WillReturnRows(activeAssetRow(42, "obj-1"))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(models.AuditCreated, models.EntityAsset, 42, &actor, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewAssetRepo(db, audit.NewRecorder())
	created, err := repo.Create(context.Background(), &actor, &models.Asset{
		Name: "obj-1", Address: "addr", OrganizationID: 1, MainResponsibleID: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 42 || created.Name != "obj-1" || created.Status != models.StatusActive {
		t.Errorf("unexpected asset: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	repo := NewAssetRepo(db, audit.NewRecorder())
	_, err = repo.GetByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Archive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	actor := 9
	now := time.Now()
	archivedRow := sqlmock.NewRows(assetCols).
		AddRow(1, "obj-1", "addr", 1, "", "", 2, nil, models.StatusArchived, true, now, "sold", now, now)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(activeAssetRow(1, "obj-1"))
	mock.ExpectQuery(`UPDATE assets SET is_deleted = true`).
		WithArgs(models.StatusArchived, now, "sold", 1).
		WillReturnRows(archivedRow)
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(models.AuditUpdated, models.EntityAsset, 1, &actor, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewAssetRepo(db, audit.NewRecorder())
	archived, err := repo.Archive(context.Background(), &actor, 1, "sold", now)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if !archived.IsDeleted || archived.Status != models.StatusArchived || archived.DeletedReason != "sold" {
		t.Errorf("unexpected archived asset: %+v", archived)
	}
	if archived.DeletedAt == nil {
		t.Error("deleted_at must be set on archive")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Restore_KeepsReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	actor := 9
	now := time.Now()
	archivedRow := sqlmock.NewRows(assetCols).
		AddRow(1, "obj-1", "addr", 1, "", "", 2, nil, models.StatusArchived, true, now, "sold", now, now)
	// deleted_reason survives the restore, only the flag, status, and
	// timestamp are reset.
	restoredRow := sqlmock.NewRows(assetCols).
		AddRow(1, "obj-1", "addr", 1, "", "", 2, nil, models.StatusActive, false, nil, "sold", now, now)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(archivedRow)
	mock.ExpectQuery(`UPDATE assets SET is_deleted = false`).
		WithArgs(models.StatusActive, 1).
		WillReturnRows(restoredRow)
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(models.AuditUpdated, models.EntityAsset, 1, &actor, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewAssetRepo(db, audit.NewRecorder())
	restored, err := repo.Restore(context.Background(), &actor, 1)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.IsDeleted || restored.Status != models.StatusActive || restored.DeletedAt != nil {
		t.Errorf("unexpected restored asset: %+v", restored)
	}
	if restored.DeletedReason != "sold" {
		t.Errorf("deleted_reason must survive restore, got %q", restored.DeletedReason)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Mutate_AuditFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	actor := 9
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(activeAssetRow(1, "obj-1"))
	mock.ExpectQuery(`UPDATE assets SET is_deleted = true`).
		WithArgs(models.StatusArchived, now, "sold", 1).
		WillReturnRows(sqlmock.NewRows(assetCols).
			AddRow(1, "obj-1", "addr", 1, "", "", 2, nil, models.StatusArchived, true, now, "sold", now, now))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(errors.New("audit_log is full"))
	mock.ExpectRollback()

	repo := NewAssetRepo(db, audit.NewRecorder())
	_, err = repo.Archive(context.Background(), &actor, 1, "sold", now)
	if err == nil {
		t.Fatal("expected error when the audit append fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(assetCols).
		AddRow(1, "a1", "addr1", 1, "", "", 2, nil, models.StatusActive, false, nil, "", now, now).
		AddRow(2, "a2", "addr2", 1, "", "", 2, nil, models.StatusActive, false, nil, "", now, now)
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE is_deleted = false ORDER BY id LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0).
		WillReturnRows(rows)

	repo := NewAssetRepo(db, audit.NewRecorder())
	assets, err := repo.List(context.Background(), "", 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(assets) != 2 || assets[0].Name != "a1" || assets[1].Name != "a2" {
		t.Errorf("unexpected list: %+v", assets)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_List_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE is_deleted = false AND \(name ILIKE \$1 OR address ILIKE \$1 OR notes ILIKE \$1\)`).
		WithArgs("%ware%", 50, 0).
		WillReturnRows(activeAssetRow(1, "warehouse"))

	repo := NewAssetRepo(db, audit.NewRecorder())
	assets, err := repo.List(context.Background(), "ware", 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(assets) != 1 || assets[0].Name != "warehouse" {
		t.Errorf("unexpected list: %+v", assets)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
