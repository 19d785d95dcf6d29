package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guardsys/guardsys/internal/audit"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/guardsys/guardsys/internal/repo"
)

var eventTestCols = []string{
	"id", "asset_id", "periodicity_id", "last_done_at", "next_due_at",
	"is_overdue", "created_at", "updated_at",
}

func TestMaintenanceHandler_MarkDone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	due := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	admin := models.User{ID: 9, Username: "admin", Role: models.RoleAdmin}
	expectActor(mock, admin)
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(activeAssetTestRow(7, "obj-7", 2))
	mock.ExpectQuery(`SELECT (.+) FROM maintenance_events WHERE asset_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(eventTestCols).
			AddRow(3, 7, 1, nil, due, true, now, now))
	mock.ExpectQuery(`SELECT id, name, kind, interval_days FROM periodicities WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "kind", "interval_days"}).
			AddRow(1, "Monthly", models.KindMonthly, 30))
	mock.ExpectExec(`UPDATE maintenance_events SET last_done_at = \$1`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), false, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := &MaintenanceHandler{
		Events:        repo.NewEventRepo(db),
		Assets:        repo.NewAssetRepo(db, audit.NewRecorder()),
		Periodicities: repo.NewPeriodicityRepo(db),
		Users:         repo.NewUserRepo(db),
	}

	req := asActor(requestWithChiURLParams("POST", "/assets/7/maintenance/done", nil, map[string]string{"id": "7"}), 9)
	rr := httptest.NewRecorder()
	h.MarkDone(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("MarkDone status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var out struct {
		LastDoneAt *time.Time `json:"last_done_at"`
		NextDueAt  time.Time  `json:"next_due_at"`
		IsOverdue  bool       `json:"is_overdue"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.LastDoneAt == nil {
		t.Fatal("last_done_at must be set")
	}
	if want := out.LastDoneAt.AddDate(0, 0, 30); !out.NextDueAt.Equal(want) {
		t.Errorf("next due: got %s, want %s", out.NextDueAt, want)
	}
	if out.IsOverdue {
		t.Error("completing today must clear the overdue flag")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMaintenanceHandler_MarkDone_Backdated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	lastDone := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	admin := models.User{ID: 9, Username: "admin", Role: models.RoleAdmin}
	expectActor(mock, admin)
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(activeAssetTestRow(7, "obj-7", 2))
	mock.ExpectQuery(`SELECT (.+) FROM maintenance_events WHERE asset_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(eventTestCols).
			AddRow(3, 7, 1, lastDone, lastDone.AddDate(0, 0, 30), false, now, now))
	mock.ExpectQuery(`SELECT id, name, kind, interval_days FROM periodicities WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "kind", "interval_days"}).
			AddRow(1, "Monthly", models.KindMonthly, 30))

	h := &MaintenanceHandler{
		Events:        repo.NewEventRepo(db),
		Assets:        repo.NewAssetRepo(db, audit.NewRecorder()),
		Periodicities: repo.NewPeriodicityRepo(db),
		Users:         repo.NewUserRepo(db),
	}

	body := []byte(`{"when":"2024-03-01"}`)
	req := asActor(requestWithChiURLParams("POST", "/assets/7/maintenance/done", body, map[string]string{"id": "7"}), 9)
	rr := httptest.NewRecorder()
	h.MarkDone(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400 (%s)", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMaintenanceHandler_MarkDone_ObserverForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	observer := models.User{ID: 4, Username: "watcher", Role: models.RoleObserver}
	expectActor(mock, observer)
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(activeAssetTestRow(7, "obj-7", 2))

	h := &MaintenanceHandler{
		Events:        repo.NewEventRepo(db),
		Assets:        repo.NewAssetRepo(db, audit.NewRecorder()),
		Periodicities: repo.NewPeriodicityRepo(db),
		Users:         repo.NewUserRepo(db),
	}

	req := asActor(requestWithChiURLParams("POST", "/assets/7/maintenance/done", nil, map[string]string{"id": "7"}), 4)
	rr := httptest.NewRecorder()
	h.MarkDone(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMaintenanceHandler_MarkDone_BadDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	admin := models.User{ID: 9, Username: "admin", Role: models.RoleAdmin}
	expectActor(mock, admin)

	h := &MaintenanceHandler{Users: repo.NewUserRepo(db)}

	body := []byte(`{"when":"03/01/2024"}`)
	req := asActor(requestWithChiURLParams("POST", "/assets/7/maintenance/done", body, map[string]string{"id": "7"}), 9)
	rr := httptest.NewRecorder()
	h.MarkDone(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMaintenanceHandler_ListEvents(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	due := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	cols := append(append([]string{}, eventTestCols...), "name", "address", "username", "email")
	mock.ExpectQuery(`SELECT (.+) FROM maintenance_events e JOIN assets a`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 7, 1, nil, due, true, now, now, "obj-7", "addr", "ivanov", "i@example.com"))

	h := &MaintenanceHandler{Events: repo.NewEventRepo(db)}

	req := httptest.NewRequest("GET", "/maintenance", nil)
	rr := httptest.NewRecorder()
	h.ListEvents(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("ListEvents status: got %d, want 200", rr.Code)
	}
	var out []struct {
		EventID   int    `json:"event_id"`
		Asset     string `json:"asset"`
		NextDueAt string `json:"next_due_at"`
		IsOverdue bool   `json:"is_overdue"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 1 || out[0].Asset != "obj-7" || out[0].NextDueAt != "2024-03-01" || !out[0].IsOverdue {
		t.Errorf("unexpected rows: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
