package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/guardsys/guardsys/internal/repo"
)

type staticEventStore struct {
	items []maintenance.SweepItem
}

func (s *staticEventStore) ListForSweep(context.Context) ([]maintenance.SweepItem, error) {
	return s.items, nil
}

func (s *staticEventStore) SetOverdue(context.Context, int, bool) error { return nil }

type noopMailer struct{}

func (noopMailer) Send(_, _, _ string) error { return nil }

func TestJobHandler_RunSweep(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	admin := models.User{ID: 9, Username: "admin", Role: models.RoleAdmin}
	expectActor(mock, admin)
	mock.ExpectExec(`INSERT INTO sweep_runs`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := &staticEventStore{items: []maintenance.SweepItem{
		{
			Event:            models.MaintenanceEvent{ID: 1, NextDueAt: time.Now().AddDate(0, 0, -2)},
			AssetName:        "obj-1",
			ResponsibleEmail: "r@example.com",
		},
	}}
	h := &JobHandler{
		Sweeper: maintenance.NewSweeper(store, noopMailer{}, "admin@example.com"),
		Runs:    repo.NewSweepRunRepo(db),
		Users:   repo.NewUserRepo(db),
	}

	req := asActor(httptest.NewRequest("POST", "/jobs/sweep", nil), 9)
	rr := httptest.NewRecorder()
	h.RunSweep(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var res maintenance.SweepResult
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Total != 1 || res.Overdue != 1 || res.Notified != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestJobHandler_RunSweep_Forbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	responsible := models.User{ID: 2, Username: "resp", Role: models.RoleResponsible}
	expectActor(mock, responsible)

	h := &JobHandler{
		Sweeper: maintenance.NewSweeper(&staticEventStore{}, noopMailer{}, ""),
		Runs:    repo.NewSweepRunRepo(db),
		Users:   repo.NewUserRepo(db),
	}

	req := asActor(httptest.NewRequest("POST", "/jobs/sweep", nil), 2)
	rr := httptest.NewRecorder()
	h.RunSweep(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
