package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/lib/pq"
)

var orgCols = []string{"id", "name", "inn", "kpp", "requisites", "contacts"}

func TestOrgRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO organizations`).
		WithArgs("Acme", "7701234567", "", "", "office@acme.test").
		WillReturnRows(sqlmock.NewRows(orgCols).
			AddRow(3, "Acme", "7701234567", "", "", "office@acme.test"))

	repo := NewOrgRepo(db)
	created, err := repo.Create(context.Background(), &models.Organization{
		Name: "Acme", INN: "7701234567", Contacts: "office@acme.test",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 3 || created.Name != "Acme" {
		t.Errorf("unexpected org: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestOrgRepo_Create_DuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO organizations`).
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewOrgRepo(db)
	_, err = repo.Create(context.Background(), &models.Organization{Name: "Acme"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("got %v, want ErrDuplicateName", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestOrgRepo_Delete_Referenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM organizations WHERE id = \$1`).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "23503"})

	repo := NewOrgRepo(db)
	err = repo.Delete(context.Background(), 1)
	if !errors.Is(err, ErrReferenced) {
		t.Errorf("got %v, want ErrReferenced", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestOrgRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM organizations WHERE id = \$1`).
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewOrgRepo(db)
	err = repo.Delete(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
