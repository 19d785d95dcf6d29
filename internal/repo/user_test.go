package repo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guardsys/guardsys/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{
	"id", "username", "password_hash", "email", "phone", "position",
	"role", "is_superuser", "can_soft_delete",
}

// hashMatcher asserts the stored value verifies against the plaintext.
type hashMatcher struct{ plain string }

func (m hashMatcher) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s), []byte(m.plain)) == nil
}

func TestUserRepo_Create_HashesPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ivanov", hashMatcher{plain: "secret"}, "i@example.com", "", "",
			models.RoleResponsible, false, false).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "ivanov", "x", "i@example.com", "", "", models.RoleResponsible, false, false))

	repo := NewUserRepo(db)
	created, err := repo.Create(context.Background(), &models.User{
		Username: "ivanov", Email: "i@example.com", Role: models.RoleResponsible,
	}, "secret")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 || created.Username != "ivanov" {
		t.Errorf("unexpected user: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_EmptyPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("guest", "", "", "", "", models.RoleObserver, false, false).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(2, "guest", "", "", "", "", models.RoleObserver, false, false))

	repo := NewUserRepo(db)
	created, err := repo.Create(context.Background(), &models.User{
		Username: "guest", Role: models.RoleObserver,
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.PasswordHash != "" {
		t.Errorf("empty password must store an empty hash, got %q", created.PasswordHash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
