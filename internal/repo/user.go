package repo

import (
	"context"
	"database/sql"

	"github.com/guardsys/guardsys/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, username, COALESCE(password_hash,''), COALESCE(email,''),
	COALESCE(phone,''), COALESCE(position,''), role, is_superuser, can_soft_delete`

// UserRepo persists actors.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo returns a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email,
		&u.Phone, &u.Position, &u.Role, &u.IsSuperuser, &u.CanSoftDelete)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user. An empty password stores an empty hash (login
// then needs no password, matching the register flow).
func (r *UserRepo) Create(ctx context.Context, u *models.User, password string) (*models.User, error) {
	hash := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}
	created, err := scanUser(r.DB.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, email, phone, position, role, is_superuser, can_soft_delete)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		u.Username, hash, u.Email, u.Phone, u.Position, u.Role, u.IsSuperuser, u.CanSoftDelete,
	))
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

// GetByID returns one user.
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// GetByUsername returns one user by login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// Update rewrites a user's profile, role, and capability flags. The password
// is changed only when newPassword is non-empty.
func (r *UserRepo) Update(ctx context.Context, u *models.User, newPassword string) (*models.User, error) {
	if newPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updated, err := scanUser(r.DB.QueryRowContext(ctx,
			`UPDATE users
			 SET email = $1, phone = $2, position = $3, role = $4,
			     is_superuser = $5, can_soft_delete = $6, password_hash = $7
			 WHERE id = $8
			 RETURNING `+userColumns,
			u.Email, u.Phone, u.Position, u.Role, u.IsSuperuser, u.CanSoftDelete, string(h), u.ID,
		))
		return updated, translate(err)
	}
	updated, err := scanUser(r.DB.QueryRowContext(ctx,
		`UPDATE users
		 SET email = $1, phone = $2, position = $3, role = $4,
		     is_superuser = $5, can_soft_delete = $6
		 WHERE id = $7
		 RETURNING `+userColumns,
		u.Email, u.Phone, u.Position, u.Role, u.IsSuperuser, u.CanSoftDelete, u.ID,
	))
	return updated, translate(err)
}

// List returns users ordered by id.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
