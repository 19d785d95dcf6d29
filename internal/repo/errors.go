package repo

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicateName is returned when a unique name constraint is violated,
// e.g. two documents with the same filename on one asset.
var ErrDuplicateName = errors.New("name already exists")

// ErrReferenced is returned when deleting a row that live entities still
// reference (organization with assets, periodicity with events, responsible
// user with assets). The database RESTRICT constraint is the enforcement
// point; this error must always reach the caller.
var ErrReferenced = errors.New("still referenced by existing records")

// translate maps driver errors to the domain errors above. Postgres codes:
// 23505 unique_violation, 23503 foreign_key_violation.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrDuplicateName
		case "23503":
			return ErrReferenced
		}
	}
	return err
}
