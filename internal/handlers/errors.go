package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/guardsys/guardsys/internal/access"
	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/repo"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional
// "fields" for field-level details. status is typically 400.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// WriteDomainError maps domain errors to HTTP responses: authorization 403,
// missing 404, uniqueness and referential protection 409, backdating and bad
// intervals 400. Anything else is a generic 500; referential protection
// failures in particular are never swallowed.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, access.ErrDenied):
		JSONError(w, "permission denied", http.StatusForbidden)
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, "not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicateName):
		JSONError(w, "name already exists", http.StatusConflict)
	case errors.Is(err, repo.ErrReferenced):
		JSONError(w, "still referenced by existing records", http.StatusConflict)
	case errors.Is(err, maintenance.ErrBackdated):
		JSONError(w, "completion date precedes last recorded completion", http.StatusBadRequest)
	case errors.Is(err, maintenance.ErrBadInterval), errors.Is(err, maintenance.ErrUnknownKind):
		JSONError(w, err.Error(), http.StatusBadRequest)
	default:
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}
