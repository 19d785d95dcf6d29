package handlers

import (
	"net/http"
	"strconv"

	"github.com/guardsys/guardsys/internal/middleware"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/guardsys/guardsys/internal/repo"
)

// pagination reads limit/offset query params with bounds.
func pagination(r *http.Request, defLimit, maxLimit int) (limit, offset int) {
	limit = defLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= maxLimit {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// actorFromRequest loads the authenticated actor set by the JWT middleware.
// Returns nil and writes the response when the actor cannot be resolved.
func actorFromRequest(w http.ResponseWriter, r *http.Request, users *repo.UserRepo) *models.User {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return nil
	}
	actor, err := users.GetByID(r.Context(), uid)
	if err != nil {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return nil
	}
	return actor
}
