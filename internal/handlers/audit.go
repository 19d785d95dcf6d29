package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/guardsys/guardsys/internal/repo"
)

// AuditHandler serves the audit trail, read-only: entries are appended by
// mutations and never changed here or anywhere else.
type AuditHandler struct {
	Repo *repo.AuditRepo
}

// ListAudit returns audit entries newest first. Query: limit (default 50,
// max 200), offset, entity + entity_id to narrow to one entity's history.
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)

	entity := r.URL.Query().Get("entity")
	entityIDStr := r.URL.Query().Get("entity_id")

	var err error
	var entries any
	if entity != "" && entityIDStr != "" {
		entityID, convErr := strconv.Atoi(entityIDStr)
		if convErr != nil {
			JSONError(w, "invalid entity_id", http.StatusBadRequest)
			return
		}
		entries, err = h.Repo.ListForEntity(r.Context(), entity, entityID, limit, offset)
	} else {
		entries, err = h.Repo.List(r.Context(), limit, offset)
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
