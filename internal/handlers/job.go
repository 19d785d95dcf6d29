package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/repo"
)

// JobHandler exposes the batch entry points over HTTP for external
// schedulers and operators.
type JobHandler struct {
	Sweeper *maintenance.Sweeper
	Runs    *repo.SweepRunRepo
	Users   *repo.UserRepo
}

// RunSweep executes the overdue sweep now (admin only). Re-running on the
// same day sends duplicate notifications; that is the sweep's documented
// at-least-once behavior.
func (h *JobHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.Users)
	if actor == nil {
		return
	}
	if !actor.IsAdmin() {
		JSONError(w, "permission denied", http.StatusForbidden)
		return
	}

	started := time.Now()
	today := started.UTC().Truncate(24 * time.Hour)
	res, err := h.Sweeper.Run(r.Context(), today)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if err := h.Runs.Record(r.Context(), started, time.Now(), res); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// ListSweepRuns returns recent sweep executions, newest first (admin only).
func (h *JobHandler) ListSweepRuns(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.Users)
	if actor == nil {
		return
	}
	if !actor.IsAdmin() {
		JSONError(w, "permission denied", http.StatusForbidden)
		return
	}

	limit, _ := pagination(r, 20, 100)
	runs, err := h.Runs.ListRecent(r.Context(), limit)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}
