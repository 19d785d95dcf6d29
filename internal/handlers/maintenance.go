package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/guardsys/guardsys/internal/access"
	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/repo"
)

// MaintenanceHandler serves the maintenance schedule: listing events and
// recording completions.
type MaintenanceHandler struct {
	Events        *repo.EventRepo
	Assets        *repo.AssetRepo
	Periodicities *repo.PeriodicityRepo
	Users         *repo.UserRepo
}

// ListEvents returns every event with asset and responsible context. The
// overdue flags are the cached values from the last sweep.
func (h *MaintenanceHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	items, err := h.Events.ListForSweep(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	type row struct {
		EventID     int    `json:"event_id"`
		AssetID     int    `json:"asset_id"`
		Asset       string `json:"asset"`
		Responsible string `json:"responsible"`
		LastDoneAt  string `json:"last_done_at,omitempty"`
		NextDueAt   string `json:"next_due_at"`
		IsOverdue   bool   `json:"is_overdue"`
	}
	out := make([]row, 0, len(items))
	for _, it := range items {
		rw := row{
			EventID:     it.Event.ID,
			AssetID:     it.Event.AssetID,
			Asset:       it.AssetName,
			Responsible: it.ResponsibleName,
			NextDueAt:   it.Event.NextDueAt.Format("2006-01-02"),
			IsOverdue:   it.Event.IsOverdue,
		}
		if it.Event.LastDoneAt != nil {
			rw.LastDoneAt = it.Event.LastDoneAt.Format("2006-01-02")
		}
		out = append(out, rw)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// MarkDone records a completed maintenance pass for the asset's event.
// Gated by CanEdit on the asset. Body: {"when": "2006-01-02"} (optional,
// defaults to today). A completion date before the recorded last completion
// is rejected.
func (h *MaintenanceHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	actor := actorFromRequest(w, r, h.Users)
	if actor == nil {
		return
	}

	var input struct {
		When string `json:"when"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			JSONError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	when := today
	if input.When != "" {
		when, err = time.Parse("2006-01-02", input.When)
		if err != nil {
			JSONError(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	asset, err := h.Assets.GetByID(r.Context(), assetID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if err := access.EnsureCanEdit(actor, asset); err != nil {
		WriteDomainError(w, err)
		return
	}

	event, err := h.Events.GetByAssetID(r.Context(), assetID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	p, err := h.Periodicities.GetByID(r.Context(), event.PeriodicityID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	if err := maintenance.MarkDone(event, p, when, today); err != nil {
		WriteDomainError(w, err)
		return
	}
	if err := h.Events.SaveDone(r.Context(), event); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}
