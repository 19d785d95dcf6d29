package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/guardsys/guardsys/internal/repo"
)

// PeriodicityHandler serves recurrence policy management.
type PeriodicityHandler struct {
	Repo *repo.PeriodicityRepo
}

// CreatePeriodicity creates a recurrence policy. A CUSTOM kind without a
// positive interval is rejected at construction.
func (h *PeriodicityHandler) CreatePeriodicity(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         string `json:"name" validate:"required,min=2,max=128"`
		Kind         string `json:"kind" validate:"required"`
		IntervalDays int    `json:"interval_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := &models.Periodicity{Name: input.Name, Kind: input.Kind, IntervalDays: input.IntervalDays}
	if p.Kind != models.KindCustom && p.IntervalDays == 0 {
		// Fixed kinds ignore the interval; store the matching offset for display.
		switch p.Kind {
		case models.KindMonthly:
			p.IntervalDays = 30
		case models.KindQuarterly:
			p.IntervalDays = 90
		}
	}
	if err := maintenance.ValidatePeriodicity(p); err != nil {
		WriteDomainError(w, err)
		return
	}

	created, err := h.Repo.Create(r.Context(), p)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ListPeriodicities returns all recurrence policies.
func (h *PeriodicityHandler) ListPeriodicities(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// DeletePeriodicity removes a policy. 409 while events reference it, so
// historical events keep their recurrence behavior.
func (h *PeriodicityHandler) DeletePeriodicity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid periodicity id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
