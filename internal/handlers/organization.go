package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/guardsys/guardsys/internal/repo"
)

// OrgHandler serves organization CRUD.
type OrgHandler struct {
	Repo *repo.OrgRepo
}

type orgInput struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	INN        string `json:"inn" validate:"max=32"`
	KPP        string `json:"kpp" validate:"max=32"`
	Requisites string `json:"requisites" validate:"max=4000"`
	Contacts   string `json:"contacts" validate:"max=4000"`
}

// CreateOrg creates an organization.
func (h *OrgHandler) CreateOrg(w http.ResponseWriter, r *http.Request) {
	var input orgInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	org, err := h.Repo.Create(r.Context(), &models.Organization{
		Name: input.Name, INN: input.INN, KPP: input.KPP,
		Requisites: input.Requisites, Contacts: input.Contacts,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(org)
}

// ListOrgs returns organizations (query: limit, offset).
func (h *OrgHandler) ListOrgs(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)
	orgs, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orgs)
}

// GetOrg returns one organization.
func (h *OrgHandler) GetOrg(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	org, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(org)
}

// UpdateOrg rewrites an organization.
func (h *OrgHandler) UpdateOrg(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	var input orgInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	org, err := h.Repo.Update(r.Context(), &models.Organization{
		ID: id, Name: input.Name, INN: input.INN, KPP: input.KPP,
		Requisites: input.Requisites, Contacts: input.Contacts,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(org)
}

// DeleteOrg removes an organization. 409 while assets still reference it;
// that failure always surfaces, never a silent no-op.
func (h *OrgHandler) DeleteOrg(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
