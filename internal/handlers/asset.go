package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/guardsys/guardsys/internal/access"
	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/guardsys/guardsys/internal/repo"
)

// AssetHandler serves guarded-asset CRUD plus archive/restore. Every
// mutation loads the actor, passes the access guard, and commits together
// with its audit entry inside the repo.
type AssetHandler struct {
	Assets        *repo.AssetRepo
	Events        *repo.EventRepo
	Periodicities *repo.PeriodicityRepo
	Users         *repo.UserRepo
	Documents     *repo.DocumentRepo
}

type assetInput struct {
	Name                string `json:"name" validate:"required,min=2,max=255"`
	Address             string `json:"address" validate:"required,max=255"`
	OrganizationID      int    `json:"organization_id" validate:"required,gt=0"`
	Equipment           string `json:"equipment" validate:"max=4000"`
	Notes               string `json:"notes" validate:"max=4000"`
	MainResponsibleID   int    `json:"main_responsible_id" validate:"required,gt=0"`
	DeputyResponsibleID *int   `json:"deputy_responsible_id"`
	PeriodicityID       *int   `json:"periodicity_id"`
}

// CreateAsset creates an asset and, when a periodicity is selected, its
// initial maintenance event scheduled from the creation date.
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.Users)
	if actor == nil {
		return
	}

	var input assetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.Assets.Create(r.Context(), &actor.ID, &models.Asset{
		Name:                input.Name,
		Address:             input.Address,
		OrganizationID:      input.OrganizationID,
		Equipment:           input.Equipment,
		Notes:               input.Notes,
		MainResponsibleID:   input.MainResponsibleID,
		DeputyResponsibleID: input.DeputyResponsibleID,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	var event *models.MaintenanceEvent
	if input.PeriodicityID != nil {
		p, err := h.Periodicities.GetByID(r.Context(), *input.PeriodicityID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		e, err := maintenance.NewEvent(asset.ID, p, asset.CreatedAt)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		event, err = h.Events.Create(r.Context(), e)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"asset":       asset,
		"maintenance": event,
	})
}

// ListAssets returns non-archived assets. Query: q (search), limit, offset.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)
	search := r.URL.Query().Get("q")

	assets, err := h.Assets.List(r.Context(), search, limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assets)
}

// GetAsset returns one asset with its maintenance event and attachment
// descriptors.
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	asset, err := h.Assets.GetByID(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	event, err := h.Events.GetByAssetID(r.Context(), id)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	docs, err := h.Documents.ListByAsset(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"asset":       asset,
		"maintenance": event,
		"documents":   docs,
	})
}

// UpdateAsset rewrites an asset's editable fields. Gated by CanEdit.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	actor := actorFromRequest(w, r, h.Users)
	if actor == nil {
		return
	}

	var input assetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.Assets.GetByID(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if err := access.EnsureCanEdit(actor, asset); err != nil {
		WriteDomainError(w, err)
		return
	}

	updated, err := h.Assets.Update(r.Context(), &actor.ID, &models.Asset{
		ID:                  id,
		Name:                input.Name,
		Address:             input.Address,
		OrganizationID:      input.OrganizationID,
		Equipment:           input.Equipment,
		Notes:               input.Notes,
		MainResponsibleID:   input.MainResponsibleID,
		DeputyResponsibleID: input.DeputyResponsibleID,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// ArchiveAsset soft-deletes an asset with a reason. Gated by CanArchive.
func (h *AssetHandler) ArchiveAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	actor := actorFromRequest(w, r, h.Users)
	if actor == nil {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	asset, err := h.Assets.GetByID(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if asset.IsDeleted {
		JSONError(w, "asset already archived", http.StatusConflict)
		return
	}
	if err := access.EnsureCanArchive(actor, asset); err != nil {
		WriteDomainError(w, err)
		return
	}

	archived, err := h.Assets.Archive(r.Context(), &actor.ID, id, input.Reason, time.Now())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(archived)
}

// RestoreAsset un-archives an asset. Admin or superuser only; this rule is
// stricter than archiving and stays separate from it.
func (h *AssetHandler) RestoreAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	actor := actorFromRequest(w, r, h.Users)
	if actor == nil {
		return
	}

	asset, err := h.Assets.GetByID(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if !asset.IsDeleted {
		JSONError(w, "asset is not archived", http.StatusConflict)
		return
	}
	if err := access.EnsureCanRestore(actor, asset); err != nil {
		WriteDomainError(w, err)
		return
	}

	restored, err := h.Assets.Restore(r.Context(), &actor.ID, id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(restored)
}
