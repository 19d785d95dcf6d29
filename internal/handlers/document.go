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

// DocumentHandler serves attachment descriptors. Upload byte storage is an
// external collaborator: the API records what was stored and where.
type DocumentHandler struct {
	Documents *repo.DocumentRepo
	Assets    *repo.AssetRepo
}

// ListDocuments returns the asset's attachment descriptors.
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}
	if _, err := h.Assets.GetByID(r.Context(), assetID); err != nil {
		WriteDomainError(w, err)
		return
	}

	docs, err := h.Documents.ListByAsset(r.Context(), assetID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

// AddDocument records an attachment descriptor. A duplicate filename on the
// same asset is rejected with 409 and nothing is committed.
func (h *DocumentHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}
	if _, err := h.Assets.GetByID(r.Context(), assetID); err != nil {
		WriteDomainError(w, err)
		return
	}

	var input struct {
		OriginalName string `json:"original_name" validate:"required,max=255"`
		ContentType  string `json:"content_type" validate:"max=128"`
		SizeBytes    int64  `json:"size_bytes" validate:"gte=0"`
		StoragePath  string `json:"storage_path" validate:"required,max=1024"`
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

	doc, err := h.Documents.Create(r.Context(), &models.Document{
		AssetID:      assetID,
		OriginalName: input.OriginalName,
		ContentType:  input.ContentType,
		SizeBytes:    input.SizeBytes,
		StoragePath:  input.StoragePath,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}
