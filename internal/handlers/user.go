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

// UserHandler serves actor administration. All endpoints are admin-gated:
// roles and the can_soft_delete capability are only ever granted here,
// never inferred.
type UserHandler struct {
	Users *repo.UserRepo
}

type userInput struct {
	Username      string `json:"username" validate:"required,min=2,max=64"`
	Password      string `json:"password"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"max=32"`
	Position      string `json:"position" validate:"max=128"`
	Role          string `json:"role" validate:"required,oneof=ADMIN RESPONSIBLE OBSERVER"`
	IsSuperuser   bool   `json:"is_superuser"`
	CanSoftDelete bool   `json:"can_soft_delete"`
}

// requireAdmin loads the actor and rejects non-admins.
func (h *UserHandler) requireAdmin(w http.ResponseWriter, r *http.Request) *models.User {
	actor := actorFromRequest(w, r, h.Users)
	if actor == nil {
		return nil
	}
	if !actor.IsAdmin() {
		JSONError(w, "permission denied", http.StatusForbidden)
		return nil
	}
	return actor
}

// ListUsers returns users (admin only).
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	limit, offset := pagination(r, 50, 200)

	users, err := h.Users.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// CreateUser creates an actor with explicit role and capability flags
// (admin only).
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}

	var input userInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Users.Create(r.Context(), &models.User{
		Username:      input.Username,
		Email:         input.Email,
		Phone:         input.Phone,
		Position:      input.Position,
		Role:          input.Role,
		IsSuperuser:   input.IsSuperuser,
		CanSoftDelete: input.CanSoftDelete,
	}, input.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// UpdateUser rewrites an actor's profile, role, and flags (admin only).
// Username is immutable; the password changes only when one is supplied.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var input userInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Users.GetByID(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}

	user, err := h.Users.Update(r.Context(), &models.User{
		ID:            id,
		Email:         input.Email,
		Phone:         input.Phone,
		Position:      input.Position,
		Role:          input.Role,
		IsSuperuser:   input.IsSuperuser,
		CanSoftDelete: input.CanSoftDelete,
	}, input.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
