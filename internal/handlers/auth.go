package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guardsys/guardsys/internal/models"
	"github.com/guardsys/guardsys/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues JWTs.
type AuthHandler struct {
	Users       *repo.UserRepo
	Secret      []byte
	ExpireHours int
}

// Register creates an account with the RESPONSIBLE role and no capability
// flags; an admin grants more through the user endpoints. Registering an
// existing username returns the existing user (idempotent).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if input.Username == "" {
		JSONError(w, "username is required", http.StatusBadRequest)
		return
	}

	user, err := h.Users.Create(r.Context(), &models.User{
		Username: input.Username,
		Email:    input.Email,
		Role:     models.RoleResponsible,
	}, input.Password)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateName) {
			existing, getErr := h.Users.GetByUsername(r.Context(), input.Username)
			if getErr != nil {
				JSONError(w, "failed to create user", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(existing)
			return
		}
		slog.Error("register: create user", "err", err)
		JSONError(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// Login verifies credentials and returns a JWT. When the account has a
// password hash, the password is required and checked with bcrypt.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), input.Username)
	if err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if user.PasswordHash != "" {
		if input.Password == "" {
			JSONError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			JSONError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
	}

	expire := h.ExpireHours
	if expire <= 0 {
		expire = 24
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Duration(expire) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": signed,
		"user":  user,
	})
}
