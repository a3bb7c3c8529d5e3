// Package http provides HTTP handlers for account management and the
// authenticated roster API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/parshpawar/ezoCodingTask/internal/middleware"
	"github.com/parshpawar/ezoCodingTask/internal/models"
	"github.com/parshpawar/ezoCodingTask/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new account and opens a session for it.
	Register(ctx context.Context, email, password string) (*models.AuthResponse, error)
	// Login verifies the credentials and opens a session.
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	// Logout revokes the session named by the claims.
	Logout(ctx context.Context, claims *service.Claims) error
	// Resolve reports the identity behind a set of verified claims.
	Resolve(ctx context.Context, claims *service.Claims) (*models.Identity, error)
}

// AuthHandler handles HTTP requests for sign-up, sign-in, sign-out and
// session lookup.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// Register handles sign-up requests.
// It expects a JSON body with non-empty "email" and "password" fields.
// On success it responds 201 with the issued token and identity.
// Validation failures map to 400, a taken email to 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	resp, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			http.Error(w, "email already in use", http.StatusConflict)
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
			http.Error(w, "invalid credentials format", http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// Login handles sign-in requests.
// It expects a JSON body with "email" and "password" fields.
// On success it responds 200 with the issued token and identity.
// Wrong credentials map to 401, throttled attempts to 429.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	resp, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
		case errors.Is(err, service.ErrRateLimited):
			http.Error(w, "too many attempts", http.StatusTooManyRequests)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Logout revokes the caller's session. Responds 204 on success; a
// failure to revoke is reported as 500 so the client can surface it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.AuthService.Logout(r.Context(), claims); err != nil {
		http.Error(w, "failed to revoke session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the identity behind the caller's token. Clients call
// it on startup to decide whether a saved token is still good.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	identity, err := h.AuthService.Resolve(r.Context(), claims)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			http.Error(w, "session revoked", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(identity)
}
