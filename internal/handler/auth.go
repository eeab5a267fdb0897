package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"blueprint/internal/domain"
	"blueprint/internal/httputil"
	authSvc "blueprint/internal/service/auth"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	auth   *authSvc.Service
	logger *slog.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(auth *authSvc.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login authenticates a user and returns a bearer token.
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req authSvc.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		// A failed credential check stays generic regardless of which
		// check failed.
		if errors.Is(err, domain.ErrUnauthorized) {
			httputil.RespondError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, token)
}
