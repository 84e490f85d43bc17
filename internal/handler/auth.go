package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/qrkeep/qrkeep/internal/auth"
	"github.com/qrkeep/qrkeep/internal/handler/dto"
	"github.com/qrkeep/qrkeep/internal/model"
	"github.com/qrkeep/qrkeep/internal/service"
)

// CookieConfig describes how the session cookie is written.
// Development relaxes Secure/SameSite for plain-HTTP localhost; deployed
// HTTPS uses SameSite=None with Secure so the SPA can send credentials
// cross-origin.
type CookieConfig struct {
	Name     string
	MaxAge   int // seconds
	Secure   bool
	SameSite http.SameSite
}

// AuthHandler handles session endpoints.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
	cookie CookieConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
		cookie: cookie,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, token, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	h.setSessionCookie(w, token)
	writeAuthResponse(w, http.StatusCreated, user, token)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	h.setSessionCookie(w, token)
	writeAuthResponse(w, http.StatusOK, user, token)
}

// Logout handles POST /api/auth/logout.
// Clears the session cookie; idempotent even without a session. The
// token itself stays cryptographically valid until natural expiry -
// stateless tokens have no revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})

	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}

// Me handles GET /api/auth/me.
// Re-reads the account so a deleted user is caught rather than echoing
// stale token claims.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserResponse{User: user.Public()})
}

// ForgotPassword handles POST /api/auth/forgot-password.
// Deliberately unimplemented so the client can show an honest
// "not available yet" state.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "password recovery is not implemented yet")
}

// setSessionCookie writes the token as an http-only session cookie.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookie.MaxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})
}

// handleServiceError maps auth service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "all fields are required")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "incorrect email or password")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeAuthResponse writes the shared register/login success body.
func writeAuthResponse(w http.ResponseWriter, status int, user *model.User, token string) {
	writeJSON(w, status, dto.AuthResponse{
		User:  user.Public(),
		Token: token,
	})
}
