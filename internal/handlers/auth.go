package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"luxfur/internal/middleware"
	"luxfur/internal/models"
	"luxfur/internal/services"
)

// AuthHandler handles registration and session login.
type AuthHandler struct {
	auth   *services.AuthService
	store  sessions.Store
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *services.AuthService, store sessions.Store, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, logger: logger}
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := &models.UserRegisterRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Register(req)
	if err != nil {
		var validationErrs models.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			writeValidationErrors(w, validationErrs)
		case errors.Is(err, models.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, "email is already registered")
		default:
			h.logger.Error("registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and binds the user to the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Authenticate(req.Email, req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.logger.Error("session error", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	session.Values[middleware.UserSessionKey] = user.ID
	if err := session.Save(r, w); err != nil {
		h.logger.Error("failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout drops the user binding from the session. The cart survives logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.logger.Error("session error", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	delete(session.Values, middleware.UserSessionKey)
	if err := session.Save(r, w); err != nil {
		h.logger.Error("failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
