package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/services"
	"github.com/justresults/hirepay-console/pkg/views"
)

// CredentialsRequest is the body of login and admin bootstrap.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionHandler signs users in and out.
type SessionHandler struct {
	sessions services.SessionService
	store    auth.TokenStore
	logger   *zap.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(sessions services.SessionService, store auth.TokenStore, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		store:    store,
		logger:   logger,
	}
}

// RegisterRoutes registers the session routes. throttle guards the credential endpoints.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux, sessionMiddleware *auth.SessionMiddleware, throttle func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/session/login", throttle(h.Login))
	mux.HandleFunc("POST /api/session/bootstrap-admin", throttle(h.BootstrapAdmin))
	mux.HandleFunc("POST /api/session/logout", h.Logout)
	mux.HandleFunc("GET /api/session/me", sessionMiddleware.Require(h.Me))
}

// Login handles POST /api/session/login.
// The token is stored only after the upstream accepted the credentials and the token decoded.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := h.sessions.Login(r.Context(), req.Email, req.Password, auth.ClientIP(r))
	if err != nil {
		WriteServiceError(w, h.logger, "login", err)
		return
	}

	if err := h.store.Save(w, r, result.Token); err != nil {
		h.logger.Error("Failed to store session", zap.String("store", h.store.Kind()), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "session_failed", "Failed to start session")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, views.Session(result.Identity))
}

// BootstrapAdmin handles POST /api/session/bootstrap-admin.
func (h *SessionHandler) BootstrapAdmin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.sessions.BootstrapAdmin(r.Context(), req.Email, req.Password); err != nil {
		WriteServiceError(w, h.logger, "bootstrap_admin", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ApiResponse{Success: true, Message: "Admin bootstrap requested"})
}

// Logout handles POST /api/session/logout. Logging out without a session succeeds.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(w, r); err != nil {
		h.logger.Warn("Failed to clear session", zap.String("store", h.store.Kind()), zap.Error(err))
	}
	writeJSON(w, h.logger, http.StatusOK, views.Session(nil))
}

// Me handles GET /api/session/me.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.GetIdentity(r.Context())
	writeJSON(w, h.logger, http.StatusOK, views.Session(identity))
}
