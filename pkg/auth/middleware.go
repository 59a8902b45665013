package auth

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/audit"
	"github.com/justresults/hirepay-console/pkg/logging"
)

// SessionMiddleware threads the stored session through the request context.
type SessionMiddleware struct {
	store   TokenStore
	auditor *audit.SecurityAuditor
	logger  *zap.Logger
}

// NewSessionMiddleware creates session middleware over store.
func NewSessionMiddleware(store TokenStore, auditor *audit.SecurityAuditor, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		store:   store,
		auditor: auditor,
		logger:  logger.Named("session"),
	}
}

// Load reads the stored token and, when it decodes, puts it and the identity in the
// request context. An unreadable session or undecodable token is cleared and the
// request continues logged out.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := m.store.Load(r)
		if err != nil {
			m.logger.Debug("Discarding unreadable session",
				zap.String("store", m.store.Kind()),
				zap.String("error", logging.SanitizeError(err)))
			m.clear(w, r)
			next.ServeHTTP(w, r)
			return
		}

		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity := DecodeIdentity(token)
		if identity == nil {
			m.auditor.LogUndecodableToken(ClientIP(r), m.store.Kind())
			m.clear(w, r)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), token, identity)))
	})
}

// Require rejects requests without a session with 401.
func (m *SessionMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			m.unauthorized(w, "Not logged in")
			return
		}
		next(w, r)
	}
}

func (m *SessionMiddleware) clear(w http.ResponseWriter, r *http.Request) {
	if err := m.store.Clear(w, r); err != nil {
		m.logger.Error("Failed to clear session", zap.String("error", logging.SanitizeError(err)))
	}
}

// unauthorized returns a 401 response with JSON error body.
func (m *SessionMiddleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}
