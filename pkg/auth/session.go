package auth

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// SessionName is the name of the console session cookie.
const SessionName = "hirepay-session"

// Session value keys.
const (
	sessionKeyToken     = "token"
	sessionKeySessionID = "sid"
)

// TokenStore owns the bearer token between browser requests.
// Load returns an empty token and no error when there is no session.
type TokenStore interface {
	Load(r *http.Request) (string, error)
	Save(w http.ResponseWriter, r *http.Request, token string) error
	Clear(w http.ResponseWriter, r *http.Request) error
	// Kind names the backing store for logs.
	Kind() string
}

// NewCookieStore builds the gorilla cookie store shared by both token stores.
//
// The secret can be any passphrase. It is SHA-256 hashed into the signing key, and a
// second derivation gives the AES key, so the token is never readable in the browser.
// It must be consistent across restarts and replicas.
//
// Security settings:
// - HttpOnly: true (inaccessible to JavaScript)
// - Secure: derived from the base URL
// - SameSite: Strict (prevents CSRF)
func NewCookieStore(secret string, maxAge time.Duration, settings CookieSettings) *sessions.CookieStore {
	hashKey := sha256.Sum256([]byte(secret))
	blockKey := sha256.Sum256([]byte("hirepay-console/cookie-encryption:" + secret))

	store := sessions.NewCookieStore(hashKey[:], blockKey[:])
	store.MaxAge(int(maxAge.Seconds()))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   settings.Domain,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   settings.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	return store
}

// CookieTokenStore keeps the token in the encrypted session cookie itself.
type CookieTokenStore struct {
	cookies *sessions.CookieStore
}

var _ TokenStore = (*CookieTokenStore)(nil)

// NewCookieTokenStore creates a cookie-backed token store.
func NewCookieTokenStore(cookies *sessions.CookieStore) *CookieTokenStore {
	return &CookieTokenStore{cookies: cookies}
}

func (s *CookieTokenStore) Kind() string { return "cookie" }

// Load returns the token from the session cookie.
func (s *CookieTokenStore) Load(r *http.Request) (string, error) {
	session, err := s.cookies.Get(r, SessionName)
	if err != nil {
		return "", fmt.Errorf("failed to read session cookie: %w", err)
	}
	token, _ := session.Values[sessionKeyToken].(string)
	return token, nil
}

// Save writes the token into a fresh session cookie. A stale cookie is overwritten.
func (s *CookieTokenStore) Save(w http.ResponseWriter, r *http.Request, token string) error {
	session := newSession(s.cookies)
	session.Values[sessionKeyToken] = token
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session cookie: %w", err)
	}
	return nil
}

// Clear expires the session cookie.
func (s *CookieTokenStore) Clear(w http.ResponseWriter, r *http.Request) error {
	return expireSession(s.cookies, w, r)
}

func newSession(cookies *sessions.CookieStore) *sessions.Session {
	session := sessions.NewSession(cookies, SessionName)
	opts := *cookies.Options
	session.Options = &opts
	return session
}

func expireSession(cookies *sessions.CookieStore, w http.ResponseWriter, r *http.Request) error {
	session := newSession(cookies)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session cookie: %w", err)
	}
	return nil
}
