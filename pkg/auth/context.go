package auth

import (
	"context"
	"net"
	"net/http"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// IdentityKey is the context key for the decoded identity.
	IdentityKey contextKey = "identity"
	// TokenKey is the context key for the raw bearer token.
	TokenKey contextKey = "token"
)

// WithSession returns a context carrying the bearer token and its decoded identity.
func WithSession(ctx context.Context, token string, identity *Identity) context.Context {
	ctx = context.WithValue(ctx, TokenKey, token)
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentity retrieves the decoded identity from the context.
func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*Identity)
	return identity, ok && identity != nil
}

// GetToken retrieves the raw bearer token from the context.
// Returns empty string and false if token is not present.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}

// ClientIP returns the host part of the request's remote address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
