// Package auth decodes the HirePay bearer token into a display identity and keeps the
// token in a per-browser session. Nothing here verifies signatures: the upstream API
// checks every token it receives, and decoded roles only drive what the console shows.
package auth

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/justresults/hirepay-console/pkg/jsonutil"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/workflow"
)

// Claims is the payload of a HirePay token. Subject holds the email.
type Claims struct {
	jwt.RegisteredClaims
	UserID      json.RawMessage `json:"userId,omitempty"` // number or numeric string
	FullName    string          `json:"fullName,omitempty"`
	Designation string          `json:"designation,omitempty"`
	Roles       []string        `json:"roles,omitempty"`
}

// Identity is the active user as shown by the console.
type Identity struct {
	ID          int64         `json:"id"`
	Email       string        `json:"email"`
	FullName    string        `json:"fullName"`
	Designation string        `json:"designation"`
	Roles       []models.Role `json:"roles"`
}

var parser = jwt.NewParser()

// DecodeIdentity reads the identity from a compact token without verifying it.
// A malformed token, bad base64 or bad JSON yields nil; the caller treats that as logged out.
func DecodeIdentity(token string) *Identity {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}

	identity := &Identity{
		ID:          jsonutil.FlexibleInt64(claims.UserID),
		Email:       claims.Subject,
		FullName:    claims.FullName,
		Designation: claims.Designation,
		Roles:       make([]models.Role, 0, len(claims.Roles)),
	}
	if identity.FullName == "" {
		identity.FullName = claims.Subject
	}
	for _, r := range claims.Roles {
		role := models.Role(r)
		if !slices.Contains(identity.Roles, role) {
			identity.Roles = append(identity.Roles, role)
		}
	}

	return identity
}

// HasRole reports whether the identity carries role.
func (i *Identity) HasRole(role models.Role) bool {
	return i != nil && slices.Contains(i.Roles, role)
}

// IsAdmin reports whether the identity is an administrator.
func (i *Identity) IsAdmin() bool {
	return i.HasRole(models.RoleAdmin)
}

// IsBackOffice reports whether the identity reviews and routes work. Admins count as back office.
func (i *Identity) IsBackOffice() bool {
	return i.HasRole(models.RoleBackOffice) || i.IsAdmin()
}

// IsFrontOffice reports whether the identity holds the FRONT_OFFICE role.
func (i *Identity) IsFrontOffice() bool {
	return i.HasRole(models.RoleFrontOffice)
}

// Viewer returns the role group used to render workflow rows.
func (i *Identity) Viewer() workflow.Viewer {
	if i.IsBackOffice() {
		return workflow.BackOfficeViewer
	}
	return workflow.FrontOfficeViewer
}
