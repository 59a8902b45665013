// Package testhelpers provides utilities for testing hirepay-console components.
package testhelpers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// TestUser describes the identity carried by a generated token.
type TestUser struct {
	Email       string
	UserID      any // number or string, as the upstream may emit either
	FullName    string
	Designation string
	Roles       []string
}

// GenerateTestJWT creates an unsigned token (alg: none) with the claims the HirePay
// API issues. The console never verifies signatures, so these decode like real tokens.
func GenerateTestJWT(u TestUser) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	claims := map[string]any{"sub": u.Email}
	if u.UserID != nil {
		claims["userId"] = u.UserID
	}
	if u.FullName != "" {
		claims["fullName"] = u.FullName
	}
	if u.Designation != "" {
		claims["designation"] = u.Designation
	}
	if u.Roles != nil {
		claims["roles"] = u.Roles
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		panic(fmt.Sprintf("testhelpers: marshal claims: %v", err))
	}

	return fmt.Sprintf("%s.%s.", header, base64.RawURLEncoding.EncodeToString(payload))
}

// AdminToken returns a token for an ADMIN user.
func AdminToken() string {
	return GenerateTestJWT(TestUser{
		Email:       "admin@hirepay.io",
		UserID:      1,
		FullName:    "Avery Admin",
		Designation: "Operations Lead",
		Roles:       []string{"ADMIN"},
	})
}

// BackOfficeToken returns a token for a BACK_OFFICE user.
func BackOfficeToken() string {
	return GenerateTestJWT(TestUser{
		Email:       "bo@hirepay.io",
		UserID:      2,
		FullName:    "Blake Backoffice",
		Designation: "Recruiter",
		Roles:       []string{"BACK_OFFICE"},
	})
}

// FrontOfficeToken returns a token for a FRONT_OFFICE user.
func FrontOfficeToken() string {
	return GenerateTestJWT(TestUser{
		Email:       "fo@hirepay.io",
		UserID:      7,
		FullName:    "Frankie Frontoffice",
		Designation: "Contractor",
		Roles:       []string{"FRONT_OFFICE"},
	})
}

// GenerateTestJWTWithBearer returns token with "Bearer " prefix for Authorization header.
func GenerateTestJWTWithBearer(u TestUser) string {
	return "Bearer " + GenerateTestJWT(u)
}
