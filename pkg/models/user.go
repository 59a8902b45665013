// Package models contains the HirePay domain types mirrored by the console.
// The upstream API owns every value here; the console never persists them.
package models

import (
	"slices"

	"github.com/justresults/hirepay-console/pkg/jsonutil"
)

// Role is a HirePay role. A user may hold several.
type Role string

// Role constants.
const (
	RoleAdmin       Role = "ADMIN"
	RoleBackOffice  Role = "BACK_OFFICE"
	RoleFrontOffice Role = "FRONT_OFFICE"
)

// ValidRoles contains all valid role values.
var ValidRoles = []Role{RoleAdmin, RoleBackOffice, RoleFrontOffice}

// IsValidRole checks if the given role is valid.
func IsValidRole(role Role) bool {
	return slices.Contains(ValidRoles, role)
}

// User is a HirePay account as returned by the user listing.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Designation string `json:"designation"`
	Roles       []Role `json:"roles"`
}

// UserInfo is the user reference embedded in scopes.
type UserInfo struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Designation string `json:"designation"`
}

// FrontOfficeUser is the narrower user shape returned by /api/users/front-office.
// The id arrives as a string or a number depending on the upstream serializer.
type FrontOfficeUser struct {
	ID          jsonutil.FlexibleID `json:"id"`
	Email       string              `json:"email"`
	FullName    string              `json:"fullName,omitempty"`
	Designation string              `json:"designation"`
	CreatedAt   string              `json:"createdAt,omitempty"`
}

// DisplayName returns the full name, or the email when no name is on record.
func (u FrontOfficeUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// Page is the upstream pagination envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// LoginRequest carries credentials for login and admin bootstrap.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the upstream login result.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest creates a user through the admin endpoint.
type CreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	Designation string `json:"designation"`
	Roles       []Role `json:"roles"`
}
