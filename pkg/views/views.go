// Package views turns upstream entities into the JSON view-models the browser renders.
// Labels, badges and offered actions come from the workflow package; nothing here
// decides a transition.
package views

import (
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
)

// NavItem is one entry of the top navigation.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Navigation returns the entries the identity may see: Home for everyone, Admin for
// ADMIN, Umbrella Agreements for ADMIN and BACK_OFFICE. A nil identity sees nothing.
func Navigation(identity *auth.Identity) []NavItem {
	if identity == nil {
		return []NavItem{}
	}
	items := []NavItem{{Label: "Home", Path: "/"}}
	if identity.IsAdmin() {
		items = append(items, NavItem{Label: "Admin", Path: "/admin"})
	}
	if identity.HasRole(models.RoleAdmin) || identity.HasRole(models.RoleBackOffice) {
		items = append(items, NavItem{Label: "Umbrella Agreements", Path: "/umbrella-agreements"})
	}
	return items
}

// SessionView is the signed-in state returned by login and /me.
type SessionView struct {
	Authenticated bool           `json:"authenticated"`
	User          *auth.Identity `json:"user,omitempty"`
	Navigation    []NavItem      `json:"navigation"`
}

// Session builds the session view for identity, which may be nil.
func Session(identity *auth.Identity) SessionView {
	return SessionView{
		Authenticated: identity != nil,
		User:          identity,
		Navigation:    Navigation(identity),
	}
}

// Pagination describes the page being shown.
type Pagination struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	HasPrevious   bool  `json:"hasPrevious"`
	HasNext       bool  `json:"hasNext"`
}

func newPagination(page, size, totalPages int, total int64) Pagination {
	return Pagination{
		Page:          page,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: total,
		HasPrevious:   page > 0,
		HasNext:       page+1 < totalPages,
	}
}
