package views

import (
	"strings"

	"github.com/justresults/hirepay-console/pkg/models"
)

// UserRow is one user in the admin table.
type UserRow struct {
	ID          int64         `json:"id"`
	Email       string        `json:"email"`
	FullName    string        `json:"fullName"`
	Designation string        `json:"designation"`
	Roles       []models.Role `json:"roles"`
	RoleLabel   string        `json:"roleLabel"`
}

// UserTable is the paginated admin user table.
type UserTable struct {
	Users      []UserRow  `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// NewUserTable renders an upstream page of users.
func NewUserTable(page *models.Page[models.User]) UserTable {
	rows := make([]UserRow, 0, len(page.Content))
	for _, u := range page.Content {
		roles := make([]string, 0, len(u.Roles))
		for _, r := range u.Roles {
			roles = append(roles, string(r))
		}
		row := UserRow{
			ID:          u.ID,
			Email:       u.Email,
			FullName:    u.FullName,
			Designation: u.Designation,
			Roles:       u.Roles,
			RoleLabel:   strings.Join(roles, ", "),
		}
		if row.Roles == nil {
			row.Roles = []models.Role{}
		}
		rows = append(rows, row)
	}

	return UserTable{
		Users:      rows,
		Pagination: newPagination(page.Number, page.Size, page.TotalPages, page.TotalElements),
	}
}
