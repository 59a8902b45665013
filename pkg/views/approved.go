package views

import (
	"sort"
	"strings"

	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/workflow"
)

// DefaultBrowserPageSize is the number of users per approved-documents page.
const DefaultBrowserPageSize = 20

// BrowserDocument is one finalized document under a user.
type BrowserDocument struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// BrowserUser is a front-office user with their finalized documents. The email is the id.
type BrowserUser struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Documents []BrowserDocument `json:"documents"`
}

// ApprovedBrowser is one page of the approved-documents browser.
type ApprovedBrowser struct {
	Users      []BrowserUser `json:"users"`
	Search     string        `json:"search"`
	Pagination Pagination    `json:"pagination"`
}

// NewApprovedBrowser groups docs by front-office user, sorts users by name, filters by a
// case-insensitive name search and returns the requested page.
func NewApprovedBrowser(docs []models.Document, search string, page, size int) ApprovedBrowser {
	if size <= 0 {
		size = DefaultBrowserPageSize
	}
	if page < 0 {
		page = 0
	}
	search = strings.TrimSpace(search)

	byEmail := make(map[string]*BrowserUser)
	var order []*BrowserUser
	for _, d := range docs {
		email := d.FrontOfficeUserEmail
		user, ok := byEmail[email]
		if !ok {
			user = &BrowserUser{ID: email, Email: email, Documents: []BrowserDocument{}}
			byEmail[email] = user
			order = append(order, user)
		}
		if user.Name == "" && d.FrontOfficeUserName != "" {
			user.Name = d.FrontOfficeUserName
		}
		user.Documents = append(user.Documents, browserDocument(d))
	}

	needle := strings.ToLower(search)
	users := make([]BrowserUser, 0, len(order))
	for _, u := range order {
		if u.Name == "" {
			u.Name = u.Email
		}
		if needle != "" && !strings.Contains(strings.ToLower(u.Name), needle) {
			continue
		}
		users = append(users, *u)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})

	total := len(users)
	totalPages := (total + size - 1) / size
	// Comparing pages before multiplying keeps a huge page number from overflowing.
	start := total
	if page < totalPages {
		start = page * size
	}
	end := start + size
	if end > total {
		end = total
	}

	return ApprovedBrowser{
		Users:      users[start:end],
		Search:     search,
		Pagination: newPagination(page, size, totalPages, int64(total)),
	}
}

func browserDocument(d models.Document) BrowserDocument {
	updatedAt := d.SignedAt
	if updatedAt == "" {
		updatedAt = d.SentAt
	}
	return BrowserDocument{
		ID:        d.DocumentID,
		Title:     workflow.TypeLabel(d.Type()),
		Category:  workflow.TypeCategory(d.Type()),
		Status:    workflow.BrowserStatus(d.Status),
		UpdatedAt: updatedAt,
	}
}
