package views

import (
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/workflow"
)

// ScopeRow is one scope as rendered in a list or detail view.
type ScopeRow struct {
	ID           int64                   `json:"id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Status       models.ScopeStatus      `json:"status"`
	Badge        workflow.Badge          `json:"badge"`
	AssignedTo   string                  `json:"assignedTo"`
	AssignedBy   string                  `json:"assignedBy"`
	Template     string                  `json:"template"`
	Objectives   string                  `json:"objectives"`
	Deliverables string                  `json:"deliverables"`
	Timeline     string                  `json:"timeline"`
	Requirements string                  `json:"requirements"`
	Constraints  string                  `json:"constraints"`
	DueDate      string                  `json:"dueDate"`
	ReviewNotes  string                  `json:"reviewNotes,omitempty"`
	ReviewedBy   string                  `json:"reviewedBy,omitempty"`
	CreatedAt    string                  `json:"createdAt"`
	UpdatedAt    string                  `json:"updatedAt"`
	Actions      []workflow.ActionOption `json:"actions"`
}

func userName(u models.UserInfo) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// NewScopeRow renders s for identity. Review notes are only surfaced while changes
// are requested.
func NewScopeRow(s models.Scope, identity *auth.Identity) ScopeRow {
	isAssignee := identity != nil && s.AssignedTo.ID != 0 && s.AssignedTo.ID == identity.ID

	row := ScopeRow{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Status:       s.Status,
		Badge:        workflow.ScopeBadge(s.Status),
		AssignedTo:   workflow.OrNotSpecified(userName(s.AssignedTo)),
		AssignedBy:   workflow.OrNotSpecified(userName(s.AssignedBy)),
		Template:     workflow.OrNotSpecified(s.Template),
		Objectives:   workflow.OrNotSpecified(s.Objectives),
		Deliverables: workflow.OrNotSpecified(s.Deliverables),
		Timeline:     workflow.OrNotSpecified(s.Timeline),
		Requirements: workflow.OrNotSpecified(s.Requirements),
		Constraints:  workflow.OrNotSpecified(s.Constraints),
		DueDate:      workflow.OrNotSpecified(s.DueDate),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Actions:      workflow.ScopeActions(s.Status, identity.Viewer(), isAssignee),
	}
	if workflow.ShowsReviewNotes(s.Status) {
		row.ReviewNotes = s.ReviewNotes
	}
	if s.ReviewedBy != nil {
		row.ReviewedBy = userName(*s.ReviewedBy)
	}
	if row.Actions == nil {
		row.Actions = []workflow.ActionOption{}
	}
	return row
}

// ScopeRows renders every scope for identity.
func ScopeRows(scopes []models.Scope, identity *auth.Identity) []ScopeRow {
	rows := make([]ScopeRow, 0, len(scopes))
	for _, s := range scopes {
		rows = append(rows, NewScopeRow(s, identity))
	}
	return rows
}

// UserOption is a selectable assignee or recipient.
type UserOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Email string `json:"email"`
}

// UserOptions renders front-office users for a select box.
func UserOptions(users []models.FrontOfficeUser) []UserOption {
	options := make([]UserOption, 0, len(users))
	for _, u := range users {
		options = append(options, UserOption{ID: u.ID.String(), Label: u.DisplayName(), Email: u.Email})
	}
	return options
}

// ScopeDashboardView is the back-office scope page.
type ScopeDashboardView struct {
	Stats            models.ScopeStats `json:"stats"`
	AllScopes        []ScopeRow        `json:"allScopes"`
	PendingReviews   []ScopeRow        `json:"pendingReviews"`
	MyAssignedScopes []ScopeRow        `json:"myAssignedScopes"`
	Assignees        []UserOption      `json:"assignees"`
	Templates        []string          `json:"templates"`
}

// ScopeDashboard renders the dashboard for identity.
func ScopeDashboard(d *models.ScopeDashboard, users []models.FrontOfficeUser, templates []string, identity *auth.Identity) ScopeDashboardView {
	return ScopeDashboardView{
		Stats:            d.Stats,
		AllScopes:        ScopeRows(d.AllScopes, identity),
		PendingReviews:   ScopeRows(d.PendingReviews, identity),
		MyAssignedScopes: ScopeRows(d.MyAssignedScopes, identity),
		Assignees:        UserOptions(users),
		Templates:        templates,
	}
}
