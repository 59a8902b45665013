package models

// ScopeStatus is the lifecycle status of a scope.
type ScopeStatus string

// ScopeStatus constants.
const (
	ScopeDraft            ScopeStatus = "DRAFT"
	ScopeInProgress       ScopeStatus = "IN_PROGRESS"
	ScopeUnderReview      ScopeStatus = "UNDER_REVIEW"
	ScopeApproved         ScopeStatus = "APPROVED"
	ScopeRejected         ScopeStatus = "REJECTED"
	ScopeChangesRequested ScopeStatus = "CHANGES_REQUESTED"
	ScopeCompleted        ScopeStatus = "COMPLETED"
)

// ScopeStatuses lists every known scope status.
var ScopeStatuses = []ScopeStatus{
	ScopeDraft,
	ScopeInProgress,
	ScopeUnderReview,
	ScopeApproved,
	ScopeRejected,
	ScopeChangesRequested,
	ScopeCompleted,
}

// Scope is an assignable unit of project work.
type Scope struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Status       ScopeStatus `json:"status"`
	AssignedTo   UserInfo    `json:"assignedTo"`
	AssignedBy   UserInfo    `json:"assignedBy"`
	ReviewedBy   *UserInfo   `json:"reviewedBy,omitempty"`
	Template     string      `json:"template,omitempty"`
	Objectives   string      `json:"objectives,omitempty"`
	Deliverables string      `json:"deliverables,omitempty"`
	Timeline     string      `json:"timeline,omitempty"`
	Requirements string      `json:"requirements,omitempty"`
	Constraints  string      `json:"constraints,omitempty"`
	ReviewNotes  string      `json:"reviewNotes,omitempty"`
	DueDate      string      `json:"dueDate,omitempty"`
	ReviewedAt   string      `json:"reviewedAt,omitempty"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

// ScopeStats are the dashboard counters computed upstream.
type ScopeStats struct {
	TotalScopes       int64 `json:"totalScopes"`
	DraftScopes       int64 `json:"draftScopes"`
	InProgressScopes  int64 `json:"inProgressScopes"`
	UnderReviewScopes int64 `json:"underReviewScopes"`
	ApprovedScopes    int64 `json:"approvedScopes"`
	RejectedScopes    int64 `json:"rejectedScopes"`
	CompletedScopes   int64 `json:"completedScopes"`
}

// ScopeDashboard is the back-office dashboard payload.
type ScopeDashboard struct {
	AllScopes        []Scope    `json:"allScopes"`
	PendingReviews   []Scope    `json:"pendingReviews"`
	MyAssignedScopes []Scope    `json:"myAssignedScopes"`
	Stats            ScopeStats `json:"stats"`
}

// CreateScopeRequest creates a scope assigned to a front-office user.
type CreateScopeRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	AssignedToUserID int64  `json:"assignedToUserId"`
	Template         string `json:"template,omitempty"`
	Objectives       string `json:"objectives,omitempty"`
	Deliverables     string `json:"deliverables,omitempty"`
	Timeline         string `json:"timeline,omitempty"`
	Requirements     string `json:"requirements,omitempty"`
	Constraints      string `json:"constraints,omitempty"`
	DueDate          string `json:"dueDate,omitempty"`
}

// UpdateScopeRequest edits the assignee-owned fields of a scope.
type UpdateScopeRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Objectives   string `json:"objectives,omitempty"`
	Deliverables string `json:"deliverables,omitempty"`
	Timeline     string `json:"timeline,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Constraints  string `json:"constraints,omitempty"`
	DueDate      string `json:"dueDate,omitempty"`
}

// ReviewScopeRequest is the outgoing review decision for a scope.
// RequestChanges is a pointer so that approve and reject omit the field entirely.
type ReviewScopeRequest struct {
	Approved       bool   `json:"approved"`
	RequestChanges *bool  `json:"requestChanges,omitempty"`
	ReviewNotes    string `json:"reviewNotes,omitempty"`
}
