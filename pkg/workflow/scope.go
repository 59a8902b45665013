package workflow

import (
	"strings"

	"github.com/justresults/hirepay-console/pkg/models"
)

var scopeBadgeClasses = map[models.ScopeStatus]string{
	models.ScopeDraft:            "zforms__badge--draft",
	models.ScopeInProgress:       "zforms__badge--submitted",
	models.ScopeUnderReview:      "zforms__badge--review",
	models.ScopeApproved:         "zforms__badge--approved",
	models.ScopeRejected:         "zforms__badge--rejected",
	models.ScopeChangesRequested: "zforms__badge--warning",
	models.ScopeCompleted:        "zforms__badge--completed",
}

// IsKnownScopeStatus reports whether s is part of the scope taxonomy.
func IsKnownScopeStatus(s models.ScopeStatus) bool {
	_, ok := scopeBadgeClasses[s]
	return ok
}

// CanStartWork reports whether the assignee may start work.
func CanStartWork(s models.ScopeStatus) bool {
	return s == models.ScopeDraft
}

// CanEdit reports whether the assignee may edit the scope.
func CanEdit(s models.ScopeStatus) bool {
	switch s {
	case models.ScopeDraft, models.ScopeInProgress, models.ScopeChangesRequested:
		return true
	}
	return false
}

// CanSubmitForReview reports whether the assignee may submit the scope for review.
func CanSubmitForReview(s models.ScopeStatus) bool {
	return CanEdit(s)
}

// IsScopeReviewable reports whether back office may record a review decision.
func IsScopeReviewable(s models.ScopeStatus) bool {
	return s == models.ScopeUnderReview || s == models.ScopeChangesRequested
}

// SubmitLabel is the submit button text. A scope sent back with changes is resubmitted.
func SubmitLabel(s models.ScopeStatus) string {
	if s == models.ScopeChangesRequested {
		return "Resubmit for Review"
	}
	return "Submit for Review"
}

// ShowsReviewNotes reports whether the reviewer's notes belong on the assignee's row.
func ShowsReviewNotes(s models.ScopeStatus) bool {
	return s == models.ScopeChangesRequested
}

// ScopeBadge returns the badge for a scope status. Only the first underscore is
// replaced, so CHANGES_REQUESTED reads "CHANGES REQUESTED".
func ScopeBadge(s models.ScopeStatus) Badge {
	class, ok := scopeBadgeClasses[s]
	if !ok {
		return Badge{Label: string(s), Class: GenericBadgeClass}
	}
	return Badge{Label: strings.Replace(string(s), "_", " ", 1), Class: class}
}

// ScopeActions returns the actions offered on a scope row. Assignee actions are gated
// on the status; review is offered only to back-office viewers.
func ScopeActions(s models.ScopeStatus, viewer Viewer, isAssignee bool) []ActionOption {
	var actions []ActionOption
	if isAssignee {
		if CanStartWork(s) {
			actions = append(actions, ActionOption{Action: ActionStartWork, Label: "Start Work"})
		}
		if CanEdit(s) {
			actions = append(actions, ActionOption{Action: ActionEdit, Label: "Edit"})
		}
		if CanSubmitForReview(s) {
			actions = append(actions, ActionOption{Action: ActionSubmitForReview, Label: SubmitLabel(s)})
		}
	}
	if viewer.IsBackOffice() && IsScopeReviewable(s) {
		actions = append(actions, ActionOption{Action: ActionReview, Label: "Review"})
	}
	return actions
}
