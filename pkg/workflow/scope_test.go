package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justresults/hirepay-console/pkg/models"
)

func TestScopePredicates(t *testing.T) {
	tests := []struct {
		status     models.ScopeStatus
		startWork  bool
		edit       bool
		submit     bool
		reviewable bool
	}{
		{models.ScopeDraft, true, true, true, false},
		{models.ScopeInProgress, false, true, true, false},
		{models.ScopeUnderReview, false, false, false, true},
		{models.ScopeApproved, false, false, false, false},
		{models.ScopeRejected, false, false, false, false},
		{models.ScopeChangesRequested, false, true, true, true},
		{models.ScopeCompleted, false, false, false, false},
		{models.ScopeStatus("ON_HOLD"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.startWork, CanStartWork(tt.status), "CanStartWork")
			assert.Equal(t, tt.edit, CanEdit(tt.status), "CanEdit")
			assert.Equal(t, tt.submit, CanSubmitForReview(tt.status), "CanSubmitForReview")
			assert.Equal(t, tt.reviewable, IsScopeReviewable(tt.status), "IsScopeReviewable")
		})
	}
}

func TestCanStartWork_OnlyDraft(t *testing.T) {
	for _, s := range models.ScopeStatuses {
		assert.Equal(t, s == models.ScopeDraft, CanStartWork(s), string(s))
	}
}

func TestScopeBadge(t *testing.T) {
	assert.Equal(t, Badge{Label: "IN PROGRESS", Class: "zforms__badge--submitted"}, ScopeBadge(models.ScopeInProgress))
	assert.Equal(t, Badge{Label: "CHANGES REQUESTED", Class: "zforms__badge--warning"}, ScopeBadge(models.ScopeChangesRequested))
	assert.Equal(t, Badge{Label: "DRAFT", Class: "zforms__badge--draft"}, ScopeBadge(models.ScopeDraft))

	unknown := ScopeBadge(models.ScopeStatus("ON_HOLD"))
	assert.Equal(t, "ON_HOLD", unknown.Label)
	assert.Equal(t, GenericBadgeClass, unknown.Class)
}

func TestScopeActions(t *testing.T) {
	t.Run("assignee on draft", func(t *testing.T) {
		actions := ScopeActions(models.ScopeDraft, FrontOfficeViewer, true)
		assert.Equal(t, []ActionOption{
			{Action: ActionStartWork, Label: "Start Work"},
			{Action: ActionEdit, Label: "Edit"},
			{Action: ActionSubmitForReview, Label: "Submit for Review"},
		}, actions)
	})

	t.Run("assignee with changes requested resubmits", func(t *testing.T) {
		actions := ScopeActions(models.ScopeChangesRequested, FrontOfficeViewer, true)
		assert.Contains(t, actions, ActionOption{Action: ActionSubmitForReview, Label: "Resubmit for Review"})
		assert.False(t, HasAction(actions, ActionStartWork))
		assert.False(t, HasAction(actions, ActionReview))
	})

	t.Run("under review offers nothing to the assignee", func(t *testing.T) {
		assert.Empty(t, ScopeActions(models.ScopeUnderReview, FrontOfficeViewer, true))
	})

	t.Run("under review offers review to back office", func(t *testing.T) {
		actions := ScopeActions(models.ScopeUnderReview, BackOfficeViewer, false)
		assert.Equal(t, []ActionOption{{Action: ActionReview, Label: "Review"}}, actions)
	})

	t.Run("approved offers nothing", func(t *testing.T) {
		assert.Empty(t, ScopeActions(models.ScopeApproved, BackOfficeViewer, true))
	})
}

func TestShowsReviewNotes(t *testing.T) {
	assert.True(t, ShowsReviewNotes(models.ScopeChangesRequested))
	assert.False(t, ShowsReviewNotes(models.ScopeRejected))
}

func TestOrNotSpecified(t *testing.T) {
	assert.Equal(t, "Not specified", OrNotSpecified(""))
	assert.Equal(t, "Web Development", OrNotSpecified("Web Development"))
}
