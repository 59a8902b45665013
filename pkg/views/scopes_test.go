package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/testhelpers"
	"github.com/justresults/hirepay-console/pkg/workflow"
)

func assignee() models.UserInfo {
	return models.UserInfo{ID: 7, Email: "fo@hirepay.io", FullName: "Frankie Frontoffice"}
}

func TestNewScopeRow_AssigneeDraft(t *testing.T) {
	identity := auth.DecodeIdentity(testhelpers.FrontOfficeToken())
	row := NewScopeRow(models.Scope{ID: 1, Title: "T", Status: models.ScopeDraft, AssignedTo: assignee()}, identity)

	assert.Equal(t, "Frankie Frontoffice", row.AssignedTo)
	assert.Equal(t, workflow.NotSpecified, row.AssignedBy)
	assert.Equal(t, workflow.NotSpecified, row.DueDate)
	assert.True(t, workflow.HasAction(row.Actions, workflow.ActionStartWork))
	assert.True(t, workflow.HasAction(row.Actions, workflow.ActionEdit))
	assert.True(t, workflow.HasAction(row.Actions, workflow.ActionSubmitForReview))
	assert.False(t, workflow.HasAction(row.Actions, workflow.ActionReview))
}

func TestNewScopeRow_SubmittedScope(t *testing.T) {
	s := models.Scope{ID: 42, Status: models.ScopeUnderReview, AssignedTo: assignee()}

	fo := NewScopeRow(s, auth.DecodeIdentity(testhelpers.FrontOfficeToken()))
	assert.False(t, workflow.HasAction(fo.Actions, workflow.ActionSubmitForReview))
	assert.False(t, workflow.HasAction(fo.Actions, workflow.ActionReview))
	assert.NotNil(t, fo.Actions)

	for _, token := range []string{testhelpers.BackOfficeToken(), testhelpers.AdminToken()} {
		bo := NewScopeRow(s, auth.DecodeIdentity(token))
		assert.True(t, workflow.HasAction(bo.Actions, workflow.ActionReview))
		assert.False(t, workflow.HasAction(bo.Actions, workflow.ActionSubmitForReview))
	}
}

func TestNewScopeRow_ChangesRequested(t *testing.T) {
	identity := auth.DecodeIdentity(testhelpers.FrontOfficeToken())
	row := NewScopeRow(models.Scope{
		Status:      models.ScopeChangesRequested,
		AssignedTo:  assignee(),
		ReviewNotes: "Add milestones",
		ReviewedBy:  &models.UserInfo{Email: "bo@hirepay.io"},
	}, identity)

	assert.Equal(t, "Add milestones", row.ReviewNotes)
	assert.Equal(t, "bo@hirepay.io", row.ReviewedBy)
	assert.Equal(t, "CHANGES REQUESTED", row.Badge.Label)

	var submit workflow.ActionOption
	for _, a := range row.Actions {
		if a.Action == workflow.ActionSubmitForReview {
			submit = a
		}
	}
	assert.Equal(t, "Resubmit for Review", submit.Label)

	approved := NewScopeRow(models.Scope{Status: models.ScopeApproved, ReviewNotes: "ok"}, identity)
	assert.Empty(t, approved.ReviewNotes)
}

func TestScopeDashboard(t *testing.T) {
	identity := auth.DecodeIdentity(testhelpers.BackOfficeToken())
	view := ScopeDashboard(&models.ScopeDashboard{
		AllScopes:      []models.Scope{{ID: 1}, {ID: 2}},
		PendingReviews: []models.Scope{{ID: 2, Status: models.ScopeUnderReview}},
		Stats:          models.ScopeStats{TotalScopes: 2},
	}, []models.FrontOfficeUser{{ID: "7", Email: "fo@hirepay.io"}}, []string{"Custom"}, identity)

	assert.Len(t, view.AllScopes, 2)
	require.Len(t, view.PendingReviews, 1)
	assert.True(t, workflow.HasAction(view.PendingReviews[0].Actions, workflow.ActionReview))
	assert.Empty(t, view.MyAssignedScopes)
	assert.NotNil(t, view.MyAssignedScopes)
	assert.Equal(t, []UserOption{{ID: "7", Label: "fo@hirepay.io", Email: "fo@hirepay.io"}}, view.Assignees)
	assert.Equal(t, int64(2), view.Stats.TotalScopes)
}
