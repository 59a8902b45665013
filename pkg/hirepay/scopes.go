package hirepay

import (
	"context"
	"net/http"
	"strconv"

	"github.com/justresults/hirepay-console/pkg/models"
)

func scopePath(id int64, suffix string) string {
	p := "/api/scopes/" + strconv.FormatInt(id, 10)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// CreateScope creates a scope.
func (c *Client) CreateScope(ctx context.Context, req models.CreateScopeRequest) (*models.Scope, error) {
	var scope models.Scope
	if err := c.doJSON(ctx, "create_scope", http.MethodPost, "/api/scopes", nil, req, &scope); err != nil {
		return nil, err
	}
	return &scope, nil
}

// GetScope fetches one scope.
func (c *Client) GetScope(ctx context.Context, id int64) (*models.Scope, error) {
	var scope models.Scope
	if err := c.doJSON(ctx, "get_scope", http.MethodGet, scopePath(id, ""), nil, nil, &scope); err != nil {
		return nil, err
	}
	return &scope, nil
}

// UpdateScope edits a scope.
func (c *Client) UpdateScope(ctx context.Context, id int64, req models.UpdateScopeRequest) (*models.Scope, error) {
	var scope models.Scope
	if err := c.doJSON(ctx, "update_scope", http.MethodPut, scopePath(id, ""), nil, req, &scope); err != nil {
		return nil, err
	}
	return &scope, nil
}

// ReviewScope records a review decision.
func (c *Client) ReviewScope(ctx context.Context, id int64, req models.ReviewScopeRequest) (*models.Scope, error) {
	var scope models.Scope
	if err := c.doJSON(ctx, "review_scope", http.MethodPost, scopePath(id, "review"), nil, req, &scope); err != nil {
		return nil, err
	}
	return &scope, nil
}

// SubmitScope submits a scope for review.
func (c *Client) SubmitScope(ctx context.Context, id int64) (*models.Scope, error) {
	var scope models.Scope
	if err := c.doJSON(ctx, "submit_scope", http.MethodPost, scopePath(id, "submit"), nil, nil, &scope); err != nil {
		return nil, err
	}
	return &scope, nil
}

// StartWork moves a draft scope into progress.
func (c *Client) StartWork(ctx context.Context, id int64) (*models.Scope, error) {
	var scope models.Scope
	if err := c.doJSON(ctx, "start_work", http.MethodPost, scopePath(id, "start-work"), nil, nil, &scope); err != nil {
		return nil, err
	}
	return &scope, nil
}

// Dashboard returns the back-office dashboard.
func (c *Client) Dashboard(ctx context.Context) (*models.ScopeDashboard, error) {
	var dashboard models.ScopeDashboard
	if err := c.doJSON(ctx, "scope_dashboard", http.MethodGet, "/api/scopes/dashboard", nil, nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// MyScopes returns scopes assigned to the caller.
func (c *Client) MyScopes(ctx context.Context) ([]models.Scope, error) {
	return c.listScopes(ctx, "my_scopes", "/api/scopes/my-scopes")
}

// ScopesAssignedByMe returns scopes the caller assigned.
func (c *Client) ScopesAssignedByMe(ctx context.Context) ([]models.Scope, error) {
	return c.listScopes(ctx, "scopes_assigned_by_me", "/api/scopes/assigned-by-me")
}

// ScopesPendingReview returns scopes waiting for a review decision.
func (c *Client) ScopesPendingReview(ctx context.Context) ([]models.Scope, error) {
	return c.listScopes(ctx, "scopes_pending_review", "/api/scopes/pending-review")
}

func (c *Client) listScopes(ctx context.Context, op, apiPath string) ([]models.Scope, error) {
	var scopes []models.Scope
	if err := c.doJSON(ctx, op, http.MethodGet, apiPath, nil, nil, &scopes); err != nil {
		return nil, err
	}
	return scopes, nil
}
