package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/workflow"
)

// ScopeTemplates are the starting points offered on the create form.
var ScopeTemplates = []string{
	"Web Development",
	"Mobile Development",
	"Consulting",
	"Design",
	"Data Analysis",
	"Custom",
}

// dueDateLayout is the form input format for due dates.
const dueDateLayout = "2006-01-02"

// ScopeAPI is the subset of the HirePay client used for scopes.
type ScopeAPI interface {
	CreateScope(ctx context.Context, req models.CreateScopeRequest) (*models.Scope, error)
	GetScope(ctx context.Context, id int64) (*models.Scope, error)
	UpdateScope(ctx context.Context, id int64, req models.UpdateScopeRequest) (*models.Scope, error)
	ReviewScope(ctx context.Context, id int64, req models.ReviewScopeRequest) (*models.Scope, error)
	SubmitScope(ctx context.Context, id int64) (*models.Scope, error)
	StartWork(ctx context.Context, id int64) (*models.Scope, error)
	Dashboard(ctx context.Context) (*models.ScopeDashboard, error)
	MyScopes(ctx context.Context) ([]models.Scope, error)
	ScopesAssignedByMe(ctx context.Context) ([]models.Scope, error)
	ScopesPendingReview(ctx context.Context) ([]models.Scope, error)
	ListFrontOfficeUsers(ctx context.Context) ([]models.FrontOfficeUser, error)
}

// DashboardData is everything the back-office scope page renders.
type DashboardData struct {
	Dashboard        *models.ScopeDashboard
	FrontOfficeUsers []models.FrontOfficeUser
}

// ScopeMutation is the result of a scope change: the scope as returned upstream and
// the viewer's list reloaded afterwards.
type ScopeMutation struct {
	Scope  *models.Scope
	Scopes []models.Scope
}

// ScopeService validates scope changes and keeps the viewer's list in step with upstream.
type ScopeService interface {
	Dashboard(ctx context.Context) (*DashboardData, error)
	Mine(ctx context.Context) ([]models.Scope, error)
	AssignedByMe(ctx context.Context) ([]models.Scope, error)
	PendingReview(ctx context.Context) ([]models.Scope, error)
	Get(ctx context.Context, id int64) (*models.Scope, error)
	List(ctx context.Context) ([]models.Scope, error)
	Templates() []string

	Create(ctx context.Context, req models.CreateScopeRequest) (*ScopeMutation, error)
	Update(ctx context.Context, id int64, req models.UpdateScopeRequest) (*ScopeMutation, error)
	StartWork(ctx context.Context, id int64) (*ScopeMutation, error)
	Submit(ctx context.Context, id int64) (*ScopeMutation, error)
	Review(ctx context.Context, id int64, decision, notes string) (*ScopeMutation, error)
}

type scopeService struct {
	api    ScopeAPI
	logger *zap.Logger
}

var _ ScopeService = (*scopeService)(nil)

// NewScopeService creates a scope service.
func NewScopeService(api ScopeAPI, logger *zap.Logger) ScopeService {
	return &scopeService{
		api:    api,
		logger: logger.Named("scope_service"),
	}
}

// Dashboard loads the dashboard and the assignable users concurrently.
func (s *scopeService) Dashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dashboard, err := s.api.Dashboard(gctx)
		if err != nil {
			return fmt.Errorf("failed to load scope dashboard: %w", err)
		}
		data.Dashboard = dashboard
		return nil
	})
	g.Go(func() error {
		users, err := s.api.ListFrontOfficeUsers(gctx)
		if err != nil {
			return fmt.Errorf("failed to load front-office users: %w", err)
		}
		data.FrontOfficeUsers = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *scopeService) Mine(ctx context.Context) ([]models.Scope, error) {
	scopes, err := s.api.MyScopes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load my scopes: %w", err)
	}
	return scopes, nil
}

func (s *scopeService) AssignedByMe(ctx context.Context) ([]models.Scope, error) {
	scopes, err := s.api.ScopesAssignedByMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned scopes: %w", err)
	}
	return scopes, nil
}

func (s *scopeService) PendingReview(ctx context.Context) ([]models.Scope, error) {
	scopes, err := s.api.ScopesPendingReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scopes pending review: %w", err)
	}
	return scopes, nil
}

func (s *scopeService) Get(ctx context.Context, id int64) (*models.Scope, error) {
	scope, err := s.api.GetScope(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load scope %d: %w", id, err)
	}
	return scope, nil
}

func (s *scopeService) Templates() []string {
	out := make([]string, len(ScopeTemplates))
	copy(out, ScopeTemplates)
	return out
}

// List returns the list the current viewer works from: every scope for back office,
// the assigned scopes for everyone else.
func (s *scopeService) List(ctx context.Context) ([]models.Scope, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, apperrors.ErrNoSession
	}
	if identity.IsBackOffice() {
		dashboard, err := s.api.Dashboard(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reload scopes: %w", err)
		}
		return dashboard.AllScopes, nil
	}
	return s.Mine(ctx)
}

func (s *scopeService) Create(ctx context.Context, req models.CreateScopeRequest) (*ScopeMutation, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		return nil, apperrors.NewValidationError("title", "Title is required")
	}
	if req.Description == "" {
		return nil, apperrors.NewValidationError("description", "Description is required")
	}
	if req.AssignedToUserID <= 0 {
		return nil, apperrors.NewValidationError("assignedToUserId", "Select a user to assign this scope to")
	}
	dueDate, err := normalizeDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	req.DueDate = dueDate

	return s.mutate(ctx, "create", 0, func() (*models.Scope, error) {
		return s.api.CreateScope(ctx, req)
	})
}

func (s *scopeService) Update(ctx context.Context, id int64, req models.UpdateScopeRequest) (*ScopeMutation, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		return nil, apperrors.NewValidationError("title", "Title is required")
	}
	if req.Description == "" {
		return nil, apperrors.NewValidationError("description", "Description is required")
	}
	dueDate, err := normalizeDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	req.DueDate = dueDate

	return s.mutate(ctx, "update", id, func() (*models.Scope, error) {
		return s.api.UpdateScope(ctx, id, req)
	})
}

func (s *scopeService) StartWork(ctx context.Context, id int64) (*ScopeMutation, error) {
	return s.mutate(ctx, "start_work", id, func() (*models.Scope, error) {
		return s.api.StartWork(ctx, id)
	})
}

func (s *scopeService) Submit(ctx context.Context, id int64) (*ScopeMutation, error) {
	return s.mutate(ctx, "submit", id, func() (*models.Scope, error) {
		return s.api.SubmitScope(ctx, id)
	})
}

func (s *scopeService) Review(ctx context.Context, id int64, decision, notes string) (*ScopeMutation, error) {
	d, err := workflow.ParseDecision(decision)
	if err != nil {
		return nil, apperrors.NewValidationError("decision", err.Error())
	}
	req, err := workflow.BuildScopeReview(d, notes)
	if err != nil {
		return nil, apperrors.NewValidationError("decision", err.Error())
	}

	return s.mutate(ctx, "review", id, func() (*models.Scope, error) {
		return s.api.ReviewScope(ctx, id, req)
	})
}

// mutate runs one upstream change and then reloads the viewer's list.
// A failed change leaves nothing to reload.
func (s *scopeService) mutate(ctx context.Context, action string, id int64, call func() (*models.Scope, error)) (*ScopeMutation, error) {
	scope, err := call()
	if err != nil {
		s.logger.Info("Scope change rejected",
			zap.String("action", action),
			zap.Int64("scope_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to %s scope: %w", strings.ReplaceAll(action, "_", " "), err)
	}

	scopes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Scope changed",
		zap.String("action", action),
		zap.Int64("scope_id", scope.ID),
		zap.String("status", string(scope.Status)))
	return &ScopeMutation{Scope: scope, Scopes: scopes}, nil
}

// normalizeDueDate turns a YYYY-MM-DD form value into an RFC 3339 UTC midnight.
// Values that already carry a time are passed through.
func normalizeDueDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if d, err := time.Parse(dueDateLayout, raw); err == nil {
		return d.UTC().Format("2006-01-02") + "T00:00:00.000Z", nil
	}
	if _, err := time.Parse(time.RFC3339, raw); err == nil {
		return raw, nil
	}
	return "", apperrors.NewValidationError("dueDate", "Due date must be YYYY-MM-DD")
}
