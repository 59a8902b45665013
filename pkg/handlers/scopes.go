package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/jsonutil"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/services"
	"github.com/justresults/hirepay-console/pkg/views"
)

// CreateScopeBody is the create form. The assignee id comes from a select box and may
// be a string or a number.
type CreateScopeBody struct {
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	AssignedToUserID jsonutil.FlexibleID `json:"assignedToUserId"`
	Template         string              `json:"template"`
	Objectives       string              `json:"objectives"`
	Deliverables     string              `json:"deliverables"`
	Timeline         string              `json:"timeline"`
	Requirements     string              `json:"requirements"`
	Constraints      string              `json:"constraints"`
	DueDate          string              `json:"dueDate"`
}

// ReviewBody is a review decision: approve, reject or request_changes.
type ReviewBody struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

// ScopeListResponse is a list of scope rows.
type ScopeListResponse struct {
	Scopes []views.ScopeRow `json:"scopes"`
}

// ScopeMutationResponse is the changed scope and the reloaded list.
type ScopeMutationResponse struct {
	Scope  views.ScopeRow   `json:"scope"`
	Scopes []views.ScopeRow `json:"scopes"`
}

// ScopeDetailResponse is one scope with the create/edit form options.
type ScopeDetailResponse struct {
	Scope     views.ScopeRow `json:"scope"`
	Templates []string       `json:"templates"`
}

// ScopesHandler serves the scope views and forwards scope changes.
type ScopesHandler struct {
	scopeService services.ScopeService
	logger       *zap.Logger
}

// NewScopesHandler creates a scopes handler.
func NewScopesHandler(scopeService services.ScopeService, logger *zap.Logger) *ScopesHandler {
	return &ScopesHandler{
		scopeService: scopeService,
		logger:       logger,
	}
}

// RegisterRoutes registers the scope routes. Every route needs a session.
func (h *ScopesHandler) RegisterRoutes(mux *http.ServeMux, sessionMiddleware *auth.SessionMiddleware) {
	mux.HandleFunc("GET /api/scopes/dashboard", sessionMiddleware.Require(h.Dashboard))
	mux.HandleFunc("GET /api/scopes/mine", sessionMiddleware.Require(h.Mine))
	mux.HandleFunc("GET /api/scopes/assigned-by-me", sessionMiddleware.Require(h.AssignedByMe))
	mux.HandleFunc("GET /api/scopes/pending-review", sessionMiddleware.Require(h.PendingReview))
	mux.HandleFunc("GET /api/scopes/{id}", sessionMiddleware.Require(h.Get))
	mux.HandleFunc("POST /api/scopes", sessionMiddleware.Require(h.Create))
	mux.HandleFunc("PUT /api/scopes/{id}", sessionMiddleware.Require(h.Update))
	mux.HandleFunc("POST /api/scopes/{id}/start-work", sessionMiddleware.Require(h.StartWork))
	mux.HandleFunc("POST /api/scopes/{id}/submit", sessionMiddleware.Require(h.Submit))
	mux.HandleFunc("POST /api/scopes/{id}/review", sessionMiddleware.Require(h.Review))
}

// Dashboard handles GET /api/scopes/dashboard
func (h *ScopesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.scopeService.Dashboard(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, "scope_dashboard", err)
		return
	}

	identity, _ := auth.GetIdentity(r.Context())
	writeJSON(w, h.logger, http.StatusOK,
		views.ScopeDashboard(data.Dashboard, data.FrontOfficeUsers, h.scopeService.Templates(), identity))
}

// Mine handles GET /api/scopes/mine
func (h *ScopesHandler) Mine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "my_scopes", h.scopeService.Mine)
}

// AssignedByMe handles GET /api/scopes/assigned-by-me
func (h *ScopesHandler) AssignedByMe(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "scopes_assigned_by_me", h.scopeService.AssignedByMe)
}

// PendingReview handles GET /api/scopes/pending-review
func (h *ScopesHandler) PendingReview(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "scopes_pending_review", h.scopeService.PendingReview)
}

func (h *ScopesHandler) list(w http.ResponseWriter, r *http.Request, action string, load func(ctx context.Context) ([]models.Scope, error)) {
	scopes, err := load(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, action, err)
		return
	}
	identity, _ := auth.GetIdentity(r.Context())
	writeJSON(w, h.logger, http.StatusOK, ScopeListResponse{Scopes: views.ScopeRows(scopes, identity)})
}

// Get handles GET /api/scopes/{id}
func (h *ScopesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseScopeID(w, r, h.logger)
	if !ok {
		return
	}

	scope, err := h.scopeService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, "get_scope", err)
		return
	}

	identity, _ := auth.GetIdentity(r.Context())
	writeJSON(w, h.logger, http.StatusOK, ScopeDetailResponse{
		Scope:     views.NewScopeRow(*scope, identity),
		Templates: h.scopeService.Templates(),
	})
}

// Create handles POST /api/scopes
func (h *ScopesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body CreateScopeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := h.scopeService.Create(r.Context(), models.CreateScopeRequest{
		Title:            body.Title,
		Description:      body.Description,
		AssignedToUserID: body.AssignedToUserID.Int64(),
		Template:         body.Template,
		Objectives:       body.Objectives,
		Deliverables:     body.Deliverables,
		Timeline:         body.Timeline,
		Requirements:     body.Requirements,
		Constraints:      body.Constraints,
		DueDate:          body.DueDate,
	})
	h.respondMutation(w, r, http.StatusCreated, "create_scope", result, err)
}

// Update handles PUT /api/scopes/{id}
func (h *ScopesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseScopeID(w, r, h.logger)
	if !ok {
		return
	}

	var req models.UpdateScopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := h.scopeService.Update(r.Context(), id, req)
	h.respondMutation(w, r, http.StatusOK, "update_scope", result, err)
}

// StartWork handles POST /api/scopes/{id}/start-work
func (h *ScopesHandler) StartWork(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseScopeID(w, r, h.logger)
	if !ok {
		return
	}
	result, err := h.scopeService.StartWork(r.Context(), id)
	h.respondMutation(w, r, http.StatusOK, "start_work", result, err)
}

// Submit handles POST /api/scopes/{id}/submit
func (h *ScopesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseScopeID(w, r, h.logger)
	if !ok {
		return
	}
	result, err := h.scopeService.Submit(r.Context(), id)
	h.respondMutation(w, r, http.StatusOK, "submit_scope", result, err)
}

// Review handles POST /api/scopes/{id}/review
func (h *ScopesHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseScopeID(w, r, h.logger)
	if !ok {
		return
	}

	var body ReviewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := h.scopeService.Review(r.Context(), id, body.Decision, body.Notes)
	h.respondMutation(w, r, http.StatusOK, "review_scope", result, err)
}

func (h *ScopesHandler) respondMutation(w http.ResponseWriter, r *http.Request, status int, action string, result *services.ScopeMutation, err error) {
	if err != nil {
		WriteServiceError(w, h.logger, action, err)
		return
	}
	identity, _ := auth.GetIdentity(r.Context())
	writeJSON(w, h.logger, status, ScopeMutationResponse{
		Scope:  views.NewScopeRow(*result.Scope, identity),
		Scopes: views.ScopeRows(result.Scopes, identity),
	})
}
