package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/services"
	"github.com/justresults/hirepay-console/pkg/views"
)

// UsersHandler handles user administration requests.
type UsersHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(userService services.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the users handler's routes on the given mux.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux, sessionMiddleware *auth.SessionMiddleware) {
	mux.HandleFunc("GET /api/admin/users", sessionMiddleware.Require(h.List))
	mux.HandleFunc("POST /api/admin/users", sessionMiddleware.Require(h.Create))
	mux.HandleFunc("GET /api/front-office-users", sessionMiddleware.Require(h.FrontOffice))
}

// List handles GET /api/admin/users?page&size
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := ParsePaging(r, 20)

	result, err := h.userService.List(r.Context(), page, size)
	if err != nil {
		WriteServiceError(w, h.logger, "list_users", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, views.NewUserTable(result))
}

// Create handles POST /api/admin/users
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	user, err := h.userService.Create(r.Context(), req)
	if err != nil {
		WriteServiceError(w, h.logger, "create_user", err)
		return
	}

	response := ApiResponse{Success: true, Message: "User created"}
	if user != nil {
		response.Data = user
	}
	writeJSON(w, h.logger, http.StatusCreated, response)
}

// FrontOffice handles GET /api/front-office-users
func (h *UsersHandler) FrontOffice(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.FrontOfficeUsers(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, "list_front_office_users", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, views.UserOptions(users))
}
