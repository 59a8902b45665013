package hirepay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/logging"
	"github.com/justresults/hirepay-console/pkg/models"
)

// User listing defaults.
const (
	DefaultPageSize   = 20
	DefaultUserSortBy = "fullName"
)

// CreateUser creates a user. The upstream may answer with an empty body, in which
// case the returned user is nil.
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, "create_user", http.MethodPost, "/api/auth/users", nil, req, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		c.logger.Error("HirePay returned an unreadable body",
			zap.String("operation", "create_user"),
			zap.String("body", logging.SanitizeBody(raw)))
		return nil, &apperrors.RequestError{
			StatusCode: http.StatusOK,
			Message:    apperrors.DefaultRequestMessage,
			Err:        fmt.Errorf("failed to parse create_user response: %w", err),
		}
	}
	return &user, nil
}

// ListUsers returns one page of users sorted by sortBy (fullName when empty).
func (c *Client) ListUsers(ctx context.Context, page, size int, sortBy string) (*models.Page[models.User], error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if sortBy == "" {
		sortBy = DefaultUserSortBy
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	query.Set("sortBy", sortBy)

	var result models.Page[models.User]
	if err := c.doJSON(ctx, "list_users", http.MethodGet, "/api/users", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListFrontOfficeUsers returns every user holding FRONT_OFFICE.
func (c *Client) ListFrontOfficeUsers(ctx context.Context) ([]models.FrontOfficeUser, error) {
	var users []models.FrontOfficeUser
	if err := c.doJSON(ctx, "list_front_office_users", http.MethodGet, "/api/users/front-office", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
