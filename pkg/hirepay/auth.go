package hirepay

import (
	"context"
	"net/http"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/models"
)

// Login exchanges credentials for a bearer token. No Authorization header is sent.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var resp models.LoginResponse
	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &apperrors.RequestError{StatusCode: http.StatusOK, Message: apperrors.DefaultRequestMessage}
	}
	return resp.Token, nil
}

// BootstrapAdmin creates the first administrator. The upstream ignores the call when
// the email already exists. No Authorization header is sent.
func (c *Client) BootstrapAdmin(ctx context.Context, req models.LoginRequest) error {
	return c.doJSON(ctx, "bootstrap_admin", http.MethodPost, "/api/auth/bootstrap-admin", nil, req, nil)
}
