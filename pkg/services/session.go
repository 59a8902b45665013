package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/audit"
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
)

// SessionAPI is the subset of the HirePay client used for sign-in.
type SessionAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	BootstrapAdmin(ctx context.Context, req models.LoginRequest) error
}

// LoginResult is a successful sign-in: the token to store and the identity it carries.
type LoginResult struct {
	Token    string
	Identity *auth.Identity
}

// SessionService signs users in. Storing and clearing the token is the caller's job
// because it needs the browser request.
type SessionService interface {
	Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error)
	BootstrapAdmin(ctx context.Context, email, password string) error
}

type sessionService struct {
	api     SessionAPI
	auditor *audit.SecurityAuditor
	logger  *zap.Logger
}

var _ SessionService = (*sessionService)(nil)

// NewSessionService creates a session service.
func NewSessionService(api SessionAPI, auditor *audit.SecurityAuditor, logger *zap.Logger) SessionService {
	return &sessionService{
		api:     api,
		auditor: auditor,
		logger:  logger.Named("session_service"),
	}
}

func validateCredentials(email, password string) (models.LoginRequest, error) {
	req := models.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if req.Email == "" {
		return req, apperrors.NewValidationError("email", "Email is required")
	}
	if req.Password == "" {
		return req, apperrors.NewValidationError("password", "Password is required")
	}
	return req, nil
}

func (s *sessionService) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	req, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.api.Login(ctx, req)
	if err != nil {
		details := audit.LoginFailureDetails{Endpoint: "/api/auth/login", Message: err.Error()}
		if reqErr, ok := apperrors.AsRequestError(err); ok {
			details.StatusCode = reqErr.StatusCode
			details.Message = reqErr.Message
		}
		s.auditor.LogLoginFailure(req.Email, clientIP, details)
		return nil, err
	}

	identity := auth.DecodeIdentity(token)
	if identity == nil {
		s.auditor.LogUndecodableToken(clientIP, "login")
		return nil, &apperrors.RequestError{
			Message: apperrors.DefaultRequestMessage,
			Err:     errors.New("issued token could not be decoded"),
		}
	}

	s.logger.Info("User signed in",
		zap.String("email", identity.Email),
		zap.Int64("user_id", identity.ID))

	return &LoginResult{Token: token, Identity: identity}, nil
}

func (s *sessionService) BootstrapAdmin(ctx context.Context, email, password string) error {
	req, err := validateCredentials(email, password)
	if err != nil {
		return err
	}
	if err := s.api.BootstrapAdmin(ctx, req); err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	s.logger.Info("Bootstrap admin requested", zap.String("email", req.Email))
	return nil
}
