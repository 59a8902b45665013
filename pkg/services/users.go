package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/models"
)

// UserAPI is the subset of the HirePay client used for user administration.
type UserAPI interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context, page, size int, sortBy string) (*models.Page[models.User], error)
	ListFrontOfficeUsers(ctx context.Context) ([]models.FrontOfficeUser, error)
}

// UserService defines the interface for user operations.
type UserService interface {
	List(ctx context.Context, page, size int) (*models.Page[models.User], error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	FrontOfficeUsers(ctx context.Context) ([]models.FrontOfficeUser, error)
}

type userService struct {
	api    UserAPI
	logger *zap.Logger
}

var _ UserService = (*userService)(nil)

// NewUserService creates a new user service with dependencies.
func NewUserService(api UserAPI, logger *zap.Logger) UserService {
	return &userService{
		api:    api,
		logger: logger.Named("user_service"),
	}
}

// List returns one page of users sorted by full name.
func (s *userService) List(ctx context.Context, page, size int) (*models.Page[models.User], error) {
	result, err := s.api.ListUsers(ctx, page, size, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return result, nil
}

// Create validates and creates a user. Users created without roles get FRONT_OFFICE.
func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Designation = strings.TrimSpace(req.Designation)

	if req.Email == "" {
		return nil, apperrors.NewValidationError("email", "Email is required")
	}
	if req.Password == "" {
		return nil, apperrors.NewValidationError("password", "Password is required")
	}
	if req.FullName == "" {
		return nil, apperrors.NewValidationError("fullName", "Full name is required")
	}
	if len(req.Roles) == 0 {
		req.Roles = []models.Role{models.RoleFrontOffice}
	}
	for _, role := range req.Roles {
		if !models.IsValidRole(role) {
			return nil, apperrors.NewValidationError("roles", fmt.Sprintf("Unknown role %q", role))
		}
	}

	user, err := s.api.CreateUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created",
		zap.String("email", req.Email),
		zap.Any("roles", req.Roles))
	return user, nil
}

// FrontOfficeUsers returns the users that can receive scopes and documents.
func (s *userService) FrontOfficeUsers(ctx context.Context) ([]models.FrontOfficeUser, error) {
	users, err := s.api.ListFrontOfficeUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list front-office users: %w", err)
	}
	return users, nil
}
