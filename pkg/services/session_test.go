package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/audit"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/testhelpers"
)

func newTestSessionService(api SessionAPI) (SessionService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	return NewSessionService(api, audit.NewSecurityAuditor(logger), logger), logs
}

func TestSessionService_Login(t *testing.T) {
	api := newFakeAPI()
	api.loginToken = testhelpers.AdminToken()
	svc, _ := newTestSessionService(api)

	result, err := svc.Login(context.Background(), " admin@hirepay.io ", "secret", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, api.loginToken, result.Token)
	assert.Equal(t, "admin@hirepay.io", result.Identity.Email)
	assert.Equal(t, []models.Role{models.RoleAdmin}, result.Identity.Roles)
}

func TestSessionService_LoginValidation(t *testing.T) {
	api := newFakeAPI()
	svc, _ := newTestSessionService(api)

	_, err := svc.Login(context.Background(), "", "secret", "10.0.0.1")
	valErr, ok := apperrors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "email", valErr.Field)

	_, err = svc.Login(context.Background(), "a@b.io", "", "10.0.0.1")
	valErr, ok = apperrors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "password", valErr.Field)

	assert.Zero(t, api.callCount())
}

func TestSessionService_LoginFailureIsAudited(t *testing.T) {
	api := newFakeAPI()
	api.loginErr = &apperrors.RequestError{StatusCode: 401, Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	svc, logs := newTestSessionService(api)

	_, err := svc.Login(context.Background(), "a@b.io", "wrong", "10.0.0.9")
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, 401, reqErr.StatusCode)

	entries := logs.FilterLoggerName("security_audit").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Login failed", entries[0].Message)
}

func TestSessionService_LoginUndecodableToken(t *testing.T) {
	api := newFakeAPI()
	api.loginToken = "not-a-token"
	svc, _ := newTestSessionService(api)

	_, err := svc.Login(context.Background(), "a@b.io", "pw", "10.0.0.1")
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.True(t, reqErr.IsTransport())
}

func TestSessionService_BootstrapAdmin(t *testing.T) {
	api := newFakeAPI()
	svc, _ := newTestSessionService(api)

	require.NoError(t, svc.BootstrapAdmin(context.Background(), "root@hirepay.io", "pw"))
	require.NotNil(t, api.bootstrapSeen)
	assert.Equal(t, "root@hirepay.io", api.bootstrapSeen.Email)
}
