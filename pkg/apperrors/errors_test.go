package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestError_Error(t *testing.T) {
	err := &RequestError{StatusCode: 409, Code: "INVALID_STATE", Message: "Scope is not in draft"}
	assert.Equal(t, "Scope is not in draft (status 409)", err.Error())

	transport := &RequestError{Message: DefaultRequestMessage, Err: context.DeadlineExceeded}
	assert.Equal(t, "Request failed", transport.Error())
	assert.True(t, transport.IsTransport())
	assert.False(t, err.IsTransport())
}

func TestRequestError_UnwrapsCause(t *testing.T) {
	err := fmt.Errorf("failed to submit scope: %w", &RequestError{Message: DefaultRequestMessage, Err: context.Canceled})

	assert.True(t, errors.Is(err, context.Canceled))

	reqErr, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, DefaultRequestMessage, reqErr.Message)
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("send: %w", NewValidationError("document", "A completed form file is required"))

	valErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "document", valErr.Field)
	assert.Equal(t, "document: A completed form file is required", valErr.Error())

	_, ok = AsRequestError(err)
	assert.False(t, ok)

	assert.Equal(t, "bad", (&ValidationError{Message: "bad"}).Error())
}
