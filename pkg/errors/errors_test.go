package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("username", "username is required")
	assert.Equal(t, "validation failed: username - username is required", err.Error())
	assert.Equal(t, codes.InvalidArgument, err.GRPCStatus().Code())

	noField := NewValidationError("", "bad input")
	assert.Equal(t, "validation failed: bad input", noField.Error())
}

func TestNotFoundError(t *testing.T) {
	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
	assert.Equal(t, "User was not found", NewNotFoundError("user", "User was not found").Error())
	assert.Equal(t, codes.NotFound, NewNotFoundError("user", "").GRPCStatus().Code())
}

func TestInternalError(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError("failed to start", cause)

	assert.Equal(t, "failed to start: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, codes.Internal, err.GRPCStatus().Code())
	assert.Equal(t, "failed to start", err.GRPCStatus().Message())
}

func TestHelpers(t *testing.T) {
	wrappedNotFound := fmt.Errorf("delete: %w", NewNotFoundError("user", ""))
	wrappedValidation := fmt.Errorf("create: %w", NewValidationError("age", "age must be greater than 0"))

	assert.True(t, IsNotFound(wrappedNotFound))
	assert.False(t, IsNotFound(wrappedValidation))
	assert.True(t, IsValidation(wrappedValidation))
	assert.False(t, IsValidation(errors.New("plain")))

	assert.Equal(t, codes.NotFound, Code(wrappedNotFound))
	assert.Equal(t, codes.InvalidArgument, Code(wrappedValidation))
	assert.Equal(t, codes.Unknown, Code(errors.New("plain")))
	assert.Equal(t, codes.OK, Code(nil))
}
