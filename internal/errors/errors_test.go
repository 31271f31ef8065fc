//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrInterrupted)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "directory is not empty",
		Location: "./my-app",
		Context:  map[string]string{"Entries": "3"},
		Hint:     "Choose an empty directory",
	}

	out := detail.Error()

	assert.Contains(t, out, "Error: validation failed")
	assert.Contains(t, out, "Location: ./my-app")
	assert.Contains(t, out, "Entries: 3")
	assert.Contains(t, out, "directory is not empty")
	assert.Contains(t, out, "Hint: Choose an empty directory")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("unknown template: huge", "", "Valid templates: basic, advance")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "unknown template: huge", detail.Message)
	assert.Equal(t, "Valid templates: basic, advance", detail.Hint)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("template directory missing", "/tmp/templates", "")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "/tmp/templates")
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "flag check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "flag check failed")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil error returns success", nil, ExitSuccess},
		{"validation error", ErrValidation, ExitValidationError},
		{"wrapped validation error", Wrap(ErrValidation, "bad flag"), ExitValidationError},
		{"detail validation error", NewValidationError("x", "", ""), ExitValidationError},
		{"interrupted", fmt.Errorf("prompt: %w", ErrInterrupted), ExitInterrupted},
		{"wrapped interrupted", Wrap(ErrInterrupted, "prompt aborted"), ExitInterrupted},
		{"exit error code wins over cause", NewExitError(&DetailError{Type: "destination not empty", Message: "x", Cause: errors.New("not empty")}, ExitGeneralError), ExitGeneralError},
		{"explicit exit error", NewExitError(errors.New("boom"), 7), 7},
		{"unknown error returns general error", errors.New("unknown error"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := NewValidationError("bad", "", "")
	exitErr := NewExitError(inner, ExitValidationError)

	assert.True(t, errors.Is(exitErr, ErrValidation))
	assert.Equal(t, inner.Error(), exitErr.Error())
	assert.Equal(t, "exit code 3", (&ExitError{Code: 3}).Error())
}
