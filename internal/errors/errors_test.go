package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewInvalidShapeError("bad rank", nil)
	assert.Equal(t, "invalid_shape: bad rank", err.Error())

	cause := fmt.Errorf("boom")
	err = NewIOError("read failed", cause)
	assert.Equal(t, "io: read failed (caused by: boom)", err.Error())
	assert.Same(t, cause, stderrors.Unwrap(err))
}

func TestAppError_IsMatchesType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{"shape", NewInvalidShapeError("x", nil), ErrInvalidShape, true},
		{"empty", NewEmptyInputError("x", nil), ErrEmptyInput, true},
		{"method", NewUnknownMethodError("bogus"), ErrUnknownMethod, true},
		{"param", NewInvalidParameterError("x", nil), ErrInvalidParameter, true},
		{"mismatch", NewEmptyInputError("x", nil), ErrInvalidShape, false},
		{"wrapped", fmt.Errorf("ctx: %w", NewEmptyInputError("x", nil)), ErrEmptyInput, true},
		{"plain", fmt.Errorf("plain"), ErrEmptyInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stderrors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestIsTypeAndGetType(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewUnknownMethodError("bogus"))

	assert.True(t, IsType(err, ErrorTypeUnknownMethod))
	assert.False(t, IsType(err, ErrorTypeEmptyInput))
	assert.Equal(t, ErrorTypeUnknownMethod, GetType(err))
	assert.Equal(t, ErrorTypeInternal, GetType(fmt.Errorf("plain")))
	assert.Contains(t, err.Error(), `"bogus"`)
}
