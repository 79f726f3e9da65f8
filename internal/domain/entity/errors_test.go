package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "page error",
			field:    "page",
			message:  PageMessage,
			expected: "validation error on field 'page': page must be a non-negative integer",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	var err error = &ValidationError{Field: "page", Message: PageMessage}
	wrapped := fmt.Errorf("parse form: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInvalidInput))

	var vErr *ValidationError
	assert.True(t, errors.As(wrapped, &vErr))
	assert.Equal(t, "page", vErr.Field)
}
