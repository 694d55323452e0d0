package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("Session expired. Please try again.", ErrSessionExpired)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "Session expired. Please try again.: session expired", err.Error())
	assert.Equal(t, "Session expired. Please try again.", UserMessage(err))
}

func TestUserError_WithoutCause(t *testing.T) {
	err := NewUserError("Category not found.", nil)
	assert.Equal(t, "Category not found.", err.Error())
}

func TestUserMessage_WrappedDeep(t *testing.T) {
	inner := NewUserError("Failed to save.", ErrPersistence)
	wrapped := fmt.Errorf("handling message: %w", inner)

	assert.Equal(t, "Failed to save.", UserMessage(wrapped))
	assert.ErrorIs(t, wrapped, ErrPersistence)
}

func TestUserMessage_InternalErrorFallsBack(t *testing.T) {
	assert.Equal(t, "Something went wrong. Please try again later.",
		UserMessage(errors.New("disk on fire")))
}
