package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByCode(t *testing.T) {
	cloned := Clone(ErrInvalidWindow, "date_from is after date_to")
	wrapped := fmt.Errorf("summary: %w", cloned)

	assert.ErrorIs(t, wrapped, ErrInvalidWindow)
	assert.NotErrorIs(t, wrapped, ErrValidation)
	assert.Equal(t, "recurring template is invalid", ErrInvalidTemplate.Message)
	assert.Equal(t, "date_from is after date_to", cloned.Message)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	appErr := FromError(fmt.Errorf("load: %w", ErrUnknownSchedule))
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "UNKNOWN_SCHEDULE", appErr.Code)

	internal := FromError(errors.New("connection reset"))
	assert.Equal(t, ErrInternal.Code, internal.Code)
	assert.Equal(t, "internal server error: connection reset", internal.Error())
	assert.EqualError(t, errors.Unwrap(internal), "connection reset")
}

func TestWithDetails(t *testing.T) {
	details := map[string]interface{}{"template_id": int64(7), "reason": "no weekdays"}
	err := WithDetails(ErrInvalidTemplate, "", details)

	require.NotNil(t, err)
	assert.Equal(t, ErrInvalidTemplate.Message, err.Message)
	assert.Equal(t, details, err.Details)
	assert.Nil(t, ErrInvalidTemplate.Details)
	assert.Nil(t, WithDetails(nil, "x", nil))
}
