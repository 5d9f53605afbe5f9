package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := Wrap(cause, CodeInternalError, "Internal server error", http.StatusInternalServerError)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestMarshalHidesInternals(t *testing.T) {
	cause := errors.New("pq: password authentication failed")
	appErr := Wrap(cause, CodeInternalError, "Internal server error", http.StatusInternalServerError)

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "password authentication")
	assert.Contains(t, string(raw), string(CodeInternalError))
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(ErrOrderNotFound)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestWithDetails(t *testing.T) {
	appErr := New(CodeValidationFailed, "Validation failed", http.StatusBadRequest).
		WithDetails(map[string]string{"amount": "must be positive"})

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "must be positive")
}
