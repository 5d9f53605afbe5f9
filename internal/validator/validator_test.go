package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleProbe struct {
	Role string `json:"role" validate:"is-user-role"`
}

type attendanceProbe struct {
	Status string `json:"status" validate:"required,is-attendance-status"`
}

func TestUserRoleRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&roleProbe{Role: "parent"}))
	assert.NoError(t, v.Validate(&roleProbe{Role: "supervisor"}))
	assert.NoError(t, v.Validate(&roleProbe{Role: ""})) // empty left to 'required'

	err := v.Validate(&roleProbe{Role: "janitor"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "role")
}

func TestAttendanceStatusRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&attendanceProbe{Status: "present"}))
	assert.NoError(t, v.Validate(&attendanceProbe{Status: "late"}))
	assert.Error(t, v.Validate(&attendanceProbe{Status: "vacation"}))
	assert.Error(t, v.Validate(&attendanceProbe{Status: ""}))
}

func TestErrorsKeyedByJSONTag(t *testing.T) {
	v := New()

	type probe struct {
		PayerEmail string `json:"payer_email" validate:"required,email"`
	}

	err := v.Validate(&probe{PayerEmail: "not-an-email"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "payer_email")
}
