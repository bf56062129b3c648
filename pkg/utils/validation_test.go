package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"phone"`
	Status string `json:"status" validate:"booking_status"`
	Role   string `json:"role" validate:"staff_role"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, registerOn(v))
	return v
}

func TestCustomTags(t *testing.T) {
	v := newTestValidator(t)

	ok := sampleInput{Email: "jo@example.com", Phone: "+65 9123 4567", Status: "Attended", Role: "Manager"}
	assert.NoError(t, v.Struct(ok))

	empty := sampleInput{Email: "jo@example.com"}
	assert.NoError(t, v.Struct(empty), "empty optional enums pass")

	bad := sampleInput{Email: "nope", Phone: "abc", Status: "Done", Role: "Owner"}
	err := v.Struct(bad)
	require.Error(t, err)

	msgs := ValidationMessages(err)
	assert.Equal(t, "must be a valid email address", msgs["email"])
	assert.Equal(t, "must be a valid phone number", msgs["phone"])
	assert.Equal(t, "must be one of: Active, Cancelled, Attended", msgs["status"])
	assert.Equal(t, "must be one of: Admin, Staff, Manager", msgs["role"])
}

func TestValidationMessagesIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, ValidationMessages(assert.AnError))
}

func TestRandomDigits(t *testing.T) {
	code, err := RandomDigits(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestShortCode(t *testing.T) {
	a, b := ShortCode(8), ShortCode(8)
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^[0-9A-F]{8}$`, a)
}
