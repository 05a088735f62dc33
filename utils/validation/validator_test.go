package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"user.name+tag@example.com",
		"UPPER@EXAMPLE.ORG",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"not-an-email",
		"missing@tld",
		"@example.com",
		"user@.com",
		"user@example.c", // TLD too short
		"",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatorStrictEmailTag(t *testing.T) {
	type form struct {
		Email string `validate:"required,strict_email"`
	}

	v := NewValidator()

	require.NoError(t, v.ValidateStruct(form{Email: "a@b.co"}))

	err := v.ValidateStruct(form{Email: "not-an-email"})
	require.Error(t, err)
	errs := FormatValidationErrors(err)
	assert.Equal(t, "Invalid email format", errs["email"])
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00 "))
}
