package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyContact(t *testing.T) {
	c, _, _ := newTestStore(t)

	_, ok, err := c.VerifyContact("admin", "owner@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "no record yet")

	mustCreate(t, c)

	for _, contact := range []string{"owner@example.com", "OWNER@Example.com", "555.123.4567", "(555) 123-4567"} {
		hint, ok, err := c.VerifyContact("admin", contact)
		require.NoError(t, err)
		assert.True(t, ok, contact)
		assert.Equal(t, RecoveryHint{Email: "o***r@example.com", Phone: "***-***-4567"}, hint)
	}

	for _, contact := range []string{"", "other@example.com", "5551234560", "no-digits"} {
		_, ok, _ := c.VerifyContact("admin", contact)
		assert.False(t, ok, contact)
	}

	_, ok, _ = c.VerifyContact("someone", "owner@example.com")
	assert.False(t, ok)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j**n@example.com", MaskEmail("john@example.com"))
	assert.Equal(t, "ab@example.com", MaskEmail("ab@example.com"))
	assert.Equal(t, "no-at-sign", MaskEmail("no-at-sign"))
	assert.Equal(t, "é*ü@x.de", MaskEmail("éxü@x.de"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "***-***-4567", MaskPhone("+1 (555) 123-4567"))
	assert.Equal(t, "1234", MaskPhone("1234"))
	assert.Equal(t, "12-3", MaskPhone("12-3"))
}

func TestValidateSetup(t *testing.T) {
	require.NoError(t, ValidateSetup("admin", "secret1", "secret1", "a@b.co", "5551234567"))

	err := ValidateSetup("ab", "short", "other", "nope", "123")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		ProblemUsernameTooShort,
		ProblemPasswordTooShort,
		ProblemPasswordMismatch,
		ProblemInvalidEmail,
		ProblemInvalidPhone,
	}, verr.Problems)
	assert.Contains(t, err.Error(), "UsernameTooShort")

	err = ValidateSetup("   ", "secret1", "secret1", "a@b.co", "5551234567")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{ProblemUsernameTooShort}, verr.Problems)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret1", "secret1"))

	var verr *ValidationError
	require.True(t, errors.As(ValidatePassword("secret1", "secret2"), &verr))
	assert.Equal(t, []string{ProblemPasswordMismatch}, verr.Problems)
}

func TestValidateContact(t *testing.T) {
	assert.NoError(t, ValidateContact("a@b.co", "555-123-4567"))

	var verr *ValidationError
	require.True(t, errors.As(ValidateContact("nope", "555"), &verr))
	assert.Equal(t, []string{ProblemInvalidEmail, ProblemInvalidPhone}, verr.Problems)
}
