//go:build unit

package user_test

import (
	"testing"

	"fleet-rental/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "valid", input: "user@example.com", want: "user@example.com"},
		{name: "valid with plus tag", input: "user+tag@example.com", want: "user+tag@example.com"},
		{name: "surrounding whitespace is trimmed", input: "  user@example.com  ", want: "user@example.com"},
		{name: "empty", input: "", errIs: user.ErrInvalidEmail},
		{name: "no at sign", input: "userexample.com", errIs: user.ErrInvalidEmail},
		{name: "no tld", input: "user@example", errIs: user.ErrInvalidEmail},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := user.NewEmail(c.input)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, e.Value())
		})
	}
}

func TestNewPassword(t *testing.T) {
	_, err := user.NewPassword("1234567")
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)

	p, err := user.NewPassword("12345678")
	require.NoError(t, err)
	assert.Equal(t, "12345678", p.Value())
}

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"member", "admin"} {
		role, err := user.NewRole(valid)
		require.NoError(t, err)
		assert.True(t, role.IsValid())
	}

	_, err := user.NewRole("superuser")
	require.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestNewCredentials(t *testing.T) {
	creds, err := user.NewCredentials("user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", creds.Email().Value())
	assert.Equal(t, "password123", creds.Password().Value())

	_, err = user.NewCredentials("bad", "password123")
	require.ErrorIs(t, err, user.ErrInvalidEmail)

	_, err = user.NewCredentials("user@example.com", "short")
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)
}
