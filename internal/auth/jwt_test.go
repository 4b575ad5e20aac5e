package auth_test

import (
	"testing"
	"time"

	"github.com/atelierhq/agency-api/internal/auth"
	"github.com/atelierhq/agency-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(ttlHours int) *auth.TokenIssuer {
	return auth.NewTokenIssuer(&config.AuthConfig{
		JWTSecret:     "test-secret-for-unit-tests",
		TokenTTLHours: ttlHours,
	})
}

func TestTokenIssuer_IssueAndValidate(t *testing.T) {
	issuer := newIssuer(1)

	token, expiresAt, err := issuer.Issue("alice", auth.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, 5*time.Second)

	userCtx, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", userCtx.Username)
	assert.Equal(t, auth.RoleAdmin, userCtx.Role)
	assert.True(t, userCtx.CanWrite())
}

func TestTokenIssuer_ViewerCannotWrite(t *testing.T) {
	issuer := newIssuer(1)

	token, _, err := issuer.Issue("bob", auth.RoleViewer)
	require.NoError(t, err)

	userCtx, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleViewer, userCtx.Role)
	assert.False(t, userCtx.CanWrite())
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	issuer := newIssuer(1)

	_, err := issuer.Validate("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := newIssuer(1)
	other := auth.NewTokenIssuer(&config.AuthConfig{
		JWTSecret:     "a-different-secret-entirely",
		TokenTTLHours: 1,
	})

	token, _, err := other.Issue("mallory", auth.RoleAdmin)
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := newIssuer(0)

	token, _, err := issuer.Issue("carol", auth.RoleAdmin)
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}
