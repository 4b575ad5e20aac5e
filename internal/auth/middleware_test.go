package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atelierhq/agency-api/internal/auth"
	"github.com/atelierhq/agency-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMiddleware() *auth.Middleware {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-for-unit-tests",
			TokenTTLHours: 1,
			APIKey:        "system-key",
		},
	}
	return auth.NewMiddleware(cfg, zap.NewNop())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := newMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidBearerToken(t *testing.T) {
	m := newMiddleware()
	issuer := auth.NewTokenIssuer(&config.AuthConfig{
		JWTSecret:     "test-secret-for-unit-tests",
		TokenTTLHours: 1,
	})
	token, _, err := issuer.Issue("alice", auth.RoleAdmin)
	require.NoError(t, err)

	var captured *auth.UserContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "alice", captured.Username)
	assert.Equal(t, auth.RoleAdmin, captured.Role)
}

func TestAuthenticate_APIKey(t *testing.T) {
	m := newMiddleware()

	var captured *auth.UserContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/projects", nil)
	req.Header.Set("x-api-key", "system-key")
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, auth.RoleService, captured.Role)
	assert.True(t, captured.CanWrite())
}

func TestAuthenticate_WrongAPIKey(t *testing.T) {
	m := newMiddleware()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/projects", nil)
	req.Header.Set("x-api-key", "wrong-key")
	rec := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireWrite_BlocksViewer(t *testing.T) {
	m := newMiddleware()

	viewerCtx := &auth.UserContext{Username: "bob", Role: auth.RoleViewer}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), viewerCtx))
	rec := httptest.NewRecorder()
	m.RequireWrite(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireWrite_AllowsAdmin(t *testing.T) {
	m := newMiddleware()

	adminCtx := &auth.UserContext{Username: "alice", Role: auth.RoleAdmin}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), adminCtx))
	rec := httptest.NewRecorder()
	m.RequireWrite(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
