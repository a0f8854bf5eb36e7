package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tahsin0604/harmony-academy-server/internal/auth"
	"github.com/Tahsin0604/harmony-academy-server/internal/models"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

type fakeUsers struct {
	roles map[string]models.UserRole
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	role, ok := f.roles[email]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return models.User{Email: email, Role: role}, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newTestAuth(users *fakeUsers) (*Auth, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret")
	return NewAuth(tokens, users, zerolog.Nop()), tokens
}

func TestRequireAuthMissingHeader(t *testing.T) {
	a, _ := newTestAuth(&fakeUsers{})
	handler := a.RequireAuth(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/selectedClasses", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":true`)
}

func TestRequireAuthBadToken(t *testing.T) {
	a, _ := newTestAuth(&fakeUsers{})
	handler := a.RequireAuth(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/selectedClasses", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	users := &fakeUsers{roles: map[string]models.UserRole{"alice@x.com": models.RoleStudent}}
	a, tokens := newTestAuth(users)
	handler := a.RequireAuth(a.RequireRole(models.RoleStudent)(okHandler()))

	token, err := tokens.IssueToken("alice@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/selectedClasses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong role on an otherwise valid token.
	adminOnly := a.RequireAuth(a.RequireRole(models.RoleAdmin)(okHandler()))
	rec = httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req.Clone(req.Context()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleChangeTakesEffectImmediately(t *testing.T) {
	users := &fakeUsers{roles: map[string]models.UserRole{"alice@x.com": models.RoleInstructor}}
	a, tokens := newTestAuth(users)
	handler := a.RequireAuth(a.RequireRole(models.RoleInstructor)(okHandler()))

	token, err := tokens.IssueToken("alice@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/classes/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Role is read from the store per request, not from the token, so
	// a demotion applies to the very next call with the same token.
	users.roles["alice@x.com"] = models.RoleStudent
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.Clone(req.Context()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleUnknownUser(t *testing.T) {
	a, tokens := newTestAuth(&fakeUsers{roles: map[string]models.UserRole{}})
	handler := a.RequireAuth(a.RequireRole(models.RoleStudent)(okHandler()))

	token, err := tokens.IssueToken("ghost@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/selectedClasses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
