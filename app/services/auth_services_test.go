package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pethive/pethive/app/fallback"
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/pkg/session"
	"github.com/pethive/pethive/pkg/testkit"
)

func setupAuth(t *testing.T) *AuthService {
	t.Helper()
	testkit.SetupDB(t, &models.User{})
	return NewAuthService()
}

func TestRegister(t *testing.T) {
	svc := setupAuth(t)

	identity, err := svc.Register("jane@example.com", "secret123", "Jane")
	require.NoError(t, err)
	assert.Equal(t, models.IdentityUser, identity.Kind)
	assert.Equal(t, models.RoleCustomer, identity.Role)
	assert.NotZero(t, identity.ID)

	_, err = svc.Register("jane@example.com", "other456", "Jane Again")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := setupAuth(t)

	_, err := svc.Register("jane@example.com", "secret123", "Jane")
	require.NoError(t, err)

	identity, err := svc.Login("jane@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.IdentityUser, identity.Kind)
	assert.Equal(t, "Jane", identity.Name)

	_, err = svc.Login("jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDemoFallbackUsers(t *testing.T) {
	svc := setupAuth(t)

	// The demo accounts work even when they were never seeded into the store.
	identity, err := svc.Login("admin@pethive.dev", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.IdentityDemo, identity.Kind)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.Equal(t, fallback.DemoAdminID, identity.ID)

	_, err = svc.Login("admin@pethive.dev", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("stranger@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMockLoginFindsOrCreates(t *testing.T) {
	svc := setupAuth(t)

	first, err := svc.MockLogin("tester@example.com", "Tester")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	again, err := svc.MockLogin("tester@example.com", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Tester", again.Name)
}

// withSession runs fn inside the session middleware so session.FromCtx works
// the same way it does in a real request.
func withSession(t *testing.T, fn func(r *http.Request)) {
	t.Helper()
	h := session.Middleware(session.DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fn(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestResolverElevatesDemoAdmin(t *testing.T) {
	svc := setupAuth(t)
	resolve := svc.Resolver()

	withSession(t, func(r *http.Request) {
		svc.StartSession(session.FromCtx(r), models.Identity{
			Kind: models.IdentityDemo,
			ID:   fallback.DemoAdminID,
			Role: models.RoleCustomer,
		})

		principal, ok := resolve(r)
		require.True(t, ok)
		assert.Equal(t, models.RoleAdmin, principal.Role)
	})
}

func TestResolverStoreBackedUser(t *testing.T) {
	svc := setupAuth(t)
	resolve := svc.Resolver()

	identity, err := svc.Register("jane@example.com", "secret123", "Jane")
	require.NoError(t, err)

	withSession(t, func(r *http.Request) {
		svc.StartSession(session.FromCtx(r), identity)

		principal, ok := resolve(r)
		require.True(t, ok)
		assert.Equal(t, identity.ID, principal.ID)
		assert.Equal(t, models.RoleCustomer, principal.Role)
	})
}

func TestResolverAnonymous(t *testing.T) {
	svc := setupAuth(t)
	resolve := svc.Resolver()

	withSession(t, func(r *http.Request) {
		_, ok := resolve(r)
		assert.False(t, ok)
	})
}

func TestLogoutClearsSession(t *testing.T) {
	svc := setupAuth(t)

	withSession(t, func(r *http.Request) {
		sess := session.FromCtx(r)
		svc.StartSession(sess, models.Identity{Kind: models.IdentityDemo, ID: fallback.DemoCustomerID})
		require.NotNil(t, svc.CurrentUser(sess))

		svc.Logout(sess)
		assert.Nil(t, svc.CurrentUser(sess))
	})
}
