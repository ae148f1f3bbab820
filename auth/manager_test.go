package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-travel-client/api"
	"github.com/jrsteele09/go-travel-client/apitest"
	"github.com/jrsteele09/go-travel-client/auth"
	"github.com/jrsteele09/go-travel-client/internal/apperrors"
	"github.com/jrsteele09/go-travel-client/internal/utils"
	"github.com/jrsteele09/go-travel-client/token"
	"github.com/jrsteele09/go-travel-client/token/storefakes"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "a@b.com"
	testPassword = "secret-password-1"
	testFullName = "Jo Traveler"
)

type testFixture struct {
	server  *apitest.Server
	store   *storefakes.FakeStore
	client  *api.Client
	manager *auth.Manager
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	server := apitest.New()
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	store := storefakes.NewFakeStore()
	client := api.New(ts.URL, store)
	manager, err := auth.NewManager(client, store)
	require.NoError(t, err)

	return &testFixture{server: server, store: store, client: client, manager: manager}
}

func TestSignUp(t *testing.T) {
	f := setupTestFixture(t)

	session, err := f.manager.SignUp(context.Background(), testEmail, testPassword, utils.Ptr(testFullName))
	require.NoError(t, err)
	require.True(t, session.Authenticated)
	require.Equal(t, testEmail, session.User.Email)
	require.Equal(t, testFullName, utils.Value(session.User.FullName))

	creds, err := f.store.Get()
	require.NoError(t, err)
	require.True(t, creds.Valid())
}

func TestSignUpValidation(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.SignUp(context.Background(), "not-an-email", testPassword, nil)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.manager.SignUp(context.Background(), testEmail, "short", nil)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	// Nothing was sent, nothing was stored
	_, err = f.store.Get()
	require.ErrorIs(t, err, token.ErrNoCredentials)
	require.False(t, f.manager.Snapshot().Authenticated)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.NoError(t, err)

	_, err = f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSignInWrongPassword(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.NoError(t, err)

	_, err = f.manager.SignIn(context.Background(), testEmail, "wrong-password-1")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	require.False(t, f.manager.Snapshot().Authenticated)
}

func TestSignOutClearsLocalStateEvenWhenServerFails(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.NoError(t, err)

	f.server.FailSignOut(true)
	f.manager.SignOut(context.Background())

	require.False(t, f.manager.Snapshot().Authenticated)
	_, err = f.store.Get()
	require.ErrorIs(t, err, token.ErrNoCredentials)
}

func TestSignOutHooksRun(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.NoError(t, err)

	hookRuns := 0
	f.manager.OnSignedOut(func() { hookRuns++ })

	f.manager.SignOut(context.Background())
	require.Equal(t, 1, hookRuns)
}

func TestResumeWithoutStoredTokens(t *testing.T) {
	f := setupTestFixture(t)

	session := f.manager.Resume(context.Background())
	require.False(t, session.Authenticated)
	require.Nil(t, session.User)
}

func TestResumeRestoresPersistedSession(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.NoError(t, err)

	signedIn, err := f.manager.SignIn(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	// A new manager over the same store, as after a process restart
	restarted, err := auth.NewManager(f.client, f.store)
	require.NoError(t, err)

	session := restarted.Resume(context.Background())
	require.True(t, session.Authenticated)
	require.Equal(t, signedIn.User.ID, session.User.ID)
	require.Equal(t, testEmail, session.User.Email)
}

func TestResumeWithDeadTokensSignsOut(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.NoError(t, err)

	// Access token rejected and the refresh protocol exhausts itself
	f.server.ExpireAccessTokens()
	f.server.RevokeRefreshTokens()

	session := f.manager.Resume(context.Background())
	require.False(t, session.Authenticated)
	require.Nil(t, session.User)

	_, err = f.store.Get()
	require.ErrorIs(t, err, token.ErrNoCredentials)
}

func TestResumeAfterRefreshExhaustionRunsHooksOnce(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.NoError(t, err)

	hookRuns := 0
	f.manager.OnSignedOut(func() { hookRuns++ })

	f.server.ExpireAccessTokens()
	f.server.RevokeRefreshTokens()

	// Both the refresh protocol and Resume's own failure path report the
	// same expiry; the sign-out transition happens once.
	session := f.manager.Resume(context.Background())
	require.False(t, session.Authenticated)
	require.Equal(t, 1, hookRuns)
}

func TestRefreshExhaustionFlipsSessionToSignedOut(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.manager.SignUp(context.Background(), testEmail, testPassword, nil)
	require.NoError(t, err)
	require.True(t, f.manager.Snapshot().Authenticated)

	hookRuns := 0
	f.manager.OnSignedOut(func() { hookRuns++ })

	f.server.ExpireAccessTokens()
	f.server.RevokeRefreshTokens()

	// Any authenticated call now exhausts the refresh protocol
	_, err = f.client.CurrentUser(context.Background())
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)

	require.False(t, f.manager.Snapshot().Authenticated)
	require.Equal(t, 1, hookRuns)
}
