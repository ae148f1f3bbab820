package auth

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-travel-client/api"
	"github.com/jrsteele09/go-travel-client/internal/apperrors"
	"github.com/jrsteele09/go-travel-client/internal/utils"
	"github.com/jrsteele09/go-travel-client/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Session is an observable snapshot of the authentication state. It is
// always in exactly one of two shapes: signed in with a user, or signed out
// with no user.
type Session struct {
	User          *api.User
	Authenticated bool
}

// Manager owns the current-user identity and authentication status. It is
// the only component that writes the token store; everything else reads.
type Manager struct {
	client    *api.Client
	tokens    token.Store
	validator *Validator
	log       zerolog.Logger

	lock          sync.RWMutex
	user          *api.User
	authenticated bool
	signOutHooks  []func()
}

// ManagerOption modifies a Manager instance.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates the session manager and registers it as the client's
// session-expired handler, so a refresh failure anywhere flips the session
// to signed-out.
func NewManager(client *api.Client, tokens token.Store, options ...ManagerOption) (*Manager, error) {
	if client == nil {
		return nil, errors.New("[NewManager] client is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewManager] token store is required")
	}

	m := &Manager{
		client:    client,
		tokens:    tokens,
		validator: NewValidator(),
		log:       log.Logger,
	}
	for _, opt := range options {
		opt(m)
	}

	client.SetSessionExpiredHandler(m.sessionExpired)
	return m, nil
}

// OnSignedOut registers a hook run whenever the session becomes signed out,
// whether by SignOut, Resume failure or refresh exhaustion. The trip and
// expense caches use it to drop cached entities.
func (m *Manager) OnSignedOut(fn func()) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.signOutHooks = append(m.signOutHooks, fn)
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Session {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return Session{User: m.user, Authenticated: m.authenticated}
}

// SignUp registers a new account and signs the session in.
func (m *Manager) SignUp(ctx context.Context, email, password string, fullName *string) (Session, error) {
	if err := m.validator.ValidateSignUp(email, password, utils.Value(fullName)); err != nil {
		return m.Snapshot(), err
	}

	resp, err := m.client.SignUp(ctx, email, password, fullName)
	if err != nil {
		return m.Snapshot(), errors.Wrap(err, "[Manager.SignUp]")
	}
	return m.signedIn(resp)
}

// SignIn exchanges credentials for a session. A server rejection of the
// email/password pair surfaces as ErrInvalidCredentials.
func (m *Manager) SignIn(ctx context.Context, email, password string) (Session, error) {
	resp, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			return m.Snapshot(), errors.Wrapf(apperrors.ErrInvalidCredentials, "[Manager.SignIn] %s", err.Error())
		}
		return m.Snapshot(), errors.Wrap(err, "[Manager.SignIn]")
	}
	return m.signedIn(resp)
}

// SignOut invalidates the session server-side on a best-effort basis. Local
// state is cleared unconditionally: a user must always be able to exit a
// broken session locally, so a failed server call is logged, not returned.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.client.SignOut(ctx); err != nil {
		m.log.Warn().Err(err).Msg("Server-side sign-out failed, clearing local session anyway")
	}
	if err := m.tokens.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("Failed to clear stored credentials")
	}
	m.signedOut()
}

// Resume restores a persisted session at startup. Without stored tokens the
// session is signed out with no network call; with tokens, /auth/me decides.
// Any failure (including the refresh protocol exhausting itself) clears the
// tokens and leaves the session signed out.
func (m *Manager) Resume(ctx context.Context) Session {
	creds, err := m.tokens.Get()
	if err != nil || !creds.Valid() {
		m.signedOut()
		return m.Snapshot()
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("Session resume failed")
		if clearErr := m.tokens.Clear(); clearErr != nil {
			m.log.Warn().Err(clearErr).Msg("Failed to clear stored credentials")
		}
		m.signedOut()
		return m.Snapshot()
	}

	m.lock.Lock()
	m.user = user
	m.authenticated = true
	m.lock.Unlock()

	m.log.Info().Str("email", user.Email).Msg("Session resumed")
	return m.Snapshot()
}

// signedIn persists the token pair and sets the session to the returned
// user. The pair is written before the session flips so a crash in between
// never leaves an authenticated session without credentials.
func (m *Manager) signedIn(resp *api.AuthResponse) (Session, error) {
	creds := token.Credentials{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	if err := m.tokens.Set(creds); err != nil {
		return m.Snapshot(), errors.Wrap(err, "[Manager.signedIn] storing credentials")
	}

	m.lock.Lock()
	m.user = &resp.User
	m.authenticated = true
	m.lock.Unlock()

	m.log.Info().Str("email", resp.User.Email).Msg("Signed in")
	return m.Snapshot(), nil
}

// sessionExpired is invoked by the API client when the refresh protocol
// fails terminally. The client has already cleared the token store.
func (m *Manager) sessionExpired() {
	m.log.Warn().Msg("Session expired, signing out")
	m.signedOut()
}

// signedOut flips the session to signed out and runs the hooks. A session
// that is already signed out stays untouched, so hooks fire once per
// transition even when the refresh protocol and its caller both report the
// same expiry.
func (m *Manager) signedOut() {
	m.lock.Lock()
	if !m.authenticated && m.user == nil {
		m.lock.Unlock()
		return
	}
	m.user = nil
	m.authenticated = false
	hooks := make([]func(), len(m.signOutHooks))
	copy(hooks, m.signOutHooks)
	m.lock.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
