// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"

	"woodshop/internal/domain"

	"golang.org/x/oauth2"
)

// ErrNotAuthenticated indicates that no bearer token is available for an
// authenticated request.
var ErrNotAuthenticated = errors.New("not authenticated")

// Generic, non-leaking messages surfaced to the user. The backend's raw error
// text is kept out of the UI.
const (
	msgLoginFailed          = "Login failed. Please check your credentials."
	msgRegisterFailed       = "Registration failed. Please try again."
	msgVendorRegisterFailed = "Vendor registration failed. Please try again."
	msgInviteFailed         = "Failed to invite vendor. Please try again."
)

// SessionState is the authentication state of the client.
type SessionState int

// Session states. A manager starts in StateVerifying when a persisted token
// exists, otherwise StateUnauthenticated.
const (
	StateUnauthenticated SessionState = iota
	StateVerifying
	StateAuthenticated
	StateAuthError
)

// String returns the state name for logs.
func (s SessionState) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthError:
		return "auth_error"
	}
	return "unauthenticated"
}

// SessionManager is the single source of truth for who is logged in and for
// the bearer credential attached to authenticated backend calls. Persisting,
// replacing and purging the stored token are its only external side effects.
//
// SessionManager is not safe for concurrent use: operations run on a single
// event loop and callers are expected to disable the triggering control while
// Loading reports true. If two auth calls are nonetheless issued concurrently,
// the last response wins.
type SessionManager struct {
	api    domain.AuthAPI
	tokens domain.TokenStore

	state   SessionState
	user    *domain.User
	lastErr string
	loading bool
}

// NewSessionManager creates a session manager over the given backend and
// token store. The initial state is StateVerifying when a persisted token
// exists; call Bootstrap before rendering anything protected.
func NewSessionManager(api domain.AuthAPI, tokens domain.TokenStore) *SessionManager {
	m := &SessionManager{api: api, tokens: tokens, state: StateUnauthenticated}
	if tok, err := tokens.Load(); err == nil && tok != "" {
		m.state = StateVerifying
	}
	return m
}

// Bootstrap verifies the persisted token against the backend, restoring the
// session when it is still valid. A verification failure is the normal expiry
// path: the token is purged and the manager lands in StateUnauthenticated,
// never StateAuthError.
func (m *SessionManager) Bootstrap(ctx context.Context) {
	if m.state != StateVerifying {
		return
	}

	m.loading = true
	defer func() { m.loading = false }()

	tok, err := m.tokens.Load()
	if err != nil || tok == "" {
		m.state = StateUnauthenticated
		return
	}

	user, err := m.api.Verify(ctx, tok)
	if err != nil {
		_ = m.tokens.Clear()
		m.user = nil
		m.state = StateUnauthenticated
		return
	}

	user.Token = tok
	m.user = user
	m.state = StateAuthenticated
}

// Login authenticates against the backend and persists the returned token.
// On failure the manager enters StateAuthError with a generic message and the
// underlying error is returned so the caller can stop its own spinner.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	m.begin()
	defer m.end()

	user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return m.fail(msgLoginFailed, fmt.Errorf("login: %w", err))
	}
	if err := m.tokens.Save(user.Token); err != nil {
		return m.fail(msgLoginFailed, fmt.Errorf("persist token: %w", err))
	}

	m.user = user
	m.state = StateAuthenticated
	return nil
}

// Register creates a pending client account. It never authenticates the
// caller, so the session state is unchanged on success.
func (m *SessionManager) Register(ctx context.Context, reg domain.Registration) error {
	m.begin()
	defer m.end()

	if err := m.api.Register(ctx, reg); err != nil {
		return m.fail(msgRegisterFailed, fmt.Errorf("register: %w", err))
	}
	return nil
}

// RegisterVendor completes a vendor invitation. The invite token must be
// present, unexpired and unconsumed; the backend enforces all three.
func (m *SessionManager) RegisterVendor(ctx context.Context, reg domain.VendorRegistration) error {
	m.begin()
	defer m.end()

	if reg.InviteToken == "" {
		return m.fail(msgVendorRegisterFailed, errors.New("register vendor: missing invitation token"))
	}
	if err := m.api.RegisterVendor(ctx, reg); err != nil {
		return m.fail(msgVendorRegisterFailed, fmt.Errorf("register vendor: %w", err))
	}
	return nil
}

// InviteVendor starts a vendor invitation. Only admins may invite; the
// backend enforces the role and a rejection surfaces here as an error.
func (m *SessionManager) InviteVendor(ctx context.Context, invite domain.VendorInvite) error {
	m.begin()
	defer m.end()

	if err := m.api.InviteVendor(ctx, invite); err != nil {
		return m.fail(msgInviteFailed, fmt.Errorf("invite vendor: %w", err))
	}
	return nil
}

// Logout clears the in-memory user and purges the persisted token. It is
// idempotent, always succeeds locally and never touches the network.
func (m *SessionManager) Logout() {
	m.user = nil
	m.state = StateUnauthenticated
	_ = m.tokens.Clear()
}

// CurrentUser returns the signed-in user, or nil when unauthenticated.
func (m *SessionManager) CurrentUser() *domain.User {
	return m.user
}

// State returns the current session state.
func (m *SessionManager) State() SessionState {
	return m.state
}

// Loading reports whether an auth call or the bootstrap verification is in
// flight. The UI disables auth controls while this is true.
func (m *SessionManager) Loading() bool {
	return m.loading
}

// LastError returns the user-facing message from the most recent failed auth
// attempt, or "" when the last attempt succeeded.
func (m *SessionManager) LastError() string {
	return m.lastErr
}

// HasRole reports whether the signed-in user holds the given role.
func (m *SessionManager) HasRole(role domain.Role) bool {
	return m.user != nil && m.user.Role == role
}

// TokenSource returns an oauth2.TokenSource over this manager's token store.
// Every outbound authenticated request reads the persisted credential, so a
// token written by one login is picked up without rewiring.
func (m *SessionManager) TokenSource() oauth2.TokenSource {
	return TokenSource(m.tokens)
}

// TokenSource adapts a durable token store into an oauth2.TokenSource. It
// returns ErrNotAuthenticated when no token is persisted.
func TokenSource(tokens domain.TokenStore) oauth2.TokenSource {
	return storeTokenSource{tokens: tokens}
}

type storeTokenSource struct {
	tokens domain.TokenStore
}

func (s storeTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if tok == "" {
		return nil, ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// begin marks an auth attempt as in flight and clears the previous error.
func (m *SessionManager) begin() {
	m.loading = true
	m.lastErr = ""
}

func (m *SessionManager) end() {
	m.loading = false
}

// fail records the user-facing message and re-raises the underlying error.
// The machine only enters StateAuthError when no session is active: a failed
// call issued while authenticated keeps the session and its state, and only
// the message changes. The persisted token is left untouched.
func (m *SessionManager) fail(msg string, err error) error {
	m.lastErr = msg
	if m.state != StateAuthenticated {
		m.state = StateAuthError
	}
	return err
}
