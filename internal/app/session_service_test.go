package app

import (
	"context"
	"errors"
	"testing"

	"woodshop/internal/domain"
)

type mockAuthAPI struct {
	loginFn          func(ctx context.Context, email, password string) (*domain.User, error)
	registerFn       func(ctx context.Context, reg domain.Registration) error
	registerVendorFn func(ctx context.Context, reg domain.VendorRegistration) error
	inviteVendorFn   func(ctx context.Context, invite domain.VendorInvite) error
	verifyFn         func(ctx context.Context, token string) (*domain.User, error)
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, errors.New("unexpected login")
}

func (m *mockAuthAPI) Register(ctx context.Context, reg domain.Registration) error {
	if m.registerFn != nil {
		return m.registerFn(ctx, reg)
	}
	return errors.New("unexpected register")
}

func (m *mockAuthAPI) RegisterVendor(ctx context.Context, reg domain.VendorRegistration) error {
	if m.registerVendorFn != nil {
		return m.registerVendorFn(ctx, reg)
	}
	return errors.New("unexpected vendor register")
}

func (m *mockAuthAPI) InviteVendor(ctx context.Context, invite domain.VendorInvite) error {
	if m.inviteVendorFn != nil {
		return m.inviteVendorFn(ctx, invite)
	}
	return errors.New("unexpected invite")
}

func (m *mockAuthAPI) Verify(ctx context.Context, token string) (*domain.User, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, token)
	}
	return nil, errors.New("unexpected verify")
}

// fakeTokenStore is an in-memory stand-in for the durable token file.
type fakeTokenStore struct {
	token   string
	loadErr error
	saveErr error
}

func (s *fakeTokenStore) Load() (string, error) { return s.token, s.loadErr }

func (s *fakeTokenStore) Save(token string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

func (s *fakeTokenStore) Clear() error {
	s.token = ""
	return nil
}

func TestSessionManager_InitialState(t *testing.T) {
	if got := NewSessionManager(&mockAuthAPI{}, &fakeTokenStore{}).State(); got != StateUnauthenticated {
		t.Errorf("expected unauthenticated with empty store, got %v", got)
	}
	if got := NewSessionManager(&mockAuthAPI{}, &fakeTokenStore{token: "tok"}).State(); got != StateVerifying {
		t.Errorf("expected verifying with persisted token, got %v", got)
	}
}

func TestSessionManager_Login_Success(t *testing.T) {
	ctx := context.Background()
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			if email != "vendor@shop.rw" {
				t.Errorf("unexpected email %q", email)
			}
			return &domain.User{Email: email, Role: domain.RoleVendor, Token: "tok-1"}, nil
		},
	}
	store := &fakeTokenStore{}
	m := NewSessionManager(api, store)

	if err := m.Login(ctx, "vendor@shop.rw", "secret"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("expected authenticated, got %v", m.State())
	}
	if m.CurrentUser() == nil || m.CurrentUser().Email != "vendor@shop.rw" {
		t.Errorf("unexpected user %+v", m.CurrentUser())
	}
	if m.LastError() != "" {
		t.Errorf("expected empty last error, got %q", m.LastError())
	}
	if store.token != "tok-1" {
		t.Errorf("expected token persisted, got %q", store.token)
	}
	if !m.HasRole(domain.RoleVendor) || m.HasRole(domain.RoleAdmin) {
		t.Error("role gating is wrong")
	}
}

func TestSessionManager_Login_Rejected(t *testing.T) {
	ctx := context.Background()
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, errors.New("401 unauthorized")
		},
	}
	store := &fakeTokenStore{}
	m := NewSessionManager(api, store)

	err := m.Login(ctx, "bad@x.com", "wrong")
	if err == nil {
		t.Fatal("expected error to be re-raised")
	}
	if m.State() != StateAuthError {
		t.Errorf("expected auth error state, got %v", m.State())
	}
	if m.LastError() != "Login failed. Please check your credentials." {
		t.Errorf("unexpected message %q", m.LastError())
	}
	if store.token != "" {
		t.Errorf("no token should be persisted, got %q", store.token)
	}
	if m.Loading() {
		t.Error("loading flag should be reset")
	}
}

func TestSessionManager_Login_ClearsPreviousError(t *testing.T) {
	ctx := context.Background()
	calls := 0
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("rejected")
			}
			return &domain.User{Email: email, Role: domain.RoleClient, Token: "tok-2"}, nil
		},
	}
	m := NewSessionManager(api, &fakeTokenStore{})

	_ = m.Login(ctx, "a@b.c", "wrong")
	if err := m.Login(ctx, "a@b.c", "right"); err != nil {
		t.Fatalf("expected second login to succeed, got %v", err)
	}
	if m.LastError() != "" {
		t.Errorf("error should be cleared on new attempt, got %q", m.LastError())
	}
	if m.State() != StateAuthenticated {
		t.Errorf("expected authenticated, got %v", m.State())
	}
}

func TestSessionManager_Bootstrap_ValidToken(t *testing.T) {
	ctx := context.Background()
	api := &mockAuthAPI{
		verifyFn: func(ctx context.Context, token string) (*domain.User, error) {
			if token != "stored" {
				t.Errorf("expected stored token, got %q", token)
			}
			return &domain.User{Email: "admin@shop.rw", Role: domain.RoleAdmin}, nil
		},
	}
	store := &fakeTokenStore{token: "stored"}
	m := NewSessionManager(api, store)

	m.Bootstrap(ctx)

	if m.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", m.State())
	}
	if m.CurrentUser().Token != "stored" {
		t.Errorf("restored user should carry the token, got %q", m.CurrentUser().Token)
	}
}

func TestSessionManager_Bootstrap_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	api := &mockAuthAPI{
		verifyFn: func(ctx context.Context, token string) (*domain.User, error) {
			return nil, errors.New("401 token expired")
		},
	}
	store := &fakeTokenStore{token: "expired"}
	m := NewSessionManager(api, store)

	m.Bootstrap(ctx)

	if m.State() != StateUnauthenticated {
		t.Errorf("verification failure must land in unauthenticated, got %v", m.State())
	}
	if m.LastError() != "" {
		t.Errorf("expiry is not an auth error, got %q", m.LastError())
	}
	if store.token != "" {
		t.Errorf("token should be purged, got %q", store.token)
	}
}

func TestSessionManager_Bootstrap_NoToken(t *testing.T) {
	m := NewSessionManager(&mockAuthAPI{}, &fakeTokenStore{})
	m.Bootstrap(context.Background())
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", m.State())
	}
}

func TestSessionManager_Logout(t *testing.T) {
	ctx := context.Background()
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return &domain.User{Email: email, Role: domain.RoleClient, Token: "tok"}, nil
		},
	}
	store := &fakeTokenStore{}
	m := NewSessionManager(api, store)

	if err := m.Login(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	m.Logout()
	m.Logout() // idempotent

	if m.CurrentUser() != nil {
		t.Error("user should be cleared")
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", m.State())
	}
	if store.token != "" {
		t.Errorf("token should be purged, got %q", store.token)
	}
}

func TestSessionManager_Register_DoesNotAuthenticate(t *testing.T) {
	ctx := context.Background()
	api := &mockAuthAPI{
		registerFn: func(ctx context.Context, reg domain.Registration) error { return nil },
	}
	store := &fakeTokenStore{}
	m := NewSessionManager(api, store)

	reg := domain.Registration{FirstName: "Ada", Email: "ada@x.com", Password: "pw"}
	if err := m.Register(ctx, reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if m.State() != StateUnauthenticated || m.CurrentUser() != nil {
		t.Error("register must not authenticate")
	}
	if store.token != "" {
		t.Error("register must not persist a token")
	}
}

func TestSessionManager_Register_Failure(t *testing.T) {
	api := &mockAuthAPI{
		registerFn: func(ctx context.Context, reg domain.Registration) error {
			return errors.New("409 conflict")
		},
	}
	m := NewSessionManager(api, &fakeTokenStore{})

	if err := m.Register(context.Background(), domain.Registration{}); err == nil {
		t.Fatal("expected error")
	}
	if m.State() != StateAuthError {
		t.Errorf("expected auth error, got %v", m.State())
	}
	if m.LastError() != "Registration failed. Please try again." {
		t.Errorf("unexpected message %q", m.LastError())
	}
}

func TestSessionManager_RegisterVendor_MissingToken(t *testing.T) {
	m := NewSessionManager(&mockAuthAPI{}, &fakeTokenStore{})

	err := m.RegisterVendor(context.Background(), domain.VendorRegistration{ShopName: "Oak & Co"})
	if err == nil {
		t.Fatal("expected error for missing invite token")
	}
	if m.LastError() != "Vendor registration failed. Please try again." {
		t.Errorf("unexpected message %q", m.LastError())
	}
}

func TestSessionManager_InviteVendor_Forbidden(t *testing.T) {
	api := &mockAuthAPI{
		inviteVendorFn: func(ctx context.Context, invite domain.VendorInvite) error {
			return errors.New("403 forbidden")
		},
	}
	m := NewSessionManager(api, &fakeTokenStore{})

	if err := m.InviteVendor(context.Background(), domain.VendorInvite{Email: "v@x.com"}); err == nil {
		t.Fatal("expected error")
	}
	if m.LastError() != "Failed to invite vendor. Please try again." {
		t.Errorf("unexpected message %q", m.LastError())
	}
}

func TestTokenSource(t *testing.T) {
	store := &fakeTokenStore{}
	src := TokenSource(store)

	if _, err := src.Token(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}

	store.token = "tok-9"
	tok, err := src.Token()
	if err != nil {
		t.Fatalf("expected token, got %v", err)
	}
	if tok.AccessToken != "tok-9" || tok.TokenType != "Bearer" {
		t.Errorf("unexpected token %+v", tok)
	}
}

func TestSessionManager_FailureWhileAuthenticatedKeepsSession(t *testing.T) {
	ctx := context.Background()
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return &domain.User{Email: email, Role: domain.RoleAdmin, Token: "tok"}, nil
		},
		inviteVendorFn: func(ctx context.Context, invite domain.VendorInvite) error {
			return errors.New("503 unavailable")
		},
	}
	store := &fakeTokenStore{}
	m := NewSessionManager(api, store)

	if err := m.Login(ctx, "admin@shop.rw", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := m.InviteVendor(ctx, domain.VendorInvite{Email: "v@x.com"}); err == nil {
		t.Fatal("expected error")
	}
	if m.State() != StateAuthenticated {
		t.Errorf("a failed secondary call must not leave authenticated, got %v", m.State())
	}
	if m.CurrentUser() == nil {
		t.Error("user should survive a failed secondary call")
	}
	if m.LastError() != "Failed to invite vendor. Please try again." {
		t.Errorf("unexpected message %q", m.LastError())
	}
	if store.token != "tok" {
		t.Errorf("token should survive, got %q", store.token)
	}
}
