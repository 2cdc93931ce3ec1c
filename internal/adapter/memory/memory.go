// Package memory implements an in-memory stand-in for the marketplace
// backend, for development and testing. It honours the same contracts the
// REST adapter does: bcrypt-checked logins, opaque bearer tokens, single-use
// vendor invitations and role checks on privileged operations.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"woodshop/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Errors returned by the fake backend. They mirror what the real backend's
// error envelope decodes to.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidInvite      = errors.New("invalid or consumed invitation")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("account already exists")
)

type account struct {
	email        string
	passwordHash string
	role         domain.Role
	shopName     string
}

// Backend implements the backend-facing ports in memory. Like the remote
// service seen from a single client, it tracks one signed-in session at a
// time: the most recent successful Login or Verify.
type Backend struct {
	mu            sync.Mutex
	accounts      map[string]*account              // email -> account
	invites       map[string]string                // invite token -> invitee email
	tokens        map[string]string                // bearer token -> email
	products      []domain.Product
	wishlists     map[string]map[string]bool       // email -> product ids
	carts         map[string]map[string]int        // email -> product id -> quantity
	reviews       map[string][]domain.Review       // product id -> reviews
	notifications map[string][]domain.Notification // email -> notifications
	session       *account

	productIDCounter      int64
	reviewIDCounter       int64
	notificationIDCounter int64
}

// Ensure interfaces are met.
var _ domain.AuthAPI = (*Backend)(nil)
var _ domain.CatalogAPI = (*Backend)(nil)
var _ domain.VendorAPI = (*Backend)(nil)
var _ domain.WishlistAPI = (*Backend)(nil)
var _ domain.CartAPI = (*Backend)(nil)
var _ domain.ReviewAPI = (*Backend)(nil)
var _ domain.NotificationAPI = (*Backend)(nil)

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{
		accounts:      make(map[string]*account),
		invites:       make(map[string]string),
		tokens:        make(map[string]string),
		wishlists:     make(map[string]map[string]bool),
		carts:         make(map[string]map[string]int),
		reviews:       make(map[string][]domain.Review),
		notifications: make(map[string][]domain.Notification),
	}
}

// SeedUser registers an account with a bcrypt-hashed password.
func (b *Backend) SeedUser(email, password string, role domain.Role) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[email]; ok {
		return ErrAlreadyExists
	}
	b.accounts[email] = &account{email: email, passwordHash: string(hash), role: role}
	return nil
}

// SeedVendor registers a vendor account with a shop name.
func (b *Backend) SeedVendor(email, password, shopName string) error {
	if err := b.SeedUser(email, password, domain.RoleVendor); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[email].shopName = shopName
	return nil
}

// SeedProducts replaces the catalog.
func (b *Backend) SeedProducts(products []domain.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products = append([]domain.Product(nil), products...)
	for _, p := range products {
		if id, err := strconv.ParseInt(p.ID, 10, 64); err == nil && id > b.productIDCounter {
			b.productIDCounter = id
		}
	}
}

// InviteTokenFor returns the pending invitation token for an email.
func (b *Backend) InviteTokenFor(email string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for tok, invitee := range b.invites {
		if invitee == email {
			return tok, true
		}
	}
	return "", false
}

// RevokeToken invalidates a bearer token, simulating server-side expiry.
func (b *Backend) RevokeToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, token)
}

// --- AuthAPI ---

// Login checks the password and issues a fresh opaque bearer token.
func (b *Backend) Login(ctx context.Context, email, password string) (*domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[email]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	b.tokens[token] = email
	b.session = acct

	return &domain.User{Email: acct.email, Role: acct.role, Token: token}, nil
}

// Register stores a new client account. It does not sign the caller in.
func (b *Backend) Register(ctx context.Context, reg domain.Registration) error {
	if reg.Email == "" || reg.Password == "" {
		return errors.New("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[reg.Email]; ok {
		return ErrAlreadyExists
	}
	b.accounts[reg.Email] = &account{email: reg.Email, passwordHash: string(hash), role: domain.RoleClient}
	return nil
}

// RegisterVendor consumes an invitation and creates the vendor account.
func (b *Backend) RegisterVendor(ctx context.Context, reg domain.VendorRegistration) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	email, ok := b.invites[reg.InviteToken]
	if !ok {
		return ErrInvalidInvite
	}
	// Invitations are single use.
	delete(b.invites, reg.InviteToken)

	b.accounts[email] = &account{
		email:        email,
		passwordHash: string(hash),
		role:         domain.RoleVendor,
		shopName:     reg.ShopName,
	}
	return nil
}

// InviteVendor records a pending invitation. Only the signed-in admin may
// invite.
func (b *Backend) InviteVendor(ctx context.Context, invite domain.VendorInvite) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil || b.session.role != domain.RoleAdmin {
		return ErrForbidden
	}
	if invite.Email == "" {
		return errors.New("invitee email is required")
	}

	token, err := generateToken()
	if err != nil {
		return err
	}
	b.invites[token] = invite.Email
	return nil
}

// Verify resolves a bearer token back to its account.
func (b *Backend) Verify(ctx context.Context, token string) (*domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	email, ok := b.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	acct, ok := b.accounts[email]
	if !ok {
		return nil, ErrInvalidToken
	}
	b.session = acct
	return &domain.User{Email: acct.email, Role: acct.role}, nil
}

// --- CatalogAPI ---

// Storefront returns a copy of the catalog.
func (b *Backend) Storefront(ctx context.Context) ([]domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return nil, ErrInvalidToken
	}
	return append([]domain.Product(nil), b.products...), nil
}

// Product returns a single product by ID.
func (b *Backend) Product(ctx context.Context, id string) (*domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.products {
		if p.ID == id {
			ret := p
			return &ret, nil
		}
	}
	return nil, ErrNotFound
}

// --- VendorAPI ---

// MyProducts returns the signed-in vendor's products.
func (b *Backend) MyProducts(ctx context.Context) ([]domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	vendor, err := b.currentVendor()
	if err != nil {
		return nil, err
	}

	var mine []domain.Product
	for _, p := range b.products {
		if strings.EqualFold(p.Vendor, vendor.shopName) {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

// Upload creates a product owned by the signed-in vendor.
func (b *Backend) Upload(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	vendor, err := b.currentVendor()
	if err != nil {
		return nil, err
	}

	b.productIDCounter++
	p := domain.Product{
		ID:       strconv.FormatInt(b.productIDCounter, 10),
		Name:     draft.Name,
		Price:    draft.Price,
		Category: draft.Category,
		Material: draft.Material,
		ImageURL: draft.ImageURL,
		Stock:    draft.Stock,
		Vendor:   vendor.shopName,
	}
	b.products = append(b.products, p)
	return &p, nil
}

// Edit replaces the writable fields of an owned product.
func (b *Backend) Edit(ctx context.Context, id string, draft domain.ProductDraft) (*domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	vendor, err := b.currentVendor()
	if err != nil {
		return nil, err
	}

	for i := range b.products {
		if b.products[i].ID != id {
			continue
		}
		if !strings.EqualFold(b.products[i].Vendor, vendor.shopName) {
			return nil, ErrForbidden
		}
		b.products[i].Name = draft.Name
		b.products[i].Price = draft.Price
		b.products[i].Category = draft.Category
		b.products[i].Material = draft.Material
		b.products[i].ImageURL = draft.ImageURL
		b.products[i].Stock = draft.Stock
		ret := b.products[i]
		return &ret, nil
	}
	return nil, ErrNotFound
}

// Remove deletes an owned product.
func (b *Backend) Remove(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vendor, err := b.currentVendor()
	if err != nil {
		return err
	}

	for i := range b.products {
		if b.products[i].ID != id {
			continue
		}
		if !strings.EqualFold(b.products[i].Vendor, vendor.shopName) {
			return ErrForbidden
		}
		b.products = append(b.products[:i], b.products[i+1:]...)
		return nil
	}
	return ErrNotFound
}

// --- WishlistAPI ---

// Wishlist returns the signed-in user's wishlist products.
func (b *Backend) Wishlist(ctx context.Context) ([]domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil, ErrInvalidToken
	}

	var items []domain.Product
	for _, p := range b.products {
		if b.wishlists[b.session.email][p.ID] {
			items = append(items, p)
		}
	}
	return items, nil
}

// AddToWishlist puts a product on the signed-in user's wishlist.
func (b *Backend) AddToWishlist(ctx context.Context, productID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrInvalidToken
	}
	if b.wishlists[b.session.email] == nil {
		b.wishlists[b.session.email] = make(map[string]bool)
	}
	b.wishlists[b.session.email][productID] = true
	return nil
}

// RemoveFromWishlist takes a product off the signed-in user's wishlist.
func (b *Backend) RemoveFromWishlist(ctx context.Context, productID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrInvalidToken
	}
	delete(b.wishlists[b.session.email], productID)
	return nil
}

// --- CartAPI ---

// SeedCartItem places a product in an account's cart. The order flow that
// fills carts lives on the real backend, so seeding stands in for it here.
func (b *Backend) SeedCartItem(email, productID string, quantity int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.carts[email] == nil {
		b.carts[email] = make(map[string]int)
	}
	b.carts[email][productID] = quantity
}

// Cart returns the signed-in user's cart lines. The cart entry ID is the
// product ID.
func (b *Backend) Cart(ctx context.Context) ([]domain.CartItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil, ErrInvalidToken
	}

	var items []domain.CartItem
	for _, p := range b.products {
		qty, ok := b.carts[b.session.email][p.ID]
		if !ok {
			continue
		}
		items = append(items, domain.CartItem{
			ID:        p.ID,
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
			ImageURL:  p.ImageURL,
		})
	}
	return items, nil
}

// UpdateCartItem sets the quantity of a cart entry.
func (b *Backend) UpdateCartItem(ctx context.Context, id string, quantity int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrInvalidToken
	}
	if _, ok := b.carts[b.session.email][id]; !ok {
		return ErrNotFound
	}
	b.carts[b.session.email][id] = quantity
	return nil
}

// RemoveFromCart deletes a cart entry.
func (b *Backend) RemoveFromCart(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrInvalidToken
	}
	delete(b.carts[b.session.email], id)
	return nil
}

// --- ReviewAPI ---

// Reviews returns a product's reviews.
func (b *Backend) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil, ErrInvalidToken
	}
	return append([]domain.Review(nil), b.reviews[productID]...), nil
}

// SubmitReview records a review by the signed-in user.
func (b *Backend) SubmitReview(ctx context.Context, productID string, draft domain.ReviewDraft) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrInvalidToken
	}

	b.reviewIDCounter++
	b.reviews[productID] = append(b.reviews[productID], domain.Review{
		ID:       strconv.FormatInt(b.reviewIDCounter, 10),
		UserID:   b.session.email,
		UserName: b.session.email,
		Rating:   draft.Rating,
		Comment:  draft.Comment,
	})
	return nil
}

// LikeReview increments a review's like count.
func (b *Backend) LikeReview(ctx context.Context, reviewID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrInvalidToken
	}
	for productID := range b.reviews {
		for i := range b.reviews[productID] {
			if b.reviews[productID][i].ID == reviewID {
				b.reviews[productID][i].Likes++
				return nil
			}
		}
	}
	return ErrNotFound
}

// --- NotificationAPI ---

// SeedNotification queues a product alert for an account.
func (b *Backend) SeedNotification(email string, n domain.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n.ID == "" {
		b.notificationIDCounter++
		n.ID = strconv.FormatInt(b.notificationIDCounter, 10)
	}
	b.notifications[email] = append(b.notifications[email], n)
}

// Notifications returns the signed-in user's alerts.
func (b *Backend) Notifications(ctx context.Context) ([]domain.Notification, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil, ErrInvalidToken
	}
	return append([]domain.Notification(nil), b.notifications[b.session.email]...), nil
}

// MarkNotificationRead marks one alert as read.
func (b *Backend) MarkNotificationRead(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrInvalidToken
	}
	list := b.notifications[b.session.email]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

// MarkAllNotificationsRead marks every alert as read.
func (b *Backend) MarkAllNotificationsRead(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrInvalidToken
	}
	list := b.notifications[b.session.email]
	for i := range list {
		list[i].Read = true
	}
	return nil
}

// currentVendor returns the signed-in account if it is a vendor. Callers
// hold b.mu.
func (b *Backend) currentVendor() (*account, error) {
	if b.session == nil {
		return nil, ErrInvalidToken
	}
	if b.session.role != domain.RoleVendor {
		return nil, ErrForbidden
	}
	return b.session, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}

// TokenStore is an in-memory token store for tests.
type TokenStore struct {
	mu    sync.Mutex
	token string
}

var _ domain.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates an empty in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Load returns the stored token, or "" when none is stored.
func (s *TokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save replaces the stored token.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
