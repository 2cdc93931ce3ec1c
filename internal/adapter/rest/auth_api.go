package rest

import (
	"context"
	"net/http"
	"net/url"

	"woodshop/internal/domain"

	"golang.org/x/oauth2"
)

var _ domain.AuthAPI = (*Client)(nil)

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp struct {
		Email string `json:"email"`
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/user/login", nil, nil, body, &resp); err != nil {
		return nil, err
	}

	return &domain.User{
		Email: resp.Email,
		Role:  domain.ParseRole(resp.Role),
		Token: resp.Token,
	}, nil
}

// Register creates a pending client account. The field names are the
// backend's exact casing.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	body := struct {
		ClientFirstName string `json:"ClientFirstName"`
		ClientOtherName string `json:"ClientOtherName"`
		ClientEmail     string `json:"ClientEmail"`
		ClientPassword  string `json:"ClientPassword"`
	}{
		ClientFirstName: reg.FirstName,
		ClientOtherName: reg.OtherName,
		ClientEmail:     reg.Email,
		ClientPassword:  reg.Password,
	}
	return c.do(ctx, http.MethodPost, "/user/register", nil, nil, body, nil)
}

// RegisterVendor completes a vendor invitation. The invite token travels both
// as a query parameter and in the body, matching what the backend accepts.
func (c *Client) RegisterVendor(ctx context.Context, reg domain.VendorRegistration) error {
	body := struct {
		VendorPassword string `json:"VendorPassword"`
		VendorTin      string `json:"VendorTin"`
		ShopName       string `json:"ShopName"`
		Token          string `json:"token"`
	}{
		VendorPassword: reg.Password,
		VendorTin:      reg.TIN,
		ShopName:       reg.ShopName,
		Token:          reg.InviteToken,
	}
	query := url.Values{"token": {reg.InviteToken}}
	return c.do(ctx, http.MethodPost, "/vendor/register", query, nil, body, nil)
}

// InviteVendor starts a vendor invitation. Admin-only; the backend rejects
// other callers.
func (c *Client) InviteVendor(ctx context.Context, invite domain.VendorInvite) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	body := struct {
		VendorEmail     string `json:"VendorEmail"`
		VendorFirstName string `json:"VendorFirstName"`
		VendorOtherName string `json:"VendorOtherName"`
	}{
		VendorEmail:     invite.Email,
		VendorFirstName: invite.FirstName,
		VendorOtherName: invite.OtherName,
	}
	return c.do(ctx, http.MethodPost, "/admin/invite", nil, tok, body, nil)
}

// Verify validates an explicit token against the backend and returns the
// account it belongs to. It bypasses the ambient token source on purpose:
// bootstrap runs before the session is trusted.
func (c *Client) Verify(ctx context.Context, token string) (*domain.User, error) {
	var resp struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if err := c.do(ctx, http.MethodGet, "/user/verify", nil, tok, nil, &resp); err != nil {
		return nil, err
	}
	return &domain.User{Email: resp.Email, Role: domain.ParseRole(resp.Role)}, nil
}
