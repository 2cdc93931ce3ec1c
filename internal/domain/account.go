// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"strings"
)

// Role identifies what a signed-in account is allowed to see.
type Role string

// Roles recognised by the backend.
const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
	RoleClient Role = "client"
)

// ParseRole normalises a backend-supplied role string. Unrecognised values
// fall back to RoleClient, the least privileged role.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleVendor:
		return RoleVendor
	default:
		return RoleClient
	}
}

// User is the authenticated account as reported by the backend.
type User struct {
	Email string
	Role  Role
	Token string
}

// Registration is the payload for creating a pending client account.
type Registration struct {
	FirstName string
	OtherName string
	Email     string
	Password  string
}

// VendorRegistration completes a vendor invitation. InviteToken is the
// single-use token from the invitation email.
type VendorRegistration struct {
	Password    string
	TIN         string
	ShopName    string
	InviteToken string
}

// VendorInvite is the admin-only payload that starts a vendor invitation.
type VendorInvite struct {
	Email     string
	FirstName string
	OtherName string
}

// TokenStore defines the port for durable bearer-token storage. The token is
// a single whole-value entry; its presence is the only session state that
// survives a restart.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// AuthAPI defines the port for authentication calls against the backend.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Register(ctx context.Context, reg Registration) error
	RegisterVendor(ctx context.Context, reg VendorRegistration) error
	InviteVendor(ctx context.Context, invite VendorInvite) error
	Verify(ctx context.Context, token string) (*User, error)
}
