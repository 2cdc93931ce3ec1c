// Package tokenfile persists the bearer token as a single file on disk, the
// durable-storage analog of the browser's well-known localStorage key.
package tokenfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"woodshop/internal/domain"
)

// Store holds one token string in one file. Writes are whole-value
// replacements; presence of the file is the only bootstrap signal.
type Store struct {
	path string
}

var _ domain.TokenStore = (*Store)(nil)

// New creates a Store at the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// Default creates a Store under the user's config directory.
func Default() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return New(filepath.Join(dir, "woodshop", "token")), nil
}

// Path returns the file location, for logs.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted token, or "" when none is stored.
func (s *Store) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save replaces the persisted token.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an absent token is not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
