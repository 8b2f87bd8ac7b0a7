package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const userFileName = "user.json"

// StoredUser is the last-known account kept on disk between runs. It
// only prefills the auth UI; it is not a security boundary.
type StoredUser struct {
	Username string    `json:"username"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"saved_at"`
}

// UserStore persists one StoredUser under a single key, the terminal
// counterpart of the browser's localStorage entry.
type UserStore struct {
	path string
}

// NewUserStore places the user file under the OS config dir.
func NewUserStore() (*UserStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	dir := filepath.Join(base, "todoapp")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &UserStore{path: filepath.Join(dir, userFileName)}, nil
}

// NewUserStoreAt uses an explicit file path. Useful in tests.
func NewUserStoreAt(path string) *UserStore {
	return &UserStore{path: path}
}

// Load returns the stored user, or nil when none is saved.
func (s *UserStore) Load() (*StoredUser, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read user file: %w", err)
	}
	var u StoredUser
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse user file: %w", err)
	}
	return &u, nil
}

// Save overwrites the stored user.
func (s *UserStore) Save(u StoredUser) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write user file: %w", err)
	}
	return nil
}

// Clear removes the stored user, ignoring a missing file.
func (s *UserStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove user file: %w", err)
	}
	return nil
}
