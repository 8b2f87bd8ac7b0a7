package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todoapp"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`
)

// Create inserts a new user row. Username uniqueness is enforced only by
// the schema constraint; a duplicate surfaces as a wrapped driver error.
func (r *UserRepository) Create(ctx context.Context, u todoapp.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*todoapp.User, error) {
	var u todoapp.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
