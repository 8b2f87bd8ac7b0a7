package todoapp

import (
	"fmt"
	"time"
)

// Priority is the closed set of todo priorities.
// JSON and API use the capitalized form; storage uses lowercase.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultPriority is applied when a create payload omits the field.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// StorageValue returns the lowercase form persisted in the database.
func (p Priority) StorageValue() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "medium"
	}
}

// PriorityFromStorage translates the lowercase storage form back to the
// API form. Unknown values are rejected rather than silently defaulted.
func PriorityFromStorage(s string) (Priority, error) {
	switch s {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q in storage", s)
}

// User is an account row. The credential is stored as a bcrypt hash.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialized
	CreatedAt    time.Time `json:"created_at"`
}

// Todo is a single todo item owned by exactly one user.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTodo is the payload for POST /api/todos.
type CreateTodo struct {
	Title       string   `json:"title" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

// UpdateTodo is the partial payload for PUT /api/todos/:id.
// Each field is independently optional; nil means "leave unchanged".
type UpdateTodo struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
}

// Credentials is the payload for register and login.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the bearer token returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
}
