package service

import (
	"context"
	"time"

	"todoapp"
	"todoapp/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Todos exposes the CRUD surface, always scoped by the owning user id.
type Todos interface {
	List(ctx context.Context, userID string) ([]todoapp.Todo, error)
	Get(ctx context.Context, id, userID string) (todoapp.Todo, error)
	Create(ctx context.Context, userID string, in todoapp.CreateTodo) (todoapp.Todo, error)
	Update(ctx context.Context, id, userID string, in todoapp.UpdateTodo) (todoapp.Todo, error)
	Delete(ctx context.Context, id, userID string) error
}

// Root Service aggregates all sub-services.
type Service struct {
	Todos
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, signingKey string, tokenTTL time.Duration) *Service {
	return &Service{
		Todos:         NewTodoService(repos.Todos),
		Authorization: NewAuthService(repos.Users, signingKey, tokenTTL),
	}
}
