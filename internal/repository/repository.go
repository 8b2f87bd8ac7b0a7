package repository

import (
	"context"
	"database/sql"

	"todoapp"
)

type Users interface {
	Create(ctx context.Context, u todoapp.User) error
	GetByUsername(ctx context.Context, username string) (*todoapp.User, error)
}

type Todos interface {
	ListByUser(ctx context.Context, userID string) ([]todoapp.Todo, error)
	GetByID(ctx context.Context, id, userID string) (*todoapp.Todo, error)
	Insert(ctx context.Context, t todoapp.Todo) error
	Update(ctx context.Context, t todoapp.Todo) error
	Delete(ctx context.Context, id, userID string) (int64, error)
}

type Repository struct {
	Users Users
	Todos Todos
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Todos: NewTodoRepository(db),
	}
}
