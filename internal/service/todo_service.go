package service

import (
	"context"
	"errors"
	"time"

	"todoapp"
	"todoapp/internal/repository"

	"github.com/google/uuid"
)

// ErrNotFound reports a todo that does not exist or belongs to another user.
var ErrNotFound = errors.New("todo not found")

type TodoService struct {
	todos repository.Todos
}

func NewTodoService(todos repository.Todos) *TodoService {
	return &TodoService{todos: todos}
}

// List returns every todo owned by userID.
func (s *TodoService) List(ctx context.Context, userID string) ([]todoapp.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

// Get returns one todo scoped by owner.
func (s *TodoService) Get(ctx context.Context, id, userID string) (todoapp.Todo, error) {
	t, err := s.todos.GetByID(ctx, id, userID)
	if err != nil {
		return todoapp.Todo{}, err
	}
	if t == nil {
		return todoapp.Todo{}, ErrNotFound
	}
	return *t, nil
}

// Create generates id and timestamps and persists the new todo.
// Title rules are enforced client-side only; this layer accepts what it
// is given, matching the server contract.
func (s *TodoService) Create(ctx context.Context, userID string, in todoapp.CreateTodo) (todoapp.Todo, error) {
	priority := in.Priority
	if !priority.Valid() {
		priority = todoapp.DefaultPriority
	}

	now := time.Now().UTC()
	t := todoapp.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now, // equal to CreatedAt until the first mutation
	}
	if err := s.todos.Insert(ctx, t); err != nil {
		return todoapp.Todo{}, err
	}
	return t, nil
}

// Update fetches the scoped row, applies only the fields present in the
// partial payload, refreshes the updated timestamp, and persists.
// The read and write are separate statements; concurrent updates to the
// same todo are last-writer-wins.
func (s *TodoService) Update(ctx context.Context, id, userID string, in todoapp.UpdateTodo) (todoapp.Todo, error) {
	existing, err := s.todos.GetByID(ctx, id, userID)
	if err != nil {
		return todoapp.Todo{}, err
	}
	if existing == nil {
		return todoapp.Todo{}, ErrNotFound
	}

	t := *existing
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Priority != nil && in.Priority.Valid() {
		t.Priority = *in.Priority
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.todos.Update(ctx, t); err != nil {
		return todoapp.Todo{}, err
	}
	return t, nil
}

// Delete removes a todo scoped by owner; zero rows affected is NotFound.
func (s *TodoService) Delete(ctx context.Context, id, userID string) error {
	n, err := s.todos.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
