package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoapp"
)

// mockTodos is a lightweight in-test mock for repository.Todos.
type mockTodos struct {
	ListByUserFn func(ctx context.Context, userID string) ([]todoapp.Todo, error)
	GetByIDFn    func(ctx context.Context, id, userID string) (*todoapp.Todo, error)
	InsertFn     func(ctx context.Context, t todoapp.Todo) error
	UpdateFn     func(ctx context.Context, t todoapp.Todo) error
	DeleteFn     func(ctx context.Context, id, userID string) (int64, error)

	inserted []todoapp.Todo
	updated  []todoapp.Todo
}

func (m *mockTodos) ListByUser(ctx context.Context, userID string) ([]todoapp.Todo, error) {
	return m.ListByUserFn(ctx, userID)
}
func (m *mockTodos) GetByID(ctx context.Context, id, userID string) (*todoapp.Todo, error) {
	return m.GetByIDFn(ctx, id, userID)
}
func (m *mockTodos) Insert(ctx context.Context, t todoapp.Todo) error {
	m.inserted = append(m.inserted, t)
	return m.InsertFn(ctx, t)
}
func (m *mockTodos) Update(ctx context.Context, t todoapp.Todo) error {
	m.updated = append(m.updated, t)
	return m.UpdateFn(ctx, t)
}
func (m *mockTodos) Delete(ctx context.Context, id, userID string) (int64, error) {
	return m.DeleteFn(ctx, id, userID)
}

func TestTodoService_Create(t *testing.T) {
	mock := &mockTodos{InsertFn: func(ctx context.Context, t todoapp.Todo) error { return nil }}
	svc := NewTodoService(mock)

	desc := "with oat milk"
	created, err := svc.Create(context.Background(), "u-1", todoapp.CreateTodo{
		Title:       "buy coffee",
		Description: &desc,
		Priority:    todoapp.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.UserID != "u-1" || created.Title != "buy coffee" {
		t.Fatalf("unexpected todo: %+v", created)
	}
	if created.Completed {
		t.Fatalf("new todo must start incomplete")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("created_at %v != updated_at %v", created.CreatedAt, created.UpdatedAt)
	}
	if len(mock.inserted) != 1 {
		t.Fatalf("expected 1 Insert call, got %d", len(mock.inserted))
	}
}

func TestTodoService_Create_DefaultsPriority(t *testing.T) {
	mock := &mockTodos{InsertFn: func(ctx context.Context, t todoapp.Todo) error { return nil }}
	svc := NewTodoService(mock)

	created, err := svc.Create(context.Background(), "u-1", todoapp.CreateTodo{Title: "x"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Priority != todoapp.PriorityMedium {
		t.Fatalf("priority = %v, want Medium default", created.Priority)
	}
}

func TestTodoService_Get(t *testing.T) {
	existing := todoapp.Todo{ID: "t-1", UserID: "u-1", Title: "x"}

	t.Run("found", func(t *testing.T) {
		svc := NewTodoService(&mockTodos{
			GetByIDFn: func(ctx context.Context, id, userID string) (*todoapp.Todo, error) {
				return &existing, nil
			},
		})
		got, err := svc.Get(context.Background(), "t-1", "u-1")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if got.ID != "t-1" {
			t.Fatalf("unexpected todo: %+v", got)
		}
	})

	t.Run("absent maps to ErrNotFound", func(t *testing.T) {
		svc := NewTodoService(&mockTodos{
			GetByIDFn: func(ctx context.Context, id, userID string) (*todoapp.Todo, error) {
				return nil, nil
			},
		})
		if _, err := svc.Get(context.Background(), "t-404", "u-1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get error = %v, want ErrNotFound", err)
		}
	})
}

func TestTodoService_Update_PartialMerge(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	desc := "keep me"
	existing := todoapp.Todo{
		ID: "t-1", UserID: "u-1", Title: "old title", Description: &desc,
		Completed: false, Priority: todoapp.PriorityLow,
		CreatedAt: createdAt, UpdatedAt: createdAt,
	}

	mock := &mockTodos{
		GetByIDFn: func(ctx context.Context, id, userID string) (*todoapp.Todo, error) {
			cp := existing
			return &cp, nil
		},
		UpdateFn: func(ctx context.Context, t todoapp.Todo) error { return nil },
	}
	svc := NewTodoService(mock)

	completed := true
	merged, err := svc.Update(context.Background(), "t-1", "u-1", todoapp.UpdateTodo{
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	// Only the sent field changed.
	if !merged.Completed {
		t.Fatalf("completed flag not applied")
	}
	if merged.Title != "old title" || merged.Priority != todoapp.PriorityLow {
		t.Fatalf("untouched fields changed: %+v", merged)
	}
	if merged.Description == nil || *merged.Description != "keep me" {
		t.Fatalf("description should be unchanged, got %+v", merged.Description)
	}
	if !merged.UpdatedAt.After(merged.CreatedAt) {
		t.Fatalf("updated_at %v should advance past created_at %v", merged.UpdatedAt, merged.CreatedAt)
	}
	if len(mock.updated) != 1 {
		t.Fatalf("expected 1 Update call, got %d", len(mock.updated))
	}
}

func TestTodoService_Update_NotFound(t *testing.T) {
	svc := NewTodoService(&mockTodos{
		GetByIDFn: func(ctx context.Context, id, userID string) (*todoapp.Todo, error) {
			return nil, nil
		},
	})

	title := "anything"
	_, err := svc.Update(context.Background(), "t-404", "u-1", todoapp.UpdateTodo{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update error = %v, want ErrNotFound", err)
	}
}

func TestTodoService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "deleted", rows: 1},
		{name: "zero rows is NotFound", rows: 0, wantErr: ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTodoService(&mockTodos{
				DeleteFn: func(ctx context.Context, id, userID string) (int64, error) {
					return tc.rows, nil
				},
			})
			err := svc.Delete(context.Background(), "t-1", "u-1")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Delete error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
		})
	}
}
