package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todoapp"
)

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Ensure implementation of Todos interface at compile time.
var _ Todos = (*TodoRepository)(nil)

const (
	todoColumns = `id, user_id, title, description, completed, priority, created_at, updated_at`

	selectTodosByUserSQL = `SELECT ` + todoColumns + ` FROM todos WHERE user_id = ?`
	selectTodoByIDSQL    = `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND user_id = ?`

	insertTodoSQL = `INSERT INTO todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	updateTodoSQL = `UPDATE todos SET title = ?, description = ?, completed = ?, priority = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`

	deleteTodoSQL = `DELETE FROM todos WHERE id = ? AND user_id = ?`
)

// scanTodo reads one row, translating the lowercase stored priority
// back to the API form.
func scanTodo(row interface{ Scan(...any) error }) (*todoapp.Todo, error) {
	var (
		t        todoapp.Todo
		priority string
	)
	if err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.Completed, &priority, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p, err := todoapp.PriorityFromStorage(priority)
	if err != nil {
		return nil, err
	}
	t.Priority = p
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

// ListByUser returns every todo owned by userID. No ordering is imposed.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]todoapp.Todo, error) {
	rows, err := r.db.QueryContext(ctx, selectTodosByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select todos for user %q: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	todos := make([]todoapp.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo row: %w", err)
		}
		todos = append(todos, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

// GetByID fetches one todo scoped by owner. Returns (nil, nil) if absent
// or owned by a different user.
func (r *TodoRepository) GetByID(ctx context.Context, id, userID string) (*todoapp.Todo, error) {
	t, err := scanTodo(r.db.QueryRowContext(ctx, selectTodoByIDSQL, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select todo %q: %w", id, err)
	}
	return t, nil
}

// Insert persists a fully populated todo row.
func (r *TodoRepository) Insert(ctx context.Context, t todoapp.Todo) error {
	_, err := r.db.ExecContext(ctx, insertTodoSQL,
		t.ID, t.UserID, t.Title, t.Description,
		t.Completed, t.Priority.StorageValue(),
		t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert todo %q: %w", t.ID, err)
	}
	return nil
}

// Update overwrites the mutable columns of an existing row.
func (r *TodoRepository) Update(ctx context.Context, t todoapp.Todo) error {
	_, err := r.db.ExecContext(ctx, updateTodoSQL,
		t.Title, t.Description, t.Completed, t.Priority.StorageValue(),
		t.UpdatedAt.UTC(), t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update todo %q: %w", t.ID, err)
	}
	return nil
}

// Delete removes a todo scoped by owner and reports rows affected.
func (r *TodoRepository) Delete(ctx context.Context, id, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteTodoSQL, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete todo %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for todo %q: %w", id, err)
	}
	return n, nil
}
