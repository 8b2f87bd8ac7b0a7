package client

import (
	"errors"
	"strings"

	"todoapp"
)

// maxTitleLen caps todo titles; the same rule the server documents but
// does not enforce.
const maxTitleLen = 100

var (
	errTitleEmpty   = errors.New("Title cannot be empty")
	errTitleTooLong = errors.New("Title cannot be longer than 100 characters")
)

// TodoForm is the draft state of the add/edit form. TargetID is set
// only in edit mode.
type TodoForm struct {
	TargetID    string
	Title       string
	Description string
	Priority    todoapp.Priority
}

// NewTodoForm returns an empty draft with the default priority.
func NewTodoForm() TodoForm {
	return TodoForm{Priority: todoapp.DefaultPriority}
}

// FormFromTodo prefills a draft for editing an existing todo.
func FormFromTodo(t todoapp.Todo) TodoForm {
	f := TodoForm{
		TargetID: t.ID,
		Title:    t.Title,
		Priority: t.Priority,
	}
	if t.Description != nil {
		f.Description = *t.Description
	}
	return f
}

// ValidateTitle applies the client-side title rule: non-empty after
// trimming and at most 100 characters. The returned error text is shown
// inline next to the field.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errTitleEmpty
	}
	if len(title) > maxTitleLen {
		return errTitleTooLong
	}
	return nil
}

// Validate reports whether the draft may be submitted.
func (f TodoForm) Validate() error {
	return ValidateTitle(f.Title)
}

// createPayload converts the draft into the create request body.
// An empty description is omitted rather than sent as "".
func (f TodoForm) createPayload() todoapp.CreateTodo {
	in := todoapp.CreateTodo{Title: f.Title, Priority: f.Priority}
	if f.Description != "" {
		d := f.Description
		in.Description = &d
	}
	return in
}

// updatePayload converts the draft into the partial update body.
func (f TodoForm) updatePayload() todoapp.UpdateTodo {
	title := f.Title
	priority := f.Priority
	in := todoapp.UpdateTodo{Title: &title, Priority: &priority}
	if f.Description != "" {
		d := f.Description
		in.Description = &d
	}
	return in
}
