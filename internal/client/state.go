package client

import (
	"fmt"

	"todoapp"
)

// Filter selects which part of the cached list is visible. Switching
// filters is a pure client-side predicate and never refetches.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Apply returns the subset of todos the filter admits.
func (f Filter) Apply(todos []todoapp.Todo) []todoapp.Todo {
	if f == FilterAll {
		return todos
	}
	out := make([]todoapp.Todo, 0, len(todos))
	for _, t := range todos {
		switch f {
		case FilterActive:
			if !t.Completed {
				out = append(out, t)
			}
		case FilterCompleted:
			if t.Completed {
				out = append(out, t)
			}
		}
	}
	return out
}

// ViewMode is the UI mode of the todo-list screen.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewAdd
	ViewEdit
)

// View is the screen state. EditID is set only in ViewEdit.
type View struct {
	Mode   ViewMode
	EditID string
}

// ViewEvent drives view transitions.
type ViewEvent int

const (
	// EventAdd opens the add form from the list.
	EventAdd ViewEvent = iota
	// EventEdit opens the edit form for a specific todo from the list.
	EventEdit
	// EventCancel abandons a form and returns to the list.
	EventCancel
	// EventSubmitted reports a successful form submission.
	EventSubmitted
)

// Transition is the exhaustive view-state transition function.
// todoID is consulted only for EventEdit. Any pair not listed below is
// rejected.
func Transition(v View, ev ViewEvent, todoID string) (View, error) {
	switch v.Mode {
	case ViewList:
		switch ev {
		case EventAdd:
			return View{Mode: ViewAdd}, nil
		case EventEdit:
			if todoID == "" {
				return v, fmt.Errorf("edit transition requires a todo id")
			}
			return View{Mode: ViewEdit, EditID: todoID}, nil
		}
	case ViewAdd, ViewEdit:
		switch ev {
		case EventCancel, EventSubmitted:
			return View{Mode: ViewList}, nil
		}
	}
	return v, fmt.Errorf("invalid transition: mode %d event %d", v.Mode, ev)
}

// ListScreen holds the per-visit state of the todo-list screen: one
// fetched snapshot, the filter, and the view mode. Every mutation goes
// to the server first and then refetches; there is no optimistic
// update, so the last response to land wins.
type ListScreen struct {
	api    *API
	todos  []todoapp.Todo
	filter Filter
	view   View
}

func NewListScreen(api *API) *ListScreen {
	return &ListScreen{api: api}
}

// Refresh replaces the cached snapshot with the server's current list.
func (s *ListScreen) Refresh() error {
	todos, err := s.api.ListTodos()
	if err != nil {
		return err
	}
	s.todos = todos
	return nil
}

// Todos returns the full cached snapshot.
func (s *ListScreen) Todos() []todoapp.Todo { return s.todos }

// Visible applies the current filter to the cached snapshot.
func (s *ListScreen) Visible() []todoapp.Todo { return s.filter.Apply(s.todos) }

// SetFilter switches the visible subset without touching the network.
func (s *ListScreen) SetFilter(f Filter) { s.filter = f }

func (s *ListScreen) Filter() Filter { return s.filter }

func (s *ListScreen) View() View { return s.view }

// OpenAdd moves List -> AddForm.
func (s *ListScreen) OpenAdd() error {
	v, err := Transition(s.view, EventAdd, "")
	if err != nil {
		return err
	}
	s.view = v
	return nil
}

// OpenEdit moves List -> EditForm(id).
func (s *ListScreen) OpenEdit(todoID string) error {
	v, err := Transition(s.view, EventEdit, todoID)
	if err != nil {
		return err
	}
	s.view = v
	return nil
}

// Cancel abandons the open form.
func (s *ListScreen) Cancel() error {
	v, err := Transition(s.view, EventCancel, "")
	if err != nil {
		return err
	}
	s.view = v
	return nil
}

// EditDraft prefills a form for the todo the edit view targets.
func (s *ListScreen) EditDraft() (TodoForm, error) {
	if s.view.Mode != ViewEdit {
		return TodoForm{}, fmt.Errorf("no todo is being edited")
	}
	for _, t := range s.todos {
		if t.ID == s.view.EditID {
			return FormFromTodo(t), nil
		}
	}
	return TodoForm{}, ErrNotFound
}

// Submit validates the draft, sends it (create in add mode, partial
// update in edit mode), refetches, and returns to the list view. A
// validation or request failure leaves the view unchanged so the form
// stays open with its draft intact.
func (s *ListScreen) Submit(f TodoForm) error {
	if err := f.Validate(); err != nil {
		return err
	}

	var err error
	if s.view.Mode == ViewEdit {
		_, err = s.api.UpdateTodo(s.view.EditID, f.updatePayload())
	} else {
		_, err = s.api.CreateTodo(f.createPayload())
	}
	if err != nil {
		return err
	}

	if err := s.Refresh(); err != nil {
		return err
	}
	v, err := Transition(s.view, EventSubmitted, "")
	if err != nil {
		return err
	}
	s.view = v
	return nil
}

// Toggle flips a todo's completed flag via partial update and refetches.
func (s *ListScreen) Toggle(todoID string) error {
	for _, t := range s.todos {
		if t.ID != todoID {
			continue
		}
		completed := !t.Completed
		if _, err := s.api.UpdateTodo(todoID, todoapp.UpdateTodo{Completed: &completed}); err != nil {
			return err
		}
		return s.Refresh()
	}
	return ErrNotFound
}

// Delete removes a todo and refetches.
func (s *ListScreen) Delete(todoID string) error {
	if err := s.api.DeleteTodo(todoID); err != nil {
		return err
	}
	return s.Refresh()
}
