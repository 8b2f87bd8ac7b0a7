package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"todoapp"
)

// ErrNotFound reports a 404 from the server. It is the only failure the
// UI distinguishes from generic error text.
var ErrNotFound = errors.New("item not found")

// API issues REST calls against the todo server. No retries, no
// timeout, no cancellation: every call is one round trip whose failure
// is terminal and surfaced to the caller.
type API struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewAPI creates a client for a base URL like "http://localhost:8080/api".
func NewAPI(baseURL string) *API {
	return &API{baseURL: baseURL, http: &http.Client{}}
}

// SetToken attaches a bearer token to subsequent requests.
// An empty token reverts to unauthenticated (demo-scoped) calls.
func (a *API) SetToken(token string) {
	a.token = token
}

func (a *API) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account and returns its bearer token.
func (a *API) Register(creds todoapp.Credentials) (todoapp.AuthResponse, error) {
	var out todoapp.AuthResponse
	err := a.do(http.MethodPost, "/auth/register", creds, &out)
	return out, err
}

// Login verifies credentials and returns a bearer token.
func (a *API) Login(creds todoapp.Credentials) (todoapp.AuthResponse, error) {
	var out todoapp.AuthResponse
	err := a.do(http.MethodPost, "/auth/login", creds, &out)
	return out, err
}

// Logout tells the server the session ended. Always succeeds server-side.
func (a *API) Logout() error {
	return a.do(http.MethodPost, "/auth/logout", nil, nil)
}

// ListTodos fetches the caller's full list.
func (a *API) ListTodos() ([]todoapp.Todo, error) {
	var out []todoapp.Todo
	err := a.do(http.MethodGet, "/todos", nil, &out)
	return out, err
}

// GetTodo fetches one todo by id.
func (a *API) GetTodo(id string) (todoapp.Todo, error) {
	var out todoapp.Todo
	err := a.do(http.MethodGet, "/todos/"+id, nil, &out)
	return out, err
}

// CreateTodo persists a new todo and returns the created row.
func (a *API) CreateTodo(in todoapp.CreateTodo) (todoapp.Todo, error) {
	var out todoapp.Todo
	err := a.do(http.MethodPost, "/todos", in, &out)
	return out, err
}

// UpdateTodo sends a partial update and returns the merged row.
func (a *API) UpdateTodo(id string, in todoapp.UpdateTodo) (todoapp.Todo, error) {
	var out todoapp.Todo
	err := a.do(http.MethodPut, "/todos/"+id, in, &out)
	return out, err
}

// DeleteTodo removes a todo by id.
func (a *API) DeleteTodo(id string) error {
	return a.do(http.MethodDelete, "/todos/"+id, nil, nil)
}
