package handlers

import (
	"context"
	"net/http"

	"todoapp"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	parseID       string
	parseErr      error

	lastRegisterUsername string
	lastLoginUsername    string
	lastParseToken       string
}

func (m *mockAuth) Register(ctx context.Context, username, password string) (string, error) {
	m.lastRegisterUsername = username
	return m.registerToken, m.registerErr
}
func (m *mockAuth) Login(ctx context.Context, username, password string) (string, error) {
	m.lastLoginUsername = username
	return m.loginToken, m.loginErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTodos struct {
	listTodos []todoapp.Todo
	listErr   error
	getTodo   todoapp.Todo
	getErr    error
	created   todoapp.Todo
	createErr error
	updated   todoapp.Todo
	updateErr error
	deleteErr error

	lastUserID   string
	lastTodoID   string
	lastCreate   todoapp.CreateTodo
	lastUpdate   todoapp.UpdateTodo
	deleteCalled int
}

func (m *mockTodos) List(ctx context.Context, userID string) ([]todoapp.Todo, error) {
	m.lastUserID = userID
	return m.listTodos, m.listErr
}
func (m *mockTodos) Get(ctx context.Context, id, userID string) (todoapp.Todo, error) {
	m.lastTodoID, m.lastUserID = id, userID
	return m.getTodo, m.getErr
}
func (m *mockTodos) Create(ctx context.Context, userID string, in todoapp.CreateTodo) (todoapp.Todo, error) {
	m.lastUserID, m.lastCreate = userID, in
	return m.created, m.createErr
}
func (m *mockTodos) Update(ctx context.Context, id, userID string, in todoapp.UpdateTodo) (todoapp.Todo, error) {
	m.lastTodoID, m.lastUserID, m.lastUpdate = id, userID, in
	return m.updated, m.updateErr
}
func (m *mockTodos) Delete(ctx context.Context, id, userID string) error {
	m.lastTodoID, m.lastUserID = id, userID
	m.deleteCalled++
	return m.deleteErr
}

const testDemoUserID = "demo-user"

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, testDemoUserID)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}
