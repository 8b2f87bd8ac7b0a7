package handlers

import (
	"errors"
	"net/http"

	"todoapp"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errRegister    = "failed to register user"
	errLogin       = "failed to log in"
	errListTodos   = "failed to list todos"
	errGetTodo     = "failed to load todo"
	errCreateTodo  = "failed to create todo"
	errUpdateTodo  = "failed to update todo"
	errDeleteTodo  = "failed to delete todo"
	errNotFoundMsg = "not found"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondTodoError maps service failures on a single-todo operation.
func (h *Handler) respondTodoError(c *gin.Context, userMsg, logKey string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errNotFoundMsg})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, "id", c.Param("id"))
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Success      200  {array}   todoapp.Todo
// @Failure      500  {object}  map[string]string
// @Router       /api/todos [get]
// @Security     BearerAuth
func (h *Handler) listTodos(c *gin.Context) {
	todos, err := h.services.List(c.Request.Context(), h.callerID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListTodos, "todos_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// @Summary      Get one todo
// @Tags         todos
// @Produce      json
// @Param        id   path      string  true  "Todo id"
// @Success      200  {object}  todoapp.Todo
// @Failure      404  {object}  map[string]string
// @Router       /api/todos/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTodo(c *gin.Context) {
	t, err := h.services.Get(c.Request.Context(), c.Param("id"), h.callerID(c))
	if err != nil {
		h.respondTodoError(c, errGetTodo, "todos_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Create a todo
// @Description  Title length rules are enforced client-side only; this endpoint accepts any non-missing title.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body  todoapp.CreateTodo  true  "New todo"
// @Success      201   {object}  todoapp.Todo
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/todos [post]
// @Security     BearerAuth
func (h *Handler) createTodo(c *gin.Context) {
	var input todoapp.CreateTodo
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	t, err := h.services.Create(c.Request.Context(), h.callerID(c), input)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateTodo, "todos_create_failed", err)
		return
	}

	h.notifyTodosChanged(t.UserID)
	c.JSON(http.StatusCreated, t)
}

// @Summary      Update a todo
// @Description  Partial update: only the fields present in the body change.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Todo id"
// @Param        body  body  todoapp.UpdateTodo true  "Changed fields"
// @Success      200   {object}  todoapp.Todo
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/todos/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTodo(c *gin.Context) {
	var input todoapp.UpdateTodo
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	t, err := h.services.Update(c.Request.Context(), c.Param("id"), h.callerID(c), input)
	if err != nil {
		h.respondTodoError(c, errUpdateTodo, "todos_update_failed", err)
		return
	}

	h.notifyTodosChanged(t.UserID)
	c.JSON(http.StatusOK, t)
}

// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Param        id   path  string  true  "Todo id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/todos/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTodo(c *gin.Context) {
	userID := h.callerID(c)
	if err := h.services.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.respondTodoError(c, errDeleteTodo, "todos_delete_failed", err)
		return
	}

	h.notifyTodosChanged(userID)
	c.Status(http.StatusNoContent)
}
