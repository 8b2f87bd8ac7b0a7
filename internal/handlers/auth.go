package handlers

import (
	"errors"
	"net/http"

	"todoapp"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  todoapp.Credentials  true  "Credentials"
// @Success      201   {object}  todoapp.AuthResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input todoapp.Credentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		// Duplicate usernames surface here via the schema constraint.
		h.logAndJSONError(c, http.StatusInternalServerError, errRegister, "auth_register_failed", err,
			"username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, todoapp.AuthResponse{Token: token})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  todoapp.Credentials  true  "Credentials"
// @Success      200   {object}  todoapp.AuthResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input todoapp.Credentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errLogin, "auth_login_failed", err,
				"username", input.Username)
		}
		return
	}

	c.JSON(http.StatusOK, todoapp.AuthResponse{Token: token})
}

// @Summary      Log out
// @Description  No server-side session exists; this always succeeds.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
