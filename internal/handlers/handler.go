package handlers

import (
	"todoapp/internal/logger"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services   *service.Service
	log        *logger.Logger
	hub        *wsHub
	demoUserID string
}

// NewHandler constructs a new HTTP handler with dependencies.
// demoUserID is the account unauthenticated todo requests fall back to.
func NewHandler(services *service.Service, log *logger.Logger, demoUserID string) *Handler {
	return &Handler{
		services:   services,
		log:        log,
		hub:        newWSHub(),
		demoUserID: demoUserID,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		h.registerAuthRoutes(api)
		h.registerTodoRoutes(api)
	}

	// WebSocket change feed on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}
}

func (h *Handler) registerTodoRoutes(api *gin.RouterGroup) {
	todos := api.Group("/todos", h.callerScopeMiddleware)
	{
		todos.GET("", h.listTodos)
		todos.POST("", h.createTodo)
		todos.GET("/:id", h.getTodo)
		todos.PUT("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}
}
