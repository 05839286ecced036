package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapp/internal/auth"
	"todoapp/internal/models"
	"todoapp/internal/storage/sqldb"
)

// Server provides the HTTP handlers for the multi-user todo API.
type Server struct {
	engine *gin.Engine
	store  *sqldb.Store
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *sqldb.Store, tokens *auth.TokenIssuer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/health", "/api/health"))

	srv := &Server{
		engine: router,
		store:  store,
		tokens: tokens,
		logger: logger,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the auth, task and user endpoints. Every route
// under /api/:user_id passes the bearer middleware and the ownership
// gate before any store access.
func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleWelcome)
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", s.handleSignup)
			authGroup.POST("/login", s.handleLogin)
			authGroup.POST("/refresh", s.requireAuth, s.handleRefresh)
		}

		users := api.Group("/users", s.requireAuth)
		{
			users.GET("/:user_id", s.handleGetUser)
			users.PUT("/:user_id", s.handleUpdateUser)
			users.DELETE("/:user_id", s.handleDeleteUser)
		}

		owner := api.Group("/:user_id", s.requireAuth)
		{
			owner.GET("/tasks", s.handleListTasks)
			owner.POST("/tasks", s.handleCreateTask)
			owner.GET("/tasks/:id", s.handleGetTask)
			owner.PUT("/tasks/:id", s.handleUpdateTask)
			owner.DELETE("/tasks/:id", s.handleDeleteTask)
			owner.PATCH("/tasks/:id/complete", s.handleToggleTask)
		}
	}
}

// handleWelcome answers the root path.
func (s *Server) handleWelcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Todo API!"})
}

// handleHealth reports 200 when the database answers a ping and 503
// otherwise.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Error("health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "connected"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondStoreError maps a store failure to an HTTP status. Database
// faults are logged with detail but surface as a generic 500 body.
func (s *Server) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEmptyTitle),
		errors.Is(err, models.ErrInvalidUsername),
		errors.Is(err, models.ErrInvalidEmail),
		errors.Is(err, models.ErrShortPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
