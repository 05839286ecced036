package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/models"
)

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// handleListTasks returns the owner's tasks together with a count.
func (s *Server) handleListTasks(c *gin.Context) {
	ownerID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}

	tasks, err := s.store.ListTasks(c.Request.Context(), ownerID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

// handleCreateTask inserts a new task for the owner.
func (s *Server) handleCreateTask(c *gin.Context) {
	ownerID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	task, err := s.store.CreateTask(c.Request.Context(), ownerID, derefString(req.Title), derefString(req.Description))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// handleGetTask fetches one task within the owner's scope.
func (s *Server) handleGetTask(c *gin.Context) {
	ownerID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.store.GetTask(c.Request.Context(), ownerID, id)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// handleUpdateTask applies only the supplied fields.
func (s *Server) handleUpdateTask(c *gin.Context) {
	ownerID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	task, err := s.store.UpdateTask(c.Request.Context(), ownerID, id, req.Title, req.Description)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// handleToggleTask flips the completion flag.
func (s *Server) handleToggleTask(c *gin.Context) {
	ownerID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.store.ToggleTask(c.Request.Context(), ownerID, id)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task within the owner's scope.
func (s *Server) handleDeleteTask(c *gin.Context) {
	ownerID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteTask(c.Request.Context(), ownerID, id); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
