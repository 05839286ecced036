package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/auth"
	"todoapp/internal/models"
	"todoapp/internal/storage/sqldb"
)

type userUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// handleGetUser returns the caller's own profile.
func (s *Server) handleGetUser(c *gin.Context) {
	userID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}

	user, err := s.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// handleUpdateUser changes username, email or password. The set of
// mutable fields is this closed list; a new password is rehashed before
// it reaches the store.
func (s *Server) handleUpdateUser(c *gin.Context) {
	userID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}

	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	upd := sqldb.UserUpdate{Username: req.Username, Email: req.Email}
	if req.Password != nil {
		if err := models.ValidatePassword(*req.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			s.respondStoreError(c, err)
			return
		}
		upd.HashedPassword = &hashed
	}

	user, err := s.store.UpdateUser(c.Request.Context(), userID, upd)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// handleDeleteUser removes the caller's account and all of its tasks.
func (s *Server) handleDeleteUser(c *gin.Context) {
	userID, ok := s.authorizeOwner(c)
	if !ok {
		return
	}

	if err := s.store.DeleteUser(c.Request.Context(), userID); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}
