package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todoapp/internal/auth"
	"todoapp/internal/models"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the wire shape shared by signup, login and refresh.
func tokenResponse(token string) gin.H {
	return gin.H{"access_token": token, "token_type": "bearer"}
}

// handleSignup creates an account and returns a session token. The
// username is derived from the email's local part when not supplied.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := models.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	username := req.Username
	if username == "" {
		derived, err := auth.DeriveUsername(req.Email, func(name string) (bool, error) {
			return s.store.UsernameTaken(ctx, name)
		})
		if err != nil {
			s.respondStoreError(c, err)
			return
		}
		username = derived
	} else if err := models.ValidateUsername(username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	user, err := s.store.CreateUser(ctx, models.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          req.Email,
		HashedPassword: hashed,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(token))
}

// handleLogin authenticates by email and password. Unknown email and
// wrong password produce the exact same response so account existence
// cannot be probed.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user, err := s.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.respondStoreError(c, err)
		return
	}
	if err != nil || !auth.CheckPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(token))
}

// handleRefresh reissues a token with the same claims and a fresh
// expiry. There is no rotation; the old token stays valid until it
// expires on its own.
func (s *Server) handleRefresh(c *gin.Context) {
	claims := currentClaims(c)
	token, err := s.tokens.Issue(claims.UserID, claims.Username)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(token))
}
