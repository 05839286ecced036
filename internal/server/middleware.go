package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todoapp/internal/auth"
	"todoapp/internal/models"
)

const claimsKey = "claims"

// requireAuth extracts the bearer token, verifies it and stores the
// claims in the request context. Expiry is the only failure reported
// distinguishably; every other problem is a generic invalid token.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
		return
	}

	claims, err := s.tokens.Verify(parts[1])
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, models.ErrTokenExpired) {
			msg = "token expired"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}

	c.Set(claimsKey, claims)
	c.Next()
}

// currentClaims returns the verified identity stored by requireAuth.
func currentClaims(c *gin.Context) *auth.Claims {
	return c.MustGet(claimsKey).(*auth.Claims)
}

// authorizeOwner enforces the ownership invariant: the :user_id path
// segment must equal the identity proven by the session token. On a
// mismatch the request is refused before any store access.
func (s *Server) authorizeOwner(c *gin.Context) (string, bool) {
	claims := currentClaims(c)
	pathOwner := c.Param("user_id")
	if pathOwner != claims.UserID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized to access this resource"})
		return "", false
	}
	return claims.UserID, true
}
