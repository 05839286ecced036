// Package auth provides session token issuance and verification plus
// credential hashing for the web API. Tokens are stateless: there is no
// server-side session record and no revocation, so logout is purely a
// client concern.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"todoapp/internal/models"
)

// DefaultTTL is the validity window of a freshly issued token.
const DefaultTTL = 30 * time.Minute

// MinSecretLen is the minimum signing secret length in bytes.
const MinSecretLen = 32

// Claims is the identity assertion carried by a session token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer. The secret must be at least
// MinSecretLen bytes. Only a zero ttl falls back to DefaultTTL; a
// negative ttl is kept and yields already-expired tokens.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) < MinSecretLen {
		return nil, errors.New("jwt secret must be at least 32 characters")
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for the given identity, expiring after
// the issuer's ttl.
func (ti *TokenIssuer) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// Verify parses and validates a token, failing closed. Expiry is the
// only failure cause distinguishable by the caller; any other problem
// (bad signature, malformed payload, missing identity claim) comes back
// as ErrTokenInvalid.
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.ErrTokenInvalid
		}
		return ti.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		return nil, models.ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// TTL exposes the configured validity window.
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}
