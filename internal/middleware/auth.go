package middleware

import (
	"errors"
	"strings"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtManager)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid or missing token", err)
			}
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth resolves the caller when a token is present but lets
// anonymous requests through.
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := claimsFromHeader(c, jwtManager); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireWriter blocks guest accounts from write endpoints. Must run after
// JWTAuth.
func RequireWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsGuest(c) {
			common.ErrorResponse(c, 403, "Guest users cannot perform this action", common.ErrGuestNotAllowed)
			c.Abort()
			return
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwtManager *jwt.Manager) (*jwt.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, jwt.ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, jwt.ErrInvalidToken
	}

	return jwtManager.VerifyAccess(parts[1])
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set("userID", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("isGuest", claims.IsGuest)
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) uint64 {
	userID, exists := c.Get("userID")
	if !exists {
		return 0
	}
	if id, ok := userID.(uint64); ok {
		return id
	}
	return 0
}

// GetUsername extracts username from context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get("username")
	if !exists {
		return ""
	}
	if str, ok := username.(string); ok {
		return str
	}
	return ""
}

// IsGuest reports whether the caller authenticated as a guest account
func IsGuest(c *gin.Context) bool {
	isGuest, exists := c.Get("isGuest")
	if !exists {
		return false
	}
	if b, ok := isGuest.(bool); ok {
		return b
	}
	return false
}
