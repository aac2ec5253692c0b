package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"matcha-journal-backend/pkg/cache"
	"matcha-journal-backend/pkg/jwt"
)

// RevokedSessionKey is the Redis key holding a revoked session JTI.
// The auth service writes it on logout; this middleware checks it.
func RevokedSessionKey(jti string) string {
	return "session:revoked:" + jti
}

// AuthMiddleware resolves the session token into an authenticated identity.
// The token is read from the session cookie (browser clients) or the
// Authorization header (API clients). The resolved user id is placed on the
// request context as "user_id"; nothing about the session is global state.
func AuthMiddleware(manager *jwt.Manager, sessions cache.Cache, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			unauthorized(c, "missing session token")
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			unauthorized(c, "invalid session token")
			return
		}

		// A logged-out token is invalid even before its expiry.
		revoked, err := sessions.Exists(c.Request.Context(), RevokedSessionKey(claims.ID))
		if err == nil && revoked {
			unauthorized(c, "session has been logged out")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			unauthorized(c, "invalid user ID in token")
			return
		}

		c.Set("user_id", userID)
		c.Set("user_email", claims.Email)
		c.Set("session_jti", claims.ID)
		c.Set("session_token", token)

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(401, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
	c.Abort()
}
