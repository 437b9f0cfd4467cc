package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyhub/progress/internal/service"
)

const (
	// AuthorizationHeader is the header key for the session token
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for the session token
	BearerPrefix = "Bearer "
	// SessionIDKey is the context key for the session ID
	SessionIDKey = "sessionID"
)

// SessionMiddleware resolves the bearer session token into a session ID
func SessionMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Session token is required",
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		sessionID, err := sessions.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session token",
			})
			c.Abort()
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID extracts the session ID from the gin context
func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID, exists := c.Get(SessionIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := sessionID.(uuid.UUID)
	return id, ok
}

// RequireSession returns the session ID or aborts the request
func RequireSession(c *gin.Context) (uuid.UUID, bool) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Session required",
		})
		c.Abort()
		return uuid.Nil, false
	}
	return sessionID, true
}
