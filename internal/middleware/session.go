package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionIDKey is the context key for the client session ID
	SessionIDKey = "session_id"
	// SessionIDHeader carries the client session between requests
	SessionIDHeader = "X-Session-ID"
)

// Session resolves the client session that owns the engagement counter.
// Clients without a session get a new one and must send it back on later
// requests to keep their counter. A session that is not a UUID is rejected
// with 400.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		} else {
			parsed, err := uuid.Parse(sessionID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error": gin.H{
						"code":       "BAD_REQUEST",
						"message":    SessionIDHeader + " must be a UUID",
						"request_id": GetRequestID(c),
					},
				})
				return
			}
			sessionID = parsed.String()
		}

		c.Set(SessionIDKey, sessionID)
		c.Writer.Header().Set(SessionIDHeader, sessionID)

		c.Next()
	}
}

// GetSessionID retrieves the session ID from the Gin context.
func GetSessionID(c *gin.Context) string {
	return getString(c, SessionIDKey)
}
