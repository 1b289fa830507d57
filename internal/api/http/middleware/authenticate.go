package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/passworld/internal/logger"
)

// SessionKey is the gin context key holding the validated session id.
const SessionKey = "session_id"

// SessionValidator resolves a session id from a bearer token.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// Authenticate rejects requests without a valid session token.
type Authenticate struct {
	validator SessionValidator
	logger    *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(validator SessionValidator, logger *logger.Logger) *Authenticate {
	return &Authenticate{validator: validator, logger: logger}
}

// Handle parses the Authorization header and stores the session id in the context.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			return
		}

		sessionID, err := m.validator.Validate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil || sessionID == "" {
			m.logger.Debug("Authenticate: rejected token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			return
		}

		c.Set(SessionKey, sessionID)
		c.Next()
	}
}
