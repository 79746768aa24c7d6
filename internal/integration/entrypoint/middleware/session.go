// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/session"
	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// SessionHeader carries the session id on every request.
	SessionHeader = "X-Session-ID"
	// SessionKey is the context key for the resolved session.
	SessionKey ContextKey = "session"
)

// SessionMiddleware resolves the X-Session-ID header into a session.
type SessionMiddleware struct {
	sessionStore adapter.SessionStore
}

// NewSessionMiddleware creates a new session middleware instance.
func NewSessionMiddleware(sessionStore adapter.SessionStore) *SessionMiddleware {
	return &SessionMiddleware{
		sessionStore: sessionStore,
	}
}

// Require returns a Gin middleware handler that rejects requests without a
// valid session.
func (m *SessionMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: SessionHeader + " header is required",
				Code:  string(domainerror.ErrCodeSessionNotFound),
			})
			c.Abort()
			return
		}

		sess, err := m.sessionStore.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domainerror.ErrSessionNotFound) {
				c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
					Error: "Session not found or expired",
					Code:  string(domainerror.ErrCodeSessionNotFound),
				})
			} else {
				slog.ErrorContext(c.Request.Context(), "Failed to load session", "error", err)
				c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: "An internal error occurred",
				})
			}
			c.Abort()
			return
		}

		c.Set(string(SessionKey), sess)
		c.Next()
	}
}

// Optional returns a Gin middleware handler that resolves the session when the
// header names a live one and lets the request through otherwise.
func (m *SessionMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(SessionHeader); id != "" {
			if sess, err := m.sessionStore.Get(c.Request.Context(), id); err == nil {
				c.Set(string(SessionKey), sess)
			}
		}
		c.Next()
	}
}

// GetSessionFromContext extracts the session from the Gin context.
func GetSessionFromContext(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(string(SessionKey))
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}
