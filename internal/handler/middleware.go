package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the middlewares.
const (
	contextKeyUserId    = "userId"
	contextKeyRequestId = "requestId"
)

// requestId tags every request with an id that is echoed in the response
// headers and attached to error log entries.
func (h *Handlers) requestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(contextKeyRequestId, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// requireAuth extracts the bearer token, validates it, and stores the
// authenticated user's id in the request context. Requests without a valid
// token are rejected with 401.
func (h *Handlers) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}
		claims, err := h.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		c.Set(contextKeyUserId, claims.UserId)
		c.Next()
	}
}

// owner returns the authenticated user's id for the current request.
func owner(c *gin.Context) int64 {
	return c.GetInt64(contextKeyUserId)
}

// abortServerError logs the failure and answers with a generic 500. Storage
// failures are never masked as empty results.
func (h *Handlers) abortServerError(c *gin.Context, err error) {
	h.log.Error("request failed",
		"request_id", c.GetString(contextKeyRequestId),
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
}
