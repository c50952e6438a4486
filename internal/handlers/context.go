package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scribehq/scribe/internal/middleware"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// contextWithTimeout derives a deadline-bound context from the request.
func contextWithTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(requestContext(c), d)
}

// currentUserID extracts the authenticated account id placed by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middleware.CtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
