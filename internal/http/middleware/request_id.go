package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/vinay2003/Airion-backend-sub001/internal/platform/correlation"
)

// RequestIDHeader carries the request correlation ID
const RequestIDHeader = "X-Request-ID"

// RequestID propagates X-Request-ID, generating one when absent, and
// stores it on the request context for the logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = correlation.NewID()
		}
		c.Request = c.Request.WithContext(correlation.WithID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
