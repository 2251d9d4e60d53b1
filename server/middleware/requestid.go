package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation id on requests and responses.
const HeaderRequestID = "X-Request-Id"

// ContextRequestIDKey is the gin context key the request logger reads.
const ContextRequestIDKey = "request_id"

// RequestID assigns each request a correlation id, honoring one supplied
// by the caller, and echoes it on the response so blogd log lines can be
// matched to client reports.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
