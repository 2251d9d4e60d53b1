package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health answers GET and POST /health. It reports degraded with a 503
// when the database does not respond.
func (h *Handlers) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"service":   "blogd",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Hello is a trivial liveness probe that touches nothing.
func (h *Handlers) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "hello from blogd"})
}
