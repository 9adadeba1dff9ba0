package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.database.Ping(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("Database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"message":   "Database is unreachable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Projectdesk is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
