package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health returns service liveness
// @Summary Health check
// @Description Returns service status, uptime and feature list
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HandlerService) Health(c *gin.Context) {
	mode := "live"
	if h.config.Server.DemoMode {
		mode = "demo"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "IMEI checker API is running",
		"mode":      mode,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"features":  []string{"Single IMEI Check", "Batch IMEI Check", "Categorization"},
	})
}
