package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"imeicheck/pkg/checker"
)

type checkIMEIRequest struct {
	IMEI string `json:"imei"`
}

type checkBatchRequest struct {
	IMEIs []string `json:"imeis"`
}

// CheckIMEI classifies a single IMEI
// @Summary Check one IMEI
// @Description Submits one IMEI through the browser session and returns its activation classification. A wrong-format IMEI is a 200 result, not an error.
// @Tags IMEI
// @Accept json
// @Produce json
// @Success 200 {object} checker.CheckResult
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/check-imei [post]
func (h *HandlerService) CheckIMEI(c *gin.Context) {
	var req checkIMEIRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IMEI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IMEI is required"})
		return
	}

	result, err := h.checker.CheckOne(c.Request.Context(), req.IMEI)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   fmt.Sprintf("Check failed: %v", err),
			"imei":    req.IMEI,
			"success": false,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckBatchIMEI classifies a batch of IMEIs
// @Summary Check a batch of IMEIs
// @Description Validates, deduplicates and submits IMEIs in chunks through the browser session. A failing chunk degrades to error results for its own IMEIs only.
// @Tags IMEI
// @Accept json
// @Produce json
// @Success 200 {object} checker.BatchResult
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/check-batch-imei [post]
func (h *HandlerService) CheckBatchIMEI(c *gin.Context) {
	var req checkBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IMEIs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IMEI array is required"})
		return
	}

	result, err := h.checker.CheckBatch(c.Request.Context(), req.IMEIs)
	if err != nil {
		if errors.Is(err, checker.ErrNoValidIMEIs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid IMEI numbers provided"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   fmt.Sprintf("Batch processing failed: %v", err),
			"success": false,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
