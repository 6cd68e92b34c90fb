package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mazen160/go-random"

	"imeicheck/pkg/checker"
	"imeicheck/pkg/imei"
)

// demoBatchLimit caps how many entries a demo batch processes.
const demoBatchLimit = 5

var demoStatuses = []struct {
	status   string
	category checker.Category
}{
	{checker.StatusActive2Days, checker.CategoryActive2Days},
	{checker.StatusActive3To15, checker.CategoryActive3To15},
	{checker.StatusExpired, checker.CategoryActiveMore15},
	{checker.StatusNotActive, checker.CategoryNotActive},
	{checker.StatusNotExist, checker.CategoryNotExist},
}

// demoResult fabricates a plausible classification for environments where
// no Chrome is available.
func demoResult(canonical string) checker.CheckResult {
	idx, _ := random.IntRange(0, len(demoStatuses))
	pick := demoStatuses[idx%len(demoStatuses)]

	if pick.category == checker.CategoryNotExist {
		return checker.CheckResult{
			IMEI:           canonical,
			Status:         checker.StatusNotExist,
			Output:         canonical + " - not exists",
			Model:          "not exists",
			Color:          "-",
			InDate:         "-",
			OutDate:        "-",
			ActivationDate: "-",
			DaysActive:     "-",
			Category:       checker.CategoryNotExist,
		}
	}

	modelNum, _ := random.IntRange(100, 999)
	result := checker.CheckResult{
		IMEI:           canonical,
		Status:         pick.status,
		Output:         canonical + " - " + pick.status,
		Model:          fmt.Sprintf("Device %d", modelNum),
		Color:          "Black",
		InDate:         "-",
		OutDate:        "-",
		ActivationDate: "-",
		DaysActive:     "-",
		Category:       pick.category,
	}

	switch pick.category {
	case checker.CategoryActive2Days:
		days, _ := random.IntRange(0, 3)
		result.DaysActive = days
	case checker.CategoryActive3To15:
		days, _ := random.IntRange(3, 16)
		result.DaysActive = days
	case checker.CategoryActiveMore15:
		days, _ := random.IntRange(16, 120)
		result.DaysActive = days
	}
	return result
}

// DemoCheckIMEI serves randomized fake data for one IMEI
// @Summary Check one IMEI (demo)
// @Description Demo variant returning randomized fake data, for environments without a headless browser
// @Tags Demo
// @Accept json
// @Produce json
// @Success 200 {object} checker.CheckResult
// @Failure 400 {object} map[string]interface{}
// @Router /api/check-imei [post]
func (h *HandlerService) DemoCheckIMEI(c *gin.Context) {
	var req checkIMEIRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IMEI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IMEI is required"})
		return
	}

	cleaned := imei.Clean(req.IMEI)
	if !imei.IsCanonical(cleaned) {
		c.JSON(http.StatusOK, checker.WrongFormatResult(req.IMEI))
		return
	}

	c.JSON(http.StatusOK, demoResult(cleaned))
}

// DemoCheckBatchIMEI serves randomized fake data for a batch
// @Summary Check a batch of IMEIs (demo)
// @Description Demo variant returning randomized fake data; processes at most 5 entries
// @Tags Demo
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/check-batch-imei [post]
func (h *HandlerService) DemoCheckBatchIMEI(c *gin.Context) {
	var req checkBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IMEIs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IMEI array is required"})
		return
	}

	entries := req.IMEIs
	if len(entries) > demoBatchLimit {
		entries = entries[:demoBatchLimit]
	}

	results := make([]checker.CheckResult, 0, len(entries))
	for _, raw := range entries {
		cleaned := imei.Clean(raw)
		if !imei.IsCanonical(cleaned) {
			results = append(results, checker.WrongFormatResult(raw))
			continue
		}
		results = append(results, demoResult(cleaned))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
		"message": "demo batch check",
	})
}
