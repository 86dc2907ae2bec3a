package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

type cutoverHealthService interface {
	PingLegacy(ctx context.Context) (models.CutoverPingResult, error)
}

// CutoverHandler exposes rollout diagnostics for operators.
type CutoverHandler struct {
	service cutoverHealthService
}

// NewCutoverHandler constructs a CutoverHandler.
func NewCutoverHandler(svc cutoverHealthService) *CutoverHandler {
	return &CutoverHandler{service: svc}
}

// PingLegacy godoc
// @Summary Probe the legacy scheduling backend
// @Tags System
// @Produce json
// @Success 200 {object} models.CutoverPingResult
// @Failure 503 {object} models.CutoverPingResult
// @Router /internal/cutover/legacy [get]
func (h *CutoverHandler) PingLegacy(c *gin.Context) {
	if h == nil || h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cutover service unavailable"})
		return
	}
	result, err := h.service.PingLegacy(c.Request.Context())
	status := http.StatusOK
	if err != nil || !result.Reachable {
		status = http.StatusServiceUnavailable
	}
	if err != nil {
		c.Header("X-Cutover-Error", err.Error())
	}
	c.JSON(status, result)
}
