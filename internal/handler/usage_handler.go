package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"go.uber.org/zap"
)

// UsageHandler handles token consumption and usage stats
type UsageHandler struct {
	usage  service.UsageService
	logger *zap.Logger
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(usage service.UsageService, logger *zap.Logger) *UsageHandler {
	return &UsageHandler{usage: usage, logger: logger}
}

// Consume handles token consumption
// @Summary Consume usage token
// @Description Spend one usage token for a metered API call
// @Tags usage
// @Accept json
// @Produce json
// @Param request body dto.ConsumeTokenRequest true "Metered call"
// @Security BearerAuth
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Failure 410 {object} dto.Response
// @Router /tokens/consume [post]
func (h *UsageHandler) Consume(c *gin.Context) {
	var req dto.ConsumeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.usage.Consume(c.Request.Context(), callerWallet(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, result)
}

// Stats handles usage statistics
func (h *UsageHandler) Stats(c *gin.Context) {
	developer, err := developerAddress(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	stats, err := h.usage.Stats(c.Request.Context(), developer, c.Query("apiId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, stats)
}
