package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"go.uber.org/zap"
)

// ProviderHandler handles provider self-management
type ProviderHandler struct {
	providers service.ProviderService
	logger    *zap.Logger
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(providers service.ProviderService, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{providers: providers, logger: logger}
}

// Register handles provider registration
// @Summary Register provider
// @Description Register the authenticated wallet as an API provider
// @Tags providers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterProviderRequest true "Provider details"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /providers [post]
func (h *ProviderHandler) Register(c *gin.Context) {
	var req dto.RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	provider, err := h.providers.Register(c.Request.Context(), callerWallet(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, provider)
}

// CreateAPI handles API creation
// @Summary Create API
// @Tags providers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAPIRequest true "API details"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Router /provider/apis [post]
func (h *ProviderHandler) CreateAPI(c *gin.Context) {
	var req dto.CreateAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	api, err := h.providers.CreateAPI(c.Request.Context(), callerWallet(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, api)
}

// SetAPIStatus handles API activation and deactivation
func (h *ProviderHandler) SetAPIStatus(c *gin.Context) {
	var req dto.SetAPIStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	api, err := h.providers.SetAPIStatus(c.Request.Context(), callerWallet(c), c.Param("id"), *req.IsActive)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, api)
}
