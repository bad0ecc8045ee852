package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"go.uber.org/zap"
)

const catalogDefaultLimit = 20

// CatalogHandler serves the public API catalog
type CatalogHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// ListAPIs handles catalog listing
// @Summary List APIs
// @Tags catalog
// @Produce json
// @Param category query string false "Category"
// @Param search query string false "Matches name or description"
// @Success 200 {object} dto.Response
// @Router /apis [get]
func (h *CatalogHandler) ListAPIs(c *gin.Context) {
	page, err := pageParams(c, catalogDefaultLimit)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.catalog.ListAPIs(c.Request.Context(), service.CatalogQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}, page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondPage(c, result.APIs, nil, page, result.Total)
}

// GetAPI handles API details
// @Summary Get API
// @Tags catalog
// @Produce json
// @Param id path string true "API ID"
// @Success 200 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /apis/{id} [get]
func (h *CatalogHandler) GetAPI(c *gin.Context) {
	api, err := h.catalog.GetAPI(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, api)
}

// GetProvider handles provider details
func (h *CatalogHandler) GetProvider(c *gin.Context) {
	provider, err := h.catalog.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, provider)
}

// ListProviderAPIs handles the API listing of one provider
func (h *CatalogHandler) ListProviderAPIs(c *gin.Context) {
	page, err := pageParams(c, catalogDefaultLimit)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.catalog.ListProviderAPIs(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondPage(c, result.APIs, nil, page, result.Total)
}
