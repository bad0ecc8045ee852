package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"go.uber.org/zap"
)

// FavoriteHandler handles developer bookmarks
type FavoriteHandler struct {
	favorites service.FavoriteService
	logger    *zap.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites service.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	developer, err := developerAddress(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	favorites, err := h.favorites.List(c.Request.Context(), developer)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, favorites)
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	favorite, err := h.favorites.Add(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, favorite)
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	developer, err := developerAddress(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), developer, c.Param("apiId")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"apiId": c.Param("apiId"), "removed": true})
}
