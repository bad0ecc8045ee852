package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"go.uber.org/zap"
)

const reviewsDefaultLimit = 10

// ReviewHandler handles API reviews
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *zap.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// List returns a page of reviews with the API's average rating as summary
func (h *ReviewHandler) List(c *gin.Context) {
	page, err := pageParams(c, reviewsDefaultLimit)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.reviews.List(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondPage(c, result.Reviews, result.Summary, page, result.Summary.Count)
}

// Create handles review submission
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, review)
}
