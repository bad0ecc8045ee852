package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrTokenUsed):
		return http.StatusConflict
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Unexpected errors are logged and hidden from the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		message = internalErrorMessage
	}

	c.AbortWithStatusJSON(status, dto.Response{Success: false, Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.Response{Success: false, Error: message})
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.Response{Success: true, Data: data})
}

func respondPage(c *gin.Context, data interface{}, summary interface{}, page service.PageRequest, total int) {
	c.JSON(http.StatusOK, dto.Response{
		Success:    true,
		Data:       data,
		Summary:    summary,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	})
}
