package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"go.uber.org/zap"
)

const (
	purchasesDefaultLimit = 10
	historyDefaultLimit   = 20
)

// PurchaseHandler serves a developer's purchases and payment history
type PurchaseHandler struct {
	purchases service.PurchaseService
	payments  service.PaymentService
	logger    *zap.Logger
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchases service.PurchaseService, payments service.PaymentService, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchases: purchases,
		payments:  payments,
		logger:    logger,
	}
}

// ListPurchasedAPIs handles purchased API listing
// @Summary List purchased APIs
// @Description Verified purchases of a developer with token state and totals for the page
// @Tags developers
// @Produce json
// @Param developerAddress query string true "Developer wallet address"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param status query string false "active or expired"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Router /developers/purchased-apis [get]
func (h *PurchaseHandler) ListPurchasedAPIs(c *gin.Context) {
	developer, err := developerAddress(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	page, err := pageParams(c, purchasesDefaultLimit)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	filter, err := domain.ParsePaymentFilter(c.Query("status"), domain.PurchaseFilters)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	list, err := h.purchases.ListPurchases(c.Request.Context(), developer, filter, page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondPage(c, list.Purchases, list.Summary, page, list.Total)
}

// PaymentHistory handles payment history listing
// @Summary Payment history
// @Description Every payment of a developer, newest first
// @Tags payments
// @Produce json
// @Param developerAddress query string true "Developer wallet address"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param status query string false "verified, pending or failed"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Router /payments/history [get]
func (h *PurchaseHandler) PaymentHistory(c *gin.Context) {
	developer, err := developerAddress(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	page, err := pageParams(c, historyDefaultLimit)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	filter, err := domain.ParsePaymentFilter(c.Query("status"), domain.HistoryFilters)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	history, err := h.payments.History(c.Request.Context(), developer, filter, page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondPage(c, history.Transactions, nil, page, history.Total)
}
