package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Summary    json.RawMessage `json:"summary"`
	Pagination *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
	Error string `json:"error"`
}

func serve(t *testing.T, router *gin.Engine, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func purchaseRouter(purchases *mockPurchaseService, payments *mockPaymentService) *gin.Engine {
	h := NewPurchaseHandler(purchases, payments, zap.NewNop())
	r := gin.New()
	r.GET("/api/v1/developers/purchased-apis", h.ListPurchasedAPIs)
	r.GET("/api/v1/payments/history", h.PaymentHistory)
	return r
}

func TestListPurchasedAPIs(t *testing.T) {
	purchases := &mockPurchaseService{}
	router := purchaseRouter(purchases, &mockPaymentService{})

	purchases.On("ListPurchases", mock.Anything, "0xabcdef", domain.FilterAll, service.PageRequest{Page: 1, Limit: 10}).
		Return(&service.PurchaseList{
			Purchases: []service.Purchase{{PaymentID: "p1", Status: domain.PurchaseActive}},
			Summary:   service.PurchaseSummary{TotalAPIsPurchased: 1, TotalSpent: 13.75, ActivePurchases: 1},
			Total:     11,
		}, nil)

	w, body := serve(t, router, http.MethodGet, "/api/v1/developers/purchased-apis?developerAddress=0xABCDEF")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	var data []map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Len(t, data, 1)
	assert.Equal(t, "p1", data[0]["paymentId"])
	assert.Equal(t, "active", data[0]["status"])

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Summary, &summary))
	assert.Equal(t, 13.75, summary["totalSpent"])
	assert.Equal(t, float64(1), summary["activePurchases"])

	require.NotNil(t, body.Pagination)
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, 10, body.Pagination.Limit)
	assert.Equal(t, 11, body.Pagination.Total)
	assert.Equal(t, 2, body.Pagination.TotalPages)
	purchases.AssertExpectations(t)
}

func TestListPurchasedAPIs_StatusFilter(t *testing.T) {
	purchases := &mockPurchaseService{}
	router := purchaseRouter(purchases, &mockPaymentService{})

	purchases.On("ListPurchases", mock.Anything, "0xabc", domain.FilterExpiredOnly, service.PageRequest{Page: 3, Limit: 5}).
		Return(&service.PurchaseList{Purchases: []service.Purchase{}}, nil)

	w, body := serve(t, router, http.MethodGet, "/api/v1/developers/purchased-apis?developerAddress=0xabc&status=expired&page=3&limit=5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(body.Data))
	purchases.AssertExpectations(t)
}

func TestListPurchasedAPIs_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing developer", query: ""},
		{name: "blank developer", query: "developerAddress=%20"},
		{name: "unknown status", query: "developerAddress=0xabc&status=pending"},
		{name: "bad page", query: "developerAddress=0xabc&page=zero"},
		{name: "negative limit", query: "developerAddress=0xabc&limit=-1"},
		{name: "limit too large", query: "developerAddress=0xabc&limit=1000"},
		{name: "page offset overflows", query: "developerAddress=0xabc&page=922337203685477582&limit=10"},
		{name: "page beyond int", query: "developerAddress=0xabc&page=99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purchases := &mockPurchaseService{}
			router := purchaseRouter(purchases, &mockPaymentService{})

			w, body := serve(t, router, http.MethodGet, "/api/v1/developers/purchased-apis?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
			purchases.AssertNotCalled(t, "ListPurchases", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestListPurchasedAPIs_InternalError(t *testing.T) {
	purchases := &mockPurchaseService{}
	router := purchaseRouter(purchases, &mockPaymentService{})

	purchases.On("ListPurchases", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("pq: connection refused"))

	w, body := serve(t, router, http.MethodGet, "/api/v1/developers/purchased-apis?developerAddress=0xabc")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, internalErrorMessage, body.Error)
}

func TestPaymentHistory(t *testing.T) {
	payments := &mockPaymentService{}
	router := purchaseRouter(&mockPurchaseService{}, payments)

	payments.On("History", mock.Anything, "0xabc", domain.FilterPendingOnly, service.PageRequest{Page: 1, Limit: 20}).
		Return(&service.PaymentHistory{
			Transactions: []service.Transaction{{ID: "p1", Status: domain.PaymentPending}},
			Total:        1,
		}, nil)

	w, body := serve(t, router, http.MethodGet, "/api/v1/payments/history?developerAddress=0xAbC&status=PENDING")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Empty(t, body.Summary)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 20, body.Pagination.Limit)
	assert.Equal(t, 1, body.Pagination.TotalPages)
}

func TestPaymentHistory_RejectsPurchaseStatus(t *testing.T) {
	router := purchaseRouter(&mockPurchaseService{}, &mockPaymentService{})

	w, _ := serve(t, router, http.MethodGet, "/api/v1/payments/history?developerAddress=0xabc&status=active")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: x", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: x", service.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: x", service.ErrConflict), http.StatusConflict},
		{service.ErrTokenUsed, http.StatusConflict},
		{service.ErrTokenExpired, http.StatusGone},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
