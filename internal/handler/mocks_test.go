package handler

import (
	"context"
	"time"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockPurchaseService struct{ mock.Mock }

func (m *mockPurchaseService) ListPurchases(ctx context.Context, developerAddress string, filter domain.PaymentFilter, page service.PageRequest) (*service.PurchaseList, error) {
	args := m.Called(ctx, developerAddress, filter, page)
	list, _ := args.Get(0).(*service.PurchaseList)
	return list, args.Error(1)
}

type mockPaymentService struct{ mock.Mock }

func (m *mockPaymentService) History(ctx context.Context, developerAddress string, filter domain.PaymentFilter, page service.PageRequest) (*service.PaymentHistory, error) {
	args := m.Called(ctx, developerAddress, filter, page)
	history, _ := args.Get(0).(*service.PaymentHistory)
	return history, args.Error(1)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) ListAPIs(ctx context.Context, query service.CatalogQuery, page service.PageRequest) (*service.APIPage, error) {
	args := m.Called(ctx, query, page)
	result, _ := args.Get(0).(*service.APIPage)
	return result, args.Error(1)
}

func (m *mockCatalogService) GetAPI(ctx context.Context, id string) (*domain.API, error) {
	args := m.Called(ctx, id)
	api, _ := args.Get(0).(*domain.API)
	return api, args.Error(1)
}

func (m *mockCatalogService) GetProvider(ctx context.Context, id string) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	provider, _ := args.Get(0).(*domain.Provider)
	return provider, args.Error(1)
}

func (m *mockCatalogService) ListProviderAPIs(ctx context.Context, providerID string, page service.PageRequest) (*service.APIPage, error) {
	args := m.Called(ctx, providerID, page)
	result, _ := args.Get(0).(*service.APIPage)
	return result, args.Error(1)
}

type mockProviderService struct{ mock.Mock }

func (m *mockProviderService) Register(ctx context.Context, walletAddress string, req *dto.RegisterProviderRequest) (*domain.Provider, error) {
	args := m.Called(ctx, walletAddress, req)
	provider, _ := args.Get(0).(*domain.Provider)
	return provider, args.Error(1)
}

func (m *mockProviderService) CreateAPI(ctx context.Context, walletAddress string, req *dto.CreateAPIRequest) (*domain.API, error) {
	args := m.Called(ctx, walletAddress, req)
	api, _ := args.Get(0).(*domain.API)
	return api, args.Error(1)
}

func (m *mockProviderService) SetAPIStatus(ctx context.Context, walletAddress, apiID string, active bool) (*domain.API, error) {
	args := m.Called(ctx, walletAddress, apiID, active)
	api, _ := args.Get(0).(*domain.API)
	return api, args.Error(1)
}

type mockUsageService struct{ mock.Mock }

func (m *mockUsageService) Consume(ctx context.Context, providerWallet string, req *dto.ConsumeTokenRequest) (*service.ConsumeResult, error) {
	args := m.Called(ctx, providerWallet, req)
	result, _ := args.Get(0).(*service.ConsumeResult)
	return result, args.Error(1)
}

func (m *mockUsageService) Stats(ctx context.Context, developerAddress, apiID string) (*service.UsageStats, error) {
	args := m.Called(ctx, developerAddress, apiID)
	stats, _ := args.Get(0).(*service.UsageStats)
	return stats, args.Error(1)
}

type stubValidator struct {
	claims *domain.ProviderClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*domain.ProviderClaims, error) {
	return s.claims, s.err
}

type stubLimiter struct {
	decision service.RateLimitDecision
	err      error
}

func (s stubLimiter) Allow(context.Context, string, int, time.Duration) (service.RateLimitDecision, error) {
	return s.decision, s.err
}
