package service

import (
	"context"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/repository"
	"github.com/stretchr/testify/mock"
)

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) List(ctx context.Context, q repository.PaymentQuery) ([]*domain.Payment, error) {
	args := m.Called(ctx, q)
	payments, _ := args.Get(0).([]*domain.Payment)
	return payments, args.Error(1)
}

func (m *mockPaymentRepo) Count(ctx context.Context, q repository.PaymentQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	payment, _ := args.Get(0).(*domain.Payment)
	return payment, args.Error(1)
}

func (m *mockPaymentRepo) HasVerifiedPayment(ctx context.Context, developerAddress, apiID string) (bool, error) {
	args := m.Called(ctx, developerAddress, apiID)
	return args.Bool(0), args.Error(1)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) ListByPaymentIDs(ctx context.Context, paymentIDs []string) (map[string][]domain.Token, error) {
	args := m.Called(ctx, paymentIDs)
	tokens, _ := args.Get(0).(map[string][]domain.Token)
	return tokens, args.Error(1)
}

func (m *mockTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*domain.Token, error) {
	args := m.Called(ctx, tokenHash)
	token, _ := args.Get(0).(*domain.Token)
	return token, args.Error(1)
}

func (m *mockTokenRepo) Consume(ctx context.Context, tokenID string, usage *domain.UsageLog) error {
	return m.Called(ctx, tokenID, usage).Error(0)
}

func (m *mockTokenRepo) CountActiveByPayment(ctx context.Context, paymentID string) (int, error) {
	args := m.Called(ctx, paymentID)
	return args.Int(0), args.Error(1)
}

type mockProviderRepo struct{ mock.Mock }

func (m *mockProviderRepo) Create(ctx context.Context, provider *domain.Provider) error {
	return m.Called(ctx, provider).Error(0)
}

func (m *mockProviderRepo) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	provider, _ := args.Get(0).(*domain.Provider)
	return provider, args.Error(1)
}

func (m *mockProviderRepo) GetByWallet(ctx context.Context, walletAddress string) (*domain.Provider, error) {
	args := m.Called(ctx, walletAddress)
	provider, _ := args.Get(0).(*domain.Provider)
	return provider, args.Error(1)
}

type mockAPIRepo struct{ mock.Mock }

func (m *mockAPIRepo) Create(ctx context.Context, api *domain.API) error {
	return m.Called(ctx, api).Error(0)
}

func (m *mockAPIRepo) GetByID(ctx context.Context, id string) (*domain.API, error) {
	args := m.Called(ctx, id)
	api, _ := args.Get(0).(*domain.API)
	return api, args.Error(1)
}

func (m *mockAPIRepo) List(ctx context.Context, q repository.APIQuery) ([]*domain.APIListing, error) {
	args := m.Called(ctx, q)
	apis, _ := args.Get(0).([]*domain.APIListing)
	return apis, args.Error(1)
}

func (m *mockAPIRepo) Count(ctx context.Context, q repository.APIQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockAPIRepo) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) ListByAPI(ctx context.Context, apiID string, offset, limit int) ([]*domain.Review, error) {
	args := m.Called(ctx, apiID, offset, limit)
	reviews, _ := args.Get(0).([]*domain.Review)
	return reviews, args.Error(1)
}

func (m *mockReviewRepo) Summary(ctx context.Context, apiID string) (domain.RatingSummary, error) {
	args := m.Called(ctx, apiID)
	return args.Get(0).(domain.RatingSummary), args.Error(1)
}

type mockFavoriteRepo struct{ mock.Mock }

func (m *mockFavoriteRepo) Create(ctx context.Context, favorite *domain.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *mockFavoriteRepo) Delete(ctx context.Context, developerAddress, apiID string) error {
	return m.Called(ctx, developerAddress, apiID).Error(0)
}

func (m *mockFavoriteRepo) ListByDeveloper(ctx context.Context, developerAddress string) ([]*domain.Favorite, error) {
	args := m.Called(ctx, developerAddress)
	favorites, _ := args.Get(0).([]*domain.Favorite)
	return favorites, args.Error(1)
}

type mockUsageRepo struct{ mock.Mock }

func (m *mockUsageRepo) Aggregate(ctx context.Context, filter domain.UsageFilter) (domain.UsageTotals, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.UsageTotals), args.Error(1)
}

type mockAPICache struct{ mock.Mock }

func (m *mockAPICache) Get(ctx context.Context, id string) (*domain.API, bool, error) {
	args := m.Called(ctx, id)
	api, _ := args.Get(0).(*domain.API)
	return api, args.Bool(1), args.Error(2)
}

func (m *mockAPICache) Set(ctx context.Context, api *domain.API) error {
	return m.Called(ctx, api).Error(0)
}

func (m *mockAPICache) Invalidate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type nopAPICache struct{}

func (nopAPICache) Get(context.Context, string) (*domain.API, bool, error) {
	return nil, false, nil
}

func (nopAPICache) Set(context.Context, *domain.API) error {
	return nil
}

func (nopAPICache) Invalidate(context.Context, string) error {
	return nil
}
