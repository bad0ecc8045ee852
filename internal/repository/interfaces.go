package repository

import (
	"context"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
)

// PaymentRepository reads payments joined with their API and provider
type PaymentRepository interface {
	List(ctx context.Context, q PaymentQuery) ([]*domain.Payment, error)
	Count(ctx context.Context, q PaymentQuery) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	HasVerifiedPayment(ctx context.Context, developerAddress, apiID string) (bool, error)
}

// TokenRepository defines methods for usage token operations
type TokenRepository interface {
	ListByPaymentIDs(ctx context.Context, paymentIDs []string) (map[string][]domain.Token, error)
	GetByHash(ctx context.Context, tokenHash string) (*domain.Token, error)
	Consume(ctx context.Context, tokenID string, usage *domain.UsageLog) error
	CountActiveByPayment(ctx context.Context, paymentID string) (int, error)
}

// ProviderRepository defines methods for provider operations
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) error
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	GetByWallet(ctx context.Context, walletAddress string) (*domain.Provider, error)
}

// APIRepository defines methods for catalog operations
type APIRepository interface {
	Create(ctx context.Context, api *domain.API) error
	GetByID(ctx context.Context, id string) (*domain.API, error)
	List(ctx context.Context, q APIQuery) ([]*domain.APIListing, error)
	Count(ctx context.Context, q APIQuery) (int, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// ReviewRepository defines methods for review operations
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByAPI(ctx context.Context, apiID string, offset, limit int) ([]*domain.Review, error)
	Summary(ctx context.Context, apiID string) (domain.RatingSummary, error)
}

// FavoriteRepository defines methods for favorite operations
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	Delete(ctx context.Context, developerAddress, apiID string) error
	ListByDeveloper(ctx context.Context, developerAddress string) ([]*domain.Favorite, error)
}

// UsageLogRepository aggregates recorded API calls
type UsageLogRepository interface {
	Aggregate(ctx context.Context, filter domain.UsageFilter) (domain.UsageTotals, error)
}
