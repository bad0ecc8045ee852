package service

import (
	"context"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
)

// PageRequest is a 1-based page of a listing
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows skipped before this page
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// PurchaseService lists what a developer has bought
type PurchaseService interface {
	ListPurchases(ctx context.Context, developerAddress string, filter domain.PaymentFilter, page PageRequest) (*PurchaseList, error)
}

// PaymentService exposes a developer's payment history
type PaymentService interface {
	History(ctx context.Context, developerAddress string, filter domain.PaymentFilter, page PageRequest) (*PaymentHistory, error)
}

// CatalogService serves the public API catalog
type CatalogService interface {
	ListAPIs(ctx context.Context, query CatalogQuery, page PageRequest) (*APIPage, error)
	GetAPI(ctx context.Context, id string) (*domain.API, error)
	GetProvider(ctx context.Context, id string) (*domain.Provider, error)
	ListProviderAPIs(ctx context.Context, providerID string, page PageRequest) (*APIPage, error)
}

// ProviderService manages a provider's own listings
type ProviderService interface {
	Register(ctx context.Context, walletAddress string, req *dto.RegisterProviderRequest) (*domain.Provider, error)
	CreateAPI(ctx context.Context, walletAddress string, req *dto.CreateAPIRequest) (*domain.API, error)
	SetAPIStatus(ctx context.Context, walletAddress, apiID string, active bool) (*domain.API, error)
}

// ReviewService handles API reviews
type ReviewService interface {
	List(ctx context.Context, apiID string, page PageRequest) (*ReviewPage, error)
	Create(ctx context.Context, apiID string, req *dto.CreateReviewRequest) (*domain.Review, error)
}

// FavoriteService handles developer bookmarks
type FavoriteService interface {
	List(ctx context.Context, developerAddress string) ([]*domain.Favorite, error)
	Add(ctx context.Context, req *dto.AddFavoriteRequest) (*domain.Favorite, error)
	Remove(ctx context.Context, developerAddress, apiID string) error
}

// UsageService meters API calls against usage tokens
type UsageService interface {
	Consume(ctx context.Context, providerWallet string, req *dto.ConsumeTokenRequest) (*ConsumeResult, error)
	Stats(ctx context.Context, developerAddress, apiID string) (*UsageStats, error)
}
