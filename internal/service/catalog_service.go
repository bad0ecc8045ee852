package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogQuery narrows the public catalog
type CatalogQuery struct {
	Category string
	Search   string
}

// APIPage is one page of catalog listings
type APIPage struct {
	APIs  []*domain.APIListing
	Total int
}

type catalogService struct {
	apiRepo      repository.APIRepository
	providerRepo repository.ProviderRepository
	cache        APICache
	logger       *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	apiRepo repository.APIRepository,
	providerRepo repository.ProviderRepository,
	cache APICache,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		apiRepo:      apiRepo,
		providerRepo: providerRepo,
		cache:        cache,
		logger:       logger,
	}
}

// ListAPIs returns available APIs matching the query
func (s *catalogService) ListAPIs(ctx context.Context, query CatalogQuery, page PageRequest) (*APIPage, error) {
	return s.listAPIs(ctx, repository.APIQuery{
		Category:      query.Category,
		Search:        query.Search,
		AvailableOnly: true,
		Offset:        page.Offset(),
		Limit:         page.Limit,
	})
}

// GetAPI returns an API if it and its provider are active
func (s *catalogService) GetAPI(ctx context.Context, id string) (*domain.API, error) {
	if err := validateID("api", id); err != nil {
		return nil, err
	}

	api, hit, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("api cache read failed", zap.String("api_id", id), zap.Error(err))
	}

	if !hit {
		api, err = s.apiRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: api %s", ErrNotFound, id)
			}
			return nil, fmt.Errorf("failed to get api: %w", err)
		}
		if err := s.cache.Set(ctx, api); err != nil {
			s.logger.Warn("api cache write failed", zap.String("api_id", id), zap.Error(err))
		}
	}

	if !api.Available() {
		return nil, fmt.Errorf("%w: api %s is not active", ErrForbidden, id)
	}
	return api, nil
}

// GetProvider returns an active provider
func (s *catalogService) GetProvider(ctx context.Context, id string) (*domain.Provider, error) {
	if err := validateID("provider", id); err != nil {
		return nil, err
	}

	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: provider %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	if !provider.IsActive {
		return nil, fmt.Errorf("%w: provider %s is not active", ErrForbidden, id)
	}
	return provider, nil
}

// ListProviderAPIs returns the available APIs of an active provider
func (s *catalogService) ListProviderAPIs(ctx context.Context, providerID string, page PageRequest) (*APIPage, error) {
	if _, err := s.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}

	return s.listAPIs(ctx, repository.APIQuery{
		ProviderID:    providerID,
		AvailableOnly: true,
		Offset:        page.Offset(),
		Limit:         page.Limit,
	})
}

func (s *catalogService) listAPIs(ctx context.Context, query repository.APIQuery) (*APIPage, error) {
	var page APIPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		apis, err := s.apiRepo.List(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to list apis: %w", err)
		}
		page.APIs = apis
		return nil
	})
	g.Go(func() error {
		total, err := s.apiRepo.Count(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to count apis: %w", err)
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if page.APIs == nil {
		page.APIs = []*domain.APIListing{}
	}
	return &page, nil
}
