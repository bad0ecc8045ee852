package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/repository"
	"github.com/prperemyshlev/api-marketplace/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type providerService struct {
	providerRepo repository.ProviderRepository
	apiRepo      repository.APIRepository
	cache        APICache
	logger       *zap.Logger
}

// NewProviderService creates a new provider management service
func NewProviderService(
	providerRepo repository.ProviderRepository,
	apiRepo repository.APIRepository,
	cache APICache,
	logger *zap.Logger,
) ProviderService {
	return &providerService{
		providerRepo: providerRepo,
		apiRepo:      apiRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Register registers the wallet as a provider
func (s *providerService) Register(ctx context.Context, walletAddress string, req *dto.RegisterProviderRequest) (*domain.Provider, error) {
	if err := utils.ValidateAddress(walletAddress); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	provider := &domain.Provider{
		Name:          name,
		WalletAddress: utils.NormalizeAddress(walletAddress),
		Description:   req.Description,
		Website:       req.Website,
		IsActive:      true,
	}

	if err := s.providerRepo.Create(ctx, provider); err != nil {
		if errors.Is(err, repository.ErrDuplicateProvider) {
			return nil, fmt.Errorf("%w: wallet is already registered", ErrConflict)
		}
		return nil, fmt.Errorf("failed to register provider: %w", err)
	}

	s.logger.Info("provider registered",
		zap.String("provider_id", provider.ID),
		zap.String("wallet_address", provider.WalletAddress),
	)

	return provider, nil
}

// CreateAPI lists a new API owned by the wallet's provider
func (s *providerService) CreateAPI(ctx context.Context, walletAddress string, req *dto.CreateAPIRequest) (*domain.API, error) {
	provider, err := s.callerProvider(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.PricePerToken))
	if err != nil {
		return nil, fmt.Errorf("%w: pricePerToken must be a decimal number", ErrValidation)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: pricePerToken must be greater than zero", ErrValidation)
	}

	api := &domain.API{
		ProviderID:    provider.ID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Category:      strings.ToLower(strings.TrimSpace(req.Category)),
		BaseURL:       req.BaseURL,
		PricePerToken: price.String(),
		Currency:      strings.ToUpper(strings.TrimSpace(req.Currency)),
		IsActive:      true,
		Provider:      provider,
	}

	if err := s.apiRepo.Create(ctx, api); err != nil {
		return nil, fmt.Errorf("failed to create api: %w", err)
	}

	return api, nil
}

// SetAPIStatus activates or deactivates one of the wallet's APIs
func (s *providerService) SetAPIStatus(ctx context.Context, walletAddress, apiID string, active bool) (*domain.API, error) {
	if err := validateID("api", apiID); err != nil {
		return nil, err
	}

	provider, err := s.callerProvider(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	api, err := s.apiRepo.GetByID(ctx, apiID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: api %s", ErrNotFound, apiID)
		}
		return nil, fmt.Errorf("failed to get api: %w", err)
	}

	if api.ProviderID != provider.ID {
		return nil, fmt.Errorf("%w: api %s belongs to another provider", ErrForbidden, apiID)
	}

	if err := s.apiRepo.SetActive(ctx, apiID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: api %s", ErrNotFound, apiID)
		}
		return nil, fmt.Errorf("failed to update api status: %w", err)
	}
	api.IsActive = active

	if err := s.cache.Invalidate(ctx, apiID); err != nil {
		s.logger.Warn("api cache invalidation failed", zap.String("api_id", apiID), zap.Error(err))
	}

	return api, nil
}

func (s *providerService) callerProvider(ctx context.Context, walletAddress string) (*domain.Provider, error) {
	provider, err := s.providerRepo.GetByWallet(ctx, utils.NormalizeAddress(walletAddress))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: wallet is not registered as a provider", ErrForbidden)
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	if !provider.IsActive {
		return nil, fmt.Errorf("%w: provider is not active", ErrForbidden)
	}
	return provider, nil
}
