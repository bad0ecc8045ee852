package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/repository"
	"github.com/prperemyshlev/api-marketplace/internal/utils"
)

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	apiRepo      repository.APIRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, apiRepo repository.APIRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		apiRepo:      apiRepo,
	}
}

// List returns the developer's favorite APIs
func (s *favoriteService) List(ctx context.Context, developerAddress string) ([]*domain.Favorite, error) {
	favorites, err := s.favoriteRepo.ListByDeveloper(ctx, utils.NormalizeAddress(developerAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if favorites == nil {
		favorites = []*domain.Favorite{}
	}
	return favorites, nil
}

// Add bookmarks an existing API
func (s *favoriteService) Add(ctx context.Context, req *dto.AddFavoriteRequest) (*domain.Favorite, error) {
	developer := utils.NormalizeAddress(req.DeveloperAddress)
	if developer == "" {
		return nil, fmt.Errorf("%w: developerAddress is required", ErrValidation)
	}
	if err := validateID("api", req.APIID); err != nil {
		return nil, err
	}

	if _, err := s.apiRepo.GetByID(ctx, req.APIID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: api %s", ErrNotFound, req.APIID)
		}
		return nil, fmt.Errorf("failed to get api: %w", err)
	}

	favorite := &domain.Favorite{
		APIID:            req.APIID,
		DeveloperAddress: developer,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			return nil, fmt.Errorf("%w: api is already a favorite", ErrConflict)
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	return favorite, nil
}

// Remove deletes a bookmark
func (s *favoriteService) Remove(ctx context.Context, developerAddress, apiID string) error {
	if err := validateID("api", apiID); err != nil {
		return err
	}

	if err := s.favoriteRepo.Delete(ctx, utils.NormalizeAddress(developerAddress), apiID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: favorite for api %s", ErrNotFound, apiID)
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
