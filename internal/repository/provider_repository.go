package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/pkg/database"
)

// providerRepository implements ProviderRepository interface
type providerRepository struct {
	db *database.Postgres
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *database.Postgres) ProviderRepository {
	return &providerRepository{db: db}
}

// Create registers a provider. The wallet address must be unique.
func (r *providerRepository) Create(ctx context.Context, provider *domain.Provider) error {
	query := `
		INSERT INTO providers (id, name, wallet_address, description, website, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	if provider.CreatedAt.IsZero() {
		provider.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		provider.ID,
		provider.Name,
		provider.WalletAddress,
		provider.Description,
		provider.Website,
		provider.IsActive,
		provider.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("provider with wallet %s already exists: %w", provider.WalletAddress, ErrDuplicateProvider)
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}

	return nil
}

func (r *providerRepository) getOne(ctx context.Context, where string, arg any) (*domain.Provider, error) {
	query := `
		SELECT id, name, wallet_address, description, website, is_active, created_at
		FROM providers
		WHERE ` + where

	provider := &domain.Provider{}
	var description, website sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, arg).Scan(
		&provider.ID,
		&provider.Name,
		&provider.WalletAddress,
		&description,
		&website,
		&provider.IsActive,
		&provider.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		provider.Description = &description.String
	}
	if website.Valid {
		provider.Website = &website.String
	}

	return provider, nil
}

// GetByID retrieves a provider by ID
func (r *providerRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	provider, err := r.getOne(ctx, "id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("provider with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get provider by id: %w", err)
	}
	return provider, nil
}

// GetByWallet retrieves a provider by its lowercased wallet address
func (r *providerRepository) GetByWallet(ctx context.Context, walletAddress string) (*domain.Provider, error) {
	provider, err := r.getOne(ctx, "wallet_address = $1", walletAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("provider with wallet %s not found: %w", walletAddress, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get provider by wallet: %w", err)
	}
	return provider, nil
}
