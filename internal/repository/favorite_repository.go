package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/pkg/database"
)

// favoriteRepository implements FavoriteRepository interface
type favoriteRepository struct {
	db *database.Postgres
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *database.Postgres) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	query := `
		INSERT INTO favorites (id, api_id, developer_address, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		favorite.ID,
		favorite.APIID,
		favorite.DeveloperAddress,
		favorite.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("favorite for api %s: %w", favorite.APIID, ErrDuplicateFavorite)
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, developerAddress, apiID string) error {
	result, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM favorites WHERE developer_address = $1 AND api_id = $2`,
		developerAddress, apiID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("favorite for api %s not found: %w", apiID, ErrNotFound)
	}

	return nil
}

// ListByDeveloper returns the developer's favorites with their API, newest first
func (r *favoriteRepository) ListByDeveloper(ctx context.Context, developerAddress string) ([]*domain.Favorite, error) {
	query := `
		SELECT f.id, f.api_id, f.developer_address, f.created_at,
		       a.name, a.description, a.category, a.price_per_token::text, a.currency, a.is_active,
		       pv.id, pv.name
		FROM favorites f
		JOIN apis a ON a.id = f.api_id
		LEFT JOIN providers pv ON pv.id = a.provider_id
		WHERE f.developer_address = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, developerAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*domain.Favorite
	for rows.Next() {
		f := &domain.Favorite{API: &domain.API{}}
		var providerID, providerName sql.NullString

		err := rows.Scan(
			&f.ID,
			&f.APIID,
			&f.DeveloperAddress,
			&f.CreatedAt,
			&f.API.Name,
			&f.API.Description,
			&f.API.Category,
			&f.API.PricePerToken,
			&f.API.Currency,
			&f.API.IsActive,
			&providerID,
			&providerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}

		f.API.ID = f.APIID
		if providerID.Valid {
			f.API.ProviderID = providerID.String
			f.API.Provider = &domain.Provider{ID: providerID.String, Name: providerName.String}
		}

		favorites = append(favorites, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return favorites, nil
}
