package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/pkg/database"
)

// APIQuery selects a page of the catalog
type APIQuery struct {
	ProviderID    string
	Category      string
	Search        string
	AvailableOnly bool
	Offset        int
	Limit         int
}

var apiColumns = []string{
	"a.id", "a.provider_id", "a.name", "a.description", "a.category", "a.base_url",
	"a.price_per_token::text", "a.currency", "a.is_active", "a.created_at", "a.updated_at",
	"pv.id", "pv.name", "pv.wallet_address", "pv.is_active",
}

const ratingsJoin = "(SELECT api_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count FROM reviews GROUP BY api_id) r"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// apiRepository implements APIRepository interface
type apiRepository struct {
	db *database.Postgres
}

// NewAPIRepository creates a new API repository
func NewAPIRepository(db *database.Postgres) APIRepository {
	return &apiRepository{db: db}
}

func newAPISelect(columns ...string) *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("apis a")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "providers pv", "pv.id = a.provider_id")
	return sb
}

func buildAPIConditions(sb *sqlbuilder.SelectBuilder, q APIQuery) []string {
	var conds []string

	if q.AvailableOnly {
		conds = append(conds, sb.Equal("a.is_active", true), sb.Equal("pv.is_active", true))
	}

	if q.ProviderID != "" {
		conds = append(conds, sb.Equal("a.provider_id", q.ProviderID))
	}

	if q.Category != "" {
		conds = append(conds, sb.Equal("a.category", q.Category))
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		conds = append(conds, sb.Or(
			sb.ILike("a.name", pattern),
			sb.ILike("a.description", pattern),
		))
	}

	return conds
}

func buildAPIListQuery(q APIQuery) (string, []interface{}) {
	columns := append(append([]string{}, apiColumns...),
		"COALESCE(r.avg_rating, 0)", "COALESCE(r.review_count, 0)")

	sb := newAPISelect(columns...)
	sb.JoinWithOption(sqlbuilder.LeftJoin, ratingsJoin, "r.api_id = a.id")

	if conds := buildAPIConditions(sb, q); len(conds) > 0 {
		sb.Where(conds...)
	}
	sb.OrderBy("a.created_at DESC", "a.id")
	sb.Offset(q.Offset)
	sb.Limit(q.Limit)

	return sb.Build()
}

func buildAPICountQuery(q APIQuery) (string, []interface{}) {
	sb := newAPISelect("COUNT(*)")
	if conds := buildAPIConditions(sb, q); len(conds) > 0 {
		sb.Where(conds...)
	}
	return sb.Build()
}

// scanAPI reads apiColumns followed by any extra destinations
func scanAPI(row rowScanner, extra ...any) (*domain.API, error) {
	api := &domain.API{}
	var (
		providerRef                          sql.NullString
		providerID, providerName, providerWA sql.NullString
		providerActive                       sql.NullBool
	)

	dest := []any{
		&api.ID,
		&providerRef,
		&api.Name,
		&api.Description,
		&api.Category,
		&api.BaseURL,
		&api.PricePerToken,
		&api.Currency,
		&api.IsActive,
		&api.CreatedAt,
		&api.UpdatedAt,
		&providerID,
		&providerName,
		&providerWA,
		&providerActive,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	api.ProviderID = providerRef.String
	if providerID.Valid {
		api.Provider = &domain.Provider{
			ID:            providerID.String,
			Name:          providerName.String,
			WalletAddress: providerWA.String,
			IsActive:      providerActive.Bool,
		}
	}

	return api, nil
}

// Create adds an API to the catalog
func (r *apiRepository) Create(ctx context.Context, api *domain.API) error {
	query := `
		INSERT INTO apis (id, provider_id, name, description, category, base_url, price_per_token, currency, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if api.ID == "" {
		api.ID = uuid.New().String()
	}
	now := time.Now()
	if api.CreatedAt.IsZero() {
		api.CreatedAt = now
	}
	if api.UpdatedAt.IsZero() {
		api.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		api.ID,
		api.ProviderID,
		api.Name,
		api.Description,
		api.Category,
		api.BaseURL,
		api.PricePerToken,
		api.Currency,
		api.IsActive,
		api.CreatedAt,
		api.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create api: %w", err)
	}

	return nil
}

// GetByID retrieves an API with its provider
func (r *apiRepository) GetByID(ctx context.Context, id string) (*domain.API, error) {
	sb := newAPISelect(apiColumns...)
	sb.Where(sb.Equal("a.id", id))
	query, args := sb.Build()

	api, err := scanAPI(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("api with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get api by id: %w", err)
	}

	return api, nil
}

// List returns a page of the catalog with rating aggregates
func (r *apiRepository) List(ctx context.Context, q APIQuery) ([]*domain.APIListing, error) {
	query, args := buildAPIListQuery(q)

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list apis: %w", err)
	}
	defer rows.Close()

	var listings []*domain.APIListing
	for rows.Next() {
		var (
			avg   float64
			count int
		)
		api, err := scanAPI(rows, &avg, &count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api: %w", err)
		}
		listings = append(listings, &domain.APIListing{API: *api, AverageRating: avg, ReviewCount: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate apis: %w", err)
	}

	return listings, nil
}

// Count returns how many APIs match q
func (r *apiRepository) Count(ctx context.Context, q APIQuery) (int, error) {
	query, args := buildAPICountQuery(q)

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count apis: %w", err)
	}

	return count, nil
}

// SetActive activates or deactivates an API
func (r *apiRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE apis SET is_active = $2, updated_at = $3 WHERE id = $1`,
		id, active, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update api status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("api with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
