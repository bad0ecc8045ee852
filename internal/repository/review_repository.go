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

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *database.Postgres
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.Postgres) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create stores a review. A developer may review each API once.
func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, api_id, developer_address, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		review.ID,
		review.APIID,
		review.DeveloperAddress,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("review by %s for api %s: %w", review.DeveloperAddress, review.APIID, ErrDuplicateReview)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListByAPI returns a page of reviews, newest first
func (r *reviewRepository) ListByAPI(ctx context.Context, apiID string, offset, limit int) ([]*domain.Review, error) {
	query := `
		SELECT id, api_id, developer_address, rating, comment, created_at
		FROM reviews
		WHERE api_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.DB.QueryContext(ctx, query, apiID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review := &domain.Review{}
		var comment sql.NullString

		err := rows.Scan(
			&review.ID,
			&review.APIID,
			&review.DeveloperAddress,
			&review.Rating,
			&comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		if comment.Valid {
			review.Comment = &comment.String
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// Summary returns the average rating and review count of an API
func (r *reviewRepository) Summary(ctx context.Context, apiID string) (domain.RatingSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating)::float8, 0), COUNT(*)
		FROM reviews
		WHERE api_id = $1
	`

	var summary domain.RatingSummary
	if err := r.db.DB.QueryRowContext(ctx, query, apiID).Scan(&summary.Average, &summary.Count); err != nil {
		return domain.RatingSummary{}, fmt.Errorf("failed to summarize reviews: %w", err)
	}

	return summary, nil
}
