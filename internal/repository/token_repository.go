package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/pkg/database"
)

// tokenRepository implements TokenRepository interface
type tokenRepository struct {
	db *database.Postgres
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *database.Postgres) TokenRepository {
	return &tokenRepository{db: db}
}

func scanToken(row rowScanner) (domain.Token, error) {
	var (
		token  domain.Token
		usedAt sql.NullTime
	)

	err := row.Scan(
		&token.ID,
		&token.PaymentID,
		&token.TokenHash,
		&token.IsUsed,
		&usedAt,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		return domain.Token{}, err
	}

	if usedAt.Valid {
		token.UsedAt = &usedAt.Time
	}

	return token, nil
}

// ListByPaymentIDs loads the tokens of several payments in one round trip, keyed by payment ID
func (r *tokenRepository) ListByPaymentIDs(ctx context.Context, paymentIDs []string) (map[string][]domain.Token, error) {
	result := make(map[string][]domain.Token, len(paymentIDs))
	if len(paymentIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, payment_id, token_hash, is_used, used_at, expires_at, created_at
		FROM tokens
		WHERE payment_id = ANY($1::uuid[])
		ORDER BY created_at
	`

	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(paymentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens by payment ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		result[token.PaymentID] = append(result[token.PaymentID], token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tokens: %w", err)
	}

	return result, nil
}

// GetByHash retrieves a token by the SHA-256 of its raw value
func (r *tokenRepository) GetByHash(ctx context.Context, tokenHash string) (*domain.Token, error) {
	query := `
		SELECT id, payment_id, token_hash, is_used, used_at, expires_at, created_at
		FROM tokens
		WHERE token_hash = $1
	`

	token, err := scanToken(r.db.DB.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("token with hash not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get token by hash: %w", err)
	}

	return &token, nil
}

// Consume marks the token used and records the call in a single transaction.
// The update is conditional, so only one of two racing consumers succeeds.
func (r *tokenRepository) Consume(ctx context.Context, tokenID string, usage *domain.UsageLog) error {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	if usage.CreatedAt.IsZero() {
		usage.CreatedAt = now
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE tokens SET is_used = TRUE, used_at = $2 WHERE id = $1 AND is_used = FALSE`,
		tokenID, usage.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to mark token used: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("token %s: %w", tokenID, ErrTokenAlreadyUsed)
	}

	if usage.ID == "" {
		usage.ID = uuid.New().String()
	}
	usage.TokenID = tokenID

	_, err = tx.ExecContext(ctx, `
		INSERT INTO usage_logs (id, token_id, api_id, developer_address, endpoint, status_code, response_time_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		usage.ID,
		usage.TokenID,
		usage.APIID,
		usage.DeveloperAddress,
		usage.Endpoint,
		usage.StatusCode,
		usage.ResponseTimeMs,
		usage.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit token consumption: %w", err)
	}

	return nil
}

// CountActiveByPayment counts unused, unexpired tokens left on a payment
func (r *tokenRepository) CountActiveByPayment(ctx context.Context, paymentID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM tokens
		WHERE payment_id = $1 AND is_used = FALSE AND expires_at > $2
	`

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, paymentID, time.Now()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active tokens: %w", err)
	}

	return count, nil
}
