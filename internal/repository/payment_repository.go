package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/pkg/database"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *database.Postgres
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *database.Postgres) PaymentRepository {
	return &paymentRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPayment reads one row selected with paymentColumns. The API and
// provider are left nil when the outer joins found nothing.
func scanPayment(row rowScanner) (*domain.Payment, error) {
	p := &domain.Payment{}
	var (
		apiID, status                          sql.NullString
		blockNumber                            sql.NullInt64
		blockTimestamp                         sql.NullTime
		joinedAPIID, apiProviderID             sql.NullString
		apiName, apiDescription, apiCategory   sql.NullString
		apiActive                              sql.NullBool
		providerID, providerName, providerAddr sql.NullString
		providerActive                         sql.NullBool
	)

	err := row.Scan(
		&p.ID,
		&p.DeveloperAddress,
		&apiID,
		&p.TransactionHash,
		&p.Amount,
		&p.Currency,
		&p.NumberOfTokens,
		&p.TokensIssued,
		&p.IsVerified,
		&status,
		&blockNumber,
		&blockTimestamp,
		&p.CreatedAt,
		&joinedAPIID,
		&apiProviderID,
		&apiName,
		&apiDescription,
		&apiCategory,
		&apiActive,
		&providerID,
		&providerName,
		&providerAddr,
		&providerActive,
	)
	if err != nil {
		return nil, err
	}

	p.APIID = apiID.String
	p.Status = domain.PaymentStatus(status.String)
	if blockNumber.Valid {
		p.BlockNumber = &blockNumber.Int64
	}
	if blockTimestamp.Valid {
		p.BlockTimestamp = &blockTimestamp.Time
	}

	if joinedAPIID.Valid {
		p.API = &domain.API{
			ID:          joinedAPIID.String,
			ProviderID:  apiProviderID.String,
			Name:        apiName.String,
			Description: apiDescription.String,
			Category:    apiCategory.String,
			IsActive:    apiActive.Bool,
		}
		if providerID.Valid {
			p.API.Provider = &domain.Provider{
				ID:            providerID.String,
				Name:          providerName.String,
				WalletAddress: providerAddr.String,
				IsActive:      providerActive.Bool,
			}
		}
	}

	return p, nil
}

// List returns one page of payments, newest first
func (r *paymentRepository) List(ctx context.Context, q PaymentQuery) ([]*domain.Payment, error) {
	query, args, err := buildPaymentListQuery(q)
	if err != nil {
		return nil, fmt.Errorf("failed to build payments query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// Count returns how many payments match q, ignoring its offset and limit
func (r *paymentRepository) Count(ctx context.Context, q PaymentQuery) (int, error) {
	query, args, err := buildPaymentCountQuery(q)
	if err != nil {
		return 0, fmt.Errorf("failed to build payments count query: %w", err)
	}

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return count, nil
}

// GetByID retrieves a payment with its API and provider
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	sb := newPaymentSelect(paymentColumns...)
	sb.Where(sb.Equal("p.id", id))
	query, args := sb.Build()

	p, err := scanPayment(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payment with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment by id: %w", err)
	}

	return p, nil
}

// HasVerifiedPayment reports whether the developer has at least one verified payment for the API
func (r *paymentRepository) HasVerifiedPayment(ctx context.Context, developerAddress, apiID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE developer_address = $1 AND api_id = $2 AND is_verified = TRUE
		)
	`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, developerAddress, apiID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payment existence: %w", err)
	}

	return exists, nil
}
