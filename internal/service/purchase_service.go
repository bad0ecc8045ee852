package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/repository"
	"github.com/prperemyshlev/api-marketplace/pkg/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PurchaseList is one page of purchases with totals over that page
type PurchaseList struct {
	Purchases []Purchase
	Summary   PurchaseSummary
	Total     int
}

type purchaseService struct {
	paymentRepo repository.PaymentRepository
	tokenRepo   repository.TokenRepository
	metrics     *observability.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	paymentRepo repository.PaymentRepository,
	tokenRepo repository.TokenRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) PurchaseService {
	return &purchaseService{
		paymentRepo: paymentRepo,
		tokenRepo:   tokenRepo,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// ListPurchases returns the developer's verified payments as purchases
func (s *purchaseService) ListPurchases(ctx context.Context, developerAddress string, filter domain.PaymentFilter, page PageRequest) (*PurchaseList, error) {
	if !slices.Contains(domain.PurchaseFilters, filter) {
		return nil, fmt.Errorf("%w: status %s is not valid for purchases", ErrValidation, filter)
	}

	now := s.now()
	query := repository.PaymentQuery{
		DeveloperAddress: developerAddress,
		VerifiedOnly:     true,
		Filter:           filter,
		Now:              now,
		Offset:           page.Offset(),
		Limit:            page.Limit,
	}

	payments, total, err := listPaymentPage(ctx, s.paymentRepo, query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}
	tokens, err := s.tokenRepo.ListByPaymentIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}
	for _, p := range payments {
		p.Tokens = tokens[p.ID]
	}

	purchases, skipped := BuildPurchases(payments, now)
	if len(skipped) > 0 {
		s.logger.Warn("skipping payments without api",
			zap.String("developer_address", developerAddress),
			zap.Strings("payment_ids", skipped),
		)
	}
	s.metrics.OrphanPaymentsSkipped(ctx, len(skipped))
	s.metrics.PurchasesListed(ctx, len(purchases))

	return &PurchaseList{
		Purchases: purchases,
		Summary:   Summarize(purchases),
		Total:     total,
	}, nil
}

// listPaymentPage fetches a page and the total count concurrently
func listPaymentPage(ctx context.Context, repo repository.PaymentRepository, query repository.PaymentQuery) ([]*domain.Payment, int, error) {
	var (
		payments []*domain.Payment
		total    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payments, err = repo.List(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to list payments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = repo.Count(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to count payments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
