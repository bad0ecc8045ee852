package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/repository"
	"github.com/prperemyshlev/api-marketplace/internal/utils"
	"github.com/prperemyshlev/api-marketplace/pkg/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// recentUsageWindow bounds the success and failure counts of usage stats
const recentUsageWindow = 24 * time.Hour

// ConsumeResult describes a spent usage token
type ConsumeResult struct {
	TokenID          string `json:"tokenId"`
	PaymentID        string `json:"paymentId"`
	APIID            string `json:"apiId"`
	DeveloperAddress string `json:"developerAddress"`
	RemainingTokens  int    `json:"remainingTokens"`
}

// RecentUsage splits the calls of the last 24 hours by outcome
type RecentUsage struct {
	SuccessfulCalls int `json:"successfulCalls"`
	FailedCalls     int `json:"failedCalls"`
}

// UsageStats summarizes a developer's calls to one API, or to all of them
type UsageStats struct {
	DeveloperAddress  string      `json:"developerAddress"`
	APIID             string      `json:"apiId,omitempty"`
	TotalCalls        int         `json:"totalCalls"`
	AvgResponseTimeMs float64     `json:"avgResponseTimeMs"`
	LastCallAt        *time.Time  `json:"lastCallAt"`
	Last24h           RecentUsage `json:"last24h"`
}

type usageService struct {
	tokenRepo   repository.TokenRepository
	paymentRepo repository.PaymentRepository
	usageRepo   repository.UsageLogRepository
	metrics     *observability.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewUsageService creates a new usage service
func NewUsageService(
	tokenRepo repository.TokenRepository,
	paymentRepo repository.PaymentRepository,
	usageRepo repository.UsageLogRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) UsageService {
	return &usageService{
		tokenRepo:   tokenRepo,
		paymentRepo: paymentRepo,
		usageRepo:   usageRepo,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Consume spends one usage token and records the call it paid for.
// providerWallet is the authenticated caller and must own the token's API.
func (s *usageService) Consume(ctx context.Context, providerWallet string, req *dto.ConsumeTokenRequest) (*ConsumeResult, error) {
	result, outcome, err := s.consume(ctx, utils.NormalizeAddress(providerWallet), req)
	s.metrics.TokenConsumed(ctx, outcome)
	return result, err
}

func (s *usageService) consume(ctx context.Context, providerWallet string, req *dto.ConsumeTokenRequest) (*ConsumeResult, string, error) {
	raw := strings.TrimSpace(req.Token)
	if raw == "" {
		return nil, "invalid", fmt.Errorf("%w: token is required", ErrValidation)
	}

	token, err := s.tokenRepo.GetByHash(ctx, utils.HashToken(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "unknown", fmt.Errorf("%w: token", ErrNotFound)
		}
		return nil, "error", fmt.Errorf("failed to get token: %w", err)
	}

	payment, err := s.paymentRepo.GetByID(ctx, token.PaymentID)
	if err != nil {
		return nil, "error", fmt.Errorf("failed to get payment for token: %w", err)
	}
	if payment.API == nil {
		return nil, "unknown", fmt.Errorf("%w: api for token no longer exists", ErrNotFound)
	}
	// only the owning provider learns anything about the token past this point
	if owner := payment.API.Provider; owner == nil || providerWallet == "" ||
		utils.NormalizeAddress(owner.WalletAddress) != providerWallet {
		return nil, "forbidden", fmt.Errorf("%w: token belongs to another provider's api", ErrForbidden)
	}

	switch token.State(s.now()) {
	case domain.TokenUsed:
		return nil, "used", ErrTokenUsed
	case domain.TokenExpired:
		return nil, "expired", ErrTokenExpired
	}

	if !payment.IsVerified {
		return nil, "forbidden", fmt.Errorf("%w: payment is not verified", ErrForbidden)
	}
	if !payment.API.Available() {
		return nil, "forbidden", fmt.Errorf("%w: api %s is not active", ErrForbidden, payment.API.ID)
	}

	usage := &domain.UsageLog{
		APIID:            payment.API.ID,
		DeveloperAddress: payment.DeveloperAddress,
		Endpoint:         req.Endpoint,
		StatusCode:       req.StatusCode,
		ResponseTimeMs:   req.ResponseTimeMs,
	}
	if err := s.tokenRepo.Consume(ctx, token.ID, usage); err != nil {
		if errors.Is(err, repository.ErrTokenAlreadyUsed) {
			return nil, "used", ErrTokenUsed
		}
		return nil, "error", fmt.Errorf("failed to consume token: %w", err)
	}

	remaining, err := s.tokenRepo.CountActiveByPayment(ctx, payment.ID)
	if err != nil {
		// the token is already spent; report what we know
		s.logger.Error("failed to count remaining tokens", zap.String("payment_id", payment.ID), zap.Error(err))
		remaining = 0
	}

	return &ConsumeResult{
		TokenID:          token.ID,
		PaymentID:        payment.ID,
		APIID:            payment.API.ID,
		DeveloperAddress: payment.DeveloperAddress,
		RemainingTokens:  remaining,
	}, "consumed", nil
}

// Stats aggregates all-time and last-24h usage. apiID is optional.
func (s *usageService) Stats(ctx context.Context, developerAddress, apiID string) (*UsageStats, error) {
	developer := utils.NormalizeAddress(developerAddress)
	if developer == "" {
		return nil, fmt.Errorf("%w: developerAddress is required", ErrValidation)
	}
	if apiID != "" {
		if err := validateID("api", apiID); err != nil {
			return nil, err
		}
	}

	base := domain.UsageFilter{DeveloperAddress: developer, APIID: apiID}
	since := s.now().Add(-recentUsageWindow)
	succeeded, failed := true, false

	var all, recentOK, recentFailed domain.UsageTotals
	g, gctx := errgroup.WithContext(ctx)
	aggregate := func(dst *domain.UsageTotals, filter domain.UsageFilter) {
		g.Go(func() error {
			totals, err := s.usageRepo.Aggregate(gctx, filter)
			if err != nil {
				return fmt.Errorf("failed to aggregate usage: %w", err)
			}
			*dst = totals
			return nil
		})
	}

	aggregate(&all, base)
	recent := base
	recent.Since = since
	recent.Success = &succeeded
	aggregate(&recentOK, recent)
	recent.Success = &failed
	aggregate(&recentFailed, recent)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &UsageStats{
		DeveloperAddress:  developer,
		APIID:             apiID,
		TotalCalls:        all.Calls,
		AvgResponseTimeMs: all.AvgResponseTimeMs,
		LastCallAt:        all.LastCallAt,
		Last24h: RecentUsage{
			SuccessfulCalls: recentOK.Calls,
			FailedCalls:     recentFailed.Calls,
		},
	}, nil
}
