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
	"golang.org/x/sync/errgroup"
)

// ReviewPage is one page of reviews with the rating aggregate of the API
type ReviewPage struct {
	Reviews []*domain.Review
	Summary domain.RatingSummary
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	apiRepo     repository.APIRepository
	paymentRepo repository.PaymentRepository
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	apiRepo repository.APIRepository,
	paymentRepo repository.PaymentRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		apiRepo:     apiRepo,
		paymentRepo: paymentRepo,
	}
}

// List returns reviews of an API, newest first
func (s *reviewService) List(ctx context.Context, apiID string, page PageRequest) (*ReviewPage, error) {
	if err := s.ensureAPI(ctx, apiID); err != nil {
		return nil, err
	}

	var result ReviewPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reviews, err := s.reviewRepo.ListByAPI(gctx, apiID, page.Offset(), page.Limit)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		result.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		summary, err := s.reviewRepo.Summary(gctx, apiID)
		if err != nil {
			return fmt.Errorf("failed to summarize reviews: %w", err)
		}
		result.Summary = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result.Reviews == nil {
		result.Reviews = []*domain.Review{}
	}
	return &result, nil
}

// Create stores a review from a developer who paid for the API
func (s *reviewService) Create(ctx context.Context, apiID string, req *dto.CreateReviewRequest) (*domain.Review, error) {
	developer := utils.NormalizeAddress(req.DeveloperAddress)
	if developer == "" {
		return nil, fmt.Errorf("%w: developerAddress is required", ErrValidation)
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, domain.MinRating, domain.MaxRating)
	}

	if err := s.ensureAPI(ctx, apiID); err != nil {
		return nil, err
	}

	paid, err := s.paymentRepo.HasVerifiedPayment(ctx, developer, apiID)
	if err != nil {
		return nil, fmt.Errorf("failed to check payments: %w", err)
	}
	if !paid {
		return nil, fmt.Errorf("%w: only developers who purchased the api can review it", ErrForbidden)
	}

	review := &domain.Review{
		APIID:            apiID,
		DeveloperAddress: developer,
		Rating:           req.Rating,
	}
	if req.Comment != nil {
		if comment := strings.TrimSpace(*req.Comment); comment != "" {
			review.Comment = &comment
		}
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, fmt.Errorf("%w: api already reviewed by this developer", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

func (s *reviewService) ensureAPI(ctx context.Context, apiID string) error {
	if err := validateID("api", apiID); err != nil {
		return err
	}
	if _, err := s.apiRepo.GetByID(ctx, apiID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: api %s", ErrNotFound, apiID)
		}
		return fmt.Errorf("failed to get api: %w", err)
	}
	return nil
}
