package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"review-app/internal/models"
	"review-app/internal/utils"
)

type ReviewRepository interface {
	Save(ctx context.Context, review *models.Review) (*models.Review, error)
	ListRecent(ctx context.Context, limit int) ([]models.Review, error)
}

type ReviewService struct {
	repo ReviewRepository
}

func NewReviewService(r ReviewRepository) *ReviewService {
	return &ReviewService{repo: r}
}

// SubmitReviewInput carries a review submission. Rating and Content are optional on the wire.
type SubmitReviewInput struct {
	ProductID string
	Rating    *float64
	UserName  string
	Content   *string
	Images    []string
}

// Submit validates the submission and stores it. Checks run in a fixed order and the first failure wins.
// Image URLs are stored as given; the caller uploads them beforehand.
func (s *ReviewService) Submit(ctx context.Context, in SubmitReviewInput) (*models.Review, error) {
	review, err := buildReview(in)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, review)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("review_id", saved.ID.Hex()).
		Str("product_id", saved.ProductID).
		Float64("rating", saved.Rating).
		Int("images", len(saved.Images)).
		Msg("review created")

	return saved, nil
}

// ListRecent returns the newest reviews. limit <= 0 means the default, and it is capped at MaxRecentLimit.
func (s *ReviewService) ListRecent(ctx context.Context, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = models.DefaultRecentLimit
	}
	if limit > models.MaxRecentLimit {
		limit = models.MaxRecentLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

func buildReview(in SubmitReviewInput) (*models.Review, error) {
	v := utils.GetValidator()

	productID := strings.TrimSpace(in.ProductID)
	if v.Var(productID, "required") != nil {
		return nil, validationError("missing product id")
	}

	if in.Rating == nil || v.Var(*in.Rating, "gte=0.5,lte=5,halfstep") != nil {
		return nil, validationError("invalid rating")
	}

	if v.Var(in.Images, fmt.Sprintf("max=%d", models.MaxImages)) != nil {
		return nil, validationError("too many images")
	}

	userName := strings.TrimSpace(in.UserName)
	if v.Var(userName, "required") != nil {
		return nil, validationError("missing user name")
	}

	content := ""
	if in.Content != nil {
		content = *in.Content
	}
	if v.Var(content, fmt.Sprintf("max=%d", models.MaxContentLength)) != nil {
		return nil, validationError("content too long")
	}

	return &models.Review{
		ProductID: productID,
		UserName:  userName,
		Rating:    *in.Rating,
		Content:   content,
		Images:    in.Images,
	}, nil
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", models.ErrValidation, msg)
}
