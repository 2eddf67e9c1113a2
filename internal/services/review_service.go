// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/authz"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview inserts the review and lets the (product, user) unique index
// arbitrate duplicates. No pre-check: concurrent submissions race, and exactly
// one insert wins regardless of interleaving.
func (s *ReviewService) CreateReview(productID uuid.UUID, user *models.User, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid review: %v", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ? AND is_active = ?", productID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "product %s", productID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    user.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.db.Create(review).Error; err != nil {
		if apperrors.IsUniqueViolation(err, "idx_reviews_product_user") {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateReview, "product %s", productID)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.db.Preload("User").First(review, review.ID)

	return review, nil
}

func (s *ReviewService) GetProductReviews(productID uuid.UUID, params utils.PaginationParams) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("product_id = ?", productID).Preload("User")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	allowedSortFields := []string{"created_at", "rating"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}

// DeleteReview is a moderation action; authors cannot remove their own
// reviews.
func (s *ReviewService) DeleteReview(reviewID uuid.UUID, actor *models.User) error {
	if !authz.Can(actor, authz.ActionDeleteReview, authz.Resource{}) {
		return apperrors.Wrap(apperrors.ErrForbidden, "only administrators can delete reviews")
	}

	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrNotFound, "review %s", reviewID)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}
