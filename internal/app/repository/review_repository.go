package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmaier/beerlog-backend/internal/app/model"
	"github.com/dmaier/beerlog-backend/pkg/logger"
)

// ReviewListOptions extends the common options with review-specific
// exact-match filters. All supplied filters are ANDed.
type ReviewListOptions struct {
	ListOptions
	Username string
	BeerName string
	BeerID   *uuid.UUID
}

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uuid.UUID) (*model.Review, error)
	FindByUserAndBeer(username, beerName string) (*model.Review, error)
	FindWithOptions(opts ReviewListOptions) ([]model.Review, error)
	Patch(review *model.Review, fields map[string]interface{}) error
	Delete(review *model.Review) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"username":  review.Username,
			"beer_name": review.BeerName,
		})
		return err
	}

	logger.Debug("Review created in database", map[string]interface{}{
		"review_id": review.ID,
		"username":  review.Username,
		"beer_name": review.BeerName,
	})
	return nil
}

// FindByID resolves a review by its generated identifier. Reviews have no
// unique name, so the identifier is the only handle.
func (r *reviewRepository) FindByID(id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByUserAndBeer(username, beerName string) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("username = ? AND beer_name = ?", username, beerName).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindWithOptions lists reviews with their beer eager-loaded.
func (r *reviewRepository) FindWithOptions(opts ReviewListOptions) ([]model.Review, error) {
	query := r.db.Model(&model.Review{}).Preload("Beer")

	if opts.Identifier != nil {
		query = query.Where("id = ?", *opts.Identifier)
	}
	if opts.Username != "" {
		query = query.Where("username = ?", opts.Username)
	}
	if opts.BeerName != "" {
		query = query.Where("beer_name = ?", opts.BeerName)
	}
	if opts.BeerID != nil {
		query = query.Where("beer_id = ?", *opts.BeerID)
	}

	query, err := applyListOptions(query, opts.ListOptions, reviewSortColumns)
	if err != nil {
		return nil, err
	}

	var reviews []model.Review
	if err := query.Find(&reviews).Error; err != nil {
		logger.Error("Failed to list reviews", err, map[string]interface{}{
			"username":  opts.Username,
			"beer_name": opts.BeerName,
		})
		return nil, err
	}
	return reviews, nil
}

// Patch applies only the supplied fields and bumps last_updated.
func (r *reviewRepository) Patch(review *model.Review, fields map[string]interface{}) error {
	fields["last_updated"] = time.Now().UTC()

	if err := r.db.Model(review).Updates(fields).Error; err != nil {
		logger.Error("Failed to patch review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}

	logger.Debug("Review patched in database", map[string]interface{}{
		"review_id": review.ID,
	})
	return nil
}

func (r *reviewRepository) Delete(review *model.Review) error {
	if err := r.db.Delete(review).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}

	logger.Debug("Review deleted from database", map[string]interface{}{
		"review_id": review.ID,
	})
	return nil
}
