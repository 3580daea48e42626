package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
	"github.com/dmaier/beerlog-backend/internal/app/model"
	"github.com/dmaier/beerlog-backend/internal/app/repository"
	"github.com/dmaier/beerlog-backend/pkg/logger"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user already reviewed this beer")
)

// ReviewCreate carries the client-supplied creation fields. BeerName
// names the beer, which must already exist.
type ReviewCreate struct {
	Username string
	Score    float64
	Comment  *string
	BeerName string
}

// ReviewPatch carries the optional fields of a partial update. A score
// change feeds the beer's running average.
type ReviewPatch struct {
	Username *string
	Score    *float64
	Comment  *string
}

type ReviewService interface {
	CreateReview(input ReviewCreate) (*model.Review, error)
	ListReviews(opts repository.ReviewListOptions) ([]model.Review, error)
	GetReview(id uuid.UUID) (*model.Review, error)
	PatchReview(id uuid.UUID, patch ReviewPatch) (*model.Review, error)
	DeleteReview(id uuid.UUID) error
	ReconcileScores() (int, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	db         *gorm.DB
}

// NewReviewService takes the raw DB handle besides the repository because
// review writes and the beer score update must share one transaction.
func NewReviewService(reviewRepo repository.ReviewRepository, db *gorm.DB) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		db:         db,
	}
}

// runningMean folds one more data point into an incrementally maintained
// average: (avg*n + x) / (n+1). At n=0 it degenerates to x, so it is
// applied unconditionally.
func runningMean(avg float64, n int64, x float64) float64 {
	return (avg*float64(n) + x) / float64(n+1)
}

// lockForUpdate adds a row lock on dialects that support it. SQLite (the
// test store) has no SELECT ... FOR UPDATE; its single-writer lock covers
// the same ground there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateReview inserts a review and folds its score into the beer's
// running average. The existence check, duplicate check, review insert
// and score update run in one transaction with the beer row locked, so
// concurrent creations for the same beer serialize. The unique index on
// (username, beer_name) backstops the duplicate check.
func (s *reviewService) CreateReview(input ReviewCreate) (*model.Review, error) {
	logger.Info("Creating review", map[string]interface{}{
		"username":  input.Username,
		"beer_name": input.BeerName,
		"score":     input.Score,
	})

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during review creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"username":  input.Username,
				"beer_name": input.BeerName,
			})
		}
	}()

	var beer model.Beer
	if err := lockForUpdate(tx).Where("name = ?", input.BeerName).First(&beer).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create review: beer not found", map[string]interface{}{
				"beer_name": input.BeerName,
			})
			return nil, ErrBeerNotFound
		}
		return nil, err
	}

	var duplicates int64
	if err := tx.Model(&model.Review{}).
		Where("username = ? AND beer_name = ?", input.Username, input.BeerName).
		Count(&duplicates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if duplicates > 0 {
		tx.Rollback()
		logger.Warn("Duplicate review rejected", map[string]interface{}{
			"username":  input.Username,
			"beer_name": input.BeerName,
		})
		return nil, ErrDuplicateReview
	}

	var priorCount int64
	if err := tx.Model(&model.Review{}).
		Where("beer_id = ?", beer.ID).
		Count(&priorCount).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	review := &model.Review{
		Username: input.Username,
		Score:    input.Score,
		Comment:  input.Comment,
		BeerName: beer.Name,
		BeerID:   beer.ID,
	}
	if err := tx.Create(review).Error; err != nil {
		tx.Rollback()
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	newScore := runningMean(beer.Score, priorCount, review.Score)
	if err := tx.Model(&model.Beer{}).Where("id = ?", beer.ID).Updates(map[string]interface{}{
		"score":        newScore,
		"last_updated": time.Now().UTC(),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"beer_id":    beer.ID,
		"beer_score": newScore,
	})
	return review, nil
}

func (s *reviewService) ListReviews(opts repository.ReviewListOptions) ([]model.Review, error) {
	return s.reviewRepo.FindWithOptions(opts)
}

func (s *reviewService) GetReview(id uuid.UUID) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// PatchReview applies a partial update. When the score changes, the new
// value is folded into the beer's running average using the current
// review count, treating the change as one more data point. That is an
// approximation of the true mean, not an exact recomputation; the
// reconciliation job squares it up.
func (s *reviewService) PatchReview(id uuid.UUID, patch ReviewPatch) (*model.Review, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during review patch, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"review_id": id,
			})
		}
	}()

	var review model.Review
	if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{
		"last_updated": time.Now().UTC(),
	}
	if patch.Username != nil {
		fields["username"] = *patch.Username
	}
	if patch.Score != nil {
		fields["score"] = *patch.Score
	}
	if patch.Comment != nil {
		fields["comment"] = *patch.Comment
	}

	if err := tx.Model(&review).Updates(fields).Error; err != nil {
		tx.Rollback()
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	if patch.Score != nil {
		var beer model.Beer
		if err := lockForUpdate(tx).Where("id = ?", review.BeerID).First(&beer).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBeerNotFound
			}
			return nil, err
		}

		var count int64
		if err := tx.Model(&model.Review{}).
			Where("beer_id = ?", beer.ID).
			Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		newScore := runningMean(beer.Score, count, *patch.Score)
		if err := tx.Model(&model.Beer{}).Where("id = ?", beer.ID).Updates(map[string]interface{}{
			"score":        newScore,
			"last_updated": time.Now().UTC(),
		}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Review patched", map[string]interface{}{
		"review_id":     review.ID,
		"score_changed": patch.Score != nil,
	})

	// Reload so the caller sees the persisted state.
	return s.reviewRepo.FindByID(id)
}

func (s *reviewService) DeleteReview(id uuid.UUID) error {
	review, err := s.GetReview(id)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(review); err != nil {
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"review_id": id,
	})
	return nil
}

// ReconcileScores recomputes every beer's score as the exact mean of its
// reviews, correcting drift accumulated by the approximate patch-time
// update. Beers without reviews reset to 0. Returns the number of beers
// whose score changed.
func (s *reviewService) ReconcileScores() (int, error) {
	var beers []model.Beer
	if err := s.db.Find(&beers).Error; err != nil {
		return 0, err
	}

	updated := 0
	for _, beer := range beers {
		var avg float64
		if err := s.db.Model(&model.Review{}).
			Where("beer_id = ?", beer.ID).
			Select("COALESCE(AVG(score), 0)").
			Scan(&avg).Error; err != nil {
			return updated, err
		}

		if math.Abs(avg-beer.Score) < 1e-9 {
			continue
		}

		if err := s.db.Model(&model.Beer{}).Where("id = ?", beer.ID).Updates(map[string]interface{}{
			"score":        avg,
			"last_updated": time.Now().UTC(),
		}).Error; err != nil {
			return updated, err
		}
		updated++

		logger.Debug("Beer score reconciled", map[string]interface{}{
			"beer_id":   beer.ID,
			"old_score": beer.Score,
			"new_score": avg,
		})
	}

	logger.Info("Score reconciliation completed", map[string]interface{}{
		"beers_checked": len(beers),
		"beers_updated": updated,
	})
	return updated, nil
}
