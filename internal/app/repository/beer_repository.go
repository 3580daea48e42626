package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmaier/beerlog-backend/internal/app/model"
	"github.com/dmaier/beerlog-backend/pkg/logger"
)

type BeerRepository interface {
	Create(beer *model.Beer) error
	FindOne(id *uuid.UUID, name string) (*model.Beer, error)
	FindWithOptions(opts ListOptions) ([]model.Beer, error)
	ListNames(opts ListOptions) ([]string, error)
	Patch(beer *model.Beer, fields map[string]interface{}) error
	Delete(beer *model.Beer) error
	CountReviews(beerID uuid.UUID) (int64, error)
}

type beerRepository struct {
	db *gorm.DB
}

func NewBeerRepository(db *gorm.DB) BeerRepository {
	return &beerRepository{db: db}
}

func (r *beerRepository) Create(beer *model.Beer) error {
	if err := r.db.Create(beer).Error; err != nil {
		logger.Error("Failed to create beer in database", err, map[string]interface{}{
			"name":    beer.Name,
			"company": beer.Company,
		})
		return err
	}

	logger.Debug("Beer created in database", map[string]interface{}{
		"beer_id": beer.ID,
		"name":    beer.Name,
	})
	return nil
}

// FindOne resolves a beer by name or generated identifier. Name wins when
// both are given; neither given is ErrMissingIdentifier.
func (r *beerRepository) FindOne(id *uuid.UUID, name string) (*model.Beer, error) {
	query := r.db
	switch {
	case name != "":
		query = query.Where("name = ?", name)
	case id != nil:
		query = query.Where("id = ?", *id)
	default:
		return nil, ErrMissingIdentifier
	}

	var beer model.Beer
	if err := query.First(&beer).Error; err != nil {
		return nil, err
	}
	return &beer, nil
}

// FindWithOptions lists beers with their brewery and reviews eager-loaded
// in one round trip, avoiding per-row lookups.
func (r *beerRepository) FindWithOptions(opts ListOptions) ([]model.Beer, error) {
	query := r.db.Model(&model.Beer{}).Preload("Brewery").Preload("Reviews")

	if opts.Name != "" {
		query = query.Where("name = ?", opts.Name)
	}
	if opts.Identifier != nil {
		query = query.Where("id = ?", *opts.Identifier)
	}

	query, err := applyListOptions(query, opts, beerSortColumns)
	if err != nil {
		return nil, err
	}

	var beers []model.Beer
	if err := query.Find(&beers).Error; err != nil {
		logger.Error("Failed to list beers", err, map[string]interface{}{
			"name": opts.Name,
		})
		return nil, err
	}
	return beers, nil
}

// ListNames returns just the beer names, honoring the same sort and
// pagination options as the full listing.
func (r *beerRepository) ListNames(opts ListOptions) ([]string, error) {
	query := r.db.Model(&model.Beer{})

	query, err := applyListOptions(query, opts, beerSortColumns)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := query.Pluck("name", &names).Error; err != nil {
		logger.Error("Failed to list beer names", err, nil)
		return nil, err
	}
	return names, nil
}

// Patch applies only the supplied fields and bumps last_updated.
func (r *beerRepository) Patch(beer *model.Beer, fields map[string]interface{}) error {
	fields["last_updated"] = time.Now().UTC()

	if err := r.db.Model(beer).Updates(fields).Error; err != nil {
		logger.Error("Failed to patch beer in database", err, map[string]interface{}{
			"beer_id": beer.ID,
		})
		return err
	}

	logger.Debug("Beer patched in database", map[string]interface{}{
		"beer_id": beer.ID,
	})
	return nil
}

func (r *beerRepository) Delete(beer *model.Beer) error {
	if err := r.db.Delete(beer).Error; err != nil {
		logger.Error("Failed to delete beer from database", err, map[string]interface{}{
			"beer_id": beer.ID,
		})
		return err
	}

	logger.Debug("Beer deleted from database", map[string]interface{}{
		"beer_id": beer.ID,
		"name":    beer.Name,
	})
	return nil
}

func (r *beerRepository) CountReviews(beerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).Where("beer_id = ?", beerID).Count(&count).Error
	return count, err
}
