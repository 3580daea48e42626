package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmaier/beerlog-backend/internal/app/model"
	"github.com/dmaier/beerlog-backend/pkg/logger"
)

type BreweryRepository interface {
	Create(brewery *model.Brewery) error
	FindOne(id *uuid.UUID, name string) (*model.Brewery, error)
	FindWithOptions(opts ListOptions) ([]model.Brewery, error)
	Patch(brewery *model.Brewery, fields map[string]interface{}) error
	Delete(brewery *model.Brewery) error
	CountBeers(breweryID uuid.UUID) (int64, error)
}

type breweryRepository struct {
	db *gorm.DB
}

func NewBreweryRepository(db *gorm.DB) BreweryRepository {
	return &breweryRepository{db: db}
}

func (r *breweryRepository) Create(brewery *model.Brewery) error {
	if err := r.db.Create(brewery).Error; err != nil {
		logger.Error("Failed to create brewery in database", err, map[string]interface{}{
			"name": brewery.Name,
		})
		return err
	}

	logger.Debug("Brewery created in database", map[string]interface{}{
		"brewery_id": brewery.ID,
		"name":       brewery.Name,
	})
	return nil
}

// FindOne resolves a brewery by name or generated identifier. Name wins
// when both are given; neither given is ErrMissingIdentifier.
func (r *breweryRepository) FindOne(id *uuid.UUID, name string) (*model.Brewery, error) {
	query := r.db
	switch {
	case name != "":
		query = query.Where("name = ?", name)
	case id != nil:
		query = query.Where("id = ?", *id)
	default:
		return nil, ErrMissingIdentifier
	}

	var brewery model.Brewery
	if err := query.First(&brewery).Error; err != nil {
		return nil, err
	}
	return &brewery, nil
}

// FindWithOptions lists breweries with their beers eager-loaded.
func (r *breweryRepository) FindWithOptions(opts ListOptions) ([]model.Brewery, error) {
	query := r.db.Model(&model.Brewery{}).Preload("Beers")

	if opts.Name != "" {
		query = query.Where("name = ?", opts.Name)
	}
	if opts.Identifier != nil {
		query = query.Where("id = ?", *opts.Identifier)
	}

	query, err := applyListOptions(query, opts, brewerySortColumns)
	if err != nil {
		return nil, err
	}

	var breweries []model.Brewery
	if err := query.Find(&breweries).Error; err != nil {
		logger.Error("Failed to list breweries", err, map[string]interface{}{
			"name": opts.Name,
		})
		return nil, err
	}
	return breweries, nil
}

// Patch applies only the supplied fields and bumps last_updated.
func (r *breweryRepository) Patch(brewery *model.Brewery, fields map[string]interface{}) error {
	fields["last_updated"] = time.Now().UTC()

	if err := r.db.Model(brewery).Updates(fields).Error; err != nil {
		logger.Error("Failed to patch brewery in database", err, map[string]interface{}{
			"brewery_id": brewery.ID,
		})
		return err
	}

	logger.Debug("Brewery patched in database", map[string]interface{}{
		"brewery_id": brewery.ID,
	})
	return nil
}

func (r *breweryRepository) Delete(brewery *model.Brewery) error {
	if err := r.db.Delete(brewery).Error; err != nil {
		logger.Error("Failed to delete brewery from database", err, map[string]interface{}{
			"brewery_id": brewery.ID,
		})
		return err
	}

	logger.Debug("Brewery deleted from database", map[string]interface{}{
		"brewery_id": brewery.ID,
		"name":       brewery.Name,
	})
	return nil
}

func (r *breweryRepository) CountBeers(breweryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Beer{}).Where("company_id = ?", breweryID).Count(&count).Error
	return count, err
}
