package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
	"github.com/dmaier/beerlog-backend/internal/app/model"
	"github.com/dmaier/beerlog-backend/internal/app/repository"
	"github.com/dmaier/beerlog-backend/pkg/logger"
)

var (
	ErrBreweryNotFound = errors.New("brewery not found")
	ErrBreweryExists   = errors.New("brewery name already exists")
	ErrBreweryHasBeers = errors.New("brewery still has beers")
)

// BreweryPatch carries the optional fields of a partial update. Only
// non-nil fields are applied.
type BreweryPatch struct {
	Name *string
}

type BreweryService interface {
	CreateBrewery(name string) (*model.Brewery, error)
	ListBreweries(opts repository.ListOptions) ([]model.Brewery, error)
	GetBrewery(id *uuid.UUID, name string) (*model.Brewery, error)
	PatchBrewery(id *uuid.UUID, name string, patch BreweryPatch) (*model.Brewery, error)
	DeleteBrewery(id *uuid.UUID, name string) error
}

type breweryService struct {
	breweryRepo repository.BreweryRepository
}

func NewBreweryService(breweryRepo repository.BreweryRepository) BreweryService {
	return &breweryService{breweryRepo: breweryRepo}
}

func (s *breweryService) CreateBrewery(name string) (*model.Brewery, error) {
	logger.Info("Creating brewery", map[string]interface{}{
		"name": name,
	})

	brewery := &model.Brewery{Name: name}
	if err := s.breweryRepo.Create(brewery); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Brewery name already exists", map[string]interface{}{
				"name": name,
			})
			return nil, ErrBreweryExists
		}
		return nil, err
	}

	logger.Info("Brewery created", map[string]interface{}{
		"brewery_id": brewery.ID,
		"name":       brewery.Name,
	})
	return brewery, nil
}

func (s *breweryService) ListBreweries(opts repository.ListOptions) ([]model.Brewery, error) {
	return s.breweryRepo.FindWithOptions(opts)
}

func (s *breweryService) GetBrewery(id *uuid.UUID, name string) (*model.Brewery, error) {
	brewery, err := s.breweryRepo.FindOne(id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBreweryNotFound
		}
		return nil, err
	}
	return brewery, nil
}

func (s *breweryService) PatchBrewery(id *uuid.UUID, name string, patch BreweryPatch) (*model.Brewery, error) {
	brewery, err := s.GetBrewery(id, name)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}

	if err := s.breweryRepo.Patch(brewery, fields); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrBreweryExists
		}
		return nil, err
	}

	logger.Info("Brewery patched", map[string]interface{}{
		"brewery_id": brewery.ID,
		"name":       brewery.Name,
	})
	return brewery, nil
}

// DeleteBrewery removes a brewery. Deletion is rejected while beers still
// reference the brewery; there is no cascade.
func (s *breweryService) DeleteBrewery(id *uuid.UUID, name string) error {
	brewery, err := s.GetBrewery(id, name)
	if err != nil {
		return err
	}

	beerCount, err := s.breweryRepo.CountBeers(brewery.ID)
	if err != nil {
		return err
	}
	if beerCount > 0 {
		logger.Warn("Cannot delete brewery: beers still reference it", map[string]interface{}{
			"brewery_id": brewery.ID,
			"beer_count": beerCount,
		})
		return ErrBreweryHasBeers
	}

	if err := s.breweryRepo.Delete(brewery); err != nil {
		return err
	}

	logger.Info("Brewery deleted", map[string]interface{}{
		"brewery_id": brewery.ID,
		"name":       brewery.Name,
	})
	return nil
}
