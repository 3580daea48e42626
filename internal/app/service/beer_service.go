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
	ErrBeerNotFound   = errors.New("beer not found")
	ErrBeerExists     = errors.New("beer name already exists")
	ErrBeerHasReviews = errors.New("beer still has reviews")
)

// BeerCreate carries the client-supplied creation fields. Company names
// the brewery, which must already exist.
type BeerCreate struct {
	Name    string
	Company string
}

// BeerPatch carries the optional fields of a partial update. Changing
// Company re-resolves the brewery so company_id stays consistent.
type BeerPatch struct {
	Name    *string
	Company *string
}

type BeerService interface {
	CreateBeer(input BeerCreate) (*model.Beer, error)
	ListBeers(opts repository.ListOptions) ([]model.Beer, error)
	ListBeerNames(opts repository.ListOptions) ([]string, error)
	GetBeer(id *uuid.UUID, name string) (*model.Beer, error)
	PatchBeer(id *uuid.UUID, name string, patch BeerPatch) (*model.Beer, error)
	DeleteBeer(id *uuid.UUID, name string) error
}

type beerService struct {
	beerRepo    repository.BeerRepository
	breweryRepo repository.BreweryRepository
}

func NewBeerService(beerRepo repository.BeerRepository, breweryRepo repository.BreweryRepository) BeerService {
	return &beerService{
		beerRepo:    beerRepo,
		breweryRepo: breweryRepo,
	}
}

// CreateBeer inserts a beer after resolving its brewery by name. The
// brewery must already exist; beers never create breweries implicitly.
func (s *beerService) CreateBeer(input BeerCreate) (*model.Beer, error) {
	logger.Info("Creating beer", map[string]interface{}{
		"name":    input.Name,
		"company": input.Company,
	})

	brewery, err := s.breweryRepo.FindOne(nil, input.Company)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create beer: brewery not found", map[string]interface{}{
				"company": input.Company,
			})
			return nil, ErrBreweryNotFound
		}
		return nil, err
	}

	beer := &model.Beer{
		Name:      input.Name,
		Company:   brewery.Name,
		CompanyID: brewery.ID,
	}
	if err := s.beerRepo.Create(beer); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Beer name already exists", map[string]interface{}{
				"name": input.Name,
			})
			return nil, ErrBeerExists
		}
		return nil, err
	}

	logger.Info("Beer created", map[string]interface{}{
		"beer_id":    beer.ID,
		"name":       beer.Name,
		"company_id": beer.CompanyID,
	})
	return beer, nil
}

func (s *beerService) ListBeers(opts repository.ListOptions) ([]model.Beer, error) {
	return s.beerRepo.FindWithOptions(opts)
}

func (s *beerService) ListBeerNames(opts repository.ListOptions) ([]string, error) {
	return s.beerRepo.ListNames(opts)
}

func (s *beerService) GetBeer(id *uuid.UUID, name string) (*model.Beer, error) {
	beer, err := s.beerRepo.FindOne(id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeerNotFound
		}
		return nil, err
	}
	return beer, nil
}

func (s *beerService) PatchBeer(id *uuid.UUID, name string, patch BeerPatch) (*model.Beer, error) {
	beer, err := s.GetBeer(id, name)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Company != nil {
		brewery, err := s.breweryRepo.FindOne(nil, *patch.Company)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBreweryNotFound
			}
			return nil, err
		}
		fields["company"] = brewery.Name
		fields["company_id"] = brewery.ID
	}

	if err := s.beerRepo.Patch(beer, fields); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrBeerExists
		}
		return nil, err
	}

	logger.Info("Beer patched", map[string]interface{}{
		"beer_id": beer.ID,
		"name":    beer.Name,
	})
	return beer, nil
}

// DeleteBeer removes a beer. Deletion is rejected while reviews still
// reference the beer; there is no cascade.
func (s *beerService) DeleteBeer(id *uuid.UUID, name string) error {
	beer, err := s.GetBeer(id, name)
	if err != nil {
		return err
	}

	reviewCount, err := s.beerRepo.CountReviews(beer.ID)
	if err != nil {
		return err
	}
	if reviewCount > 0 {
		logger.Warn("Cannot delete beer: reviews still reference it", map[string]interface{}{
			"beer_id":      beer.ID,
			"review_count": reviewCount,
		})
		return ErrBeerHasReviews
	}

	if err := s.beerRepo.Delete(beer); err != nil {
		return err
	}

	logger.Info("Beer deleted", map[string]interface{}{
		"beer_id": beer.ID,
		"name":    beer.Name,
	})
	return nil
}
