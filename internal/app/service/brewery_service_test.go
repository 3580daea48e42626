package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmaier/beerlog-backend/internal/app/model"
	"github.com/dmaier/beerlog-backend/internal/app/repository"
	"github.com/dmaier/beerlog-backend/internal/db"
)

func setupBreweryServiceTest(t *testing.T) (BreweryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	breweryRepo := repository.NewBreweryRepository(testDB)
	return NewBreweryService(breweryRepo), testDB
}

func TestBreweryService_CreateBrewery(t *testing.T) {
	breweryService, _ := setupBreweryServiceTest(t)

	brewery, err := breweryService.CreateBrewery("Acme Brewing")
	require.NoError(t, err)
	assert.Equal(t, "Acme Brewing", brewery.Name)
	assert.NotZero(t, brewery.ID)
}

func TestBreweryService_CreateBrewery_Duplicate(t *testing.T) {
	breweryService, _ := setupBreweryServiceTest(t)

	_, err := breweryService.CreateBrewery("Acme Brewing")
	require.NoError(t, err)

	_, err = breweryService.CreateBrewery("Acme Brewing")
	assert.ErrorIs(t, err, ErrBreweryExists)
}

func TestBreweryService_GetBrewery_NotFound(t *testing.T) {
	breweryService, _ := setupBreweryServiceTest(t)

	_, err := breweryService.GetBrewery(nil, "Ghost Brewery")
	assert.ErrorIs(t, err, ErrBreweryNotFound)
}

func TestBreweryService_PatchBrewery(t *testing.T) {
	breweryService, _ := setupBreweryServiceTest(t)

	brewery, err := breweryService.CreateBrewery("Acme Brewing")
	require.NoError(t, err)

	newName := "Acme Brewery Co"
	patched, err := breweryService.PatchBrewery(nil, "Acme Brewing", BreweryPatch{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Acme Brewery Co", patched.Name)
	assert.Equal(t, brewery.ID, patched.ID)
}

func TestBreweryService_PatchBrewery_NotFound(t *testing.T) {
	breweryService, _ := setupBreweryServiceTest(t)

	newName := "Whatever"
	_, err := breweryService.PatchBrewery(nil, "Ghost Brewery", BreweryPatch{Name: &newName})
	assert.ErrorIs(t, err, ErrBreweryNotFound)
}

func TestBreweryService_PatchBrewery_MissingIdentifier(t *testing.T) {
	breweryService, _ := setupBreweryServiceTest(t)

	newName := "Whatever"
	_, err := breweryService.PatchBrewery(nil, "", BreweryPatch{Name: &newName})
	assert.ErrorIs(t, err, repository.ErrMissingIdentifier)
}

func TestBreweryService_DeleteBrewery(t *testing.T) {
	breweryService, _ := setupBreweryServiceTest(t)

	_, err := breweryService.CreateBrewery("Acme Brewing")
	require.NoError(t, err)

	require.NoError(t, breweryService.DeleteBrewery(nil, "Acme Brewing"))

	_, err = breweryService.GetBrewery(nil, "Acme Brewing")
	assert.ErrorIs(t, err, ErrBreweryNotFound)
}

func TestBreweryService_DeleteBrewery_WithBeersRejected(t *testing.T) {
	breweryService, testDB := setupBreweryServiceTest(t)

	brewery, err := breweryService.CreateBrewery("Acme Brewing")
	require.NoError(t, err)

	beer := &model.Beer{Name: "Pale", Company: brewery.Name, CompanyID: brewery.ID}
	require.NoError(t, testDB.Create(beer).Error)

	err = breweryService.DeleteBrewery(nil, "Acme Brewing")
	assert.ErrorIs(t, err, ErrBreweryHasBeers)

	// Still there.
	_, err = breweryService.GetBrewery(nil, "Acme Brewing")
	assert.NoError(t, err)
}
