package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmaier/beerlog-backend/internal/app/repository"
	"github.com/dmaier/beerlog-backend/internal/app/service"
	"github.com/dmaier/beerlog-backend/internal/db"
	"github.com/dmaier/beerlog-backend/internal/storage"
)

// setupControllerTest wires the full handler stack against an in-memory
// database and returns the router plus the raw DB for fixtures.
func setupControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	breweryRepo := repository.NewBreweryRepository(testDB)
	beerRepo := repository.NewBeerRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	breweryService := service.NewBreweryService(breweryRepo)
	beerService := service.NewBeerService(beerRepo, breweryRepo)
	reviewService := service.NewReviewService(reviewRepo, testDB)

	imageStore, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	breweryController := NewBreweryController(breweryService)
	beerController := NewBeerController(beerService)
	reviewController := NewReviewController(reviewService)
	imageController := NewImageController(beerService, imageStore)

	router := gin.New()

	breweries := router.Group("/breweries")
	{
		breweries.POST("", breweryController.CreateBrewery)
		breweries.GET("", breweryController.ListBreweries)
		breweries.PATCH("", breweryController.PatchBrewery)
		breweries.DELETE("", breweryController.DeleteBrewery)
	}

	beers := router.Group("/beers")
	{
		beers.POST("", beerController.CreateBeer)
		beers.GET("", beerController.ListBeers)
		beers.GET("/list-beers", beerController.ListBeerNames)
		beers.PATCH("", beerController.PatchBeer)
		beers.DELETE("", beerController.DeleteBeer)
	}

	reviews := router.Group("/reviews")
	{
		reviews.POST("", reviewController.CreateReview)
		reviews.GET("", reviewController.ListReviews)
		reviews.PATCH("", reviewController.PatchReview)
		reviews.DELETE("", reviewController.DeleteReview)
	}

	images := router.Group("/images")
	{
		images.POST("", imageController.UploadImage)
	}

	return router, testDB
}

func doJSON(t *testing.T, router *gin.Engine, method, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createBrewery(t *testing.T, router *gin.Engine, name string) map[string]interface{} {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/breweries", gin.H{"name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)
}

func createBeer(t *testing.T, router *gin.Engine, name, company string) map[string]interface{} {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/beers", gin.H{"name": name, "company": company})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)
}
