package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmaier/beerlog-backend/internal/app/controller"
	"github.com/dmaier/beerlog-backend/internal/app/repository"
	"github.com/dmaier/beerlog-backend/internal/app/service"
	"github.com/dmaier/beerlog-backend/internal/db"
	"github.com/dmaier/beerlog-backend/internal/storage"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	breweryRepo := repository.NewBreweryRepository(testDB)
	beerRepo := repository.NewBeerRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	breweryService := service.NewBreweryService(breweryRepo)
	beerService := service.NewBeerService(beerRepo, breweryRepo)
	reviewService := service.NewReviewService(reviewRepo, testDB)

	imageStore, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	breweryController := controller.NewBreweryController(breweryService)
	beerController := controller.NewBeerController(beerService)
	reviewController := controller.NewReviewController(reviewService)
	imageController := controller.NewImageController(beerService, imageStore)

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

	return &TestServer{Router: router, DB: testDB}
}

func (ts *TestServer) do(t *testing.T, method, target string, payload interface{}) *httptest.ResponseRecorder {
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
	ts.Router.ServeHTTP(w, req)
	return w
}

func TestCompleteReviewJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// 1. Create a brewery
	t.Log("Step 1: Create brewery")
	w := ts.do(t, "POST", "/breweries", map[string]string{"name": "Acme Brewing"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var breweryResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &breweryResp)
	breweryID := breweryResp["id"].(string)
	require.NotEmpty(t, breweryID)

	// 2. Create beers under it
	t.Log("Step 2: Create beers")
	for _, name := range []string{"Pale", "Stout"} {
		w = ts.do(t, "POST", "/beers", map[string]string{"name": name, "company": "Acme Brewing"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var beerResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &beerResp)
	assert.Equal(t, breweryID, beerResp["company_id"])

	// 3. Browse beers with the brewery attached
	t.Log("Step 3: Browse beers")
	w = ts.do(t, "GET", "/beers?name=Pale", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var beers []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &beers)
	require.Len(t, beers, 1)
	brewery := beers[0]["brewery"].(map[string]interface{})
	assert.Equal(t, "Acme Brewing", brewery["name"])

	// 4. Review the beer from two users
	t.Log("Step 4: Post reviews")
	w = ts.do(t, "POST", "/reviews", map[string]interface{}{
		"username": "alice", "score": 8, "beer_name": "Pale", "comment": "bright and hoppy",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reviewResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &reviewResp)
	reviewID := reviewResp["id"].(string)

	w = ts.do(t, "POST", "/reviews", map[string]interface{}{
		"username": "bob", "score": 4, "beer_name": "Pale",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 5. The beer's average reflects both reviews
	t.Log("Step 5: Check running average")
	w = ts.do(t, "GET", "/beers?name=Pale", nil)
	require.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &beers)
	require.Len(t, beers, 1)
	assert.InDelta(t, 6.0, beers[0]["score"].(float64), 1e-9)
	assert.Len(t, beers[0]["reviews"].([]interface{}), 2)

	// 6. A second review from the same user is forbidden
	t.Log("Step 6: Duplicate review rejected")
	w = ts.do(t, "POST", "/reviews", map[string]interface{}{
		"username": "alice", "score": 2, "beer_name": "Pale",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 7. Patch bumps last_updated but not date_created
	t.Log("Step 7: Patch beer")
	w = ts.do(t, "GET", "/beers?name=Stout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &beers)
	require.Len(t, beers, 1)
	createdBefore, err := time.Parse(time.RFC3339, beers[0]["date_created"].(string))
	require.NoError(t, err)

	w = ts.do(t, "PATCH", "/beers?name=Stout", map[string]string{"name": "Imperial Stout"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, "GET", "/beers?name=Imperial+Stout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &beers)
	require.Len(t, beers, 1)
	createdAfter, err := time.Parse(time.RFC3339, beers[0]["date_created"].(string))
	require.NoError(t, err)
	updatedAfter, err := time.Parse(time.RFC3339, beers[0]["last_updated"].(string))
	require.NoError(t, err)
	assert.True(t, createdAfter.Equal(createdBefore))
	assert.False(t, updatedAfter.Before(createdAfter))

	// 8. The name catalog lists both beers
	t.Log("Step 8: List beer names")
	w = ts.do(t, "GET", "/beers/list-beers?orderby=name", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var names []string
	json.Unmarshal(w.Body.Bytes(), &names)
	assert.Equal(t, []string{"Imperial Stout", "Pale"}, names)

	// 9. Deleting the reviewed beer is blocked until its reviews go
	t.Log("Step 9: Guarded deletes")
	w = ts.do(t, "DELETE", "/beers?name=Pale", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, "DELETE", "/reviews?identifier="+reviewID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, "GET", "/reviews?beer_name=Pale", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var remaining []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &remaining)
	require.Len(t, remaining, 1)

	w = ts.do(t, "DELETE", "/reviews?identifier="+remaining[0]["id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, "DELETE", "/beers?name=Pale", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var deleteResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &deleteResp)
	assert.Equal(t, true, deleteResp["ok"])

	// 10. The brewery still holds the renamed beer, so it cannot go yet
	t.Log("Step 10: Brewery delete guard")
	w = ts.do(t, "DELETE", "/breweries?identifier="+breweryID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, "DELETE", "/beers?name=Imperial+Stout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, "DELETE", "/breweries?identifier="+breweryID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
