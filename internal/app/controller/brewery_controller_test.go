package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
)

func TestBreweryController_Create(t *testing.T) {
	router, _ := setupControllerTest(t)

	body := createBrewery(t, router, "Acme Brewing")
	assert.Equal(t, "Acme Brewing", body["name"])
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["date_created"])
}

func TestBreweryController_Create_MissingName(t *testing.T) {
	router, _ := setupControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/breweries", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperrors.ValidationInvalidInput, decodeBody(t, w)["error"])
}

func TestBreweryController_Create_Duplicate(t *testing.T) {
	router, _ := setupControllerTest(t)

	createBrewery(t, router, "Acme Brewing")
	w := doJSON(t, router, http.MethodPost, "/breweries", gin.H{"name": "Acme Brewing"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.BreweryExists, decodeBody(t, w)["error"])
}

func TestBreweryController_List(t *testing.T) {
	router, _ := setupControllerTest(t)

	createBrewery(t, router, "Acme Brewing")
	createBrewery(t, router, "Burton Ales")

	w := doJSON(t, router, http.MethodGet, "/breweries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)
}

func TestBreweryController_List_FilterByName(t *testing.T) {
	router, _ := setupControllerTest(t)

	createBrewery(t, router, "Acme Brewing")
	createBrewery(t, router, "Burton Ales")

	w := doJSON(t, router, http.MethodGet, "/breweries?name=Burton+Ales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Burton Ales", list[0]["name"])
}

func TestBreweryController_List_FilterByIdentifier(t *testing.T) {
	router, _ := setupControllerTest(t)

	created := createBrewery(t, router, "Acme Brewing")
	createBrewery(t, router, "Burton Ales")

	w := doJSON(t, router, http.MethodGet, "/breweries?identifier="+created["id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Brewing", list[0]["name"])
}

func TestBreweryController_List_BadQueryParams(t *testing.T) {
	router, _ := setupControllerTest(t)

	cases := []struct {
		name  string
		query string
		code  string
	}{
		{"invalid orderby", "?orderby=bogus", apperrors.QueryInvalidOrderBy},
		{"invalid order", "?orderby=name&order=sideways", apperrors.QueryInvalidOrder},
		{"negative offset", "?offset=-3", apperrors.QueryInvalidOffset},
		{"non-numeric offset", "?offset=abc", apperrors.QueryInvalidOffset},
		{"non-numeric limit", "?limit=abc", apperrors.QueryInvalidLimit},
		{"malformed identifier", "?identifier=not-a-uuid", apperrors.ValidationInvalidID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/breweries"+tc.query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, decodeBody(t, w)["error"])
		})
	}
}

func TestBreweryController_Patch(t *testing.T) {
	router, _ := setupControllerTest(t)

	createBrewery(t, router, "Acme Brewing")

	w := doJSON(t, router, http.MethodPatch, "/breweries?name=Acme+Brewing", gin.H{"name": "Acme Brewery Co"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Acme Brewery Co", decodeBody(t, w)["name"])
}

func TestBreweryController_Patch_MissingIdentifier(t *testing.T) {
	router, _ := setupControllerTest(t)

	w := doJSON(t, router, http.MethodPatch, "/breweries", gin.H{"name": "Whatever"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.QueryMissingIdentifier, decodeBody(t, w)["error"])
}

func TestBreweryController_Patch_NotFound(t *testing.T) {
	router, _ := setupControllerTest(t)

	w := doJSON(t, router, http.MethodPatch, "/breweries?name=Ghost", gin.H{"name": "Whatever"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.BreweryNotFound, decodeBody(t, w)["error"])
}

func TestBreweryController_Delete(t *testing.T) {
	router, _ := setupControllerTest(t)

	createBrewery(t, router, "Acme Brewing")

	w := doJSON(t, router, http.MethodDelete, "/breweries?name=Acme+Brewing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["ok"])

	w = doJSON(t, router, http.MethodGet, "/breweries?name=Acme+Brewing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 0)
}

func TestBreweryController_Delete_MissingIdentifier(t *testing.T) {
	router, _ := setupControllerTest(t)

	w := doJSON(t, router, http.MethodDelete, "/breweries", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.QueryMissingIdentifier, decodeBody(t, w)["error"])
}

func TestBreweryController_Delete_WithBeers(t *testing.T) {
	router, _ := setupControllerTest(t)

	createBrewery(t, router, "Acme Brewing")
	createBeer(t, router, "Pale", "Acme Brewing")

	w := doJSON(t, router, http.MethodDelete, "/breweries?name=Acme+Brewing", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.BreweryHasBeers, decodeBody(t, w)["error"])
}
