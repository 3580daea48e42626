package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
)

func uploadImage(t *testing.T, router *gin.Engine, target, fieldName, fileName string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if fieldName != "" {
		part, err := writer.CreateFormFile(fieldName, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImageController_Upload(t *testing.T) {
	router, _ := setupControllerTest(t)

	createBrewery(t, router, "Acme Brewing")
	createBeer(t, router, "Hoppy Pale Ale", "Acme Brewing")

	w := uploadImage(t, router, "/images?beer_name=Hoppy+Pale+Ale", "file", "label.png")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Hoppy-Pale-Ale.png", body["filename"])
	assert.NotEmpty(t, body["url"])
}

func TestImageController_Upload_NoFile(t *testing.T) {
	router, _ := setupControllerTest(t)

	createBrewery(t, router, "Acme Brewing")
	createBeer(t, router, "Pale", "Acme Brewing")

	w := uploadImage(t, router, "/images?beer_name=Pale", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.UploadNoFile, decodeBody(t, w)["error"])
}

func TestImageController_Upload_MissingBeerName(t *testing.T) {
	router, _ := setupControllerTest(t)

	w := uploadImage(t, router, "/images", "file", "label.png")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageController_Upload_UnknownBeer(t *testing.T) {
	router, _ := setupControllerTest(t)

	w := uploadImage(t, router, "/images?beer_name=Ghost", "file", "label.png")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.BeerNotFound, decodeBody(t, w)["error"])
}

func TestImageFilename(t *testing.T) {
	assert.Equal(t, "Hoppy-Pale-Ale.png", imageFilename("Hoppy Pale Ale", "shot.png"))
	assert.Equal(t, "Pale.jpeg", imageFilename("Pale", "photo.jpeg"))
	assert.Equal(t, "Pale", imageFilename("Pale", "noext"))
}
