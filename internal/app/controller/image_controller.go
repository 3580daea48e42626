package controller

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
	"github.com/dmaier/beerlog-backend/internal/app/service"
	"github.com/dmaier/beerlog-backend/internal/middleware"
	"github.com/dmaier/beerlog-backend/internal/storage"
)

// ImageController stores label images keyed by beer name.
type ImageController struct {
	beerService service.BeerService
	store       storage.ImageStore
}

func NewImageController(beerService service.BeerService, store storage.ImageStore) *ImageController {
	return &ImageController{
		beerService: beerService,
		store:       store,
	}
}

// imageFilename derives the stored name from the beer name and the
// uploaded file's extension. Spaces become hyphens so the name is safe
// in URLs and on disk.
func imageFilename(beerName, original string) string {
	base := strings.ReplaceAll(beerName, " ", "-")
	return base + filepath.Ext(original)
}

func (ctrl *ImageController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	beerName := c.Query("beer_name")
	if beerName == "" {
		apperrors.BadRequest(c, apperrors.QueryMissingIdentifier, "a beer_name query parameter is required")
		return
	}

	if _, err := ctrl.beerService.GetBeer(nil, beerName); err != nil {
		if err == service.ErrBeerNotFound {
			apperrors.NotFound(c, apperrors.BeerNotFound, "beer not found")
			return
		}
		log.Error("Failed to resolve beer for image upload", err, map[string]interface{}{
			"beer_name": beerName,
		})
		apperrors.InternalError(c, "Failed to upload image")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		log.Warn("Image upload without a file part", map[string]interface{}{
			"beer_name": beerName,
		})
		apperrors.BadRequest(c, apperrors.UploadNoFile, "a multipart file field named file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"beer_name": beerName,
		})
		apperrors.InternalError(c, "Failed to upload image")
		return
	}
	defer file.Close()

	filename := imageFilename(beerName, header.Filename)
	contentType := header.Header.Get("Content-Type")

	url, err := ctrl.store.Save(c.Request.Context(), filename, contentType, file)
	if err != nil {
		log.Error("Failed to store uploaded image", err, map[string]interface{}{
			"beer_name": beerName,
			"filename":  filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to store image")
		return
	}

	log.Info("Image uploaded", map[string]interface{}{
		"beer_name": beerName,
		"filename":  filename,
	})

	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"url":      url,
	})
}
