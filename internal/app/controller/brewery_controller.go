package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
	"github.com/dmaier/beerlog-backend/internal/app/service"
	"github.com/dmaier/beerlog-backend/internal/middleware"
)

type BreweryController struct {
	breweryService service.BreweryService
}

func NewBreweryController(breweryService service.BreweryService) *BreweryController {
	return &BreweryController{breweryService: breweryService}
}

type BreweryCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

type BreweryPatchRequest struct {
	Name *string `json:"name"`
}

func (ctrl *BreweryController) CreateBrewery(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BreweryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid brewery payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	brewery, err := ctrl.breweryService.CreateBrewery(req.Name)
	if err != nil {
		if err == service.ErrBreweryExists {
			log.Warn("Brewery already exists", map[string]interface{}{
				"name": req.Name,
			})
			apperrors.Conflict(c, apperrors.BreweryExists, "a brewery with that name already exists")
			return
		}
		log.Error("Failed to create brewery", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create brewery")
		return
	}

	log.Info("Brewery created", map[string]interface{}{
		"brewery_id": brewery.ID,
		"name":       brewery.Name,
	})

	c.JSON(http.StatusOK, brewery)
}

func (ctrl *BreweryController) ListBreweries(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts, ok := parseListOptions(c)
	if !ok {
		return
	}

	breweries, err := ctrl.breweryService.ListBreweries(opts)
	if err != nil {
		if respondQueryError(c, err) {
			return
		}
		log.Error("Failed to list breweries", err, nil)
		apperrors.InternalError(c, "Failed to fetch breweries")
		return
	}

	log.Info("Breweries listed", map[string]interface{}{
		"count": len(breweries),
	})

	c.JSON(http.StatusOK, breweries)
}

func (ctrl *BreweryController) PatchBrewery(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, name, ok := resolveIdentifier(c)
	if !ok {
		return
	}

	var req BreweryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	brewery, err := ctrl.breweryService.PatchBrewery(id, name, service.BreweryPatch{Name: req.Name})
	if err != nil {
		switch err {
		case service.ErrBreweryNotFound:
			apperrors.NotFound(c, apperrors.BreweryNotFound, "brewery not found")
		case service.ErrBreweryExists:
			apperrors.Conflict(c, apperrors.BreweryExists, "a brewery with that name already exists")
		default:
			if respondQueryError(c, err) {
				return
			}
			log.Error("Failed to patch brewery", err, nil)
			apperrors.InternalError(c, "Failed to update brewery")
		}
		return
	}

	log.Info("Brewery patched", map[string]interface{}{
		"brewery_id": brewery.ID,
	})

	c.JSON(http.StatusOK, brewery)
}

func (ctrl *BreweryController) DeleteBrewery(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, name, ok := resolveIdentifier(c)
	if !ok {
		return
	}

	if err := ctrl.breweryService.DeleteBrewery(id, name); err != nil {
		switch err {
		case service.ErrBreweryNotFound:
			apperrors.NotFound(c, apperrors.BreweryNotFound, "brewery not found")
		case service.ErrBreweryHasBeers:
			apperrors.Conflict(c, apperrors.BreweryHasBeers, "the brewery still has beers attached")
		default:
			if respondQueryError(c, err) {
				return
			}
			log.Error("Failed to delete brewery", err, nil)
			apperrors.InternalError(c, "Failed to delete brewery")
		}
		return
	}

	log.Info("Brewery deleted", map[string]interface{}{
		"name": name,
	})

	c.JSON(http.StatusOK, DeleteResponse{OK: true})
}
