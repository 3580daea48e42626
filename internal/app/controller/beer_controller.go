package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
	"github.com/dmaier/beerlog-backend/internal/app/service"
	"github.com/dmaier/beerlog-backend/internal/middleware"
)

type BeerController struct {
	beerService service.BeerService
}

func NewBeerController(beerService service.BeerService) *BeerController {
	return &BeerController{beerService: beerService}
}

type BeerCreateRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company" binding:"required"`
}

type BeerPatchRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
}

func (ctrl *BeerController) CreateBeer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BeerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid beer payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	beer, err := ctrl.beerService.CreateBeer(service.BeerCreate{
		Name:    req.Name,
		Company: req.Company,
	})
	if err != nil {
		switch err {
		case service.ErrBreweryNotFound:
			log.Warn("Brewery not found for beer", map[string]interface{}{
				"company": req.Company,
			})
			apperrors.NotFound(c, apperrors.BreweryNotFound, "the brewing company does not exist")
		case service.ErrBeerExists:
			apperrors.Conflict(c, apperrors.BeerExists, "a beer with that name already exists")
		default:
			log.Error("Failed to create beer", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.InternalError(c, "Failed to create beer")
		}
		return
	}

	log.Info("Beer created", map[string]interface{}{
		"beer_id": beer.ID,
		"name":    beer.Name,
	})

	c.JSON(http.StatusOK, beer)
}

func (ctrl *BeerController) ListBeers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts, ok := parseListOptions(c)
	if !ok {
		return
	}

	beers, err := ctrl.beerService.ListBeers(opts)
	if err != nil {
		if respondQueryError(c, err) {
			return
		}
		log.Error("Failed to list beers", err, nil)
		apperrors.InternalError(c, "Failed to fetch beers")
		return
	}

	log.Info("Beers listed", map[string]interface{}{
		"count": len(beers),
	})

	c.JSON(http.StatusOK, beers)
}

// ListBeerNames serves the flat catalog of beer names.
func (ctrl *BeerController) ListBeerNames(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts, ok := parseListOptions(c)
	if !ok {
		return
	}

	names, err := ctrl.beerService.ListBeerNames(opts)
	if err != nil {
		if respondQueryError(c, err) {
			return
		}
		log.Error("Failed to list beer names", err, nil)
		apperrors.InternalError(c, "Failed to fetch beer names")
		return
	}

	c.JSON(http.StatusOK, names)
}

func (ctrl *BeerController) PatchBeer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, name, ok := resolveIdentifier(c)
	if !ok {
		return
	}

	var req BeerPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	beer, err := ctrl.beerService.PatchBeer(id, name, service.BeerPatch{
		Name:    req.Name,
		Company: req.Company,
	})
	if err != nil {
		switch err {
		case service.ErrBeerNotFound:
			apperrors.NotFound(c, apperrors.BeerNotFound, "beer not found")
		case service.ErrBreweryNotFound:
			apperrors.NotFound(c, apperrors.BreweryNotFound, "the brewing company does not exist")
		case service.ErrBeerExists:
			apperrors.Conflict(c, apperrors.BeerExists, "a beer with that name already exists")
		default:
			if respondQueryError(c, err) {
				return
			}
			log.Error("Failed to patch beer", err, nil)
			apperrors.InternalError(c, "Failed to update beer")
		}
		return
	}

	log.Info("Beer patched", map[string]interface{}{
		"beer_id": beer.ID,
	})

	c.JSON(http.StatusOK, beer)
}

func (ctrl *BeerController) DeleteBeer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, name, ok := resolveIdentifier(c)
	if !ok {
		return
	}

	if err := ctrl.beerService.DeleteBeer(id, name); err != nil {
		switch err {
		case service.ErrBeerNotFound:
			apperrors.NotFound(c, apperrors.BeerNotFound, "beer not found")
		case service.ErrBeerHasReviews:
			apperrors.Conflict(c, apperrors.BeerHasReviews, "the beer still has reviews attached")
		default:
			if respondQueryError(c, err) {
				return
			}
			log.Error("Failed to delete beer", err, nil)
			apperrors.InternalError(c, "Failed to delete beer")
		}
		return
	}

	log.Info("Beer deleted", map[string]interface{}{
		"name": name,
	})

	c.JSON(http.StatusOK, DeleteResponse{OK: true})
}
