package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
	"github.com/dmaier/beerlog-backend/internal/app/repository"
	"github.com/dmaier/beerlog-backend/internal/app/service"
	"github.com/dmaier/beerlog-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type ReviewCreateRequest struct {
	Username string  `json:"username" binding:"required"`
	Score    float64 `json:"score" binding:"required,gt=0,lte=10"`
	Comment  *string `json:"comment"`
	BeerName string  `json:"beer_name" binding:"required"`
}

type ReviewPatchRequest struct {
	Username *string  `json:"username"`
	Score    *float64 `json:"score" binding:"omitempty,gt=0,lte=10"`
	Comment  *string  `json:"comment"`
}

func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	review, err := ctrl.reviewService.CreateReview(service.ReviewCreate{
		Username: req.Username,
		Score:    req.Score,
		Comment:  req.Comment,
		BeerName: req.BeerName,
	})
	if err != nil {
		switch err {
		case service.ErrBeerNotFound:
			log.Warn("Beer not found for review", map[string]interface{}{
				"beer_name": req.BeerName,
			})
			apperrors.NotFound(c, apperrors.BeerNotFound, "the reviewed beer does not exist")
		case service.ErrDuplicateReview:
			log.Warn("Duplicate review rejected", map[string]interface{}{
				"username":  req.Username,
				"beer_name": req.BeerName,
			})
			apperrors.Forbidden(c, apperrors.ReviewDuplicate, "the user has already reviewed this beer")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"beer_name": req.BeerName,
			})
			respondStoreError(c, err)
		}
		return
	}

	log.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"beer_name": review.BeerName,
		"score":     review.Score,
	})

	c.JSON(http.StatusOK, review)
}

func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	base, ok := parseListOptions(c)
	if !ok {
		return
	}
	opts := repository.ReviewListOptions{
		ListOptions: base,
		Username:    c.Query("username"),
		BeerName:    c.Query("beer_name"),
	}
	if raw := c.Query("beer_id"); raw != "" {
		beerID, err := uuid.Parse(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "beer_id must be a valid UUID")
			return
		}
		opts.BeerID = &beerID
	}

	reviews, err := ctrl.reviewService.ListReviews(opts)
	if err != nil {
		if respondQueryError(c, err) {
			return
		}
		log.Error("Failed to list reviews", err, nil)
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	log.Info("Reviews listed", map[string]interface{}{
		"count": len(reviews),
	})

	c.JSON(http.StatusOK, reviews)
}

// respondStoreError classifies an unhandled store error before falling
// back to a plain 500. A check constraint violation means an
// out-of-range score reached the store, which reads as 422 to the
// client.
func respondStoreError(c *gin.Context, err error) {
	info := apperrors.ParseStoreError(err, "review")
	if info.Code == apperrors.ReviewInvalidScore {
		apperrors.UnprocessableEntity(c, info.Code, info.Message)
		return
	}
	apperrors.InternalError(c, info.Message)
}

// reviewID reads the mandatory identifier query parameter. Reviews have
// no natural name, so the UUID is the only handle.
func reviewID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("identifier")
	if raw == "" {
		apperrors.BadRequest(c, apperrors.QueryMissingIdentifier, "an identifier query parameter is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "identifier must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (ctrl *ReviewController) PatchReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := reviewID(c)
	if !ok {
		return
	}

	var req ReviewPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	review, err := ctrl.reviewService.PatchReview(id, service.ReviewPatch{
		Username: req.Username,
		Score:    req.Score,
		Comment:  req.Comment,
	})
	if err != nil {
		switch err {
		case service.ErrReviewNotFound:
			apperrors.NotFound(c, apperrors.ReviewNotFound, "review not found")
		case service.ErrDuplicateReview:
			apperrors.Forbidden(c, apperrors.ReviewDuplicate, "the user has already reviewed this beer")
		default:
			log.Error("Failed to patch review", err, map[string]interface{}{
				"review_id": id,
			})
			respondStoreError(c, err)
		}
		return
	}

	log.Info("Review patched", map[string]interface{}{
		"review_id": review.ID,
	})

	c.JSON(http.StatusOK, review)
}

func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := reviewID(c)
	if !ok {
		return
	}

	if err := ctrl.reviewService.DeleteReview(id); err != nil {
		if err == service.ErrReviewNotFound {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "review not found")
			return
		}
		log.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": id,
		})
		apperrors.InternalError(c, "Failed to delete review")
		return
	}

	log.Info("Review deleted", map[string]interface{}{
		"review_id": id,
	})

	c.JSON(http.StatusOK, DeleteResponse{OK: true})
}
