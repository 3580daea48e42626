package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dmaier/beerlog-backend/config"
	"github.com/dmaier/beerlog-backend/internal/app/controller"
	"github.com/dmaier/beerlog-backend/internal/middleware"
)

type Router struct {
	breweryController *controller.BreweryController
	beerController    *controller.BeerController
	reviewController  *controller.ReviewController
	imageController   *controller.ImageController
	config            *config.Config
}

func NewRouter(
	breweryController *controller.BreweryController,
	beerController *controller.BeerController,
	reviewController *controller.ReviewController,
	imageController *controller.ImageController,
	cfg *config.Config,
) *Router {
	return &Router{
		breweryController: breweryController,
		beerController:    beerController,
		reviewController:  reviewController,
		imageController:   imageController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "beerlog API is running",
		})
	})

	// Locally stored images are served straight from disk. The S3 backend
	// returns absolute URLs instead, so no mount is needed there.
	if r.config.Storage.Driver == "local" {
		router.Static("/images", r.config.Storage.ImageDir)
	}

	breweries := router.Group("/breweries")
	{
		breweries.POST("", r.breweryController.CreateBrewery)
		breweries.GET("", r.breweryController.ListBreweries)
		breweries.PATCH("", r.breweryController.PatchBrewery)
		breweries.DELETE("", r.breweryController.DeleteBrewery)
	}

	beers := router.Group("/beers")
	{
		beers.POST("", r.beerController.CreateBeer)
		beers.GET("", r.beerController.ListBeers)
		beers.GET("/list-beers", r.beerController.ListBeerNames)
		beers.PATCH("", r.beerController.PatchBeer)
		beers.DELETE("", r.beerController.DeleteBeer)
	}

	reviews := router.Group("/reviews")
	{
		reviews.POST("", r.reviewController.CreateReview)
		reviews.GET("", r.reviewController.ListReviews)
		reviews.PATCH("", r.reviewController.PatchReview)
		reviews.DELETE("", r.reviewController.DeleteReview)
	}

	images := router.Group("/images")
	{
		images.POST("", r.imageController.UploadImage)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
