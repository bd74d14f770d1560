package api

import (
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akiyahub/akiya-crawler/api/handler"
	"github.com/akiyahub/akiya-crawler/api/middleware"
	"github.com/akiyahub/akiya-crawler/internal/service"
)

// SetupRouter builds the read-only catalog API. dataDir is the crawler's
// data directory; its images/ tree is served statically so the frontend
// can show the photos referenced by each listing.
func SetupRouter(listingService *service.ListingService, dataDir string) *gin.Engine {
	r := gin.Default()

	generalLimiter := middleware.NewRateLimiter(1000, time.Hour)

	listingHandler := handler.NewListingHandler(listingService)

	r.Use(middleware.CORSMiddleware())
	r.Use(generalLimiter.Middleware())

	r.Static("/images", filepath.Join(dataDir, "images"))

	r.GET("/listings", listingHandler.GetListings)
	r.GET("/listings/:key", listingHandler.GetListing)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "akiya-crawler-api",
			"version": "1.0.0",
		})
	})

	return r
}
