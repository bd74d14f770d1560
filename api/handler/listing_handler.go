package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akiyahub/akiya-crawler/internal/repository"
	"github.com/akiyahub/akiya-crawler/internal/service"
)

type ListingHandler struct {
	Service *service.ListingService
}

func NewListingHandler(s *service.ListingService) *ListingHandler {
	return &ListingHandler{Service: s}
}

// GetListings returns one page of listings filtered by query parameters.
func (h *ListingHandler) GetListings(c *gin.Context) {
	filter := repository.ListingFilter{
		Site:         c.Query("site"),
		Prefecture:   c.Query("prefecture"),
		PropertyType: c.Query("property_type"),
		Layout:       c.Query("layout"),
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		if val, err := strconv.ParseFloat(minPrice, 64); err == nil {
			filter.MinPriceUSD = val
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			filter.MaxPriceUSD = val
		}
	}

	pagination := repository.PaginationParams{}
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil {
			pagination.Page = val
		}
	}
	if pageSize := c.Query("page_size"); pageSize != "" {
		if val, err := strconv.Atoi(pageSize); err == nil {
			pagination.PageSize = val
		}
	}

	result, err := h.Service.Search(c.Request.Context(), filter, pagination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch listings"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetListing returns a single listing by key.
func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.Service.Get(c.Request.Context(), c.Param("key"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch listing"})
		return
	}
	c.JSON(http.StatusOK, listing)
}
