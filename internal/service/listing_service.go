package service

import (
	"context"
	"strings"

	"github.com/akiyahub/akiya-crawler/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListingService sits between the HTTP handlers and the repository. It
// owns input sanitation so the repository only ever sees valid filters.
type ListingService struct {
	repo repository.ListingRepository
}

func NewListingService(repo repository.ListingRepository) *ListingService {
	return &ListingService{repo: repo}
}

// Search returns one page of listings matching the filter. Pagination is
// clamped to sane bounds; a zero or negative price bound means unbounded.
func (s *ListingService) Search(ctx context.Context, filter repository.ListingFilter, pagination repository.PaginationParams) (*repository.ListingSearchResult, error) {
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize < 1 {
		pagination.PageSize = defaultPageSize
	}
	if pagination.PageSize > maxPageSize {
		pagination.PageSize = maxPageSize
	}

	filter.Site = strings.TrimSpace(filter.Site)
	filter.Prefecture = strings.TrimSpace(strings.ToLower(filter.Prefecture))
	filter.PropertyType = strings.TrimSpace(filter.PropertyType)
	filter.Layout = strings.TrimSpace(filter.Layout)
	if filter.MinPriceUSD < 0 {
		filter.MinPriceUSD = 0
	}
	if filter.MaxPriceUSD < 0 {
		filter.MaxPriceUSD = 0
	}

	return s.repo.FindWithFilters(ctx, filter, pagination)
}

// Get returns one listing by its dedup key.
func (s *ListingService) Get(ctx context.Context, key string) (*repository.Listing, error) {
	return s.repo.FindByKey(ctx, strings.TrimSpace(key))
}
