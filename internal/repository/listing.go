package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no listing matches the given key.
var ErrNotFound = errors.New("listing not found")

// Listing is the stored form of one property advertisement. The bson keys
// with spaces are the collection's historical field names; the API and
// frontend read them as-is, so they must not change.
type Listing struct {
	ID  string `bson:"_id,omitempty" json:"id"`
	Key string `bson:"key" json:"key"`

	Site      string `bson:"site" json:"site"`
	SourceURL string `bson:"link" json:"link"`

	Prefecture       string `bson:"Prefecture,omitempty" json:"prefecture,omitempty"`
	PropertyType     string `bson:"Property Type,omitempty" json:"property_type,omitempty"`
	Address          string `bson:"Property Location,omitempty" json:"address,omitempty"`
	Transportation   string `bson:"Transportation,omitempty" json:"transportation,omitempty"`
	Layout           string `bson:"Building - Layout,omitempty" json:"layout,omitempty"`
	BuildingArea     string `bson:"Building - Area,omitempty" json:"building_area,omitempty"`
	LandArea         string `bson:"Land - Area,omitempty" json:"land_area,omitempty"`
	ConstructionDate string `bson:"Building - Construction Date,omitempty" json:"construction_date,omitempty"`
	Structure        string `bson:"Building - Structure,omitempty" json:"structure,omitempty"`

	// SalePriceUSD is derived from SalePriceJPY with the rate snapshot of
	// the run that last saw the yen price change. It is never recomputed
	// for rate drift alone.
	SalePriceJPY int64   `bson:"Sale Price Yen,omitempty" json:"sale_price_jpy,omitempty"`
	SalePriceUSD float64 `bson:"Sale Price,omitempty" json:"sale_price_usd,omitempty"`

	ContactNumber string `bson:"Contact Number,omitempty" json:"contact_number,omitempty"`
	ReferenceURL  string `bson:"Reference URL,omitempty" json:"reference_url,omitempty"`

	// Images holds relative paths under the data directory. Every path
	// refers to a file that existed when the record was persisted.
	Images []string `bson:"images" json:"images"`

	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updated_at"`
	LastSeenAt time.Time `bson:"lastSeenAt" json:"-"`
}

// UpsertState says what an upsert did with a listing.
type UpsertState int

const (
	StateNew UpsertState = iota
	StateUnchanged
	StateChanged
)

func (s UpsertState) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateUnchanged:
		return "unchanged"
	case StateChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// ListingFilter defines the search filters exposed by the API.
type ListingFilter struct {
	Site         string  `json:"site,omitempty"`
	Prefecture   string  `json:"prefecture,omitempty"`
	PropertyType string  `json:"property_type,omitempty"`
	Layout       string  `json:"layout,omitempty"`
	MinPriceUSD  float64 `json:"min_price,omitempty"`
	MaxPriceUSD  float64 `json:"max_price,omitempty"`
}

// PaginationParams defines page-based pagination.
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ListingSearchResult is a page of listings plus pagination metadata.
type ListingSearchResult struct {
	Listings    []Listing `json:"listings"`
	TotalItems  int64     `json:"total_items"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
	PageSize    int       `json:"page_size"`
}

// ListingRepository is the persistence boundary for listings. The crawler
// is the only writer; the API reads.
type ListingRepository interface {
	Upsert(ctx context.Context, listing Listing) (UpsertState, error)
	FindByKey(ctx context.Context, key string) (*Listing, error)
	FindWithFilters(ctx context.Context, filter ListingFilter, pagination PaginationParams) (*ListingSearchResult, error)
	FindStale(ctx context.Context, site string, before time.Time) ([]Listing, error)
	AllKeys(ctx context.Context, site string) ([]string, error)
	Delete(ctx context.Context, key string) error
	Close()
}

// mergeForCompare prepares the incoming listing for change detection. When
// the yen price did not move, the stored USD value is carried over so that
// a new rate snapshot alone never counts as a change.
func mergeForCompare(existing, incoming Listing) Listing {
	if existing.SalePriceJPY == incoming.SalePriceJPY {
		incoming.SalePriceUSD = existing.SalePriceUSD
	}
	return incoming
}

// contentEqual compares the normalized content of two listings, ignoring
// identity and bookkeeping fields.
func contentEqual(a, b Listing) bool {
	if a.SourceURL != b.SourceURL ||
		a.Prefecture != b.Prefecture ||
		a.PropertyType != b.PropertyType ||
		a.Address != b.Address ||
		a.Transportation != b.Transportation ||
		a.Layout != b.Layout ||
		a.BuildingArea != b.BuildingArea ||
		a.LandArea != b.LandArea ||
		a.ConstructionDate != b.ConstructionDate ||
		a.Structure != b.Structure ||
		a.SalePriceJPY != b.SalePriceJPY ||
		a.SalePriceUSD != b.SalePriceUSD ||
		a.ContactNumber != b.ContactNumber ||
		a.ReferenceURL != b.ReferenceURL {
		return false
	}
	if len(a.Images) != len(b.Images) {
		return false
	}
	for i := range a.Images {
		if a.Images[i] != b.Images[i] {
			return false
		}
	}
	return true
}
