package crawler

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
)

// Area is one search partition of a source site, usually a prefecture.
// Slug is the human-readable identifier stored on listings; Code is the
// site's own area parameter when it differs from the slug.
type Area struct {
	Slug string
	Code string
}

// Site is one supported source. Implementations are pure parsers: they
// build search URLs and extract raw fields, and never perform I/O
// themselves, which keeps them testable against HTML fixtures.
type Site interface {
	Name() string

	// Areas returns the search partitions to crawl. Sites without area
	// segmentation return a single zero Area.
	Areas() []Area

	// SearchPageURL returns the URL of one search-results page. Pages are
	// 1-based; exhaustion is detected by ParseSearchPage returning no
	// listings or by the fetch returning ErrNotFound.
	SearchPageURL(area Area, page int) string

	// ParseSearchPage extracts the raw listings present on a results page.
	// A page with no recognizable listings returns an empty slice.
	ParseSearchPage(doc *goquery.Document, area Area) ([]normalize.RawListing, error)

	// ParseDetailPage enriches a raw listing from its own page (contact
	// number, image URLs, detail tables). Missing elements leave fields
	// absent; only a structurally unusable page returns an error.
	ParseDetailPage(doc *goquery.Document, raw *normalize.RawListing) error
}

// Prefectures are the 47 slugs used by the area-segmented sites, in the
// site ordering (hatomark derives its numeric area codes from the index).
var Prefectures = []string{
	"hokkaido", "aomori", "iwate", "miyagi", "akita", "yamagata", "fukushima",
	"tokyo", "kanagawa", "saitama", "chiba", "ibaraki", "tochigi", "gunma",
	"niigata", "yamanashi", "nagano", "toyama", "ishikawa", "fukui", "aichi",
	"gifu", "shizuoka", "mie", "osaka", "hyogo", "kyoto", "shiga", "nara",
	"wakayama", "hiroshima", "okayama", "tottori", "shimane", "yamaguchi",
	"tokushima", "kagawa", "ehime", "kochi", "fukuoka", "saga", "nagasaki",
	"kumamoto", "oita", "miyazaki", "kagoshima", "okinawa",
}
