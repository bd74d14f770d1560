package sites

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akiyahub/akiya-crawler/internal/crawler"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
	"github.com/akiyahub/akiya-crawler/internal/utils"
)

// sumaiBaseURL paginates the sale-price category feed. The site has no
// area segmentation; everything lives in one chronological stream.
const sumaiBaseURL = "https://akiya.sumai.biz/category/%%E5%%A3%%B2%%E8%%B2%%B7%%E4%%BE%%A1%%E6%%A0%%BC%%E5%%B8%%AF/page/%d"

// Sumai crawls akiya.sumai.biz, a blog-style akiya (vacant house) board.
// Listings are article posts with a key-value table on the detail page.
type Sumai struct{}

func NewSumai() *Sumai {
	return &Sumai{}
}

func (s *Sumai) Name() string {
	return "sumai"
}

func (s *Sumai) Areas() []crawler.Area {
	return []crawler.Area{{}}
}

func (s *Sumai) SearchPageURL(_ crawler.Area, page int) string {
	return fmt.Sprintf(sumaiBaseURL, page)
}

// ParseSearchPage extracts one raw listing per article. Only the link is
// known at this point; everything else comes from the detail page.
func (s *Sumai) ParseSearchPage(doc *goquery.Document, _ crawler.Area) ([]normalize.RawListing, error) {
	content := doc.Find("div#content")
	if content.Length() == 0 {
		return nil, fmt.Errorf("sumai: no content container on page")
	}

	var raws []normalize.RawListing
	content.Find("article").Each(func(_ int, article *goquery.Selection) {
		link, ok := article.Find("header.entry-header h1.entry-title a").Attr("href")
		if !ok || link == "" {
			return
		}
		raws = append(raws, normalize.NewRawListing(s.Name(), link))
	})

	return raws, nil
}

// ParseDetailPage reads the listing's detail table. Rows hold either one
// field pair or two side by side; unknown Japanese headers are skipped so
// layout changes degrade instead of failing.
func (s *Sumai) ParseDetailPage(doc *goquery.Document, raw *normalize.RawListing) error {
	header := doc.Find("header.entry-header")
	if header.Length() == 0 {
		return fmt.Errorf("sumai: no entry header on %s", raw.SourceURL)
	}

	content := header.Find("div.entry-content")

	content.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		tds := row.Find("td")
		if tds.Length() >= 2 {
			s.readPair(raw, tds.Eq(0), tds.Eq(1))
		}
		if tds.Length() >= 4 {
			s.readPair(raw, tds.Eq(2), tds.Eq(3))
		}
	})

	content.Find("div.image50 div").Each(func(_ int, div *goquery.Selection) {
		if href, ok := div.Find("a").Attr("href"); ok && href != "" {
			raw.ImageURLs = append(raw.ImageURLs, href)
		}
	})

	return nil
}

func (s *Sumai) readPair(raw *normalize.RawListing, labelCell, valueCell *goquery.Selection) {
	label := utils.CleanText(labelCell.Text())
	name, ok := normalize.TableFieldName(label)
	if !ok {
		return
	}

	value := utils.CleanText(valueCell.Text())

	switch name {
	case normalize.FieldReferenceURL:
		if href, ok := valueCell.Find("a").Attr("href"); ok {
			raw.ReferenceURL = strings.TrimSpace(href)
		}
	case "Business Contact":
		raw.ContactNumber = value
	default:
		raw.SetField(name, value)
	}
}
