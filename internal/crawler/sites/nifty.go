package sites

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akiyahub/akiya-crawler/internal/crawler"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
	"github.com/akiyahub/akiya-crawler/internal/utils"
)

const (
	niftyHost = "https://myhome.nifty.com"
	// Detached houses up to 30M yen, newest first, 40 per page.
	niftySearchURL = niftyHost + "/shinchiku-ikkodate/%s/search/%d/?subtype=bnh,buh&b2=30000000&pnum=40&sort=regDate-desc"
)

// Nifty crawls myhome.nifty.com search results per prefecture. Detail
// pages are hosted either on nifty itself or on pitat.com; the contact
// selector differs between the two.
type Nifty struct{}

func NewNifty() *Nifty {
	return &Nifty{}
}

func (n *Nifty) Name() string {
	return "nifty"
}

func (n *Nifty) Areas() []crawler.Area {
	areas := make([]crawler.Area, 0, len(crawler.Prefectures))
	for _, slug := range crawler.Prefectures {
		areas = append(areas, crawler.Area{Slug: slug})
	}
	return areas
}

func (n *Nifty) SearchPageURL(area crawler.Area, page int) string {
	return fmt.Sprintf(niftySearchURL, area.Slug, page)
}

// ParseSearchPage reads the listing cards of one results page. Each card
// carries the property type badge, price, location/transportation spans
// and the compact spec badges (layout, areas, construction date).
func (n *Nifty) ParseSearchPage(doc *goquery.Document, area crawler.Area) ([]normalize.RawListing, error) {
	list := doc.Find("ul.box.is-space-sm").First()
	if list.Length() == 0 {
		return nil, fmt.Errorf("nifty: no listing container on page")
	}

	var raws []normalize.RawListing
	list.ChildrenFiltered("li").Each(func(_ int, card *goquery.Selection) {
		link, ok := card.Find("a").First().Attr("href")
		if !ok || link == "" {
			return
		}
		if strings.HasPrefix(link, "/") {
			link = niftyHost + link
		}

		raw := normalize.NewRawListing(n.Name(), link)
		raw.Prefecture = area.Slug

		badge := utils.CleanText(card.Find("span.badge.is-pj1").First().Text())
		if english, ok := normalize.PropertyTypeName(badge); ok {
			raw.SetField(normalize.FieldPropertyType, english)
		} else {
			raw.SetField(normalize.FieldPropertyType, badge)
		}

		raw.SetField(normalize.FieldSalePrice, utils.CleanText(card.Find("p").First().Text()))

		// The second location box holds transportation + address; cards
		// without a transportation line only have one span.
		locBoxes := card.Find("div.box.is-space-xs")
		locBox := locBoxes.First()
		if locBoxes.Length() >= 2 {
			locBox = locBoxes.Eq(1)
		}
		spans := locBox.Find("span")
		if spans.Length() >= 2 {
			raw.SetField(normalize.FieldTransportation, utils.CleanText(spans.Eq(0).Text()))
			raw.SetField(normalize.FieldLocation, utils.CleanText(spans.Eq(1).Text()))
		} else if spans.Length() == 1 {
			raw.SetField(normalize.FieldLocation, utils.CleanText(spans.Eq(0).Text()))
		}

		card.Find("div.box.is-flex.is-middle.is-nowrap.is-gap-4px").Each(func(_ int, spec *goquery.Selection) {
			label := utils.CleanText(spec.Find("span.badge.is-grey-dark").Text())
			name, ok := normalize.AreaLabelName(label)
			if !ok {
				return
			}
			raw.SetField(name, utils.CleanText(spec.Find("span.text.is-sm").Text()))
		})

		raws = append(raws, raw)
	})

	return raws, nil
}

// ParseDetailPage pulls the contact number and the photo gallery from the
// listing's own page.
func (n *Nifty) ParseDetailPage(doc *goquery.Document, raw *normalize.RawListing) error {
	main := doc.Find("main")
	if main.Length() == 0 {
		return fmt.Errorf("nifty: no main content on %s", raw.SourceURL)
	}

	switch {
	case strings.Contains(raw.SourceURL, "nifty"):
		inquiry := main.Find("div#inquiryArea")
		inquiry.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
			if utils.CleanText(dt.Text()) != "電話番号" {
				return true
			}
			raw.ContactNumber = utils.CleanText(dt.Next().Text())
			return false
		})

		seen := make(map[string]struct{})
		doc.Find("div#summary img.thumbnail").Each(func(_ int, img *goquery.Selection) {
			src, ok := img.Attr("src")
			if !ok || src == "" {
				return
			}
			if _, dup := seen[src]; dup {
				return
			}
			seen[src] = struct{}{}
			raw.ImageURLs = append(raw.ImageURLs, src)
		})

	case strings.Contains(raw.SourceURL, "pitat"):
		raw.ContactNumber = utils.CleanText(main.Find("div.detail-top-info__tel div.main").Text())
	}

	return nil
}
