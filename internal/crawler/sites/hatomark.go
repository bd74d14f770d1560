package sites

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akiyahub/akiya-crawler/internal/crawler"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
	"github.com/akiyahub/akiya-crawler/internal/utils"
)

// Houses up to 30M yen, 20 per page. The %s is the zero-padded area code.
const hatomarkSearchURL = "https://www.hatomarksite.com/search/zentaku/buy/house/area/%s/list?price_b_from=&price_b_to=30000000&key_word=&land_area_all_from=&land_area_all_to=&land_area_unit=UNIT30&bld_area_from=&bld_area_to=&bld_area_unit=UNIT30&eki_walk=&expected_return_from=&expected_return_to=&limit=20&sort1=ASRT33&page=%d"

// Hatomark crawls hatomarksite.com. Search cards expose a fixed-order
// spec grid (price, construction date, land/building area, floors,
// layout); the detail page has the agent phone number and a slick-slider
// photo gallery ordered by data-index.
type Hatomark struct{}

func NewHatomark() *Hatomark {
	return &Hatomark{}
}

func (h *Hatomark) Name() string {
	return "hatomark"
}

// Areas pairs each prefecture slug with the site's zero-padded numeric
// area code (01 = hokkaido ... 47 = okinawa).
func (h *Hatomark) Areas() []crawler.Area {
	areas := make([]crawler.Area, 0, len(crawler.Prefectures))
	for i, slug := range crawler.Prefectures {
		areas = append(areas, crawler.Area{
			Slug: slug,
			Code: fmt.Sprintf("%02d", i+1),
		})
	}
	return areas
}

func (h *Hatomark) SearchPageURL(area crawler.Area, page int) string {
	return fmt.Sprintf(hatomarkSearchURL, area.Code, page)
}

func (h *Hatomark) ParseSearchPage(doc *goquery.Document, area crawler.Area) ([]normalize.RawListing, error) {
	table := doc.Find("div.row.g-4.list-table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("hatomark: no listing container on page")
	}

	var raws []normalize.RawListing
	table.ChildrenFiltered("div.col-12").Each(func(_ int, card *goquery.Selection) {
		link, ok := card.Find("div.box-footer a").First().Attr("href")
		if !ok || link == "" {
			return
		}

		raw := normalize.NewRawListing(h.Name(), link)
		raw.Prefecture = area.Slug

		raw.SetField(normalize.FieldPropertyType,
			utils.CleanText(card.Find("div.tag-list p").First().Text()))

		// Address and transportation lines contain trailing map links that
		// must not leak into the text.
		address := card.Find("div.address").First().Clone()
		address.Find("a").Remove()
		raw.SetField(normalize.FieldLocation, utils.CleanText(address.Text()))

		var transportation []string
		card.Find("div.traffic div").Each(func(_ int, line *goquery.Selection) {
			line = line.Clone()
			line.Find("a").Remove()
			if text := utils.CleanText(line.Text()); text != "" {
				transportation = append(transportation, text)
			}
		})
		raw.SetField(normalize.FieldTransportation, strings.Join(transportation, " / "))

		// The spec grid is positional: price, construction date, land
		// area, building area, floors, layout.
		specFields := []string{
			normalize.FieldSalePrice,
			normalize.FieldConstructionDate,
			normalize.FieldLandArea,
			normalize.FieldBuildingArea,
			normalize.FieldStructure,
			normalize.FieldLayout,
		}
		card.Find("div.row.g-2.row-cols-2").First().Find("div").Each(func(i int, cell *goquery.Selection) {
			if i >= len(specFields) {
				return
			}
			raw.SetField(specFields[i], utils.CleanText(cell.Find("p").First().Text()))
		})

		raws = append(raws, raw)
	})

	return raws, nil
}

func (h *Hatomark) ParseDetailPage(doc *goquery.Document, raw *normalize.RawListing) error {
	main := doc.Find("main")
	if main.Length() == 0 {
		return fmt.Errorf("hatomark: no main content on %s", raw.SourceURL)
	}

	main.Find("div.info-agent div.col.d-flex").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		label := block.Find("p.room-detail-title").First()
		if label.Length() == 0 || !strings.Contains(label.Text(), "TEL") {
			return true
		}
		raw.ContactNumber = utils.CleanText(label.Next().Text())
		return false
	})

	// Gallery slides carry a data-index; sort to restore display order
	// regardless of DOM order.
	type slide struct {
		index int
		src   string
	}
	var slides []slide
	seen := make(map[string]struct{})

	doc.Find("div.slick-img").Each(func(_ int, div *goquery.Selection) {
		indexAttr, ok := div.Attr("data-index")
		if !ok {
			return
		}
		index, err := strconv.Atoi(indexAttr)
		if err != nil {
			return
		}
		src, ok := div.Find("img").Attr("src")
		if !ok || src == "" {
			return
		}
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		slides = append(slides, slide{index: index, src: src})
	})

	sort.Slice(slides, func(i, j int) bool { return slides[i].index < slides[j].index })
	for _, s := range slides {
		raw.ImageURLs = append(raw.ImageURLs, s.src)
	}

	return nil
}
