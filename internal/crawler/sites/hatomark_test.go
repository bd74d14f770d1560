package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akiyahub/akiya-crawler/internal/crawler"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
)

const hatomarkSearchHTML = `<html><body><div class="row g-4 list-table">
<div class="col-12">
  <div class="tag-list"><p>中古一戸建て</p></div>
  <div class="address">長野県上田市中央1丁目 <a href="/map">地図</a></div>
  <div class="traffic">
    <div>しなの鉄道 上田駅 徒歩15分 <a href="/route">経路</a></div>
    <div>バス停 中央 徒歩3分</div>
  </div>
  <div class="row g-2 row-cols-2">
    <div><span>価格</span><p>1,280万円</p></div>
    <div><span>築年月</span><p>1985年4月</p></div>
    <div><span>土地面積</span><p>210.5m²</p></div>
    <div><span>建物面積</span><p>130.2m²</p></div>
    <div><span>構造</span><p>木造2階建</p></div>
    <div><span>間取り</span><p>6DK</p></div>
  </div>
  <div class="box-footer"><a href="https://www.hatomarksite.com/search/zentaku/detail/900">詳細</a></div>
</div>
<div class="col-12">
  <div class="tag-list"><p>売地</p></div>
  <div class="box-footer"><a href="https://www.hatomarksite.com/search/zentaku/detail/901">詳細</a></div>
</div>
<div class="col-12">
  <div class="tag-list"><p>広告</p></div>
</div>
</div></body></html>`

func TestHatomarkParseSearchPage(t *testing.T) {
	h := NewHatomark()
	area := crawler.Area{Slug: "nagano", Code: "17"}

	raws, err := h.ParseSearchPage(parseHTML(t, hatomarkSearchHTML), area)
	require.NoError(t, err)
	require.Len(t, raws, 2)

	first := raws[0]
	assert.Equal(t, "hatomark", first.Site)
	assert.Equal(t, "https://www.hatomarksite.com/search/zentaku/detail/900", first.SourceURL)
	assert.Equal(t, "nagano", first.Prefecture)
	assert.Equal(t, "中古一戸建て", first.Field(normalize.FieldPropertyType))
	assert.Equal(t, "長野県上田市中央1丁目", first.Field(normalize.FieldLocation))
	assert.Equal(t, "しなの鉄道 上田駅 徒歩15分 / バス停 中央 徒歩3分", first.Field(normalize.FieldTransportation))
	assert.Equal(t, "1,280万円", first.Field(normalize.FieldSalePrice))
	assert.Equal(t, "1985年4月", first.Field(normalize.FieldConstructionDate))
	assert.Equal(t, "210.5m²", first.Field(normalize.FieldLandArea))
	assert.Equal(t, "130.2m²", first.Field(normalize.FieldBuildingArea))
	assert.Equal(t, "木造2階建", first.Field(normalize.FieldStructure))
	assert.Equal(t, "6DK", first.Field(normalize.FieldLayout))

	// Cards missing the spec grid still produce a listing from the link.
	assert.Equal(t, "https://www.hatomarksite.com/search/zentaku/detail/901", raws[1].SourceURL)
	assert.Empty(t, raws[1].Field(normalize.FieldSalePrice))
}

func TestHatomarkParseSearchPageWithoutContainer(t *testing.T) {
	h := NewHatomark()

	_, err := h.ParseSearchPage(parseHTML(t, `<html><body></body></html>`), crawler.Area{})
	assert.Error(t, err)
}

const hatomarkDetailHTML = `<html><body><main>
<div class="slick-img" data-index="1"><img src="https://img.hatomark.com/2.jpg"></div>
<div class="slick-img" data-index="0"><img src="https://img.hatomark.com/1.jpg"></div>
<div class="slick-img" data-index="2"><img src="https://img.hatomark.com/1.jpg"></div>
<div class="info-agent">
  <div class="col d-flex"><p class="room-detail-title">会社名</p><p>上田不動産</p></div>
  <div class="col d-flex"><p class="room-detail-title">TEL</p><p>0268-22-0000</p></div>
</div>
</main></body></html>`

func TestHatomarkParseDetailPage(t *testing.T) {
	h := NewHatomark()
	raw := normalize.NewRawListing("hatomark", "https://www.hatomarksite.com/search/zentaku/detail/900")

	require.NoError(t, h.ParseDetailPage(parseHTML(t, hatomarkDetailHTML), &raw))

	assert.Equal(t, "0268-22-0000", raw.ContactNumber)
	// Sorted by data-index, duplicates dropped.
	assert.Equal(t, []string{
		"https://img.hatomark.com/1.jpg",
		"https://img.hatomark.com/2.jpg",
	}, raw.ImageURLs)
}

func TestHatomarkAreasAndURL(t *testing.T) {
	h := NewHatomark()

	areas := h.Areas()
	require.Len(t, areas, 47)
	assert.Equal(t, crawler.Area{Slug: "hokkaido", Code: "01"}, areas[0])
	assert.Equal(t, crawler.Area{Slug: "okinawa", Code: "47"}, areas[46])

	url := h.SearchPageURL(areas[16], 4)
	assert.Contains(t, url, "/area/17/list")
	assert.Contains(t, url, "page=4")
}

func TestRegistry(t *testing.T) {
	names := make([]string, 0, 3)
	for _, site := range All() {
		names = append(names, site.Name())
	}
	assert.Equal(t, []string{"nifty", "hatomark", "sumai"}, names)

	site, err := ByName("sumai")
	require.NoError(t, err)
	assert.Equal(t, "sumai", site.Name())

	_, err = ByName("zillow")
	assert.Error(t, err)
}
