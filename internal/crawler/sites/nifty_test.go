package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akiyahub/akiya-crawler/internal/crawler"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
)

const niftySearchHTML = `<html><body><ul class="box is-space-sm">
<li>
  <a href="/detail/outer-100/"><span class="badge is-pj1">中古一戸建て</span></a>
  <p>2,480万円</p>
  <div class="box is-space-xs"><span>ニフティ不動産</span></div>
  <div class="box is-space-xs">
    <span>JR中央線 高尾駅 徒歩12分</span>
    <span>東京都八王子市初沢町</span>
  </div>
  <div class="box is-flex is-middle is-nowrap is-gap-4px">
    <span class="badge is-grey-dark">間取り</span><span class="text is-sm">4LDK</span>
  </div>
  <div class="box is-flex is-middle is-nowrap is-gap-4px">
    <span class="badge is-grey-dark">土地面積</span><span class="text is-sm">165.29m²</span>
  </div>
  <div class="box is-flex is-middle is-nowrap is-gap-4px">
    <span class="badge is-grey-dark">駅徒歩</span><span class="text is-sm">12分</span>
  </div>
</li>
<li>
  <a href="https://myhome.nifty.com/detail/101/"><span class="badge is-pj1">物件</span></a>
  <p>980万円</p>
  <div class="box is-space-xs">
    <span>東京都青梅市</span>
  </div>
</li>
<li><p>広告</p></li>
</ul></body></html>`

func TestNiftyParseSearchPage(t *testing.T) {
	n := NewNifty()
	area := crawler.Area{Slug: "tokyo"}

	raws, err := n.ParseSearchPage(parseHTML(t, niftySearchHTML), area)
	require.NoError(t, err)
	require.Len(t, raws, 2)

	first := raws[0]
	assert.Equal(t, "https://myhome.nifty.com/detail/outer-100/", first.SourceURL)
	assert.Equal(t, "tokyo", first.Prefecture)
	assert.Equal(t, "Used Detached House", first.Field(normalize.FieldPropertyType))
	assert.Equal(t, "2,480万円", first.Field(normalize.FieldSalePrice))
	assert.Equal(t, "JR中央線 高尾駅 徒歩12分", first.Field(normalize.FieldTransportation))
	assert.Equal(t, "東京都八王子市初沢町", first.Field(normalize.FieldLocation))
	assert.Equal(t, "4LDK", first.Field(normalize.FieldLayout))
	assert.Equal(t, "165.29m²", first.Field(normalize.FieldLandArea))

	// Unmapped badge types keep the original text; single-span location
	// boxes fill only the address.
	second := raws[1]
	assert.Equal(t, "物件", second.Field(normalize.FieldPropertyType))
	assert.Equal(t, "東京都青梅市", second.Field(normalize.FieldLocation))
	assert.Empty(t, second.Field(normalize.FieldTransportation))
}

func TestNiftyParseSearchPageWithoutContainer(t *testing.T) {
	n := NewNifty()

	_, err := n.ParseSearchPage(parseHTML(t, `<html><body></body></html>`), crawler.Area{Slug: "tokyo"})
	assert.Error(t, err)
}

const niftyDetailHTML = `<html><body><main>
<div id="summary">
  <img class="thumbnail" src="https://img.nifty.com/1.jpg">
  <img class="thumbnail" src="https://img.nifty.com/2.jpg">
  <img class="thumbnail" src="https://img.nifty.com/1.jpg">
</div>
<div id="inquiryArea">
  <dl>
    <dt>会社名</dt><dd>ニフティ不動産株式会社</dd>
    <dt>電話番号</dt><dd>0120-000-111</dd>
  </dl>
</div>
</main></body></html>`

func TestNiftyParseDetailPage(t *testing.T) {
	n := NewNifty()
	raw := normalize.NewRawListing("nifty", "https://myhome.nifty.com/detail/100/")

	require.NoError(t, n.ParseDetailPage(parseHTML(t, niftyDetailHTML), &raw))

	assert.Equal(t, "0120-000-111", raw.ContactNumber)
	assert.Equal(t, []string{
		"https://img.nifty.com/1.jpg",
		"https://img.nifty.com/2.jpg",
	}, raw.ImageURLs)
}

func TestNiftyParseDetailPagePitat(t *testing.T) {
	n := NewNifty()
	raw := normalize.NewRawListing("nifty", "https://www.pitat.com/detail/200")

	html := `<html><body><main><div class="detail-top-info__tel"><div class="main">042-555-0000</div></div></main></body></html>`
	require.NoError(t, n.ParseDetailPage(parseHTML(t, html), &raw))

	assert.Equal(t, "042-555-0000", raw.ContactNumber)
}

func TestNiftyAreasAndURL(t *testing.T) {
	n := NewNifty()

	areas := n.Areas()
	require.Len(t, areas, 47)
	assert.Equal(t, "hokkaido", areas[0].Slug)

	url := n.SearchPageURL(crawler.Area{Slug: "nagano"}, 2)
	assert.Contains(t, url, "/shinchiku-ikkodate/nagano/search/2/")
}
