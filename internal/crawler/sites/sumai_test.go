package sites

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akiyahub/akiya-crawler/internal/crawler"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const sumaiSearchHTML = `<html><body><div id="content">
<article>
  <header class="entry-header"><h1 class="entry-title"><a href="https://akiya.sumai.biz/archives/100">物件100</a></h1></header>
</article>
<article>
  <header class="entry-header"><h1 class="entry-title"><a href="https://akiya.sumai.biz/archives/101">物件101</a></h1></header>
</article>
<article>
  <header class="entry-header"><h1 class="entry-title">リンクなし</h1></header>
</article>
</div></body></html>`

const sumaiDetailHTML = `<html><body>
<header class="entry-header">
<div class="entry-content">
<table>
<tr><td>物件種別</td><td>中古一戸建て</td><td>売買価格</td><td>350万円</td></tr>
<tr><td>物件所在地</td><td>長野県長野市大字鶴賀</td><td>交通</td><td>長野駅 徒歩20分</td></tr>
<tr><td>建物-間取</td><td>5DK</td><td>建物-面積</td><td>120.5㎡</td></tr>
<tr><td>謎の項目</td><td>無視される</td></tr>
<tr><td>事業者連絡先</td><td>026-123-4567</td></tr>
<tr><td>参照URL</td><td><a href="https://example.jp/ref/100">リンク</a></td></tr>
</table>
<div class="image50">
  <div><a href="https://akiya.sumai.biz/img/100-1.jpg"><img src="t1.jpg"></a></div>
  <div><a href="https://akiya.sumai.biz/img/100-2.jpg"><img src="t2.jpg"></a></div>
</div>
</div>
</header>
</body></html>`

func TestSumaiParseSearchPage(t *testing.T) {
	s := NewSumai()

	raws, err := s.ParseSearchPage(parseHTML(t, sumaiSearchHTML), crawler.Area{})
	require.NoError(t, err)
	require.Len(t, raws, 2)

	assert.Equal(t, "sumai", raws[0].Site)
	assert.Equal(t, "https://akiya.sumai.biz/archives/100", raws[0].SourceURL)
	assert.Equal(t, "https://akiya.sumai.biz/archives/101", raws[1].SourceURL)
}

func TestSumaiParseSearchPageWithoutContainer(t *testing.T) {
	s := NewSumai()

	_, err := s.ParseSearchPage(parseHTML(t, `<html><body><p>maintenance</p></body></html>`), crawler.Area{})
	assert.Error(t, err)
}

func TestSumaiParseDetailPage(t *testing.T) {
	s := NewSumai()
	raw := normalize.NewRawListing("sumai", "https://akiya.sumai.biz/archives/100")

	require.NoError(t, s.ParseDetailPage(parseHTML(t, sumaiDetailHTML), &raw))

	assert.Equal(t, "中古一戸建て", raw.Field(normalize.FieldPropertyType))
	assert.Equal(t, "350万円", raw.Field(normalize.FieldSalePrice))
	assert.Equal(t, "長野県長野市大字鶴賀", raw.Field(normalize.FieldLocation))
	assert.Equal(t, "長野駅 徒歩20分", raw.Field(normalize.FieldTransportation))
	assert.Equal(t, "5DK", raw.Field(normalize.FieldLayout))
	assert.Equal(t, "120.5㎡", raw.Field(normalize.FieldBuildingArea))

	assert.Equal(t, "026-123-4567", raw.ContactNumber)
	assert.Equal(t, "https://example.jp/ref/100", raw.ReferenceURL)
	assert.Equal(t, []string{
		"https://akiya.sumai.biz/img/100-1.jpg",
		"https://akiya.sumai.biz/img/100-2.jpg",
	}, raw.ImageURLs)

	// Unknown headers are dropped, not stored under their Japanese name.
	assert.Empty(t, raw.Field("謎の項目"))
}

func TestSumaiParseDetailPageWithoutHeader(t *testing.T) {
	s := NewSumai()
	raw := normalize.NewRawListing("sumai", "https://akiya.sumai.biz/archives/100")

	err := s.ParseDetailPage(parseHTML(t, `<html><body></body></html>`), &raw)
	assert.Error(t, err)
}

func TestSumaiSearchPageURL(t *testing.T) {
	s := NewSumai()

	assert.Contains(t, s.SearchPageURL(crawler.Area{}, 3), "/page/3")
	assert.Len(t, s.Areas(), 1)
}
