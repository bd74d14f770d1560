package normalize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akiyahub/akiya-crawler/internal/translate"
)

// mapTranslator translates from a fixed dictionary and fails on anything
// else.
type mapTranslator struct {
	entries map[string]string
	calls   int
}

func (m *mapTranslator) Translate(_ context.Context, text string) (string, error) {
	m.calls++
	if out, ok := m.entries[text]; ok {
		return out, nil
	}
	return "", errors.New("no translation")
}

func TestNormalizeTranslatesJapaneseFields(t *testing.T) {
	translator := &mapTranslator{entries: map[string]string{
		"木造2階建":        "Wooden, 2 stories",
		"長野県長野市大字鶴賀": "Tsuruga, Nagano City, Nagano",
	}}
	n := NewNormalizer(translator, 0.0067)

	raw := NewRawListing("sumai", "https://akiya.sumai.biz/archives/1234")
	raw.SetField(FieldStructure, "木造2階建")
	raw.SetField(FieldLocation, "長野県長野市大字鶴賀")
	raw.SetField(FieldSalePrice, "3,000万円")
	raw.SetField(FieldLayout, "3LDK")

	listing := n.Normalize(context.Background(), raw)

	assert.Equal(t, DedupKey(raw.SourceURL), listing.Key)
	assert.Equal(t, "sumai", listing.Site)
	assert.Equal(t, "Wooden, 2 stories", listing.Structure)
	assert.Equal(t, "Tsuruga, Nagano City, Nagano", listing.Address)
	assert.Equal(t, int64(30_000_000), listing.SalePriceJPY)
	assert.Equal(t, 201000.00, listing.SalePriceUSD)

	// ASCII-only fields never hit the translator.
	assert.Equal(t, "3LDK", listing.Layout)
	assert.Equal(t, 2, translator.calls)
}

func TestNormalizeKeepsOriginalOnTranslationFailure(t *testing.T) {
	n := NewNormalizer(&mapTranslator{}, 0.0067)

	raw := NewRawListing("sumai", "https://akiya.sumai.biz/archives/1234")
	raw.SetField(FieldPropertyType, "中古一戸建て")

	listing := n.Normalize(context.Background(), raw)

	assert.Equal(t, "中古一戸建て", listing.PropertyType)
}

func TestNormalizeWithoutParseablePrice(t *testing.T) {
	n := NewNormalizer(translate.Noop{}, 0.0067)

	raw := NewRawListing("sumai", "https://akiya.sumai.biz/archives/1234")
	raw.SetField(FieldSalePrice, "応相談")

	listing := n.Normalize(context.Background(), raw)

	assert.Zero(t, listing.SalePriceJPY)
	assert.Zero(t, listing.SalePriceUSD)
}

func TestNormalizePrefectureFallbackFromAddress(t *testing.T) {
	n := NewNormalizer(translate.Noop{}, 0.0067)

	raw := NewRawListing("sumai", "https://akiya.sumai.biz/archives/1234")
	raw.SetField(FieldLocation, "Tsuruga, Nagano City, Nagano")

	listing := n.Normalize(context.Background(), raw)

	assert.Equal(t, "nagano", listing.Prefecture)
}

func TestNormalizeKeepsExplicitPrefecture(t *testing.T) {
	n := NewNormalizer(translate.Noop{}, 0.0067)

	raw := NewRawListing("nifty", "https://myhome.nifty.com/detail/1")
	raw.Prefecture = "Nagano"
	raw.SetField(FieldLocation, "Somewhere, Else, Akita")

	listing := n.Normalize(context.Background(), raw)

	assert.Equal(t, "nagano", listing.Prefecture)
}
