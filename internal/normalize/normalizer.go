package normalize

import (
	"context"
	"strings"

	"github.com/akiyahub/akiya-crawler/internal/logger"
	"github.com/akiyahub/akiya-crawler/internal/repository"
	"github.com/akiyahub/akiya-crawler/internal/translate"
	"github.com/akiyahub/akiya-crawler/internal/utils"
)

// Normalizer turns a RawListing into a storable Listing: dedup key,
// translation of Japanese fields, yen extraction and USD conversion.
// One Normalizer is built per crawl run so every listing shares the same
// rate snapshot.
type Normalizer struct {
	translator translate.Translator
	converter  *Converter
	logger     *logger.Logger
}

// NewNormalizer creates a normalizer with the run's translator and rate.
func NewNormalizer(translator translate.Translator, rate float64) *Normalizer {
	return &Normalizer{
		translator: translator,
		converter:  NewConverter(rate),
		logger:     logger.NewLogger("normalizer"),
	}
}

// Normalize builds the listing record. Translation failures degrade to the
// original Japanese text; a missing or unparseable price leaves the price
// fields unset. Images are filled in later by the image pipeline.
func (n *Normalizer) Normalize(ctx context.Context, raw RawListing) repository.Listing {
	listing := repository.Listing{
		Key:           DedupKey(raw.SourceURL),
		Site:          raw.Site,
		SourceURL:     raw.SourceURL,
		Prefecture:    strings.ToLower(utils.CleanText(raw.Prefecture)),
		ContactNumber: utils.CleanText(raw.ContactNumber),
		ReferenceURL:  strings.TrimSpace(raw.ReferenceURL),
	}

	listing.PropertyType = n.translateField(ctx, raw, FieldPropertyType)
	listing.Address = n.translateField(ctx, raw, FieldLocation)
	listing.Transportation = n.translateField(ctx, raw, FieldTransportation)
	listing.Layout = n.translateField(ctx, raw, FieldLayout)
	listing.BuildingArea = n.translateField(ctx, raw, FieldBuildingArea)
	listing.LandArea = n.translateField(ctx, raw, FieldLandArea)
	listing.ConstructionDate = n.translateField(ctx, raw, FieldConstructionDate)
	listing.Structure = n.translateField(ctx, raw, FieldStructure)

	if priceText := raw.Field(FieldSalePrice); priceText != "" {
		if jpy, ok := ExtractYenAmount(priceText); ok {
			listing.SalePriceJPY = jpy
			listing.SalePriceUSD = n.converter.ToUSD(jpy)
		} else {
			n.logger.WithFields(map[string]interface{}{
				"url":   raw.SourceURL,
				"price": priceText,
			}).Warn("Could not parse sale price")
		}
	}

	// Fall back: derive the prefecture from the address tail when the
	// parser did not supply one (sumai listings carry it in the location).
	if listing.Prefecture == "" && listing.Address != "" {
		if parts := strings.Split(listing.Address, ","); len(parts) > 2 {
			listing.Prefecture = strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
		}
	}

	return listing
}

// translateField cleans and translates one raw field. Text without any
// Japanese script is passed through untouched.
func (n *Normalizer) translateField(ctx context.Context, raw RawListing, name string) string {
	value := utils.CleanText(raw.Field(name))
	if value == "" {
		return ""
	}
	if !utils.ContainsJapanese(value) {
		return value
	}

	translated, err := n.translator.Translate(ctx, value)
	if err != nil {
		n.logger.WithFields(map[string]interface{}{
			"url":   raw.SourceURL,
			"field": name,
		}).Warnf("Translation failed, keeping original: %v", err)
		return value
	}
	return utils.CleanText(translated)
}
