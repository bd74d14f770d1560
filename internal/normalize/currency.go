package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/akiyahub/akiya-crawler/internal/utils"
)

// Price strings arrive in several shapes depending on the source site and
// whether translation already ran: "3,000万円", "１億２３００万円",
// "30,000,000円", "¥30,000,000" or "30 million yen". All of them are
// reduced to an integer yen amount before conversion.
var (
	okuManRe   = regexp.MustCompile(`([\d.]+)億(?:([\d.]+)万)?`)
	manRe      = regexp.MustCompile(`([\d.]+)万`)
	englishRe  = regexp.MustCompile(`([\d.]+)\s*(million|thousand)?\s*yen`)
	plainYenRe = regexp.MustCompile(`[¥]?([\d.]+)円?`)
)

// ExtractYenAmount parses a price string into yen. Returns ok=false when no
// recognizable amount is present; callers treat that as an absent price.
func ExtractYenAmount(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}

	cleaned := utils.FoldWidth(utils.CleanText(text))
	cleaned = strings.ToLower(strings.ReplaceAll(cleaned, ",", ""))

	if m := okuManRe.FindStringSubmatch(cleaned); m != nil {
		oku, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		total := oku * 100_000_000
		if m[2] != "" {
			man, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return 0, false
			}
			total += man * 10_000
		}
		return int64(math.Round(total)), true
	}

	if m := manRe.FindStringSubmatch(cleaned); m != nil {
		man, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return int64(math.Round(man * 10_000)), true
	}

	if m := englishRe.FindStringSubmatch(cleaned); m != nil {
		number, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		switch m[2] {
		case "million":
			number *= 1_000_000
		case "thousand":
			number *= 1_000
		}
		return int64(math.Round(number)), true
	}

	// Plain digit amounts need a currency marker to avoid swallowing
	// arbitrary numbers like walk times or floor counts.
	if strings.Contains(cleaned, "円") || strings.Contains(cleaned, "¥") {
		if m := plainYenRe.FindStringSubmatch(cleaned); m != nil {
			number, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return 0, false
			}
			return int64(math.Round(number)), true
		}
	}

	return 0, false
}

// Converter converts yen to USD with a rate snapshot taken once per crawl
// run. All listings in one run share the same rate.
type Converter struct {
	rate float64
}

// NewConverter creates a converter for the given JPY->USD rate.
func NewConverter(rate float64) *Converter {
	return &Converter{rate: rate}
}

// Rate returns the snapshot rate.
func (c *Converter) Rate() float64 {
	return c.rate
}

// ToUSD converts a yen amount, rounded to cents.
func (c *Converter) ToUSD(jpy int64) float64 {
	return math.Round(float64(jpy)*c.rate*100) / 100
}
