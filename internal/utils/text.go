package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

var spaceRe = regexp.MustCompile(`\s+`)

// CleanText trims a scraped string and collapses runs of whitespace,
// including the ideographic space (U+3000) used on Japanese pages.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "　", " ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// FoldWidth converts full-width characters to their narrow equivalents,
// so prices like "３，０００万円" parse with ordinary ASCII handling.
func FoldWidth(text string) string {
	return width.Fold.String(text)
}

// ContainsJapanese reports whether the string has any kana or kanji.
// Used to skip translation of values that are already plain ASCII.
func ContainsJapanese(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
