// Package locale infers a statement's number format, date format order,
// and script direction from sampled header text and numeric cells (C5).
package locale

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/ledgerscan/statement-engine/internal/catalog"
)

// NumberFormat describes how to read a locale's numeric literals.
type NumberFormat struct {
	ThousandsSep     rune
	DecimalSep       rune
	CurrencySymbol   string
	CurrencyPosition catalog.CurrencyPosition
}

// Info is the Locale & Format Detector's output.
type Info struct {
	Locale       string
	Tag          language.Tag
	NumberFormat NumberFormat
	DateFormats  []catalog.DateFormat
	RTL          bool
}

var (
	arabicScript     = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)
	cjkScript        = regexp.MustCompile(`[\x{4E00}-\x{9FFF}\x{3040}-\x{30FF}]`)
	devanagariScript = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
	europeanDecimal  = regexp.MustCompile(`\d+\.\d{3},\d{2}`)
	europeanSpaced   = regexp.MustCompile(`\d+ \d{3},\d{2}`)
)

// Detect infers locale info from a sample of header strings and a sample
// of numeric-looking cell strings. explicitLocale, when non-empty and not
// "auto", short-circuits detection.
func Detect(explicitLocale string, headerSamples, numberSamples []string) Info {
	if explicitLocale != "" && !strings.EqualFold(explicitLocale, "auto") {
		return forLocale(explicitLocale)
	}

	joinedHeaders := strings.Join(headerSamples, " ")

	switch {
	case arabicScript.MatchString(joinedHeaders):
		return forLocale("ar")
	case devanagariScript.MatchString(joinedHeaders):
		return forLocale("hi-IN")
	case cjkScript.MatchString(joinedHeaders):
		return forLocale("zh")
	}

	for _, s := range numberSamples {
		if europeanDecimal.MatchString(s) {
			return forLocale("de-DE")
		}
		if europeanSpaced.MatchString(s) {
			return forLocale("fr-FR")
		}
	}

	return forLocale("en-US")
}

// forLocale returns the fixed NumberFormat/DateFormats/RTL profile for a
// known locale tag; unknown tags fall back to en-US's profile but keep
// the requested tag string for DetectedLocale reporting.
func forLocale(loc string) Info {
	tag, _ := language.Parse(loc)
	base := strings.ToLower(loc)

	info := Info{
		Locale: loc,
		Tag:    tag,
		NumberFormat: NumberFormat{
			ThousandsSep:     ',',
			DecimalSep:       '.',
			CurrencyPosition: catalog.CurrencyPrefix,
		},
		DateFormats: catalog.DefaultDateFormatOrder,
	}

	switch {
	case strings.HasPrefix(base, "ar"):
		info.RTL = true
		info.DateFormats = catalog.EuropeanDateFormatOrder
	case strings.HasPrefix(base, "de"), strings.HasPrefix(base, "es"), strings.HasPrefix(base, "it"):
		info.NumberFormat.ThousandsSep = '.'
		info.NumberFormat.DecimalSep = ','
		info.DateFormats = catalog.EuropeanDateFormatOrder
	case strings.HasPrefix(base, "fr"):
		info.NumberFormat.ThousandsSep = ' '
		info.NumberFormat.DecimalSep = ','
		info.DateFormats = catalog.EuropeanDateFormatOrder
	case strings.HasPrefix(base, "hi"), strings.HasPrefix(base, "zh"), strings.HasPrefix(base, "ja"):
		info.DateFormats = catalog.EuropeanDateFormatOrder
	default:
		info.DateFormats = catalog.DefaultDateFormatOrder
	}

	return info
}
