// Package catalog is the engine's single compile-time table of regex
// patterns: date formats, column header synonyms, category rules, and
// currency symbols. Every stage that needs a pattern reaches into this
// package instead of declaring its own regex, per the "gather scattered
// regex tables into one compile-time catalog" design note.
package catalog

import "regexp"

// DatePattern pairs a named, precompiled regex with the Go reference
// layout used to parse a match.
type DatePattern struct {
	Name   string
	Regex  *regexp.Regexp
	Layout string
}

// Numeric date patterns, ordered most-specific first so a 4-digit year
// match is tried before an ambiguous 2-digit one.
var (
	numericYMD  = regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`)
	numericDMY  = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{4})\b`)
	numericDMYShort = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{2})\b`)
	textMonth   = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-]+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[\s-]+(\d{2,4})\b`)
	textMonthFirst = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[\s-]+(\d{1,2}),?\s+(\d{4})\b`)
	shortDM     = regexp.MustCompile(`\b(\d{1,2})[/](\d{1,2})\b`)
)

// MonthAbbrev maps a lowercase three-letter month abbreviation to its
// number, used when a text-month pattern matches.
var MonthAbbrev = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// DateFormat names the candidate parse order tried for a given locale.
// These mirror the source text pattern family, not a Go layout string,
// because day/month ambiguity can only be resolved once a locale is
// chosen.
type DateFormat string

const (
	FormatYMDNumeric    DateFormat = "ymd_numeric"    // 2025-01-15, 2025/01/15
	FormatDMYNumeric     DateFormat = "dmy_numeric"     // 15-01-2025, 15/01/2025
	FormatMDYNumeric     DateFormat = "mdy_numeric"     // 01-15-2025, 01/15/2025
	FormatDMYShortNumeric DateFormat = "dmy_short_numeric" // 15-01-25
	FormatMDYShortNumeric DateFormat = "mdy_short_numeric" // 01-15-25
	FormatTextMonthDMY   DateFormat = "text_month_dmy"   // 15 Jan 2025
	FormatTextMonthMDY   DateFormat = "text_month_mdy"   // Jan 15, 2025
	FormatShortDM        DateFormat = "short_dm"         // 15/01 (year inferred from context)
)

// DefaultDateFormatOrder is the candidate order used when locale detection
// does not override it (US-style document).
var DefaultDateFormatOrder = []DateFormat{
	FormatYMDNumeric,
	FormatMDYNumeric,
	FormatTextMonthMDY,
	FormatTextMonthDMY,
	FormatMDYShortNumeric,
	FormatShortDM,
}

// EuropeanDateFormatOrder prefers day-before-month readings.
var EuropeanDateFormatOrder = []DateFormat{
	FormatYMDNumeric,
	FormatDMYNumeric,
	FormatTextMonthDMY,
	FormatTextMonthMDY,
	FormatDMYShortNumeric,
	FormatShortDM,
}

// MatchAnyDate reports whether s contains any recognizable date pattern,
// used by the column classifier's dateScore and by the stitcher's
// continuation-row test. It does not parse the date; see valueparse.
func MatchAnyDate(s string) bool {
	return numericYMD.MatchString(s) ||
		numericDMY.MatchString(s) ||
		numericDMYShort.MatchString(s) ||
		textMonth.MatchString(s) ||
		textMonthFirst.MatchString(s) ||
		shortDM.MatchString(s)
}

// PatternFor returns the compiled regex backing a DateFormat, used by
// valueparse when it attempts each candidate format in order.
func PatternFor(f DateFormat) *regexp.Regexp {
	switch f {
	case FormatYMDNumeric:
		return numericYMD
	case FormatDMYNumeric, FormatMDYNumeric:
		return numericDMY
	case FormatDMYShortNumeric, FormatMDYShortNumeric:
		return numericDMYShort
	case FormatTextMonthDMY:
		return textMonth
	case FormatTextMonthMDY:
		return textMonthFirst
	case FormatShortDM:
		return shortDM
	default:
		return nil
	}
}
