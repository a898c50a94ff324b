// Package valueparse parses raw cell text into typed values: dates,
// numbers, currency, and description categories (C8 Value Parser).
package valueparse

import (
	"strconv"
	"strings"

	"github.com/ledgerscan/statement-engine/internal/catalog"
	"github.com/ledgerscan/statement-engine/internal/locale"
)

// ParsedAmount is the numeric value ParseNumber reads from cell text.
// There is no constructor that accepts an already-derived float; the
// fields are exported, so a ParsedAmount literal can still be written by
// hand.
type ParsedAmount struct {
	Value    float64
	Negative bool
}

// ParseNumber strips currency symbols and DR/CR suffixes, applies the
// locale's thousands/decimal separators, and treats parentheses as
// negation. It never guesses a value it cannot read from s.
func ParseNumber(raw string, fmt locale.NumberFormat) (ParsedAmount, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParsedAmount{}, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "DR"):
		negative = true
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "CR"):
		s = s[:len(s)-2]
	}

	s = stripCurrencySymbols(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return ParsedAmount{}, false
	}

	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	normalized := normalizeSeparators(s, fmt)
	if normalized == "" {
		return ParsedAmount{}, false
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return ParsedAmount{}, false
	}

	return ParsedAmount{Value: v, Negative: negative}, true
}

func stripCurrencySymbols(s string) string {
	for sym := range catalog.CurrencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, " ", " ") // non-breaking space, common OCR artifact
	return strings.TrimSpace(s)
}

// normalizeSeparators rewrites a locale-formatted numeral into the plain
// decimal-point form strconv.ParseFloat accepts.
func normalizeSeparators(s string, fmt locale.NumberFormat) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == fmt.ThousandsSep:
			continue
		case r == fmt.DecimalSep:
			b.WriteRune('.')
		case r == ' ' || r == '\t':
			continue
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && fmt.DecimalSep != '.':
			// a literal '.' that is this locale's thousands separator was
			// already consumed above; anything else is noise to drop.
			continue
		case r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}
