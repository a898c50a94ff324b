package valueparse

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ledgerscan/statement-engine/internal/catalog"
)

// ParseDate tries each candidate format in order and returns the first
// match as an ISO YYYY-MM-DD string. contextYear is used only for the
// short-DM format, which has no year of its own. Failure returns
// ok=false; callers must leave the date field empty rather than guess.
func ParseDate(raw string, formats []catalog.DateFormat, contextYear int) (string, bool) {
	for _, f := range formats {
		if iso, ok := tryFormat(raw, f, contextYear); ok {
			return iso, true
		}
	}
	return "", false
}

func tryFormat(raw string, f catalog.DateFormat, contextYear int) (string, bool) {
	re := catalog.PatternFor(f)
	if re == nil {
		return "", false
	}
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	switch f {
	case catalog.FormatYMDNumeric:
		return isoFromParts(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	case catalog.FormatDMYNumeric:
		return isoFromParts(atoi(m[3]), atoi(m[2]), atoi(m[1]))
	case catalog.FormatMDYNumeric:
		return isoFromParts(atoi(m[3]), atoi(m[1]), atoi(m[2]))
	case catalog.FormatDMYShortNumeric:
		return isoFromParts(expandYear(atoi(m[3])), atoi(m[2]), atoi(m[1]))
	case catalog.FormatMDYShortNumeric:
		return isoFromParts(expandYear(atoi(m[3])), atoi(m[1]), atoi(m[2]))
	case catalog.FormatTextMonthDMY:
		month, ok := catalog.MonthAbbrev[lower3(m[2])]
		if !ok {
			return "", false
		}
		year := atoi(m[3])
		if year < 100 {
			year = expandYear(year)
		}
		return isoFromParts(year, month, atoi(m[1]))
	case catalog.FormatTextMonthMDY:
		month, ok := catalog.MonthAbbrev[lower3(m[1])]
		if !ok {
			return "", false
		}
		return isoFromParts(atoi(m[3]), month, atoi(m[2]))
	case catalog.FormatShortDM:
		if contextYear == 0 {
			return "", false
		}
		return isoFromParts(contextYear, atoi(m[2]), atoi(m[1]))
	}
	return "", false
}

func isoFromParts(year, month, day int) (string, bool) {
	if year < 1000 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false // e.g. Feb 30 normalized away, so reject it
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func expandYear(twoDigit int) int {
	if twoDigit < 0 {
		return 0
	}
	if twoDigit < 70 {
		return 2000 + twoDigit
	}
	return 1900 + twoDigit
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func lower3(s string) string {
	if len(s) < 3 {
		return s
	}
	b := []byte(s[:3])
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
