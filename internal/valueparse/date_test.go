package valueparse

import (
	"testing"

	"github.com/ledgerscan/statement-engine/internal/catalog"
)

func TestParseDateUSOrder(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-01-15", "2026-01-15"},
		{"01/15/2026", "2026-01-15"},
		{"Jan 15, 2026", "2026-01-15"},
		{"15 Jan 2026", "2026-01-15"},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.in, catalog.DefaultDateFormatOrder, 0)
		if !ok {
			t.Errorf("ParseDate(%q) failed, want %q", c.in, c.want)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseDateEuropeanOrder(t *testing.T) {
	got, ok := ParseDate("15/01/2026", catalog.EuropeanDateFormatOrder, 0)
	if !ok || got != "2026-01-15" {
		t.Errorf("ParseDate(15/01/2026, european) = (%q, %v), want (2026-01-15, true)", got, ok)
	}
}

func TestParseDateShortDMNeedsContextYear(t *testing.T) {
	if _, ok := ParseDate("15/01", catalog.DefaultDateFormatOrder, 0); ok {
		t.Error("short-DM date should fail to parse without a context year")
	}
	got, ok := ParseDate("15/01", catalog.EuropeanDateFormatOrder, 2026)
	if !ok || got != "2026-01-15" {
		t.Errorf("ParseDate(15/01, context=2026) = (%q, %v), want (2026-01-15, true)", got, ok)
	}
}

func TestParseDateRejectsInvalidCalendarDate(t *testing.T) {
	if _, ok := ParseDate("2026-02-30", catalog.DefaultDateFormatOrder, 0); ok {
		t.Error("ParseDate should reject Feb 30 as invalid")
	}
}

func TestParseDateTwoDigitYearExpansion(t *testing.T) {
	got, ok := ParseDate("15-01-26", catalog.EuropeanDateFormatOrder, 0)
	if !ok || got != "2026-01-15" {
		t.Errorf("ParseDate(15-01-26) = (%q, %v), want (2026-01-15, true)", got, ok)
	}
	got, ok = ParseDate("15-01-95", catalog.EuropeanDateFormatOrder, 0)
	if !ok || got != "1995-01-15" {
		t.Errorf("ParseDate(15-01-95) = (%q, %v), want (1995-01-15, true)", got, ok)
	}
}
