package catalog

import "testing"

func TestMatchAnyDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2026-01-15", true},
		{"15/01/2026", true},
		{"15-01-26", true},
		{"15 Jan 2026", true},
		{"Jan 15, 2026", true},
		{"15/01", true},
		{"Opening Balance", false},
		{"", false},
	}
	for _, c := range cases {
		if got := MatchAnyDate(c.in); got != c.want {
			t.Errorf("MatchAnyDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPatternForKnownFormats(t *testing.T) {
	for _, f := range []DateFormat{
		FormatYMDNumeric, FormatDMYNumeric, FormatMDYNumeric,
		FormatDMYShortNumeric, FormatMDYShortNumeric,
		FormatTextMonthDMY, FormatTextMonthMDY, FormatShortDM,
	} {
		if PatternFor(f) == nil {
			t.Errorf("PatternFor(%v) returned nil", f)
		}
	}
}

func TestPatternForUnknownFormat(t *testing.T) {
	if got := PatternFor(DateFormat("bogus")); got != nil {
		t.Errorf("PatternFor(bogus) = %v, want nil", got)
	}
}
