package valueparse

import (
	"testing"

	"github.com/ledgerscan/statement-engine/internal/locale"
)

func usNumberFormat() locale.NumberFormat {
	return locale.NumberFormat{ThousandsSep: ',', DecimalSep: '.'}
}

func euNumberFormat() locale.NumberFormat {
	return locale.NumberFormat{ThousandsSep: '.', DecimalSep: ','}
}

func TestParseNumberUSFormat(t *testing.T) {
	cases := []struct {
		in       string
		wantVal  float64
		wantNeg  bool
		wantOK   bool
	}{
		{"1,234.56", 1234.56, false, true},
		{"(100.00)", 100, true, true},
		{"250.00 DR", 250, true, true},
		{"250.00 CR", 250, false, true},
		{"$1,200.50", 1200.50, false, true},
		{"-50.00", 50, true, true},
		{"+50.00", 50, false, true},
		{"", 0, false, false},
		{"   ", 0, false, false},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in, usNumberFormat())
		if ok != c.wantOK {
			t.Errorf("ParseNumber(%q) ok = %v, want %v", c.in, ok, c.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got.Value != c.wantVal || got.Negative != c.wantNeg {
			t.Errorf("ParseNumber(%q) = %+v, want {%v %v}", c.in, got, c.wantVal, c.wantNeg)
		}
	}
}

func TestParseNumberEuropeanFormat(t *testing.T) {
	got, ok := ParseNumber("1.234,56", euNumberFormat())
	if !ok {
		t.Fatalf("ParseNumber failed to parse european-format number")
	}
	if got.Value != 1234.56 {
		t.Errorf("ParseNumber(1.234,56) = %v, want 1234.56", got.Value)
	}
}

func TestParseNumberGarbage(t *testing.T) {
	if _, ok := ParseNumber("not a number", usNumberFormat()); ok {
		t.Error("ParseNumber should reject non-numeric text")
	}
}
