package locale

import "testing"

func TestDetectExplicitLocaleShortCircuits(t *testing.T) {
	info := Detect("de-DE", []string{"some header"}, nil)
	if info.Locale != "de-DE" {
		t.Errorf("Locale = %q, want de-DE", info.Locale)
	}
	if info.NumberFormat.DecimalSep != ',' {
		t.Errorf("DecimalSep = %q, want ','", info.NumberFormat.DecimalSep)
	}
}

func TestDetectArabicScript(t *testing.T) {
	info := Detect("auto", []string{"كشف حساب"}, nil)
	if !info.RTL {
		t.Error("expected RTL for Arabic script header")
	}
}

func TestDetectDevanagariScript(t *testing.T) {
	info := Detect("auto", []string{"खाता विवरण"}, nil)
	if info.Locale != "hi-IN" {
		t.Errorf("Locale = %q, want hi-IN", info.Locale)
	}
}

func TestDetectEuropeanNumberFormat(t *testing.T) {
	info := Detect("auto", []string{"Kontoauszug"}, []string{"1.234,56"})
	if info.Locale != "de-DE" {
		t.Errorf("Locale = %q, want de-DE", info.Locale)
	}
}

func TestDetectDefaultsToEnUS(t *testing.T) {
	info := Detect("auto", []string{"Statement"}, []string{"1,234.56"})
	if info.Locale != "en-US" {
		t.Errorf("Locale = %q, want en-US", info.Locale)
	}
	if info.NumberFormat.DecimalSep != '.' || info.NumberFormat.ThousandsSep != ',' {
		t.Errorf("unexpected NumberFormat %+v", info.NumberFormat)
	}
}
