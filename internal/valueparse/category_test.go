package valueparse

import "testing"

func TestCategorize(t *testing.T) {
	cases := []struct {
		description string
		wantCat     string
		wantOK      bool
	}{
		{"SALARY CREDIT FOR JAN 2026", "Salary", true},
		{"ATM CASH WITHDRAWAL", "ATM", true},
		{"NETFLIX.COM SUBSCRIPTION", "Entertainment", true},
		{"NEFT TRANSFER TO JOHN DOE", "Transfer", true},
		{"xyzzy plugh qux", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := Categorize(c.description)
		if ok != c.wantOK {
			t.Errorf("Categorize(%q) ok = %v, want %v", c.description, ok, c.wantOK)
			continue
		}
		if ok && got.Category != c.wantCat {
			t.Errorf("Categorize(%q) = %q, want %q", c.description, got.Category, c.wantCat)
		}
		if ok && (got.Confidence < 0.3 || got.Confidence > 1) {
			t.Errorf("Categorize(%q) confidence = %v, want in [0.3, 1]", c.description, got.Confidence)
		}
	}
}
