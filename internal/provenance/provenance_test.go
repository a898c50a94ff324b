package provenance

import (
	"testing"

	"github.com/ledgerscan/statement-engine/internal/model"
)

func TestRecordAndLookup(t *testing.T) {
	r := NewRecorder()
	p := model.Provenance{Value: "100.00", SourcePageNumber: 1}
	r.Record("tx1", "Credit", p)

	got, ok := r.Lookup("tx1", "Credit")
	if !ok {
		t.Fatal("expected a recorded provenance entry")
	}
	if got.Value != "100.00" {
		t.Errorf("Value = %q, want 100.00", got.Value)
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Count())
	}
}

func TestRecordOverwritesPreviousEntry(t *testing.T) {
	r := NewRecorder()
	r.Record("tx1", "Debit", model.Provenance{Value: "50.00"})
	r.Record("tx1", "Debit", model.Provenance{Value: "75.00"})

	got, _ := r.Lookup("tx1", "Debit")
	if got.Value != "75.00" {
		t.Errorf("Value = %q, want 75.00 (second Record should overwrite)", got.Value)
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1 (overwrite, not append)", r.Count())
	}
}

func TestLookupMissingKey(t *testing.T) {
	r := NewRecorder()
	if _, ok := r.Lookup("missing", "Field"); ok {
		t.Error("Lookup of an unrecorded key should return ok=false")
	}
}

func TestFromFragmentUsesFragmentConfidence(t *testing.T) {
	conf := 0.82
	frag := model.TextFragment{
		Text:       "15/01/2026",
		PageNumber: 2,
		Box:        model.BoundingBox{X: 10, Y: 20, Width: 30, Height: 10},
		Confidence: &conf,
	}
	p := FromFragment("2026-01-15", frag, "date-normalized")
	if p.Value != "2026-01-15" {
		t.Errorf("Value = %q, want 2026-01-15", p.Value)
	}
	if p.SourceText != "15/01/2026" {
		t.Errorf("SourceText = %q, want 15/01/2026", p.SourceText)
	}
	if p.Confidence != 0.82 {
		t.Errorf("Confidence = %v, want 0.82", p.Confidence)
	}
	if len(p.Transformations) != 1 || p.Transformations[0] != "date-normalized" {
		t.Errorf("Transformations = %v, want [date-normalized]", p.Transformations)
	}
	if p.SourcePageNumber != 2 {
		t.Errorf("SourcePageNumber = %d, want 2", p.SourcePageNumber)
	}
}

func TestFromFragmentDefaultsConfidenceWhenNil(t *testing.T) {
	frag := model.TextFragment{Text: "x"}
	p := FromFragment("x", frag)
	if p.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0 default", p.Confidence)
	}
}

func TestEmptyRecordsReasonNotValue(t *testing.T) {
	p := Empty("no matching column", 3)
	if p.Value != "" {
		t.Errorf("Value = %q, want empty", p.Value)
	}
	if p.Reason != "no matching column" {
		t.Errorf("Reason = %q, want 'no matching column'", p.Reason)
	}
	if p.SourcePageNumber != 3 {
		t.Errorf("SourcePageNumber = %d, want 3", p.SourcePageNumber)
	}
}
