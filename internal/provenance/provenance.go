// Package provenance implements the per-run Recorder the design notes call
// for in place of a module-level singleton: every non-null emitted cell is
// registered against the fragment(s) that produced it.
package provenance

import "github.com/ledgerscan/statement-engine/internal/model"

// Key identifies one emitted cell: which transaction, which field.
type Key struct {
	TransactionID string
	Field         string
}

// Recorder accumulates Provenance entries for exactly one pipeline run.
// It is constructed fresh by the engine for each process_document call
// and discarded at the end of the run; nothing about it is shared across
// documents.
type Recorder struct {
	entries map[Key]model.Provenance
}

// NewRecorder returns an empty Recorder, ready for one run.
func NewRecorder() *Recorder {
	return &Recorder{entries: make(map[Key]model.Provenance)}
}

// Record attaches provenance to one emitted cell. Calling Record twice for
// the same key overwrites the entry rather than stacking a history. Safe
// repair in package validate does not call Record, so after it swaps a
// row's debit and credit, the "debit" and "credit" entries still describe
// the fields as they were before the swap.
func (r *Recorder) Record(txID, field string, p model.Provenance) {
	r.entries[Key{TransactionID: txID, Field: field}] = p
}

// FromFragment builds a Provenance for a value read directly out of a
// TextFragment, the common case for every value the Row Extractor or
// Value Parser produces.
func FromFragment(value string, fragment model.TextFragment, transformations ...string) model.Provenance {
	confidence := 1.0
	if fragment.Confidence != nil {
		confidence = *fragment.Confidence
	}
	return model.Provenance{
		Value:            value,
		SourceText:       fragment.Text,
		SourcePageNumber: fragment.PageNumber,
		SourceBoundingBox: fragment.Box,
		Transformations:  append([]string{}, transformations...),
		Confidence:       confidence,
	}
}

// Empty builds a Provenance recording why a cell was left empty. It must
// never be used to backfill a value; the Value field is always "".
func Empty(reason string, page int) model.Provenance {
	return model.Provenance{Reason: reason, SourcePageNumber: page}
}

// Lookup retrieves the provenance recorded for one transaction field, if
// any. Callers use this to build an audit trail for a specific cell.
func (r *Recorder) Lookup(txID, field string) (model.Provenance, bool) {
	p, ok := r.entries[Key{TransactionID: txID, Field: field}]
	return p, ok
}

// Count reports how many cells have recorded provenance. The engine does
// not call it.
func (r *Recorder) Count() int {
	return len(r.entries)
}
