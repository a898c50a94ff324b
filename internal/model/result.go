package model

// ProcessingResult is process_document's output.
type ProcessingResult struct {
	Success          bool
	Document         *ParsedDocument
	Errors           []SchemaViolation
	Warnings         []string
	Stages           []StageReport
	TotalDurationMs  int64
	ColumnBoundaries []ColumnBoundary
	Confidence       *float64
	// Provenance looks up why a transaction field holds the value it does,
	// or why it is empty. Keyed by (transaction ID, field name), where
	// field is one of "date", "debit", "credit", "balance", "description",
	// "reference". Nil only on the invalid-configuration result, which
	// returns before any stage runs; the empty-input and header-only
	// results carry the run's (empty) recorder.
	Provenance ProvenanceLookup
}

// ProvenanceLookup retrieves the recorded Provenance for one transaction
// field. Implemented by *provenance.Recorder; kept as an interface here
// so model stays free of an import on the provenance package.
type ProvenanceLookup interface {
	Lookup(transactionID, field string) (Provenance, bool)
}
