package model

// ExportedRow is the serialized five-column schema a writer collaborator
// (CSV, XLSX, ...) produces from a ParsedDocument. validate_export
// compares these back against the Transactions that produced them.
type ExportedRow struct {
	Date        string
	Description string
	Debit       *float64
	Credit      *float64
	Balance     float64
	PageNumber  int
}

// ExportVerdict is the round-trip checker's overall verdict.
type ExportVerdict string

const (
	VerdictComplete  ExportVerdict = "EXPORT_COMPLETE"
	VerdictPartial   ExportVerdict = "EXPORT_PARTIAL"
	VerdictCorrupted ExportVerdict = "EXPORT_CORRUPTED"
)

// RowDiscrepancy explains one mismatch between a source transaction and
// its exported row.
type RowDiscrepancy struct {
	TransactionID string
	Kind          string // "missing", "duplicate", "corrupted", "truncated"
	Detail        string
}

// ExportValidationReport is validate_export's output.
type ExportValidationReport struct {
	Verdict       ExportVerdict
	Confidence    float64
	MatchedCount  int
	MissingCount  int
	DuplicateCount int
	Discrepancies []RowDiscrepancy
}

// PreExportCheck is pre_export_check's output.
type PreExportCheck struct {
	CanExport bool
	Reason    string
	Count     int
}
