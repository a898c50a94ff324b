package model

// ExtractedRow is the Row Extractor's output: untrimmed source text per
// canonical column, before any value parsing happens.
type ExtractedRow struct {
	PageNumber      int
	RawDate         *string
	RawDescription  *string
	RawDebit        *string
	RawCredit       *string
	RawBalance      *string
	RawReference    *string
	// SourceLines preserves the originating Line(s) for this row so the
	// stitcher and provenance tracker can still reach source fragments
	// after the row has been reshaped into columns.
	SourceLines []Line
}

// ValidationStatus is the per-transaction arithmetic verdict.
type ValidationStatus string

const (
	StatusValid     ValidationStatus = "valid"
	StatusWarning   ValidationStatus = "warning"
	StatusError     ValidationStatus = "error"
	StatusUnchecked ValidationStatus = "unchecked"
)

// ConfidenceGrade buckets TransactionConfidence.Overall into a letter.
type ConfidenceGrade string

const (
	GradeA ConfidenceGrade = "A"
	GradeB ConfidenceGrade = "B"
	GradeC ConfidenceGrade = "C"
	GradeD ConfidenceGrade = "D"
	GradeF ConfidenceGrade = "F"
)

// TransactionConfidence summarizes how much of a Transaction's data was
// extracted cleanly versus inferred, normalized, or degraded.
type TransactionConfidence struct {
	Overall float64 // 0..100
	Grade   ConfidenceGrade
	Factors ConfidenceFactors
	Flags   []string
}

// ConfidenceFactors are the 0..1 sub-scores that compose Overall.
type ConfidenceFactors struct {
	Date        float64
	Amount      float64
	Balance     float64
	OCR         *float64 // nil when the row has no OCR-sourced fragment
	Description float64
}

// GradeFor maps a 0..100 overall score to a letter grade, matching the
// cutoffs used by the engine's own confidence reporting (A ≥ 90, B ≥ 75,
// C ≥ 60, D ≥ 40, else F).
func GradeFor(overall float64) ConfidenceGrade {
	switch {
	case overall >= 90:
		return GradeA
	case overall >= 75:
		return GradeB
	case overall >= 60:
		return GradeC
	case overall >= 40:
		return GradeD
	default:
		return GradeF
	}
}

// ReferenceKind tags what kind of reference string was recognized.
type ReferenceKind string

const (
	RefCheque   ReferenceKind = "cheque"
	RefUTR      ReferenceKind = "utr"
	RefUPI      ReferenceKind = "upi"
	RefGeneric  ReferenceKind = "generic"
)

// Transaction is the post-parse, post-stitch entity emitted in a
// ParsedDocument. ID is assigned once at construction as a fresh UUID, so
// it differs between runs over the same input.
type Transaction struct {
	ID       string
	RowIndex int

	Date        string // ISO YYYY-MM-DD, or "" if extraction failed
	Description string

	Debit  *float64
	Credit *float64

	Balance float64

	Reference     *string
	ReferenceType *ReferenceKind

	Category           *string
	CategoryConfidence *float64

	OriginalCurrency *string
	OriginalDebit    *float64
	OriginalCredit   *float64
	ExchangeRate     *float64
	LocalCurrency    string

	ValidationStatus  ValidationStatus
	ValidationMessage *string

	Confidence TransactionConfidence

	SourcePageNumbers []int
	IsStitched        bool
	OriginalLines     []string
}

// DocumentSegment is one logical statement inside a possibly multi
// statement document.
type DocumentSegment struct {
	ID              string
	SegmentIndex    int
	StartPage       int
	EndPage         int
	OpeningBalance  float64
	ClosingBalance  *float64
	AccountNumber   *string
	StatementPeriod *string
	Transactions    []Transaction
}

// DateOrder is the Chronology Normalizer's verdict for a segment/document.
type DateOrder string

const (
	OrderAscending  DateOrder = "ascending"
	OrderDescending DateOrder = "descending"
	OrderMixed      DateOrder = "mixed"
	OrderUnknown    DateOrder = "unknown"
)

// DocumentTotals counts transactions by ValidationStatus.
type DocumentTotals struct {
	Total   int
	Valid   int
	Warning int
	Error   int
}

// ExtractedStatementHeader is account/period metadata pulled from the top
// of page 1. AccountNumberMasked is the only account-number field the
// engine ever emits; the full number never leaves the Statement Header
// Extractor.
type ExtractedStatementHeader struct {
	AccountHolder       *string
	AccountNumberMasked *string
	StatementPeriodFrom *string
	StatementPeriodTo   *string
	BankName            *string
	IFSCCode            *string
	BranchName          *string
	CustomerID          *string
	Currency            *string
	BSBNumber           *string
	SortCode            *string
	RoutingNumber       *string
}

// ParsedDocument is the engine's top-level output.
type ParsedDocument struct {
	DocumentID       string
	FileName         string
	TotalPages       int
	DetectedLocale   string
	Segments         []DocumentSegment
	Totals           DocumentTotals
	OverallValidation ValidationStatus
	DateOrder        DateOrder
	WasReversed      bool
	ExtractedHeader  ExtractedStatementHeader
	// RawTransactions is the pre-segmentation transaction list, kept as a
	// fallback for callers that do not care about segment boundaries.
	RawTransactions []Transaction
}

// Provenance links an emitted value back to the source fragment(s) that
// produced it and the transformations applied along the way.
type Provenance struct {
	Value            string
	SourceText       string
	SourcePageNumber int
	SourceBoundingBox BoundingBox
	Transformations  []string
	Confidence       float64
	// Reason explains an empty/absent value; set only when Value == "".
	Reason string
}

const (
	ReasonParseFailed = "parse_failed"
	ReasonAbsent       = "absent"
)
