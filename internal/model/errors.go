package model

import "fmt"

// ErrorKind is the error taxonomy the engine distinguishes, independent of
// Go's error type system. Only StructuralError aborts a document.
type ErrorKind string

const (
	KindShape          ErrorKind = "shape"
	KindParse          ErrorKind = "parse"
	KindBalance        ErrorKind = "balance"
	KindStructural     ErrorKind = "structural"
	KindValidationGate ErrorKind = "validation_gate"
)

// StageError is a structural (fatal) failure from one pipeline stage.
// Shape and parse problems never produce a StageError; the engine reports
// them as plain-string warnings instead.
type StageError struct {
	Stage string
	Kind  ErrorKind
	Msg   string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Msg)
}

func NewStructuralError(stage, msg string) error {
	return &StageError{Stage: stage, Kind: KindStructural, Msg: msg}
}

// StageWarning describes a non-fatal degradation: a shape problem, a parse
// failure on one row, a balance violation that repair could not heal, and
// so on. No pipeline stage returns a StageWarning; the engine collects its
// warnings as plain strings.
type StageWarning struct {
	Stage string
	Kind  ErrorKind
	Msg   string
}

func (w StageWarning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Stage, w.Kind, w.Msg)
}

// SchemaViolation is a validation-gate failure: an emitted transaction that
// breaks one of the engine's own output invariants (debit/credit
// exclusivity, non-negative amounts, a present date). These are reported, never silently
// fixed.
type SchemaViolation struct {
	TransactionID string
	RowIndex      int
	Rule          string
	Detail        string
}

// StageStatus is one entry of ProcessingResult.Stages, reported for
// observability regardless of whether the caller wired an Observer.
type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageProcessing StageStatus = "processing"
	StageComplete   StageStatus = "complete"
	StageError_     StageStatus = "error"
)

// StageReport records one stage's terminal status and timing.
type StageReport struct {
	Name       string
	Status     StageStatus
	DurationMs int64
	Warnings   int
}
