package engine

import (
	"context"
	"testing"

	"github.com/ledgerscan/statement-engine/internal/model"
)

func stmtFragment(text string, x, width, y float64, page int) model.TextFragment {
	return model.TextFragment{
		Text:       text,
		Box:        model.BoundingBox{X: x, Y: y, Width: width, Height: 10},
		PageNumber: page,
	}
}

// fourColumnStatement builds a synthetic, well-separated four-column table
// (date, description, merged DR/CR amount, balance) with an opening-balance
// marker row followed by three transactions.
func fourColumnStatement() []model.TextFragment {
	rows := []struct {
		date, desc, amount, balance string
	}{
		{"01/15/2026", "Opening Balance Brought Forward", "1000.00 CR", "1000.00"},
		{"01/16/2026", "Salary Payment From Employer", "500.00 CR", "1500.00"},
		{"01/17/2026", "Rent Payment To Landlord", "200.00 DR", "1300.00"},
		{"01/18/2026", "Grocery Store Purchase Today", "50.00 DR", "1250.00"},
	}

	var fragments []model.TextFragment
	for i, r := range rows {
		y := float64(i * 20)
		fragments = append(fragments,
			stmtFragment(r.date, 0, 30, y, 1),
			stmtFragment(r.desc, 60, 100, y, 1),
			stmtFragment(r.amount, 190, 30, y, 1),
			stmtFragment(r.balance, 250, 30, y, 1),
		)
	}
	return fragments
}

func TestProcessDocumentFullPipeline(t *testing.T) {
	fragments := fourColumnStatement()
	cfg := model.DefaultConfig()

	result := ProcessDocument(context.Background(), "statement.pdf", fragments, cfg, nil)

	if !result.Success {
		t.Fatalf("ProcessDocument failed: errors=%+v warnings=%v", result.Errors, result.Warnings)
	}
	if result.Document == nil {
		t.Fatal("Document is nil")
	}
	if len(result.Document.RawTransactions) != 3 {
		t.Fatalf("RawTransactions count = %d, want 3 (opening-balance marker row excluded): %+v",
			len(result.Document.RawTransactions), result.Document.RawTransactions)
	}

	txs := result.Document.RawTransactions
	if txs[0].Credit == nil || *txs[0].Credit != 500 {
		t.Errorf("tx0 Credit = %v, want 500 (CR suffix)", txs[0].Credit)
	}
	if txs[1].Debit == nil || *txs[1].Debit != 200 {
		t.Errorf("tx1 Debit = %v, want 200 (DR suffix)", txs[1].Debit)
	}
	if txs[2].Debit == nil || *txs[2].Debit != 50 {
		t.Errorf("tx2 Debit = %v, want 50 (DR suffix)", txs[2].Debit)
	}
	for i, tx := range txs {
		if tx.ValidationStatus != model.StatusValid {
			t.Errorf("tx%d ValidationStatus = %v, want StatusValid", i, tx.ValidationStatus)
		}
	}

	if result.Document.DateOrder != model.OrderAscending {
		t.Errorf("DateOrder = %v, want OrderAscending", result.Document.DateOrder)
	}
	if result.Document.WasReversed {
		t.Error("an already-ascending statement should not be marked reversed")
	}
	if result.Document.OverallValidation != model.StatusValid {
		t.Errorf("OverallValidation = %v, want StatusValid", result.Document.OverallValidation)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %+v, want none", result.Errors)
	}
	if result.Confidence == nil {
		t.Error("expected a non-nil confidence score")
	}
}

func TestProcessDocumentEmptyFragments(t *testing.T) {
	result := ProcessDocument(context.Background(), "empty.pdf", nil, model.DefaultConfig(), nil)
	if !result.Success {
		t.Fatal("empty input should still be a successful, degraded result")
	}
	if result.Document == nil {
		t.Fatal("expected an (empty) document for empty input")
	}
	if len(result.Document.RawTransactions) != 0 {
		t.Errorf("RawTransactions = %v, want none", result.Document.RawTransactions)
	}
}

func TestProcessDocumentInvalidConfigFallsBackToDegraded(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LocaleDetection = "" // violates `validate:"required"`

	result := ProcessDocument(context.Background(), "x.pdf", fourColumnStatement(), cfg, nil)
	if !result.Success {
		t.Error("an invalid config should degrade, not fail outright")
	}
	if result.Document != nil {
		t.Error("invalid-config path should not attempt to produce a document")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning explaining the config fallback")
	}
}

func TestProcessDocumentNoGroupableLines(t *testing.T) {
	// Fragments that are entirely whitespace group into zero lines, so
	// table region detection finds no region and ProcessDocument returns
	// a zero-transaction success result.
	fragments := []model.TextFragment{
		stmtFragment("   ", 0, 10, 0, 1),
		stmtFragment("\t", 0, 10, 20, 1),
	}
	result := ProcessDocument(context.Background(), "blank.pdf", fragments, model.DefaultConfig(), nil)
	if !result.Success {
		t.Fatal("a document with no groupable lines should still be a success with zero transactions")
	}
	if result.Document == nil {
		t.Fatal("expected a document even with no groupable lines")
	}
	if len(result.Document.RawTransactions) != 0 {
		t.Errorf("RawTransactions = %v, want none", result.Document.RawTransactions)
	}
}
