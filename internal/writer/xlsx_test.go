package writer

import (
	"path/filepath"
	"testing"

	"github.com/ledgerscan/statement-engine/internal/model"
)

func TestStrOrEmpty(t *testing.T) {
	if got := strOrEmpty(nil); got != "" {
		t.Errorf("strOrEmpty(nil) = %q, want empty", got)
	}
	s := "HSBC"
	if got := strOrEmpty(&s); got != "HSBC" {
		t.Errorf("strOrEmpty(&HSBC) = %q, want HSBC", got)
	}
}

func TestPeriodOfBothSet(t *testing.T) {
	from, to := "01 Jan 2026", "31 Jan 2026"
	doc := model.ParsedDocument{ExtractedHeader: model.ExtractedStatementHeader{
		StatementPeriodFrom: &from,
		StatementPeriodTo:   &to,
	}}
	if got := periodOf(doc); got != "01 Jan 2026 to 31 Jan 2026" {
		t.Errorf("periodOf = %q", got)
	}
}

func TestPeriodOfNeitherSet(t *testing.T) {
	if got := periodOf(model.ParsedDocument{}); got != "" {
		t.Errorf("periodOf(empty) = %q, want empty", got)
	}
}

func TestXLSXWriterWriteToFileProducesWorkbook(t *testing.T) {
	doc := sampleDocument()
	path := filepath.Join(t.TempDir(), "out.xlsx")

	w := &XLSXWriter{}
	if err := w.WriteToFile(path, doc); err != nil {
		t.Fatalf("WriteToFile returned error: %v", err)
	}
}

func TestXLSXWriterWriteToFileEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	w := &XLSXWriter{}
	if err := w.WriteToFile(path, model.ParsedDocument{}); err != nil {
		t.Fatalf("WriteToFile(empty doc) returned error: %v", err)
	}
}
