package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// CSVWriter writes a parsed document's transactions to CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes doc's transactions to a CSV file at path.
func (w *CSVWriter) WriteToFile(path string, doc model.ParsedDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writer: creating output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, doc)
}

// Write writes doc's transactions in CSV format to out.
func (w *CSVWriter) Write(out io.Writer, doc model.ParsedDocument) error {
	csvWriter := csv.NewWriter(out)
	defer csvWriter.Flush()

	if w.IncludeHeader {
		if doc.ExtractedHeader.AccountHolder != nil {
			csvWriter.Write([]string{"# Account Holder", *doc.ExtractedHeader.AccountHolder})
		}
		if doc.ExtractedHeader.AccountNumberMasked != nil {
			csvWriter.Write([]string{"# Account Number", *doc.ExtractedHeader.AccountNumberMasked})
		}
		if doc.ExtractedHeader.BankName != nil {
			csvWriter.Write([]string{"# Bank", *doc.ExtractedHeader.BankName})
		}
		if doc.ExtractedHeader.StatementPeriodFrom != nil && doc.ExtractedHeader.StatementPeriodTo != nil {
			csvWriter.Write([]string{"# Statement Period", *doc.ExtractedHeader.StatementPeriodFrom + " to " + *doc.ExtractedHeader.StatementPeriodTo})
		}
	}

	header := []string{"Date", "Description", "Debit", "Credit", "Balance", "Page"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("writer: writing CSV header: %w", err)
	}

	for _, row := range ToExportedRows(doc) {
		record := []string{
			row.Date,
			row.Description,
			formatAmount(row.Debit),
			formatAmount(row.Credit),
			strconv.FormatFloat(row.Balance, 'f', 2, 64),
			strconv.Itoa(row.PageNumber),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("writer: writing CSV row: %w", err)
		}
	}

	return nil
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
