package writer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// XLSXWriter writes a parsed document to a three-sheet workbook: Account
// Info, Transactions, Summary.
type XLSXWriter struct{}

// WriteToFile writes doc to an XLSX file at path.
func (w *XLSXWriter) WriteToFile(path string, doc model.ParsedDocument) error {
	f := excelize.NewFile()
	f.SetAppProps(&excelize.AppProperties{Application: "statement-engine"})
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", "Account Info")
	if _, err := f.NewSheet("Transactions"); err != nil {
		return err
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		return err
	}

	if err := writeAccountInfoSheet(f, doc); err != nil {
		return err
	}
	if err := writeTransactionsSheet(f, doc); err != nil {
		return err
	}
	if err := writeSummarySheet(f, doc); err != nil {
		return err
	}

	f.SetActiveSheet(1)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writer: saving xlsx %q: %w", path, err)
	}
	return nil
}

func writeAccountInfoSheet(f *excelize.File, doc model.ParsedDocument) error {
	sheet := "Account Info"
	headers := []string{"Account Number", "Account Holder", "Bank", "Period", "Currency"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	data := []interface{}{
		strOrEmpty(doc.ExtractedHeader.AccountNumberMasked),
		strOrEmpty(doc.ExtractedHeader.AccountHolder),
		strOrEmpty(doc.ExtractedHeader.BankName),
		periodOf(doc),
		strOrEmpty(doc.ExtractedHeader.Currency),
	}
	for i, v := range data {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, v)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	for i := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 22)
	}
	return nil
}

func writeTransactionsSheet(f *excelize.File, doc model.ParsedDocument) error {
	sheet := "Transactions"
	headers := []string{"Date", "Description", "Debit", "Credit", "Balance", "Page"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	rows := ToExportedRows(doc)
	for i, row := range rows {
		r := i + 2
		setCell(f, sheet, 1, r, row.Date)
		setCell(f, sheet, 2, r, row.Description)
		if row.Debit != nil {
			setCell(f, sheet, 3, r, *row.Debit)
		}
		if row.Credit != nil {
			setCell(f, sheet, 4, r, *row.Credit)
		}
		setCell(f, sheet, 5, r, row.Balance)
		setCell(f, sheet, 6, r, row.PageNumber)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)

	numStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})
	if len(rows) > 0 {
		lastRow := len(rows) + 1
		f.SetCellStyle(sheet, "C2", fmt.Sprintf("E%d", lastRow), numStyle)
		f.AutoFilter(sheet, fmt.Sprintf("A1:F%d", lastRow), []excelize.AutoFilterOptions{})
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 50)
	f.SetColWidth(sheet, "C", "E", 14)
	f.SetColWidth(sheet, "F", "F", 8)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	return nil
}

func writeSummarySheet(f *excelize.File, doc model.ParsedDocument) error {
	sheet := "Summary"
	headers := []string{"Total", "Valid", "Warning", "Error", "Date Order", "Was Reversed"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	data := []interface{}{
		doc.Totals.Total,
		doc.Totals.Valid,
		doc.Totals.Warning,
		doc.Totals.Error,
		string(doc.DateOrder),
		doc.WasReversed,
	}
	for i, v := range data {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, v)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#70AD47"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 16)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellValue(sheet, cell, value)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func periodOf(doc model.ParsedDocument) string {
	from, to := "", ""
	if doc.ExtractedHeader.StatementPeriodFrom != nil {
		from = *doc.ExtractedHeader.StatementPeriodFrom
	}
	if doc.ExtractedHeader.StatementPeriodTo != nil {
		to = *doc.ExtractedHeader.StatementPeriodTo
	}
	if from == "" && to == "" {
		return ""
	}
	return from + " to " + to
}
