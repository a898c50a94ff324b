// Package writer serializes a ParsedDocument's transactions to the
// five-column ExportedRow schema validate_export round-trips against, in
// either CSV or XLSX form.
package writer

import "github.com/ledgerscan/statement-engine/internal/model"

// ToExportedRows flattens every segment's transactions into the exported
// schema, in document order.
func ToExportedRows(doc model.ParsedDocument) []model.ExportedRow {
	var rows []model.ExportedRow
	for _, seg := range doc.Segments {
		for _, txn := range seg.Transactions {
			rows = append(rows, model.ExportedRow{
				Date:        txn.Date,
				Description: txn.Description,
				Debit:       txn.Debit,
				Credit:      txn.Credit,
				Balance:     txn.Balance,
				PageNumber:  firstPage(txn.SourcePageNumbers),
			})
		}
	}
	return rows
}

func firstPage(pages []int) int {
	if len(pages) == 0 {
		return 0
	}
	return pages[0]
}
