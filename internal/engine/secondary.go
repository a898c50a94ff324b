package engine

import (
	"github.com/ledgerscan/statement-engine/internal/model"
	"github.com/ledgerscan/statement-engine/internal/validate"
)

// QuickValidate is the engine's standalone secondary operation: does
// prevBalance + credit - debit equal currentBalance within tolerance?
func QuickValidate(prevBalance float64, debit, credit *float64, currentBalance float64) bool {
	return validate.QuickValidate(prevBalance, debit, credit, currentBalance)
}

// ValidateExport round-trips an emitted ExportedRow stream against the
// transactions that produced them.
func ValidateExport(transactions []model.Transaction, exported []model.ExportedRow, totalPages int) model.ExportValidationReport {
	return validate.ValidateExport(transactions, exported, totalPages)
}

// PreExportCheck reports whether a transaction list may be exported.
func PreExportCheck(transactions []model.Transaction) model.PreExportCheck {
	return validate.PreExportCheck(transactions)
}
