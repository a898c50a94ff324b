package catalog

import (
	"regexp"
	"strings"

	"github.com/ledgerscan/statement-engine/internal/model"
)

var (
	// upiReferencePattern matches the "UPI-" / "UPI/" narration-prefix
	// convention and the bare 12-digit UPI transaction reference number.
	upiReferencePattern = regexp.MustCompile(`(?i)^upi[/-]|^\d{12}$`)
	// chequeNumberPattern matches a bare cheque number: banks print these
	// as 6-digit sequences, occasionally zero-padded.
	chequeNumberPattern = regexp.MustCompile(`^0*\d{6}$`)
	// utrReferencePattern matches the wider alphanumeric reference-number
	// shape used for NEFT/RTGS UTRs and other bank-assigned transaction
	// IDs: 11-22 characters, letters and digits only.
	utrReferencePattern = regexp.MustCompile(`^[A-Za-z0-9]{11,22}$`)
)

// ClassifyReference tags a trimmed raw reference string with the kind of
// reference it looks like, checking the most specific shape first: a UPI
// marker or 12-digit UPI reference, then a short numeric cheque number,
// then the wider alphanumeric UTR/transaction-ID shape, falling back to
// RefGeneric for anything else.
func ClassifyReference(raw string) model.ReferenceKind {
	trimmed := strings.TrimSpace(raw)
	switch {
	case upiReferencePattern.MatchString(trimmed):
		return model.RefUPI
	case chequeNumberPattern.MatchString(trimmed):
		return model.RefCheque
	case utrReferencePattern.MatchString(trimmed):
		return model.RefUTR
	default:
		return model.RefGeneric
	}
}
