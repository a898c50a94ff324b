// Package header extracts account/period metadata from the first lines of
// a statement, before table detection runs (Statement Header Extractor).
package header

import (
	"regexp"
	"strings"

	"github.com/ledgerscan/statement-engine/internal/catalog"
	"github.com/ledgerscan/statement-engine/internal/model"
)

// maxHeaderLines is how far into page 1 the extractor looks.
const maxHeaderLines = 30

var (
	accountHolderPattern = regexp.MustCompile(`(?i)(?:account\s*holder|name)\s*[:\-]\s*([A-Za-z][A-Za-z .'-]{2,60})`)
	accountNumberPattern = regexp.MustCompile(`(?i)(?:a/?c\.?\s*no\.?|account\s*(?:number|no)\.?)\s*[:\-]?\s*(\d{6,18})`)
	sortCodePattern      = regexp.MustCompile(`\b(\d{2}-\d{2}-\d{2})\b`)
	ifscPattern          = regexp.MustCompile(`\bIFSC\s*[:\-]?\s*([A-Z]{4}0[A-Z0-9]{6})\b`)
	branchPattern        = regexp.MustCompile(`(?i)branch\s*[:\-]\s*([A-Za-z0-9 .,'-]{2,40})`)
	customerIDPattern    = regexp.MustCompile(`(?i)customer\s*(?:id|no\.?)\s*[:\-]?\s*([A-Za-z0-9]{4,20})`)
	currencyPattern      = regexp.MustCompile(`\b(USD|GBP|EUR|JPY|INR|AUD|CAD|CHF|SGD|AED)\b`)
	bsbPattern           = regexp.MustCompile(`(?i)BSB\s*[:\-]?\s*(\d{3}-?\d{3})`)
	routingPattern       = regexp.MustCompile(`(?i)routing\s*(?:number|no\.?)\s*[:\-]?\s*(\d{9})`)
	periodPattern        = regexp.MustCompile(`(?i)(?:statement\s*period|period)\s*[:\-]?\s*(.+?)\s*(?:to|-|–)\s*(.+)`)
)

// Extract scans the first page's lines for statement metadata. It never
// emits a full account number: AccountNumberMasked is derived by masking
// immediately after the match, and the unmasked capture never escapes
// this function.
func Extract(firstPageLines []model.Line) model.ExtractedStatementHeader {
	var out model.ExtractedStatementHeader

	limit := firstPageLines
	if len(limit) > maxHeaderLines {
		limit = limit[:maxHeaderLines]
	}

	joined := make([]string, 0, len(limit))
	for _, l := range limit {
		joined = append(joined, l.Text())
	}
	text := strings.Join(joined, "\n")

	if m := accountHolderPattern.FindStringSubmatch(text); m != nil {
		v := strings.TrimSpace(m[1])
		out.AccountHolder = &v
	}
	if m := accountNumberPattern.FindStringSubmatch(text); m != nil {
		masked := maskAccountNumber(m[1])
		out.AccountNumberMasked = &masked
	}
	if m := sortCodePattern.FindStringSubmatch(text); m != nil {
		out.SortCode = &m[1]
	}
	if m := ifscPattern.FindStringSubmatch(text); m != nil {
		out.IFSCCode = &m[1]
	}
	if m := branchPattern.FindStringSubmatch(text); m != nil {
		v := strings.TrimSpace(m[1])
		out.BranchName = &v
	}
	if m := customerIDPattern.FindStringSubmatch(text); m != nil {
		out.CustomerID = &m[1]
	}
	if m := currencyPattern.FindStringSubmatch(text); m != nil {
		out.Currency = &m[1]
	}
	if m := bsbPattern.FindStringSubmatch(text); m != nil {
		out.BSBNumber = &m[1]
	}
	if m := routingPattern.FindStringSubmatch(text); m != nil {
		out.RoutingNumber = &m[1]
	}
	if m := periodPattern.FindStringSubmatch(text); m != nil {
		from := strings.TrimSpace(m[1])
		to := strings.TrimSpace(m[2])
		out.StatementPeriodFrom = &from
		out.StatementPeriodTo = &to
	}

	for _, bank := range catalog.BankNames {
		if strings.Contains(strings.ToLower(text), strings.ToLower(bank)) {
			b := bank
			out.BankName = &b
			break
		}
	}

	return out
}

// maskAccountNumber returns "****dddd" for the last 4 digits of number;
// the full account number is never retained in extracted output.
func maskAccountNumber(number string) string {
	digits := number
	if len(digits) <= 4 {
		return "****" + digits
	}
	return "****" + digits[len(digits)-4:]
}
