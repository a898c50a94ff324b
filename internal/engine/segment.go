package engine

import (
	"regexp"

	"github.com/ledgerscan/statement-engine/internal/locale"
	"github.com/ledgerscan/statement-engine/internal/model"
	"github.com/ledgerscan/statement-engine/internal/rowextract"
	"github.com/ledgerscan/statement-engine/internal/valueparse"
)

var openingBalancePattern = regexp.MustCompile(`(?i)opening\s*balance`)

// rowGroup is one segment's worth of stitched rows plus the opening
// balance recovered from its marker row (or inferred when absent).
type rowGroup struct {
	rows           []rowextract.StitchedRow
	openingBalance float64
	openingKnown   bool
}

// splitSegments detects "Opening Balance" marker rows and splits the
// stitched row stream at each one: a segment boundary is recognized
// whenever an opening-balance marker row reappears mid-document. When
// detectMerged is false, the whole stream is treated as one segment.
func splitSegments(rows []rowextract.StitchedRow, detectMerged bool, loc locale.Info) []rowGroup {
	if !detectMerged {
		return []rowGroup{{rows: rows}}
	}

	var groups []rowGroup
	var current []rowextract.StitchedRow
	pendingOpening := 0.0
	pendingKnown := false

	flush := func() {
		if len(current) == 0 && !pendingKnown {
			return
		}
		groups = append(groups, rowGroup{rows: current, openingBalance: pendingOpening, openingKnown: pendingKnown})
		current = nil
	}

	for _, r := range rows {
		desc := ""
		if r.Row.RawDescription != nil {
			desc = *r.Row.RawDescription
		}
		if openingBalancePattern.MatchString(desc) {
			flush()
			pendingKnown = false
			pendingOpening = 0
			if r.Row.RawBalance != nil {
				if amt, ok := valueparse.ParseNumber(*r.Row.RawBalance, loc.NumberFormat); ok {
					pendingOpening = signedValue(amt)
					pendingKnown = true
				}
			}
			continue
		}
		current = append(current, r)
	}
	flush()

	if len(groups) == 0 {
		groups = append(groups, rowGroup{rows: rows})
	}
	return groups
}

func signedValue(a valueparse.ParsedAmount) float64 {
	if a.Negative {
		return -a.Value
	}
	return a.Value
}

// inferOpeningBalance backfills an opening balance when no explicit
// marker was found, by working backwards from the first transaction's
// extracted balance and its own credit/debit delta. This never rewrites
// a Transaction.Balance field (which stays extracted-only); it only seeds
// DocumentSegment.OpeningBalance metadata.
func inferOpeningBalance(transactions []model.Transaction) float64 {
	if len(transactions) == 0 {
		return 0
	}
	first := transactions[0]
	d, c := 0.0, 0.0
	if first.Debit != nil {
		d = *first.Debit
	}
	if first.Credit != nil {
		c = *first.Credit
	}
	return first.Balance - c + d
}

func firstPageOf(rows []rowextract.StitchedRow) int {
	for _, r := range rows {
		if r.Row.PageNumber > 0 {
			return r.Row.PageNumber
		}
	}
	return 1
}

func lastPageOf(rows []rowextract.StitchedRow) int {
	page := 1
	for _, r := range rows {
		if r.Row.PageNumber > page {
			page = r.Row.PageNumber
		}
	}
	return page
}
