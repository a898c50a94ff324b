// Package rowextract maps table lines to column cells (C6 Row Extractor)
// and merges continuation lines into their parent transaction row (C7
// Multi-Line Stitcher).
package rowextract

import (
	"strings"

	"github.com/ledgerscan/statement-engine/internal/catalog"
	"github.com/ledgerscan/statement-engine/internal/model"
)

// ExtractRows maps each line of a classified region to an ExtractedRow,
// concatenating in X order the fragments that fall in each column.
func ExtractRows(region model.TableRegion) []model.ExtractedRow {
	rows := make([]model.ExtractedRow, 0, len(region.DataLines))
	for _, line := range region.DataLines {
		rows = append(rows, extractRow(line, region.ColumnBoundaries))
	}
	return rows
}

func extractRow(line model.Line, boundaries []model.ColumnBoundary) model.ExtractedRow {
	row := model.ExtractedRow{PageNumber: line.PageNumber, SourceLines: []model.Line{line}}
	cellText := make([]string, len(boundaries))

	for _, f := range line.Fragments {
		idx := columnFor(f, boundaries)
		if idx < 0 {
			continue
		}
		if cellText[idx] != "" {
			cellText[idx] += " "
		}
		cellText[idx] += f.Text
	}

	for i, b := range boundaries {
		text := strings.TrimSpace(cellText[i])
		assignCell(&row, b.InferredType, text)
	}

	return row
}

func assignCell(row *model.ExtractedRow, t model.ColumnType, text string) {
	if text == "" {
		return
	}
	switch t {
	case model.ColDate, model.ColValueDate:
		row.RawDate = strPtr(text)
	case model.ColDescription:
		row.RawDescription = appendText(row.RawDescription, text)
	case model.ColDebit:
		row.RawDebit = strPtr(text)
	case model.ColCredit:
		row.RawCredit = strPtr(text)
	case model.ColBalance:
		row.RawBalance = strPtr(text)
	case model.ColReference:
		row.RawReference = strPtr(text)
	case model.ColAmount:
		// Merged columns are split per-row by DR/CR suffix or sign when the
		// engine builds the transaction (engine.parseAmountFields);
		// stash raw text in whichever of debit/credit is still empty so
		// downstream parsing can inspect it without losing the source.
		if row.RawDebit == nil {
			row.RawDebit = strPtr(text)
		} else {
			row.RawCredit = strPtr(text)
		}
	}
}

func appendText(existing *string, text string) *string {
	if existing == nil {
		return strPtr(text)
	}
	combined := *existing + " " + text
	return &combined
}

func strPtr(s string) *string { return &s }

func columnFor(f model.TextFragment, boundaries []model.ColumnBoundary) int {
	center := f.Box.CenterX()
	for i, b := range boundaries {
		if center >= b.X0 && center <= b.X1 {
			return i
		}
	}
	// fragment center fell in a gutter (shouldn't usually happen); assign
	// to the nearest boundary instead of dropping the text.
	best, bestDist := -1, 0.0
	for i, b := range boundaries {
		d := dist(center, b)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func dist(x float64, b model.ColumnBoundary) float64 {
	if x < b.X0 {
		return b.X0 - x
	}
	if x > b.X1 {
		return x - b.X1
	}
	return 0
}

// IsContinuation reports whether a raw row has no parseable date AND no
// parseable numeric amount AND has description text, evaluated before any
// value parsing happens (it only needs to know whether an amount-shaped
// token exists, not its value).
func IsContinuation(row model.ExtractedRow) bool {
	if row.RawDate != nil && catalog.MatchAnyDate(*row.RawDate) {
		return false
	}
	hasAmount := looksNumeric(row.RawDebit) || looksNumeric(row.RawCredit) || looksNumeric(row.RawBalance)
	if hasAmount {
		return false
	}
	return row.RawDescription != nil && strings.TrimSpace(*row.RawDescription) != ""
}

func looksNumeric(s *string) bool {
	if s == nil {
		return false
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return false
	}
	digits := 0
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits > 0
}

// StitchRows merges continuation rows into the preceding transaction row,
// bounded to 5 continuations per row. A row with a date but no amount is
// a standalone incomplete row, never a continuation, so it is passed
// through untouched.
func StitchRows(rows []model.ExtractedRow) []StitchedRow {
	const maxContinuations = 5

	var out []StitchedRow
	for _, row := range rows {
		if IsContinuation(row) && len(out) > 0 {
			last := &out[len(out)-1]
			if last.ContinuationCount < maxContinuations {
				merged := strings.TrimSpace(*row.RawDescription)
				if last.Row.RawDescription == nil {
					last.Row.RawDescription = &merged
				} else {
					combined := strings.TrimSpace(*last.Row.RawDescription) + " " + merged
					last.Row.RawDescription = &combined
				}
				last.IsStitched = true
				last.ContinuationCount++
				last.OriginalLines = append(last.OriginalLines, row.SourceLines...)
				continue
			}
		}
		out = append(out, StitchedRow{Row: row, OriginalLines: append([]model.Line{}, row.SourceLines...)})
	}
	return out
}

// StitchedRow carries a (possibly merged) ExtractedRow plus the audit
// trail of source lines that fed it.
type StitchedRow struct {
	Row               model.ExtractedRow
	IsStitched        bool
	ContinuationCount int
	OriginalLines     []model.Line
}
