// Package classify assigns each detected column boundary a semantic role
// (C4 Column Classifier): date, description, debit, credit, balance,
// reference, or unknown.
package classify

import (
	"sort"
	"strings"
	"unicode"

	"github.com/ledgerscan/statement-engine/internal/catalog"
	"github.com/ledgerscan/statement-engine/internal/model"
)

// defaultOverlapThreshold controls how much of a fragment must sit inside a
// column for the fragment to count as that column's cell (center-inside,
// or ≥ half-width overlap).
const defaultOverlapThreshold = 0.5

// ClassifyColumns annotates each boundary's InferredType/Confidence and
// returns the boundaries in the same left-to-right order. The half-width
// test always uses defaultOverlapThreshold; Config.ColumnOverlapThreshold
// is not consulted here.
func ClassifyColumns(region model.TableRegion, boundaries []model.ColumnBoundary) []model.ColumnBoundary {
	if len(boundaries) == 0 {
		return boundaries
	}

	cells := make([][]string, len(boundaries))
	for _, line := range region.DataLines {
		for _, f := range line.Fragments {
			idx := columnFor(f, boundaries)
			if idx < 0 {
				continue
			}
			cells[idx] = append(cells[idx], strings.TrimSpace(f.Text))
		}
	}

	out := make([]model.ColumnBoundary, len(boundaries))
	copy(out, boundaries)

	scores := make([]columnScore, len(boundaries))
	for i, cellText := range cells {
		scores[i] = scoreColumn(cellText)
	}

	// Rule 1: header-keyword match, highest precedence.
	headerAssigned := make([]bool, len(boundaries))
	for i, cellText := range cells {
		if len(cellText) == 0 {
			continue
		}
		if t, ok := catalog.LookupHeader(cellText[0]); ok {
			out[i].InferredType = t
			out[i].Confidence = 0.95
			headerAssigned[i] = true
			continue
		}
		if catalog.DebitSynonyms.MatchString(cellText[0]) {
			out[i].InferredType = model.ColDebit
			out[i].Confidence = 0.95
			headerAssigned[i] = true
		} else if catalog.CreditSynonyms.MatchString(cellText[0]) {
			out[i].InferredType = model.ColCredit
			out[i].Confidence = 0.95
			headerAssigned[i] = true
		}
	}

	// Rule 2: date columns by content score.
	for i := range out {
		if headerAssigned[i] {
			continue
		}
		if scores[i].dateScore > 0.5 {
			out[i].InferredType = model.ColDate
			out[i].Confidence = scores[i].dateScore
			headerAssigned[i] = true
		}
	}

	// Rule 3: numeric columns rank rightmost->balance, next->credit,
	// next->debit. Text alignment within a column is not checked.
	assignNumericByRank(out, scores, headerAssigned, region)

	// Rule 4: widest remaining text column is description.
	assignWidestTextColumn(out, scores, headerAssigned)

	// Rule 5: short mixed-alphanumeric -> reference.
	for i := range out {
		if headerAssigned[i] {
			continue
		}
		if isShortMixedAlphanumeric(cells[i]) {
			out[i].InferredType = model.ColReference
			out[i].Confidence = 0.4
			headerAssigned[i] = true
		}
	}

	// Rule 6: fallback unknown.
	for i := range out {
		if !headerAssigned[i] {
			out[i].InferredType = model.ColUnknown
			if out[i].Confidence == 0 {
				out[i].Confidence = 0.1
			}
		}
	}

	detectMergedAmountColumns(out, cells)
	guaranteeMandatoryColumns(out, scores)

	sort.Slice(out, func(i, j int) bool { return out[i].X0 < out[j].X0 })
	return out
}

type columnScore struct {
	dateScore    float64
	numericScore float64
	textScore    float64
	avgWidth     float64
}

func scoreColumn(cells []string) columnScore {
	if len(cells) == 0 {
		return columnScore{}
	}
	var dateHits, numericHits, textHits int
	var widthSum float64
	for _, c := range cells {
		if c == "" {
			continue
		}
		widthSum += float64(len(c))
		if catalog.MatchAnyDate(c) {
			dateHits++
		}
		if isMostlyNumeric(c) {
			numericHits++
		} else if len(c) >= 4 {
			textHits++
		}
	}
	n := float64(len(cells))
	return columnScore{
		dateScore:    float64(dateHits) / n,
		numericScore: float64(numericHits) / n,
		textScore:    float64(textHits) / n,
		avgWidth:     widthSum / n,
	}
}

// isMostlyNumeric strips sign/currency/suffix noise and checks that at
// least half the remaining characters are digits and at least one digit
// is present.
func isMostlyNumeric(s string) bool {
	stripped := stripNumericNoise(s)
	if stripped == "" {
		return false
	}
	digits := 0
	for _, r := range stripped {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits > 0 && float64(digits)/float64(len([]rune(stripped))) >= 0.5
}

func stripNumericNoise(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r), r == '.', r == ',':
			b.WriteRune(r)
		case r == '-', r == '+', r == '(', r == ')':
			// sign/parens, dropped from the digit-ratio test but not an error
		}
	}
	return b.String()
}

func columnFor(f model.TextFragment, boundaries []model.ColumnBoundary) int {
	center := f.Box.CenterX()
	for i, b := range boundaries {
		if center >= b.X0 && center <= b.X1 {
			return i
		}
		overlapLeft := max(f.Box.Left(), b.X0)
		overlapRight := min(f.Box.Right(), b.X1)
		if overlapRight > overlapLeft {
			overlap := overlapRight - overlapLeft
			if f.Box.Width > 0 && overlap/f.Box.Width >= defaultOverlapThreshold {
				return i
			}
		}
	}
	return -1
}

func assignNumericByRank(out []model.ColumnBoundary, scores []columnScore, assigned []bool, region model.TableRegion) {
	var candidates []int
	for i := range out {
		if assigned[i] {
			continue
		}
		if scores[i].numericScore > 0.3 {
			candidates = append(candidates, i)
		}
	}
	// Candidates are already left-to-right by construction; rank by X
	// ascending-from-right means iterate from the rightmost candidate.
	sort.Slice(candidates, func(a, b int) bool { return out[candidates[a]].X0 > out[candidates[b]].X0 })

	roles := []model.ColumnType{model.ColBalance, model.ColCredit, model.ColDebit}
	for rank, idx := range candidates {
		if rank >= len(roles) {
			break
		}
		out[idx].InferredType = roles[rank]
		out[idx].Confidence = 0.7
		assigned[idx] = true
	}
}

func assignWidestTextColumn(out []model.ColumnBoundary, scores []columnScore, assigned []bool) {
	maxWidth := 0.0
	for i := range out {
		if scores[i].avgWidth > maxWidth {
			maxWidth = scores[i].avgWidth
		}
	}
	if maxWidth == 0 {
		return
	}
	best := -1
	for i := range out {
		if assigned[i] {
			continue
		}
		if scores[i].textScore <= 0.3 {
			continue
		}
		if scores[i].avgWidth < 0.7*maxWidth {
			continue
		}
		if best == -1 || scores[i].avgWidth > scores[best].avgWidth {
			best = i
		}
	}
	if best >= 0 {
		out[best].InferredType = model.ColDescription
		out[best].Confidence = scores[best].textScore
		assigned[best] = true
	}
}

func isShortMixedAlphanumeric(cells []string) bool {
	hits := 0
	total := 0
	for _, c := range cells {
		if c == "" {
			continue
		}
		total++
		if len(c) <= 14 && hasDigit(c) && hasLetter(c) {
			hits++
		}
	}
	return total > 0 && float64(hits)/float64(total) > 0.5
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// detectMergedAmountColumns recognizes a single numeric column whose cells
// carry both DR and CR suffixes; it is flagged Merged so the row
// extractor/value parser split it per row instead of treating it as a
// single fixed role. A balance-ranked column is considered only when no
// debit, credit or amount column sits to its left.
func detectMergedAmountColumns(out []model.ColumnBoundary, cells [][]string) {
	amountSeen := false
	for i, col := range out {
		isAmountRole := col.InferredType == model.ColDebit || col.InferredType == model.ColCredit
		if !isAmountRole && (col.InferredType != model.ColBalance || amountSeen) {
			continue
		}
		amountSeen = amountSeen || isAmountRole
		hasDR, hasCR := false, false
		for _, c := range cells[i] {
			upper := strings.ToUpper(c)
			if strings.HasSuffix(upper, "DR") {
				hasDR = true
			}
			if strings.HasSuffix(upper, "CR") {
				hasCR = true
			}
		}
		if hasDR && hasCR {
			out[i].InferredType = model.ColAmount
			out[i].Merged = true
		}
	}
}

// guaranteeMandatoryColumns implements the post-processing guarantee that
// at least one date, one balance, and one description column exist,
// promoting unknown columns sandwiched between date and balance to
// debit/credit when those roles are missing.
func guaranteeMandatoryColumns(out []model.ColumnBoundary, scores []columnScore) {
	hasRole := func(t model.ColumnType) bool {
		for _, c := range out {
			if c.InferredType == t {
				return true
			}
		}
		return false
	}

	if !hasRole(model.ColDate) {
		promoteBestUnknown(out, scores, model.ColDate, func(s columnScore) float64 { return s.dateScore })
	}
	if !hasRole(model.ColBalance) {
		promoteBestUnknown(out, scores, model.ColBalance, func(s columnScore) float64 { return s.numericScore })
	}
	if !hasRole(model.ColDescription) {
		promoteBestUnknown(out, scores, model.ColDescription, func(s columnScore) float64 { return s.textScore })
	}

	if !hasRole(model.ColDebit) || !hasRole(model.ColCredit) {
		dateIdx, balIdx := -1, -1
		for i, c := range out {
			if c.InferredType == model.ColDate {
				dateIdx = i
			}
			if c.InferredType == model.ColBalance {
				balIdx = i
			}
		}
		if dateIdx >= 0 && balIdx > dateIdx {
			for i := dateIdx + 1; i < balIdx; i++ {
				if out[i].InferredType != model.ColUnknown {
					continue
				}
				if !hasRole(model.ColDebit) {
					out[i].InferredType = model.ColDebit
					out[i].Confidence = 0.3
				} else if !hasRole(model.ColCredit) {
					out[i].InferredType = model.ColCredit
					out[i].Confidence = 0.3
				}
			}
		}
	}
}

func promoteBestUnknown(out []model.ColumnBoundary, scores []columnScore, role model.ColumnType, score func(columnScore) float64) {
	best := -1
	for i := range out {
		if out[i].InferredType != model.ColUnknown {
			continue
		}
		if best == -1 || score(scores[i]) > score(scores[best]) {
			best = i
		}
	}
	if best >= 0 {
		out[best].InferredType = role
		out[best].Confidence = max(score(scores[best]), 0.2)
	}
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
