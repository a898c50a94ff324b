package engine

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerscan/statement-engine/internal/catalog"
	"github.com/ledgerscan/statement-engine/internal/locale"
	"github.com/ledgerscan/statement-engine/internal/model"
	"github.com/ledgerscan/statement-engine/internal/provenance"
	"github.com/ledgerscan/statement-engine/internal/rowextract"
	"github.com/ledgerscan/statement-engine/internal/valueparse"
)

// buildParams bundles the per-document context buildTransaction needs so
// its own signature stays readable.
type buildParams struct {
	loc        locale.Info
	cfg        model.Config
	recorder   *provenance.Recorder
	contextYear int
}

// Field names under which buildTransaction records per-cell provenance;
// these match the Transaction fields they back, not the raw column
// labels, since a debit/credit value can cross columns on a DR/CR flip.
const (
	fieldDate        = "date"
	fieldDebit       = "debit"
	fieldCredit      = "credit"
	fieldBalance     = "balance"
	fieldDescription = "description"
	fieldReference   = "reference"
)

// buildTransaction value-parses one stitched row into a Transaction. It
// never invents a value: every field that fails to parse is left empty
// and recorded as parse_failed provenance, per the forbidden-operations
// design note.
func buildTransaction(row rowextract.StitchedRow, rowIndex int, p buildParams) model.Transaction {
	tx := model.Transaction{
		ID:                uuid.NewString(),
		RowIndex:          rowIndex,
		LocalCurrency:     p.cfg.LocalCurrency,
		ValidationStatus:  model.StatusUnchecked,
		IsStitched:        row.IsStitched,
		SourcePageNumbers: pageNumbersOf(row),
	}

	if row.IsStitched {
		for _, l := range row.OriginalLines {
			tx.OriginalLines = append(tx.OriginalLines, l.Text())
		}
	}

	dateFactor := parseDateField(&tx, row, p)
	amountFactor := parseAmountFields(&tx, row, p)
	balanceFactor := parseBalanceField(&tx, row, p)
	descFactor := parseDescriptionField(&tx, row, p)
	parseReferenceField(&tx, row, p)

	if p.cfg.EnableCategorization && tx.Description != "" {
		if match, ok := valueparse.Categorize(tx.Description); ok {
			cat := match.Category
			conf := match.Confidence
			tx.Category = &cat
			tx.CategoryConfidence = &conf
		}
	}

	if p.cfg.EnableCurrencyDetection && tx.Description != "" {
		applyCurrencyConversion(&tx, p)
	}

	tx.Confidence = computeConfidence(dateFactor, amountFactor, balanceFactor, descFactor, row)

	return tx
}

// fragmentFor locates the TextFragment whose trimmed text matches raw
// exactly among a row's source lines, so provenance can point at a real
// source fragment rather than just a page number. Multi-fragment cells
// (e.g. a description built from several text runs) never match a single
// fragment exactly; the fallback synthesizes a fragment spanning the
// first line whose concatenated text contains raw.
func fragmentFor(raw string, lines []model.Line) (model.TextFragment, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.TextFragment{}, false
	}
	for _, l := range lines {
		for _, f := range l.Fragments {
			if strings.TrimSpace(f.Text) == raw {
				return f, true
			}
		}
	}
	for _, l := range lines {
		if len(l.Fragments) == 0 || !strings.Contains(l.Text(), raw) {
			continue
		}
		return model.TextFragment{
			Text:       raw,
			Box:        model.BoundingBox{X: l.Left, Y: l.Top, Width: l.Right - l.Left, Height: l.Bottom - l.Top},
			PageNumber: l.PageNumber,
			Confidence: l.Fragments[0].Confidence,
			Source:     l.Fragments[0].Source,
		}, true
	}
	return model.TextFragment{}, false
}

// recordFieldValue records a field's provenance from the fragment that
// produced rawText when one can be located, or a page-only provenance
// entry (lower confidence, since it cannot be tied to a bounding box)
// when the cell text was reshaped enough by stitching or concatenation
// that no single source fragment matches it exactly.
func recordFieldValue(p buildParams, tx *model.Transaction, field, rawText, emittedValue string, lines []model.Line, page int, transformations ...string) {
	if frag, ok := fragmentFor(rawText, lines); ok {
		p.recorder.Record(tx.ID, field, provenance.FromFragment(emittedValue, frag, transformations...))
		return
	}
	p.recorder.Record(tx.ID, field, model.Provenance{
		Value:            emittedValue,
		SourceText:       rawText,
		SourcePageNumber: page,
		Transformations:  append([]string{}, transformations...),
		Confidence:       0.5,
	})
}

func pageNumbersOf(row rowextract.StitchedRow) []int {
	seen := map[int]bool{}
	var pages []int
	for _, l := range row.OriginalLines {
		if !seen[l.PageNumber] {
			seen[l.PageNumber] = true
			pages = append(pages, l.PageNumber)
		}
	}
	if len(pages) == 0 {
		pages = []int{row.Row.PageNumber}
	}
	return pages
}

func parseDateField(tx *model.Transaction, row rowextract.StitchedRow, p buildParams) float64 {
	if row.Row.RawDate == nil || strings.TrimSpace(*row.Row.RawDate) == "" {
		msg := "missing date"
		tx.ValidationMessage = &msg
		p.recorder.Record(tx.ID, fieldDate, provenance.Empty(model.ReasonAbsent, row.Row.PageNumber))
		return 0
	}
	iso, ok := valueparse.ParseDate(*row.Row.RawDate, p.loc.DateFormats, p.contextYear)
	if !ok {
		msg := "unparseable date"
		tx.ValidationMessage = &msg
		tx.ValidationStatus = model.StatusError
		p.recorder.Record(tx.ID, fieldDate, provenance.Empty(model.ReasonParseFailed, row.Row.PageNumber))
		return 0
	}
	tx.Date = iso
	recordFieldValue(p, tx, fieldDate, *row.Row.RawDate, iso, row.OriginalLines, row.Row.PageNumber, "date-normalized")
	return 1
}

func parseAmountFields(tx *model.Transaction, row rowextract.StitchedRow, p buildParams) float64 {
	factor := 0.0
	count := 0

	var debitRaw, creditRaw string
	debitFound, creditFound := false, false

	resolve := func(raw *string, isDebitColumn bool) {
		if raw == nil || strings.TrimSpace(*raw) == "" {
			return
		}
		count++
		trimmed := strings.TrimSpace(*raw)
		amt, ok := valueparse.ParseNumber(*raw, p.loc.NumberFormat)
		if !ok {
			return
		}
		factor += 1

		value := amt.Value
		toDebit := isDebitColumn
		switch suffix := strings.ToUpper(trimmed); {
		case strings.HasSuffix(suffix, "DR"):
			// An explicit DR/CR suffix (the common shape for a merged
			// amount column) names its own direction outright and is never
			// subject to the bare-negative flip below.
			toDebit = true
		case strings.HasSuffix(suffix, "CR"):
			toDebit = false
		case amt.Negative:
			// A bare negative in either column is normalized into the
			// opposite column instead of being fabricated or dropped.
			toDebit = !isDebitColumn
		}
		if toDebit {
			tx.Debit = &value
			debitRaw, debitFound = trimmed, true
		} else {
			tx.Credit = &value
			creditRaw, creditFound = trimmed, true
		}
	}

	resolve(row.Row.RawDebit, true)
	resolve(row.Row.RawCredit, false)

	if debitFound {
		recordFieldValue(p, tx, fieldDebit, debitRaw, strconv.FormatFloat(*tx.Debit, 'f', -1, 64), row.OriginalLines, row.Row.PageNumber)
	} else {
		p.recorder.Record(tx.ID, fieldDebit, provenance.Empty(emptyAmountReason(row.Row.RawDebit), row.Row.PageNumber))
	}
	if creditFound {
		recordFieldValue(p, tx, fieldCredit, creditRaw, strconv.FormatFloat(*tx.Credit, 'f', -1, 64), row.OriginalLines, row.Row.PageNumber)
	} else {
		p.recorder.Record(tx.ID, fieldCredit, provenance.Empty(emptyAmountReason(row.Row.RawCredit), row.Row.PageNumber))
	}

	if count == 0 {
		return 0
	}
	return factor / float64(count)
}

// emptyAmountReason distinguishes a column that had no source text at all
// from one whose text failed to parse as a number.
func emptyAmountReason(raw *string) string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return model.ReasonAbsent
	}
	return model.ReasonParseFailed
}

func parseBalanceField(tx *model.Transaction, row rowextract.StitchedRow, p buildParams) float64 {
	if row.Row.RawBalance == nil || strings.TrimSpace(*row.Row.RawBalance) == "" {
		msg := "missing balance"
		tx.ValidationMessage = &msg
		tx.ValidationStatus = model.StatusError
		p.recorder.Record(tx.ID, fieldBalance, provenance.Empty(model.ReasonAbsent, row.Row.PageNumber))
		return 0
	}
	amt, ok := valueparse.ParseNumber(*row.Row.RawBalance, p.loc.NumberFormat)
	if !ok {
		msg := "unparseable balance"
		tx.ValidationMessage = &msg
		tx.ValidationStatus = model.StatusError
		p.recorder.Record(tx.ID, fieldBalance, provenance.Empty(model.ReasonParseFailed, row.Row.PageNumber))
		return 0
	}
	tx.Balance = signedValue(amt)
	recordFieldValue(p, tx, fieldBalance, *row.Row.RawBalance, strconv.FormatFloat(tx.Balance, 'f', -1, 64), row.OriginalLines, row.Row.PageNumber)
	return 1
}

func parseDescriptionField(tx *model.Transaction, row rowextract.StitchedRow, p buildParams) float64 {
	if row.Row.RawDescription == nil {
		p.recorder.Record(tx.ID, fieldDescription, provenance.Empty(model.ReasonAbsent, row.Row.PageNumber))
		return 0
	}
	tx.Description = collapseWhitespace(strings.TrimSpace(*row.Row.RawDescription))
	if tx.Description == "" {
		p.recorder.Record(tx.ID, fieldDescription, provenance.Empty(model.ReasonAbsent, row.Row.PageNumber))
		return 0
	}
	recordFieldValue(p, tx, fieldDescription, *row.Row.RawDescription, tx.Description, row.OriginalLines, row.Row.PageNumber, "whitespace-collapsed")
	return 1
}

// parseReferenceField reads the row's raw reference cell (populated by
// the row extractor's ColReference column assignment), trims it, and
// classifies it into a ReferenceKind. A blank or absent cell leaves both
// Transaction.Reference and ReferenceType nil and records why.
func parseReferenceField(tx *model.Transaction, row rowextract.StitchedRow, p buildParams) {
	if row.Row.RawReference == nil || strings.TrimSpace(*row.Row.RawReference) == "" {
		p.recorder.Record(tx.ID, fieldReference, provenance.Empty(model.ReasonAbsent, row.Row.PageNumber))
		return
	}
	raw := strings.TrimSpace(*row.Row.RawReference)
	tx.Reference = &raw
	kind := catalog.ClassifyReference(raw)
	tx.ReferenceType = &kind
	recordFieldValue(p, tx, fieldReference, raw, raw, row.OriginalLines, row.Row.PageNumber)
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func applyCurrencyConversion(tx *model.Transaction, p buildParams) {
	rates := p.cfg.ExchangeRates
	if rates == nil {
		rates = catalog.DefaultExchangeRatesToUSD
	}

	amount := 0.0
	isDebit := false
	switch {
	case tx.Debit != nil:
		amount = *tx.Debit
		isDebit = true
	case tx.Credit != nil:
		amount = *tx.Credit
	default:
		return
	}

	converted, ok := valueparse.DetectAndConvert(tx.Description, amount, p.cfg.LocalCurrency, rates)
	if !ok {
		return
	}

	origCurrency := converted.OriginalCurrency
	origValue := converted.OriginalValue
	rate := converted.ExchangeRate
	newValue := converted.ConvertedValue

	tx.OriginalCurrency = &origCurrency
	tx.ExchangeRate = &rate
	if isDebit {
		tx.OriginalDebit = &origValue
		tx.Debit = &newValue
	} else {
		tx.OriginalCredit = &origValue
		tx.Credit = &newValue
	}
}
