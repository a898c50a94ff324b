// Package engine orchestrates the full pipeline: Line Grouper, Statement
// Header Extractor, Table Region Detector, Locale & Format Detector,
// Column Boundary Detector, Column Classifier, Row Extractor, Multi-Line
// Stitcher, Value Parser, Chronology Normalizer, and Balance Validator &
// Safe Repair, in that order, exposing process_document,
// quick_validate, validate_export, and pre_export_check.
package engine

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerscan/statement-engine/internal/chronology"
	"github.com/ledgerscan/statement-engine/internal/classify"
	"github.com/ledgerscan/statement-engine/internal/header"
	"github.com/ledgerscan/statement-engine/internal/layout"
	"github.com/ledgerscan/statement-engine/internal/locale"
	"github.com/ledgerscan/statement-engine/internal/model"
	"github.com/ledgerscan/statement-engine/internal/provenance"
	"github.com/ledgerscan/statement-engine/internal/rowextract"
	"github.com/ledgerscan/statement-engine/internal/validate"
)

// ProcessDocument runs the full pipeline over fragments and returns a
// ProcessingResult. It never panics: a Config validation failure or an
// empty-input shape problem become `success=true` degraded output,
// except for genuine structural errors, which set success=false.
func ProcessDocument(ctx context.Context, fileName string, fragments []model.TextFragment, cfg model.Config, obs Observer) model.ProcessingResult {
	if obs == nil {
		obs = NopObserver{}
	}
	start := time.Now()

	if _, err := NewConfig(cfg); err != nil {
		return model.ProcessingResult{
			Success:  true,
			Warnings: []string{"invalid configuration, no document produced: " + err.Error()},
			Stages:   []model.StageReport{{Name: "config", Status: model.StageError_}},
		}
	}

	var stages []model.StageReport
	var warnings []string
	recorder := provenance.NewRecorder()

	runStage := func(name string, fn func() []string) {
		obs.StageStarted(name)
		t0 := time.Now()
		stageWarnings := fn()
		warnings = append(warnings, stageWarnings...)
		stages = append(stages, model.StageReport{
			Name:       name,
			Status:     model.StageComplete,
			DurationMs: time.Since(t0).Milliseconds(),
			Warnings:   len(stageWarnings),
		})
		obs.StageCompleted(name, time.Since(t0), len(stageWarnings))
	}

	if len(fragments) == 0 {
		return model.ProcessingResult{
			Success: true,
			Document: &model.ParsedDocument{
				DocumentID: uuid.NewString(),
				FileName:   fileName,
			},
			Warnings:        []string{"no text fragments supplied; emitting empty document"},
			Stages:          []model.StageReport{{Name: "line_grouping", Status: model.StageComplete}},
			TotalDurationMs: time.Since(start).Milliseconds(),
			Provenance:      recorder,
		}
	}

	var lines []model.Line
	runStage("line_grouping", func() []string {
		lines = layout.GroupLines(fragments, layout.DefaultLineTolerance)
		if len(lines) == 0 {
			return []string{"no lines could be grouped from the supplied fragments"}
		}
		return nil
	})

	var extractedHeader model.ExtractedStatementHeader
	runStage("header_extraction", func() []string {
		extractedHeader = header.Extract(firstPageLines(lines))
		return nil
	})

	var regions []model.TableRegion
	runStage("table_region_detection", func() []string {
		regions = layout.DetectRegions(lines)
		if len(regions) == 0 {
			return []string{"no table regions detected"}
		}
		var w []string
		for _, r := range regions {
			if r.Degraded {
				w = append(w, "table region detection degraded to whole-document fallback")
			}
		}
		return w
	})

	if len(regions) == 0 {
		doc := &model.ParsedDocument{
			DocumentID:      uuid.NewString(),
			FileName:        fileName,
			ExtractedHeader: extractedHeader,
		}
		return model.ProcessingResult{
			Success:         true,
			Document:        doc,
			Warnings:        append(warnings, "header-only or tableless document; zero transactions"),
			Stages:          stages,
			TotalDurationMs: time.Since(start).Milliseconds(),
			Provenance:      recorder,
		}
	}

	headerSamples, numberSamples := sampleText(lines)
	loc := locale.Detect(cfg.LocaleDetection, headerSamples, numberSamples)

	var allStitched []rowextract.StitchedRow
	var allBoundaries []model.ColumnBoundary

	for i := range regions {
		region := regions[i]
		region.ColumnBoundaries = layout.DetectColumnBoundaries(region)
		region.ColumnBoundaries = classify.ClassifyColumns(region, region.ColumnBoundaries)
		allBoundaries = append(allBoundaries, region.ColumnBoundaries...)

		extracted := rowextract.ExtractRows(region)
		var stitched []rowextract.StitchedRow
		if cfg.AutoStitchMultiLine {
			stitched = rowextract.StitchRows(extracted)
		} else {
			for _, r := range extracted {
				stitched = append(stitched, rowextract.StitchedRow{Row: r, OriginalLines: r.SourceLines})
			}
		}
		allStitched = append(allStitched, stitched...)
	}

	contextYear := currentYearHint(headerSamples, extractedHeader)

	var segments []model.DocumentSegment
	var rawTransactions []model.Transaction
	var segmentOrders []model.DateOrder
	wasReversed := false

	runStage("value_parsing_and_segmentation", func() []string {
		groups := splitSegments(allStitched, cfg.DetectMergedPDFs, loc)
		var w []string
		for idx, g := range groups {
			params := buildParams{loc: loc, cfg: cfg, recorder: recorder, contextYear: contextYear}
			var transactions []model.Transaction
			for rowIdx, row := range g.rows {
				tx := buildTransaction(row, rowIdx, params)
				transactions = append(transactions, tx)
				if tx.ValidationStatus == model.StatusError {
					w = append(w, "row "+strconv.Itoa(rowIdx)+" in segment "+strconv.Itoa(idx)+" failed to parse: "+safeMsg(tx.ValidationMessage))
				}
			}

			opening := g.openingBalance
			if !g.openingKnown {
				opening = inferOpeningBalance(transactions)
			}

			result := chronology.Normalize(transactions, opening)
			segmentOrders = append(segmentOrders, result.Order)
			if cfg.AutoReverseChronological && result.WasReversed {
				w = append(w, "segment "+strconv.Itoa(idx)+" was descending; reversed to ascending order and balances recomputed from opening balance")
				wasReversed = true
				transactions = result.Transactions
			}

			seg := model.DocumentSegment{
				ID:             uuid.NewString(),
				SegmentIndex:   idx,
				StartPage:      firstPageOf(g.rows),
				EndPage:        lastPageOf(g.rows),
				OpeningBalance: opening,
				Transactions:   transactions,
			}

			tolerances := validate.DefaultTolerances
			validated, repairWarnings := validate.ValidateSegment(seg, tolerances)
			w = append(w, repairWarnings...)

			segments = append(segments, validated)
			rawTransactions = append(rawTransactions, validated.Transactions...)
		}
		return w
	})

	doc := &model.ParsedDocument{
		DocumentID:      uuid.NewString(),
		FileName:        fileName,
		TotalPages:      lastPage(lines),
		DetectedLocale:  loc.Locale,
		Segments:        segments,
		ExtractedHeader: extractedHeader,
		RawTransactions: rawTransactions,
		DateOrder:       overallDateOrder(segmentOrders),
		WasReversed:     wasReversed,
	}
	doc.Totals = computeTotals(rawTransactions)
	doc.OverallValidation = worstStatus(rawTransactions)
	violations := schemaViolations(rawTransactions)

	if cfg.StrictValidation && doc.OverallValidation == model.StatusError {
		// Strict mode still returns the partial document (the caller needs
		// to see what failed) but flags success=false, since any
		// error-status row fails the validation gate.
		return model.ProcessingResult{
			Success:          false,
			Document:         doc,
			Errors:           violations,
			Warnings:         append(warnings, "strict validation: document has error-status rows"),
			Stages:           stages,
			TotalDurationMs:  time.Since(start).Milliseconds(),
			ColumnBoundaries: allBoundaries,
			Provenance:       recorder,
		}
	}

	avgConfidence := averageConfidence(rawTransactions)

	return model.ProcessingResult{
		Success:          true,
		Document:         doc,
		Errors:           violations,
		Warnings:         warnings,
		Stages:           stages,
		TotalDurationMs:  time.Since(start).Milliseconds(),
		ColumnBoundaries: allBoundaries,
		Confidence:       &avgConfidence,
		Provenance:       recorder,
	}
}

// schemaViolations scans emitted transactions for the hard output-schema
// invariants: both debit and credit set, a negative amount, or a missing
// mandatory date. These are reported, never silently corrected — safe
// repair already ran upstream in validate.
func schemaViolations(transactions []model.Transaction) []model.SchemaViolation {
	var out []model.SchemaViolation
	for _, tx := range transactions {
		if tx.Debit != nil && tx.Credit != nil {
			out = append(out, model.SchemaViolation{TransactionID: tx.ID, RowIndex: tx.RowIndex, Rule: "debit_credit_exclusivity", Detail: "both debit and credit are set"})
		}
		if tx.Debit != nil && *tx.Debit < 0 {
			out = append(out, model.SchemaViolation{TransactionID: tx.ID, RowIndex: tx.RowIndex, Rule: "negative_amount", Detail: "debit is negative"})
		}
		if tx.Credit != nil && *tx.Credit < 0 {
			out = append(out, model.SchemaViolation{TransactionID: tx.ID, RowIndex: tx.RowIndex, Rule: "negative_amount", Detail: "credit is negative"})
		}
		if tx.Date == "" {
			out = append(out, model.SchemaViolation{TransactionID: tx.ID, RowIndex: tx.RowIndex, Rule: "missing_date", Detail: "date could not be extracted"})
		}
	}
	return out
}

func firstPageLines(lines []model.Line) []model.Line {
	if len(lines) == 0 {
		return nil
	}
	minPage := lines[0].PageNumber
	for _, l := range lines {
		if l.PageNumber < minPage {
			minPage = l.PageNumber
		}
	}
	var out []model.Line
	for _, l := range lines {
		if l.PageNumber == minPage {
			out = append(out, l)
		}
	}
	return out
}

func lastPage(lines []model.Line) int {
	page := 1
	for _, l := range lines {
		if l.PageNumber > page {
			page = l.PageNumber
		}
	}
	return page
}

var numericSamplePattern = regexp.MustCompile(`\d[\d.,]*\d|\d`)

func sampleText(lines []model.Line) (headers []string, numbers []string) {
	limit := lines
	if len(limit) > 5 {
		limit = limit[:5]
	}
	for _, l := range limit {
		headers = append(headers, l.Text())
	}
	for _, l := range lines {
		for _, f := range l.Fragments {
			if numericSamplePattern.MatchString(f.Text) && len(numbers) < 50 {
				numbers = append(numbers, f.Text)
			}
		}
	}
	return headers, numbers
}

// currentYearHint extracts a 4-digit year from the header text (statement
// period, bank-name line, etc.) to resolve short-DM dates that carry no
// year of their own. Absent a hint, short-DM parsing fails closed.
var yearHintPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

func currentYearHint(headerSamples []string, extractedHeader model.ExtractedStatementHeader) int {
	if extractedHeader.StatementPeriodTo != nil {
		if m := yearHintPattern.FindString(*extractedHeader.StatementPeriodTo); m != "" {
			v, _ := strconv.Atoi(m)
			return v
		}
	}
	for _, s := range headerSamples {
		if m := yearHintPattern.FindString(s); m != "" {
			v, _ := strconv.Atoi(m)
			return v
		}
	}
	return 0
}

func computeTotals(transactions []model.Transaction) model.DocumentTotals {
	var t model.DocumentTotals
	t.Total = len(transactions)
	for _, tx := range transactions {
		switch tx.ValidationStatus {
		case model.StatusValid:
			t.Valid++
		case model.StatusWarning:
			t.Warning++
		case model.StatusError:
			t.Error++
		}
	}
	return t
}

func worstStatus(transactions []model.Transaction) model.ValidationStatus {
	worst := model.StatusValid
	for _, tx := range transactions {
		switch tx.ValidationStatus {
		case model.StatusError:
			return model.StatusError
		case model.StatusWarning:
			worst = model.StatusWarning
		}
	}
	return worst
}

// overallDateOrder reports the document's date order as the common order
// shared by every segment, or OrderMixed when segments disagree.
func overallDateOrder(segmentOrders []model.DateOrder) model.DateOrder {
	if len(segmentOrders) == 0 {
		return model.OrderUnknown
	}
	first := segmentOrders[0]
	for _, o := range segmentOrders[1:] {
		if o != first {
			return model.OrderMixed
		}
	}
	return first
}

func averageConfidence(transactions []model.Transaction) float64 {
	if len(transactions) == 0 {
		return 0
	}
	sum := 0.0
	for _, tx := range transactions {
		sum += tx.Confidence.Overall
	}
	return sum / float64(len(transactions)) / 100
}

func safeMsg(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
