package engine

import (
	"github.com/ledgerscan/statement-engine/internal/model"
	"github.com/ledgerscan/statement-engine/internal/rowextract"
)

// computeConfidence weighs the four parse factors (date, amount, balance,
// description) into an overall 0..100 score and letter grade. OCR-sourced
// rows get an extra factor that pulls the overall score down when
// confidence was low at extraction time.
func computeConfidence(dateFactor, amountFactor, balanceFactor, descFactor float64, row rowextract.StitchedRow) model.TransactionConfidence {
	ocrFactor := ocrFactorOf(row)

	weights := struct{ date, amount, balance, desc, ocr float64 }{0.3, 0.25, 0.3, 0.1, 0.05}
	overall := dateFactor*weights.date + amountFactor*weights.amount + balanceFactor*weights.balance + descFactor*weights.desc
	totalWeight := weights.date + weights.amount + weights.balance + weights.desc

	factors := model.ConfidenceFactors{
		Date:        dateFactor,
		Amount:      amountFactor,
		Balance:     balanceFactor,
		Description: descFactor,
	}

	if ocrFactor != nil {
		overall += *ocrFactor * weights.ocr
		totalWeight += weights.ocr
		factors.OCR = ocrFactor
	}

	score := 0.0
	if totalWeight > 0 {
		score = (overall / totalWeight) * 100
	}

	var flags []string
	if dateFactor == 0 {
		flags = append(flags, "date_missing_or_unparseable")
	}
	if balanceFactor == 0 {
		flags = append(flags, "balance_missing_or_unparseable")
	}
	if row.IsStitched {
		flags = append(flags, "multi_line_stitched")
	}

	return model.TransactionConfidence{
		Overall: score,
		Grade:   model.GradeFor(score),
		Factors: factors,
		Flags:   flags,
	}
}

func ocrFactorOf(row rowextract.StitchedRow) *float64 {
	if len(row.Row.SourceLines) == 0 {
		return nil
	}
	var sum float64
	var count int
	for _, l := range row.Row.SourceLines {
		for _, f := range l.Fragments {
			if f.Source != model.SourceOCR {
				continue
			}
			count++
			if f.Confidence != nil {
				sum += *f.Confidence
			} else {
				sum += 1
			}
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}
