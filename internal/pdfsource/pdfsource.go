// Package pdfsource adapts a PDF file on disk into the positioned
// TextFragments the engine's core expects, using github.com/ledongthuc/pdf.
// This is a collaborator, not part of the deterministic core: it performs
// real file I/O and is the one place in this repository that talks to an
// actual PDF.
package pdfsource

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// ExtractFragments opens filePath and returns one TextFragment per
// positioned text run, across every page, preserving the coordinates the
// engine's geometry stages (Line Grouper, Column Boundary Detector) need.
// Position survives all the way through, unlike a plain-text extractor
// that joins runs into lines and discards layout once a regex parser is
// all that's left downstream.
func ExtractFragments(filePath string) ([]model.TextFragment, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("pdfsource: opening %s: %w", filePath, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdfsource: %s has no pages", filePath)
	}

	var fragments []model.TextFragment
	for pageIdx := 1; pageIdx <= numPages; pageIdx++ {
		page := r.Page(pageIdx)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			width := t.W
			if width <= 0 {
				width = estimateWidth(t.S, t.FontSize)
			}
			height := t.FontSize
			if height <= 0 {
				height = 10
			}
			fragments = append(fragments, model.TextFragment{
				Text: t.S,
				Box: model.BoundingBox{
					X:      t.X,
					Y:      t.Y,
					Width:  width,
					Height: height,
				},
				PageNumber: pageIdx,
				Source:     model.SourceNative,
			})
		}
	}

	return fragments, nil
}

// estimateWidth approximates a text run's width when the library does not
// report one, used only as a fallback so the Column Boundary Detector
// still has something non-zero to histogram against.
func estimateWidth(s string, fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = 10
	}
	return float64(len([]rune(s))) * fontSize * 0.5
}
