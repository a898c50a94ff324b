package layout

import (
	"sort"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// bucketWidth is the histogram resolution in page units (≈2 units/bucket).
const bucketWidth = 2.0

// minColumnWidth is the narrowest strip the detector will keep as a
// column; anything thinner is discarded.
const minColumnWidth = 15.0

// density classifies how text-dense a region's lines are on average,
// which widens or narrows the gutter thresholds.
type density int

const (
	densitySparse density = iota
	densityNormal
	densityDense
)

func classifyDensity(lines []model.Line) density {
	if len(lines) == 0 {
		return densityNormal
	}
	total := 0
	for _, l := range lines {
		total += len(l.Fragments)
	}
	avg := float64(total) / float64(len(lines))
	switch {
	case avg < 4:
		return densitySparse
	case avg > 8:
		return densityDense
	default:
		return densityNormal
	}
}

// gutterParams returns {minGutterWidth, coverageThreshold} tuned to the
// region's density: sparse layouts get wider/looser gutters, dense ones
// get narrower/stricter gutters, so gutter detection adapts instead of
// using one fixed width for every layout.
func gutterParams(d density) (minWidth float64, coverageThreshold float64) {
	switch d {
	case densitySparse:
		return 24, 0.04
	case densityDense:
		return 10, 0.015
	default:
		return 16, 0.025
	}
}

// DetectColumnBoundaries builds a horizontal coverage histogram for the
// region and returns the strips between its gutters as sorted
// ColumnBoundaries, with InferredType left as ColUnknown (the classifier
// fills that in).
func DetectColumnBoundaries(region model.TableRegion) []model.ColumnBoundary {
	lines := region.DataLines
	if len(lines) == 0 {
		return nil
	}

	pageLeft, pageRight := region.Left, region.Right
	if pageRight <= pageLeft {
		return nil
	}

	numBuckets := int((pageRight-pageLeft)/bucketWidth) + 1
	coverage := make([]float64, numBuckets)

	for _, l := range lines {
		for _, f := range l.Fragments {
			startBucket := bucketIndex(f.Box.Left()-pageLeft, numBuckets)
			endBucket := bucketIndex(f.Box.Right()-pageLeft, numBuckets)
			for b := startBucket; b <= endBucket; b++ {
				coverage[b]++
			}
		}
	}

	maxCoverage := 0.0
	for _, c := range coverage {
		if c > maxCoverage {
			maxCoverage = c
		}
	}
	if maxCoverage == 0 {
		return nil
	}
	for i := range coverage {
		coverage[i] /= maxCoverage
	}

	d := classifyDensity(lines)
	minGutterWidthUnits, threshold := gutterParams(d)
	minGutterBuckets := int(minGutterWidthUnits / bucketWidth)
	if minGutterBuckets < 1 {
		minGutterBuckets = 1
	}

	gutters := findGutters(coverage, threshold, minGutterBuckets)
	boundaries := stripsBetweenGutters(gutters, numBuckets, pageLeft)

	var kept []model.ColumnBoundary
	for _, b := range boundaries {
		if b.X1-b.X0 >= minColumnWidth {
			kept = append(kept, b)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].X0 < kept[j].X0 })
	return kept
}

type gutterSpan struct{ start, end int }

func findGutters(coverage []float64, threshold float64, minWidth int) []gutterSpan {
	var gutters []gutterSpan
	runStart := -1
	for i, c := range coverage {
		if c < threshold {
			if runStart == -1 {
				runStart = i
			}
			continue
		}
		if runStart != -1 {
			if i-runStart >= minWidth {
				gutters = append(gutters, gutterSpan{runStart, i})
			}
			runStart = -1
		}
	}
	if runStart != -1 && len(coverage)-runStart >= minWidth {
		gutters = append(gutters, gutterSpan{runStart, len(coverage)})
	}
	return gutters
}

func stripsBetweenGutters(gutters []gutterSpan, numBuckets int, pageLeft float64) []model.ColumnBoundary {
	var boundaries []model.ColumnBoundary
	cursor := 0
	for _, g := range gutters {
		if g.start > cursor {
			boundaries = append(boundaries, boundaryFromBuckets(cursor, g.start, pageLeft))
		}
		cursor = g.end
	}
	if cursor < numBuckets {
		boundaries = append(boundaries, boundaryFromBuckets(cursor, numBuckets, pageLeft))
	}
	return boundaries
}

func boundaryFromBuckets(startBucket, endBucket int, pageLeft float64) model.ColumnBoundary {
	x0 := pageLeft + float64(startBucket)*bucketWidth
	x1 := pageLeft + float64(endBucket)*bucketWidth
	return model.ColumnBoundary{
		X0:           x0,
		X1:           x1,
		CenterX:      (x0 + x1) / 2,
		InferredType: model.ColUnknown,
	}
}

func bucketIndex(offset float64, numBuckets int) int {
	idx := int(offset / bucketWidth)
	if idx < 0 {
		idx = 0
	}
	if idx >= numBuckets {
		idx = numBuckets - 1
	}
	return idx
}
