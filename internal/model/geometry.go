// Package model defines the immutable value types shared by every stage of
// the statement engine. Nothing in this package performs I/O or parsing;
// it only shapes data and enforces the invariants each type promises.
package model

import "fmt"

// TextSource identifies where a TextFragment's text came from.
type TextSource string

const (
	SourceNative TextSource = "native"
	SourceOCR    TextSource = "ocr"
)

// BoundingBox is a rectangle in PDF user-space units, origin top-left.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Validate reports the one invariant BoundingBox promises: non-negative
// extents. Negative width/height is a structural error, not a shape error,
// because it can only arise from a broken upstream extractor.
func (b BoundingBox) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("model: bounding box has negative extent (w=%g h=%g)", b.Width, b.Height)
	}
	return nil
}

// Left, Right, Top, Bottom return the box's edges in the same coordinate
// system (Y grows downward, matching PDF-extractor convention used here).
func (b BoundingBox) Left() float64   { return b.X }
func (b BoundingBox) Right() float64  { return b.X + b.Width }
func (b BoundingBox) Top() float64    { return b.Y }
func (b BoundingBox) Bottom() float64 { return b.Y + b.Height }
func (b BoundingBox) CenterX() float64 { return b.X + b.Width/2 }

// TextFragment is one positioned text run as produced by a PDF/OCR
// extractor. layout.GroupLines drops any fragment whose Text is empty
// after trimming, so blank fragments never reach a Line.
type TextFragment struct {
	Text        string
	Box         BoundingBox
	PageNumber  int
	Confidence  *float64 // nil means "not reported" (native text), not "zero confidence"
	Source      TextSource
}

// Line is an ordered run of TextFragments sharing a page and a Y band.
type Line struct {
	PageNumber int
	Fragments  []TextFragment
	Top        float64
	Bottom     float64
	Left       float64
	Right      float64
}

// Text concatenates the line's fragments left to right, space-separated.
func (l Line) Text() string {
	out := ""
	for i, f := range l.Fragments {
		if i > 0 {
			out += " "
		}
		out += f.Text
	}
	return out
}

// ColumnType is the semantic role assigned to a detected column.
type ColumnType string

const (
	ColDate        ColumnType = "date"
	ColDescription ColumnType = "description"
	ColDebit       ColumnType = "debit"
	ColCredit      ColumnType = "credit"
	ColBalance     ColumnType = "balance"
	ColReference   ColumnType = "reference"
	ColAmount      ColumnType = "amount" // merged debit/credit column
	ColValueDate   ColumnType = "value_date"
	ColUnknown     ColumnType = "unknown"
)

// ColumnBoundary is one vertical strip of a TableRegion, assigned a
// semantic role by the classifier.
type ColumnBoundary struct {
	X0           float64
	X1           float64
	CenterX      float64
	InferredType ColumnType
	Confidence   float64
	// Merged marks a single column carrying both debit and credit values,
	// disambiguated per-row by a DR/CR suffix or sign.
	Merged bool
}

// Validate enforces x0 < x1 for one boundary; it does not check ordering
// across a slice of boundaries.
func (c ColumnBoundary) Validate() error {
	if c.X0 >= c.X1 {
		return fmt.Errorf("model: column boundary has x0 >= x1 (%g >= %g)", c.X0, c.X1)
	}
	return nil
}

// TableRegion is a maximal run of lines recognized as one tabular block.
type TableRegion struct {
	Top               float64
	Bottom            float64
	Left              float64
	Right             float64
	DataLines         []Line
	ColumnBoundaries  []ColumnBoundary
	PageNumbers       []int
	// Degraded marks a region produced by the no-table fallback path;
	// confidence is capped at 0.3 in that case.
	Degraded   bool
	Confidence float64
}
