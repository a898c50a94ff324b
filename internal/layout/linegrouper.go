// Package layout turns raw positioned text fragments into lines, then
// table regions, then column boundaries — the geometry-only stages of the
// pipeline. Nothing here looks at cell content beyond counting fragments.
package layout

import (
	"sort"
	"strings"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// DefaultLineTolerance is τy from the fragment-grouping rule: fragments
// within this many Y units of the current line's top join that line.
const DefaultLineTolerance = 3.0

// GroupLines sorts fragments by (page, y, x) and walks them into Lines,
// reconstructing visual rows at the fragment level so downstream stages
// retain bounding boxes instead of flattening straight to strings.
func GroupLines(fragments []model.TextFragment, tolerance float64) []model.Line {
	if tolerance <= 0 {
		tolerance = DefaultLineTolerance
	}

	kept := make([]model.TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		kept = append(kept, f)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.PageNumber != b.PageNumber {
			return a.PageNumber < b.PageNumber
		}
		if a.Box.Y != b.Box.Y {
			return a.Box.Y < b.Box.Y
		}
		return a.Box.X < b.Box.X
	})

	var lines []model.Line
	var current []model.TextFragment
	currentTop := 0.0
	currentPage := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		lines = append(lines, buildLine(currentPage, current))
		current = nil
	}

	for _, f := range kept {
		if len(current) == 0 {
			current = append(current, f)
			currentTop = f.Box.Y
			currentPage = f.PageNumber
			continue
		}
		if f.PageNumber == currentPage && absFloat(f.Box.Y-currentTop) <= tolerance {
			current = append(current, f)
			continue
		}
		flush()
		current = append(current, f)
		currentTop = f.Box.Y
		currentPage = f.PageNumber
	}
	flush()

	return lines
}

func buildLine(page int, fragments []model.TextFragment) model.Line {
	sort.SliceStable(fragments, func(i, j int) bool { return fragments[i].Box.X < fragments[j].Box.X })

	l := model.Line{PageNumber: page, Fragments: fragments}
	l.Top = fragments[0].Box.Top()
	l.Bottom = fragments[0].Box.Bottom()
	l.Left = fragments[0].Box.Left()
	l.Right = fragments[0].Box.Right()
	for _, f := range fragments[1:] {
		if f.Box.Top() < l.Top {
			l.Top = f.Box.Top()
		}
		if f.Box.Bottom() > l.Bottom {
			l.Bottom = f.Box.Bottom()
		}
		if f.Box.Left() < l.Left {
			l.Left = f.Box.Left()
		}
		if f.Box.Right() > l.Right {
			l.Right = f.Box.Right()
		}
	}
	return l
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
