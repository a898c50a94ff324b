package layout

import "github.com/ledgerscan/statement-engine/internal/model"

// minTableFragments is the minimum fragment count for a line to count as
// part of a table candidate region.
const minTableFragments = 3

// maxFragmentDrift is the maximum fragment-count swing tolerated between
// adjacent lines of the same region.
const maxFragmentDrift = 2

// DetectRegions groups Lines into maximal runs that look tabular; a single
// qualifying line already forms a region. When no line qualifies, the
// whole document falls back to one degraded region so downstream stages still have something
// to classify, at confidence capped to 0.3.
func DetectRegions(lines []model.Line) []model.TableRegion {
	var regions []model.TableRegion
	var run []model.Line

	flush := func() {
		if len(run) == 0 {
			return
		}
		regions = append(regions, buildRegion(run, false))
		run = nil
	}

	prevCount := -1
	for _, l := range lines {
		count := len(l.Fragments)
		if count < minTableFragments {
			flush()
			prevCount = -1
			continue
		}
		if prevCount >= 0 && absInt(count-prevCount) > maxFragmentDrift {
			flush()
		}
		run = append(run, l)
		prevCount = count
	}
	flush()

	if len(regions) == 0 && len(lines) > 0 {
		regions = append(regions, buildRegion(lines, true))
	}

	return regions
}

func buildRegion(lines []model.Line, degraded bool) model.TableRegion {
	r := model.TableRegion{DataLines: lines, Degraded: degraded}
	pageSeen := map[int]bool{}
	for i, l := range lines {
		if i == 0 {
			r.Top = l.Top
			r.Bottom = l.Bottom
			r.Left = l.Left
			r.Right = l.Right
		} else {
			if l.Top < r.Top {
				r.Top = l.Top
			}
			if l.Bottom > r.Bottom {
				r.Bottom = l.Bottom
			}
			if l.Left < r.Left {
				r.Left = l.Left
			}
			if l.Right > r.Right {
				r.Right = l.Right
			}
		}
		if !pageSeen[l.PageNumber] {
			pageSeen[l.PageNumber] = true
			r.PageNumbers = append(r.PageNumbers, l.PageNumber)
		}
	}
	if degraded {
		r.Confidence = 0.3
	} else {
		r.Confidence = 1.0
	}
	return r
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
