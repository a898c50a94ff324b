package valueparse

import "github.com/ledgerscan/statement-engine/internal/catalog"

// CategoryMatch is the winning categorization with its confidence.
type CategoryMatch struct {
	Category   string
	Confidence float64
}

// Categorize scores a description against the fixed category catalog and
// returns the highest-confidence match; ties go to the rule whose match
// text is longer. Confidence is derived from match coverage
// of the description, not a fixed constant, so a description that is
// almost entirely the matched keyword scores higher than one where the
// keyword is a small fragment of a long narration.
func Categorize(description string) (CategoryMatch, bool) {
	if description == "" {
		return CategoryMatch{}, false
	}

	var best CategoryMatch
	var bestMatchLen int
	found := false

	for _, rule := range catalog.CategoryRules {
		loc := rule.Pattern.FindStringIndex(description)
		if loc == nil {
			continue
		}
		matchLen := loc[1] - loc[0]
		confidence := float64(matchLen) / float64(len(description))
		if confidence > 1 {
			confidence = 1
		}
		// floor confidence so short-but-decisive keywords (e.g. "ATM")
		// still register meaningfully against a long narration.
		if confidence < 0.3 {
			confidence = 0.3
		}

		if !found || confidence > best.Confidence ||
			(confidence == best.Confidence && matchLen > bestMatchLen) {
			best = CategoryMatch{Category: rule.Category, Confidence: confidence}
			bestMatchLen = matchLen
			found = true
		}
	}

	return best, found
}
