// Package validate implements the balance validator and safe repair,
// quick_validate, validate_export, and pre_export_check.
package validate

import "github.com/ledgerscan/statement-engine/internal/model"

// Tolerances configures the four-tier balance tolerance: tier thresholds
// are implementer-defined and documented here. Exact and Rounding
// differences are accepted as valid; SmallCent differences degrade to
// warning; anything larger is error.
type Tolerances struct {
	Exact     float64
	Rounding  float64
	SmallCent float64
}

// DefaultTolerances documents the engine's chosen defaults: exact match,
// a one-cent rounding allowance, and a five-cent warning band before a
// mismatch is treated as a hard error.
var DefaultTolerances = Tolerances{
	Exact:     0.0001,
	Rounding:  0.01,
	SmallCent: 0.05,
}

// QuickValidate is the engine's cheapest check: does prevBalance +
// credit - debit equal currentBalance within the rounding tolerance? It
// takes no document context, so it can run standalone outside the full
// pipeline.
func QuickValidate(prevBalance float64, debit, credit *float64, currentBalance float64) bool {
	d, c := 0.0, 0.0
	if debit != nil {
		d = *debit
	}
	if credit != nil {
		c = *credit
	}
	diff := absF((prevBalance + c - d) - currentBalance)
	return diff <= DefaultTolerances.Rounding
}

// rowTier classifies one row's |expected-actual| difference into a
// validation status per the four tolerance tiers.
func rowTier(diff float64, t Tolerances) model.ValidationStatus {
	switch {
	case diff <= t.Exact:
		return model.StatusValid
	case diff <= t.Rounding:
		return model.StatusValid
	case diff <= t.SmallCent:
		return model.StatusWarning
	default:
		return model.StatusError
	}
}

// ValidateSegment checks row-by-row arithmetic for one segment, attempts
// safe repair when eligible, and returns the segment with its (possibly
// repaired) transactions and closing balance, plus any repair narrative
// for the warnings list.
func ValidateSegment(segment model.DocumentSegment, t Tolerances) (model.DocumentSegment, []string) {
	var warnings []string

	segment.Transactions = applyRowValidation(segment.Transactions, segment.OpeningBalance, t)

	if repairEligible(segment, t) {
		repaired, applied := attemptSafeRepair(segment.Transactions, segment.OpeningBalance, t)
		if applied {
			segment.Transactions = applyRowValidation(repaired, segment.OpeningBalance, t)
			warnings = append(warnings, "safe repair applied: debit/credit classification adjusted to restore balance continuity")
		}
	}

	segment.ClosingBalance = closingBalanceOf(segment.Transactions)
	return segment, warnings
}

func applyRowValidation(transactions []model.Transaction, opening float64, t Tolerances) []model.Transaction {
	prev := opening
	out := make([]model.Transaction, len(transactions))
	for i, tx := range transactions {
		d, c := 0.0, 0.0
		if tx.Debit != nil {
			d = *tx.Debit
		}
		if tx.Credit != nil {
			c = *tx.Credit
		}
		expected := prev + c - d
		diff := absF(expected - tx.Balance)
		tx.ValidationStatus = rowTier(diff, t)
		if tx.ValidationStatus != model.StatusValid {
			msg := "balance mismatch against predecessor row"
			tx.ValidationMessage = &msg
		}
		out[i] = tx
		prev = tx.Balance
	}
	return out
}

func repairEligible(segment model.DocumentSegment, t Tolerances) bool {
	if segment.ClosingBalance == nil {
		return false
	}
	withAmount := 0
	for _, tx := range segment.Transactions {
		if tx.Debit != nil || tx.Credit != nil {
			withAmount++
		}
	}
	if len(segment.Transactions) == 0 {
		return false
	}
	return float64(withAmount)/float64(len(segment.Transactions)) >= 0.8
}

func totalImbalance(transactions []model.Transaction, opening float64) float64 {
	prev := opening
	total := 0.0
	for _, tx := range transactions {
		d, c := 0.0, 0.0
		if tx.Debit != nil {
			d = *tx.Debit
		}
		if tx.Credit != nil {
			c = *tx.Credit
		}
		expected := prev + c - d
		total += absF(expected - tx.Balance)
		prev = tx.Balance
	}
	return total
}

// attemptSafeRepair tries, in order: single-row debit<->credit flip, then
// a bounded two-row joint flip (<=50 candidate pairs). A step is kept
// only when it strictly reduces total imbalance; the whole repair is
// adopted only if the final imbalance is smaller than what we started
// with. Magnitudes are never changed: a flip only swaps which of
// Debit/Credit holds the existing value.
func attemptSafeRepair(transactions []model.Transaction, opening float64, t Tolerances) ([]model.Transaction, bool) {
	baseline := totalImbalance(transactions, opening)
	if baseline <= t.Rounding {
		return transactions, false
	}

	best := transactions
	bestImbalance := baseline
	improved := false

	// (ii) single-row flip
	for i := range transactions {
		candidate := flipRow(best, i)
		imbalance := totalImbalance(candidate, opening)
		if imbalance < bestImbalance {
			best = candidate
			bestImbalance = imbalance
			improved = true
		}
	}

	// (iii) bounded two-row joint flip, at most 50 candidate pairs
	pairsTried := 0
	for i := 0; i < len(best) && pairsTried < 50; i++ {
		for j := i + 1; j < len(best) && pairsTried < 50; j++ {
			pairsTried++
			candidate := flipRow(flipRow(best, i), j)
			imbalance := totalImbalance(candidate, opening)
			if imbalance < bestImbalance {
				best = candidate
				bestImbalance = imbalance
				improved = true
			}
		}
	}

	if !improved || bestImbalance >= baseline {
		return transactions, false
	}
	return best, true
}

// flipRow swaps row i's debit and credit values without altering either
// magnitude.
func flipRow(transactions []model.Transaction, i int) []model.Transaction {
	out := make([]model.Transaction, len(transactions))
	copy(out, transactions)
	tx := out[i]
	tx.Debit, tx.Credit = tx.Credit, tx.Debit
	out[i] = tx
	return out
}

func closingBalanceOf(transactions []model.Transaction) *float64 {
	if len(transactions) == 0 {
		return nil
	}
	v := transactions[len(transactions)-1].Balance
	return &v
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
