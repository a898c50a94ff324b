// Package chronology detects a segment's date order and, when the source
// rows run newest-first, reverses them and recomputes the balance column
// from the opening balance (C9 Chronology Normalizer).
package chronology

import (
	"strconv"
	"strings"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// Result is the Chronology Normalizer's verdict plus the (possibly
// reordered) transaction list.
type Result struct {
	Order       model.DateOrder
	WasReversed bool
	Transactions []model.Transaction
}

// Normalize classifies the ascending/descending/mixed order of dated
// transactions and reverses the list (recomputing balances from opening)
// when the order is descending with at least 0.8 confidence. A cross-year
// rollover (December followed by January-of-next-year while otherwise
// ascending) is never treated as descending.
func Normalize(transactions []model.Transaction, opening float64) Result {
	order, confidence := classifyOrder(transactions)

	if order == model.OrderDescending && confidence >= 0.8 && !spansYearRollover(transactions) {
		reversed := reverseAndRecompute(transactions, opening)
		return Result{Order: model.OrderAscending, WasReversed: true, Transactions: reversed}
	}

	return Result{Order: order, WasReversed: false, Transactions: transactions}
}

func classifyOrder(transactions []model.Transaction) (model.DateOrder, float64) {
	var ascending, descending, equal, total int
	var prev string
	havePrev := false

	for _, t := range transactions {
		if t.Date == "" {
			continue
		}
		if havePrev {
			switch strings.Compare(t.Date, prev) {
			case 1:
				ascending++
			case -1:
				descending++
			default:
				equal++
			}
			total++
		}
		prev = t.Date
		havePrev = true
	}

	if total == 0 {
		return model.OrderUnknown, 0
	}

	ascFrac := float64(ascending) / float64(total)
	descFrac := float64(descending) / float64(total)

	switch {
	case ascFrac >= 0.8:
		return model.OrderAscending, ascFrac
	case descFrac >= 0.8:
		return model.OrderDescending, descFrac
	default:
		return model.OrderMixed, 0
	}
}

// spansYearRollover detects a December-to-January transition inside an
// otherwise ascending-looking sequence, which the naive comparator above
// would misread as descending (ISO string "2025-12-30" > "2026-01-02" is
// false, so this only guards the opposite recording direction: dates
// entered without a year rollover applied, e.g. raw "12-30" -> "01-02"
// supplied by upstream parsing before year inference). Declared defensive
// only against malformed ISO output; normal ISO dates already compare
// correctly across a year boundary.
func spansYearRollover(transactions []model.Transaction) bool {
	for i := 1; i < len(transactions); i++ {
		prevMonth := monthOf(transactions[i-1].Date)
		curMonth := monthOf(transactions[i].Date)
		prevYear := yearOf(transactions[i-1].Date)
		curYear := yearOf(transactions[i].Date)
		if prevMonth == 12 && curMonth == 1 && curYear == prevYear+1 {
			return true
		}
	}
	return false
}

func monthOf(iso string) int {
	if len(iso) != 10 {
		return 0
	}
	v, _ := strconv.Atoi(iso[5:7])
	return v
}

func yearOf(iso string) int {
	if len(iso) != 10 {
		return 0
	}
	v, _ := strconv.Atoi(iso[0:4])
	return v
}

// reverseAndRecompute reverses transaction order, reassigns RowIndex, and
// recomputes Balance from opening using each row's credit/debit delta —
// the one place the engine is permitted to write the balance column,
// because the source balance values describe post-transaction state under
// the *original* (descending) order, not the reversed one.
func reverseAndRecompute(transactions []model.Transaction, opening float64) []model.Transaction {
	out := make([]model.Transaction, len(transactions))
	for i, t := range transactions {
		out[len(transactions)-1-i] = t
	}

	running := opening
	for i := range out {
		credit := 0.0
		if out[i].Credit != nil {
			credit = *out[i].Credit
		}
		debit := 0.0
		if out[i].Debit != nil {
			debit = *out[i].Debit
		}
		running = running + credit - debit
		out[i].Balance = running
		out[i].RowIndex = i
	}

	return out
}
