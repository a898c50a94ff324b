package valueparse

import "github.com/ledgerscan/statement-engine/internal/catalog"

// ConvertedAmount is the result of a detected foreign-currency row: the
// original value plus the converted local-currency value. The balance
// column is never converted — only debit/credit move — and the row is
// flagged so a human reviewer knows a conversion happened.
type ConvertedAmount struct {
	OriginalCurrency string
	OriginalValue    float64
	ExchangeRate     float64
	ConvertedValue   float64
}

// DetectAndConvert looks for an embedded currency code in the
// description; when it differs from localCurrency and both codes exist
// in rates (USD-pivoted, units-per-USD), it converts amount and returns
// the conversion record. It returns ok=false when no conversion applies,
// in which case the caller must leave the row's original-currency fields
// empty rather than fabricate a no-op conversion.
func DetectAndConvert(description string, amount float64, localCurrency string, rates map[string]float64) (ConvertedAmount, bool) {
	code, found := catalog.DetectEmbeddedCurrency(description)
	if !found || code == localCurrency {
		return ConvertedAmount{}, false
	}

	foreignRate, ok1 := rates[code]
	localRate, ok2 := rates[localCurrency]
	if !ok1 || !ok2 || foreignRate == 0 {
		return ConvertedAmount{}, false
	}

	// rates[code] = units of code per 1 USD, so USD = amount / foreignRate,
	// and local = USD * localRate.
	usd := amount / foreignRate
	local := usd * localRate

	return ConvertedAmount{
		OriginalCurrency: code,
		OriginalValue:    amount,
		ExchangeRate:     localRate / foreignRate,
		ConvertedValue:   local,
	}, true
}
