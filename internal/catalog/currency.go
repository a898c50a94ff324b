package catalog

import "regexp"

// CurrencySymbols maps a symbol or prefix seen in source text to its
// ISO-4217 code, used both by the number parser (to strip the symbol) and
// the per-row currency detector (to recognize a foreign currency embedded
// in a description).
var CurrencySymbols = map[string]string{
	"$":   "USD",
	"£":   "GBP",
	"€":   "EUR",
	"¥":   "JPY",
	"₹":   "INR",
	"A$":  "AUD",
	"C$":  "CAD",
	"CHF": "CHF",
	"SGD": "SGD",
	"AED": "AED",
}

// CurrencyPosition says whether a currency symbol is written before or
// after the number in the locale's number format.
type CurrencyPosition string

const (
	CurrencyPrefix CurrencyPosition = "prefix"
	CurrencySuffix CurrencyPosition = "suffix"
)

// DefaultExchangeRatesToUSD is the engine's built-in static, one-way,
// USD-pivoted exchange-rate table (units of the given code per 1 USD).
// Config.ExchangeRates, when set, replaces this table wholesale rather
// than merging into it, keeping the injection point unambiguous.
var DefaultExchangeRatesToUSD = map[string]float64{
	"USD": 1.0,
	"GBP": 0.79,
	"EUR": 0.92,
	"JPY": 156.50,
	"INR": 83.40,
	"AUD": 1.52,
	"CAD": 1.36,
	"CHF": 0.90,
	"SGD": 1.34,
	"AED": 3.67,
}

// currencyCodePattern finds an embedded ISO currency code inside free
// text, e.g. "Hotel payment EUR 450.00" or "Wire transfer USD 200".
var currencyCodePattern = regexp.MustCompile(`\b(USD|GBP|EUR|JPY|INR|AUD|CAD|CHF|SGD|AED)\b`)

// DetectEmbeddedCurrency looks for an explicit ISO code in free text; it
// does not look for bare symbols there because a lone "$" in a
// description is too ambiguous with the amount columns already parsed.
func DetectEmbeddedCurrency(description string) (string, bool) {
	m := currencyCodePattern.FindString(description)
	if m == "" {
		return "", false
	}
	return m, true
}
