package catalog

import (
	"regexp"
	"strings"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// DebitSynonyms and CreditSynonyms back the column classifier's rule 1
// (header-keyword match wins at confidence 0.95), covering English,
// Spanish, French, German, and Portuguese column captions.
var (
	DebitSynonyms  = regexp.MustCompile(`(?i)^(debit|withdrawal|dr|out|payment|débit|retrait|débito|retiro|lastschrift|belastung|abbuchung)s?\.?$`)
	CreditSynonyms = regexp.MustCompile(`(?i)^(credit|deposit|cr|in|crédit|dépôt|crédito|depósito|gutschrift|einzahlung)s?\.?$`)
)

// HeaderDictionary maps a normalized (lowercased, trimmed) header caption
// in any supported language to its canonical column role. Hundreds of
// multilingual synonyms in the real system collapse to a representative
// sample here, organized by role.
var HeaderDictionary = buildHeaderDictionary()

func buildHeaderDictionary() map[string]model.ColumnType {
	m := map[string]model.ColumnType{}
	add := func(t model.ColumnType, words ...string) {
		for _, w := range words {
			m[strings.ToLower(w)] = t
		}
	}

	add(model.ColDate,
		"date", "txn date", "transaction date", "value date", "posting date",
		"fecha", "date d'opération", "datum", "data", "दिनांक", "तारीख",
	)
	add(model.ColValueDate,
		"value date", "valuta", "fecha valor",
	)
	add(model.ColDescription,
		"description", "narration", "particulars", "details", "transaction details",
		"descripción", "libellé", "verwendungszweck", "descrição", "विवरण",
	)
	add(model.ColDebit,
		"debit", "withdrawal", "withdrawal amt.", "dr", "payments", "money out",
		"débit", "débito", "lastschrift", "belastung",
	)
	add(model.ColCredit,
		"credit", "deposit", "deposit amt.", "cr", "receipts", "money in",
		"crédit", "crédito", "gutschrift", "einzahlung",
	)
	add(model.ColBalance,
		"balance", "closing balance", "running balance", "available balance",
		"saldo", "solde", "kontostand", "शेष",
	)
	add(model.ColReference,
		"reference", "ref no", "ref. no.", "chq no", "cheque no", "transaction id",
		"referencia", "référence", "referenz",
	)
	add(model.ColAmount,
		"amount", "transaction amount", "monto", "montant", "betrag",
	)
	return m
}

// LookupHeader normalizes a header cell and returns its canonical role,
// ok=false when the word is not in the dictionary.
func LookupHeader(headerText string) (model.ColumnType, bool) {
	key := strings.ToLower(strings.TrimSpace(headerText))
	if t, ok := HeaderDictionary[key]; ok {
		return t, true
	}
	key = strings.Trim(key, ".:")
	t, ok := HeaderDictionary[key]
	return t, ok
}

// BankNames is the fixed global bank-name list the statement header
// extractor matches against to populate ExtractedStatementHeader.BankName.
var BankNames = []string{
	"HSBC", "Barclays", "Metro Bank", "Lloyds", "NatWest", "Santander UK",
	"Chase", "Bank of America", "Wells Fargo", "Citibank",
	"HDFC Bank", "ICICI Bank", "State Bank of India", "Axis Bank",
	"Deutsche Bank", "Commerzbank", "BNP Paribas", "Société Générale",
	"ANZ", "Commonwealth Bank", "Westpac", "National Australia Bank",
}
