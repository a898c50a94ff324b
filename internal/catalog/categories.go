package catalog

import "regexp"

// CategoryRule is one entry of the fixed categorization library: a
// compiled pattern and the category it votes for when it matches a
// transaction description. Order matters only as a final
// tie-breaker; the highest-confidence match wins, ties go to the longer
// match (see valueparse.Categorize).
type CategoryRule struct {
	Category string
	Pattern  *regexp.Regexp
}

// CategoryRules covers the core retail-banking categories (Transfer,
// Salary, ATM, Utilities) plus a small set of additional categories
// needed to keep "Other" from swallowing most rows.
var CategoryRules = []CategoryRule{
	{"Salary", regexp.MustCompile(`(?i)\b(salary|payroll|wages|stipend|sal\s*credit)\b`)},
	{"Transfer", regexp.MustCompile(`(?i)\b(transfer|neft|imps|rtgs|wire|p2p|sent to|received from|a/c\s*transfer)\b`)},
	{"ATM", regexp.MustCompile(`(?i)\b(atm|cash\s*withdrawal|cash\s*wdl|cheque\s*withdrawal)\b`)},
	{"Utilities", regexp.MustCompile(`(?i)\b(electric|electricity|water\s*bill|gas\s*bill|power\s*bill|utility|utilities|broadband|internet\s*bill)\b`)},
	{"Telecom", regexp.MustCompile(`(?i)\b(mobile\s*recharge|airtel|vodafone|verizon|at&t|telecom|phone\s*bill)\b`)},
	{"Loan_EMI", regexp.MustCompile(`(?i)\b(emi|loan\s*(repayment|installment)|mortgage)\b`)},
	{"Insurance", regexp.MustCompile(`(?i)\b(insurance|premium|lic\b|policy\s*no)\b`)},
	{"Dining", regexp.MustCompile(`(?i)\b(restaurant|cafe|coffee|starbucks|mcdonald|swiggy|zomato|doordash|ubereats)\b`)},
	{"Groceries", regexp.MustCompile(`(?i)\b(grocery|groceries|supermarket|walmart|tesco|sainsbury|kroger|big\s*bazaar)\b`)},
	{"Shopping", regexp.MustCompile(`(?i)\b(amazon|ebay|flipkart|myntra|retail|store\s*purchase)\b`)},
	{"Travel", regexp.MustCompile(`(?i)\b(airlines?|flight|uber|lyft|ola\b|taxi|railway|irctc|hotel|booking\.com)\b`)},
	{"Fuel", regexp.MustCompile(`(?i)\b(fuel|petrol|diesel|gas\s*station|filling\s*station|shell\b|bp\b)\b`)},
	{"Healthcare", regexp.MustCompile(`(?i)\b(hospital|clinic|pharmacy|medical|doctor|diagnostic)\b`)},
	{"Education", regexp.MustCompile(`(?i)\b(tuition|school\s*fee|college|university|course\s*fee)\b`)},
	{"Entertainment", regexp.MustCompile(`(?i)\b(netflix|spotify|prime\s*video|cinema|movie|theatre)\b`)},
	{"Investment", regexp.MustCompile(`(?i)\b(mutual\s*fund|sip\b|dividend|brokerage|stock\s*purchase|equity)\b`)},
	{"Bank_Charges", regexp.MustCompile(`(?i)\b(service\s*charge|bank\s*fee|annual\s*fee|maintenance\s*fee|penalty|overdraft\s*fee)\b`)},
}
