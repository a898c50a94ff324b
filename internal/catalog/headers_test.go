package catalog

import (
	"testing"

	"github.com/ledgerscan/statement-engine/internal/model"
)

func TestLookupHeader(t *testing.T) {
	cases := []struct {
		in     string
		want   model.ColumnType
		wantOK bool
	}{
		{"Date", model.ColDate, true},
		{" BALANCE ", model.ColBalance, true},
		{"Withdrawal Amt.", model.ColDebit, true},
		{"saldo", model.ColBalance, true},
		{"Ref. No.", model.ColReference, true},
		{"totally unknown header", "", false},
	}
	for _, c := range cases {
		got, ok := LookupHeader(c.in)
		if ok != c.wantOK {
			t.Errorf("LookupHeader(%q) ok = %v, want %v", c.in, ok, c.wantOK)
			continue
		}
		if ok && got != c.want {
			t.Errorf("LookupHeader(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDebitCreditSynonyms(t *testing.T) {
	if !DebitSynonyms.MatchString("Debit") {
		t.Error("DebitSynonyms should match \"Debit\"")
	}
	if !CreditSynonyms.MatchString("CR") {
		t.Error("CreditSynonyms should match \"CR\"")
	}
	if DebitSynonyms.MatchString("Credit") {
		t.Error("DebitSynonyms should not match \"Credit\"")
	}
}
