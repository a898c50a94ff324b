package classify

import (
	"testing"

	"github.com/ledgerscan/statement-engine/internal/model"
)

func cellFragment(text string, x, width float64) model.TextFragment {
	return model.TextFragment{Text: text, Box: model.BoundingBox{X: x, Width: width, Height: 10}}
}

func fiveColumnBoundaries() []model.ColumnBoundary {
	return []model.ColumnBoundary{
		{X0: 0, X1: 30},
		{X0: 30, X1: 100},
		{X0: 100, X1: 130},
		{X0: 130, X1: 160},
		{X0: 160, X1: 200},
	}
}

func TestClassifyColumnsAssignsRolesByContent(t *testing.T) {
	rows := []struct {
		date, desc, debit, credit, balance string
	}{
		{"15/01/2026", "Opening Balance Brought Forward", "", "", "1000.00"},
		{"16/01/2026", "Salary Credit From Employer", "", "2500.00", "3500.00"},
		{"17/01/2026", "ATM Cash Withdrawal At Branch", "200.00", "", "3300.00"},
		{"18/01/2026", "Utility Bill Payment Electric Co", "150.00", "", "3150.00"},
		{"19/01/2026", "Refund Credit From Merchant", "", "100.00", "3250.00"},
	}
	var lines []model.Line
	for _, r := range rows {
		lines = append(lines, model.Line{Fragments: []model.TextFragment{
			cellFragment(r.date, 5, 20),
			cellFragment(r.desc, 35, 60),
			cellFragment(r.debit, 105, 20),
			cellFragment(r.credit, 135, 20),
			cellFragment(r.balance, 165, 30),
		}})
	}
	region := model.TableRegion{DataLines: lines}

	out := ClassifyColumns(region, fiveColumnBoundaries())
	if len(out) != 5 {
		t.Fatalf("ClassifyColumns returned %d boundaries, want 5", len(out))
	}

	want := []model.ColumnType{model.ColDate, model.ColDescription, model.ColDebit, model.ColCredit, model.ColBalance}
	for i, col := range out {
		if col.InferredType != want[i] {
			t.Errorf("column %d InferredType = %v, want %v", i, col.InferredType, want[i])
		}
	}

	for i := 1; i < len(out); i++ {
		if out[i].X0 < out[i-1].X0 {
			t.Errorf("output not sorted by X0: %+v", out)
		}
	}
}

func TestClassifyColumnsEmptyBoundaries(t *testing.T) {
	if got := ClassifyColumns(model.TableRegion{}, nil); got != nil {
		t.Errorf("ClassifyColumns(nil boundaries) = %+v, want nil", got)
	}
}

func TestClassifyColumnsHeaderKeywordTakesPrecedence(t *testing.T) {
	lines := []model.Line{
		{Fragments: []model.TextFragment{
			cellFragment("Date", 5, 20),
			cellFragment("Balance", 35, 20),
		}},
		{Fragments: []model.TextFragment{
			cellFragment("15/01/2026", 5, 20),
			cellFragment("1000.00", 35, 20),
		}},
	}
	region := model.TableRegion{DataLines: lines}
	boundaries := []model.ColumnBoundary{{X0: 0, X1: 30}, {X0: 30, X1: 60}}

	out := ClassifyColumns(region, boundaries)
	if out[0].InferredType != model.ColDate {
		t.Errorf("header 'Date' should classify column as ColDate, got %v", out[0].InferredType)
	}
	if out[0].Confidence != 0.95 {
		t.Errorf("header-matched confidence = %v, want 0.95", out[0].Confidence)
	}
}

func TestDetectMergedAmountColumn(t *testing.T) {
	lines := []model.Line{
		{Fragments: []model.TextFragment{cellFragment("100.00 DR", 5, 20)}},
		{Fragments: []model.TextFragment{cellFragment("200.00 CR", 5, 20)}},
		{Fragments: []model.TextFragment{cellFragment("50.00 DR", 5, 20)}},
	}
	region := model.TableRegion{DataLines: lines}
	boundaries := []model.ColumnBoundary{{X0: 0, X1: 30}}

	out := ClassifyColumns(region, boundaries)
	if !out[0].Merged {
		t.Error("column mixing DR/CR suffixes should be flagged Merged")
	}
	if out[0].InferredType != model.ColAmount {
		t.Errorf("InferredType = %v, want ColAmount for merged column", out[0].InferredType)
	}
}
