package model

import "testing"

func TestGradeFor(t *testing.T) {
	cases := []struct {
		overall float64
		want    ConfidenceGrade
	}{
		{95, GradeA},
		{90, GradeA},
		{89.9, GradeB},
		{75, GradeB},
		{60, GradeC},
		{40, GradeD},
		{39.9, GradeF},
		{0, GradeF},
	}
	for _, c := range cases {
		if got := GradeFor(c.overall); got != c.want {
			t.Errorf("GradeFor(%v) = %v, want %v", c.overall, got, c.want)
		}
	}
}

func TestBoundingBoxValidate(t *testing.T) {
	if err := (BoundingBox{Width: 10, Height: 5}).Validate(); err != nil {
		t.Errorf("valid box rejected: %v", err)
	}
	if err := (BoundingBox{Width: -1, Height: 5}).Validate(); err == nil {
		t.Error("negative width accepted")
	}
	if err := (BoundingBox{Width: 1, Height: -5}).Validate(); err == nil {
		t.Error("negative height accepted")
	}
}

func TestBoundingBoxEdges(t *testing.T) {
	b := BoundingBox{X: 10, Y: 20, Width: 4, Height: 6}
	if b.Left() != 10 || b.Right() != 14 {
		t.Errorf("Left/Right = %v/%v, want 10/14", b.Left(), b.Right())
	}
	if b.Top() != 20 || b.Bottom() != 26 {
		t.Errorf("Top/Bottom = %v/%v, want 20/26", b.Top(), b.Bottom())
	}
	if b.CenterX() != 12 {
		t.Errorf("CenterX = %v, want 12", b.CenterX())
	}
}

func TestLineText(t *testing.T) {
	l := Line{Fragments: []TextFragment{{Text: "10/01/2026"}, {Text: "Salary"}, {Text: "100.00"}}}
	want := "10/01/2026 Salary 100.00"
	if got := l.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestColumnBoundaryValidate(t *testing.T) {
	if err := (ColumnBoundary{X0: 0, X1: 10}).Validate(); err != nil {
		t.Errorf("valid boundary rejected: %v", err)
	}
	if err := (ColumnBoundary{X0: 10, X1: 10}).Validate(); err == nil {
		t.Error("equal x0/x1 accepted")
	}
	if err := (ColumnBoundary{X0: 20, X1: 10}).Validate(); err == nil {
		t.Error("x0 > x1 accepted")
	}
}
