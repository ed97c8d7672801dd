package gview

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p, q := Pt(3, 4), Pt(-1, 2)

	if got, want := p.Add(q), Pt(2, 6); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
	if got, want := p.Sub(q), Pt(4, 2); got != want {
		t.Errorf("Sub = %v, want %v", got, want)
	}
	if got, want := p.Mul(2), Pt(6, 8); got != want {
		t.Errorf("Mul = %v, want %v", got, want)
	}
	if got := p.Length(); math.Abs(got-5) > eps {
		t.Errorf("Length = %v, want 5", got)
	}
}

func TestPointMinMax(t *testing.T) {
	p, q := Pt(3, -4), Pt(-1, 2)

	if got, want := p.Min(q), Pt(-1, -4); got != want {
		t.Errorf("Min = %v, want %v", got, want)
	}
	if got, want := p.Max(q), Pt(3, 2); got != want {
		t.Errorf("Max = %v, want %v", got, want)
	}
}
