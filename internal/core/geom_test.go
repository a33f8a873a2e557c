package core

import "testing"

func TestRectIntersects(t *testing.T) {
	box := NewRect(0, 0, 8, 8)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", NewRect(4, 4, 8, 8), true},
		{"inside", NewRect(2, 2, 2, 2), true},
		{"corner pixel", NewRect(7, 7, 4, 4), true},
		{"touching right edge", NewRect(8, 0, 4, 8), false},
		{"touching bottom edge", NewRect(0, 8, 8, 4), false},
		{"far left", NewRect(-20, 0, 4, 4), false},
		{"empty", NewRect(4, 4, 0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.Intersects(tc.other); got != tc.want {
				t.Errorf("Intersects(%+v) = %v, expected %v", tc.other, got, tc.want)
			}
			if got := tc.other.Intersects(box); got != tc.want {
				t.Errorf("reversed Intersects(%+v) = %v, expected %v", tc.other, got, tc.want)
			}
		})
	}
}

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := NewRect(-4, 2, 6, 3)

	inside := []Point{Pt(-4, 2), Pt(1, 4), Pt(0, 3)}
	outside := []Point{Pt(2, 2), Pt(-4, 5), Pt(-5, 3), Pt(0, 1)}

	for _, p := range inside {
		if !r.Contains(p.X, p.Y) {
			t.Errorf("Contains(%d, %d) = false, expected true", p.X, p.Y)
		}
	}
	for _, p := range outside {
		if r.Contains(p.X, p.Y) {
			t.Errorf("Contains(%d, %d) = true, expected false", p.X, p.Y)
		}
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(-8, 16, 16, 7)

	if r.Right() != 8 || r.Bottom() != 23 {
		t.Errorf("Right(), Bottom() = %d, %d, expected 8, 23", r.Right(), r.Bottom())
	}
	if c := r.Center(); c != Pt(0, 19) {
		t.Errorf("Center() = %v, expected (0, 19)", c)
	}
}

func TestRectInset(t *testing.T) {
	if r := NewRect(10, 20, 6, 4).Inset(1); r != NewRect(11, 21, 4, 2) {
		t.Errorf("Inset(1) = %+v, expected {11 21 4 2}", r)
	}

	r := NewRect(0, 0, 2, 2).Inset(3)
	if r.W != 0 || r.H != 0 {
		t.Errorf("Inset past the size should collapse to zero, got %+v", r)
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, -4)
	q := Pt(-1, 10)

	if got := p.Add(q); got != Pt(2, 6) {
		t.Errorf("Add() = %v, expected (2, 6)", got)
	}
	if got := p.Sub(q); got != Pt(4, -14) {
		t.Errorf("Sub() = %v, expected (4, -14)", got)
	}
	if got := p.Add(q).Sub(q); got != p {
		t.Errorf("Add then Sub = %v, expected %v", got, p)
	}
}
