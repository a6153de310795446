package oneline

import (
	"math"
	"testing"
)

func TestRectUnion(t *testing.T) {
	r := EmptyRect
	if !r.IsEmpty() {
		t.Error("EmptyRect is not empty")
	}
	r = r.Union(Rect{0, 0, 1, 1})
	diff(t, Rect{0, 0, 1, 1}, r)
	r = r.UnionPoint(Pt(-2, 5))
	diff(t, Rect{-2, 0, 1, 5}, r)
	if r.IsEmpty() {
		t.Error("non-empty rect reported as empty")
	}
	if (Rect{3, 3, 3, 3}).IsEmpty() {
		t.Error("zero-area rect reported as empty")
	}
}

func TestRectFromPoints(t *testing.T) {
	diff(t, Rect{0, 1, 10, 20}, NewRectFromPoints(Pt(10, 1), Pt(0, 20)))
	r := NewRectFromPoints(Pt(0, 0), Pt(4, 2))
	if r.Width() != 4 || r.Height() != 2 {
		t.Errorf("got size %gx%g, want 4x2", r.Width(), r.Height())
	}
	diff(t, Pt(2, 1), r.Center())
	diff(t, Rect{-1, -2, 5, 4}, r.Inflate(1, 2))
}

func TestRectOverlaps(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	tests := []struct {
		o    Rect
		want bool
	}{
		{Rect{5, 5, 15, 15}, true},
		{Rect{10, 0, 20, 10}, true},
		{Rect{10.5, 0, 20, 10}, false},
		{Rect{2, 2, 3, 3}, true},
		{Rect{0, -5, 10, -0.1}, false},
		{EmptyRect, false},
	}
	for _, tt := range tests {
		if got := r.Overlaps(tt.o); got != tt.want {
			t.Errorf("%v overlaps %v: got %t, want %t", r, tt.o, got, tt.want)
		}
	}
	if !math.IsInf(EmptyRect.X0, 1) {
		t.Error("EmptyRect was modified")
	}
}
