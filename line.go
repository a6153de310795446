package oneline

import "math"

// Line represents a line segment. It is a [ParametricCurve].
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ ParametricCurve = Line{}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

// Params solves for the parameters at which l and o, extended to infinity,
// meet. t is the position on l, u the position on o. It reports false for
// parallel, coincident or zero-length lines.
func (l Line) Params(o Line) (t, u float64, ok bool) {
	const epsilon = 1e-12
	da := l.P1.Sub(l.P0)
	db := o.P1.Sub(o.P0)
	det := da.Cross(db)
	if math.Abs(det) <= epsilon*da.Hypot()*db.Hypot() || det == 0 {
		return 0, 0, false
	}
	w := l.P0.Sub(o.P0)
	t = db.Cross(w) / det
	u = da.Cross(w) / det
	return t, u, true
}

// Crosses reports whether the segments l and o intersect. Touching at an
// endpoint counts as crossing; parallel segments never cross.
func (l Line) Crosses(o Line) bool {
	t, u, ok := l.Params(o)
	return ok && t >= 0 && t <= 1 && u >= 0 && u <= 1
}
