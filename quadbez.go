package oneline

var _ ParametricCurve = QuadBez{}

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

// Hull returns the bounding box of the control polygon, which contains the
// curve.
func (q QuadBez) Hull() Rect {
	return NewRectFromPoints(q.P0, q.P2).UnionPoint(q.P1)
}
