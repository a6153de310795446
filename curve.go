package oneline

// ParametricCurve describes parametrized curves. These curves can be
// evaluated at t ∈ [0, 1] and return points in the drawing plane.
type ParametricCurve interface {
	// Eval evaluates the curve at parameter t. Generally, t is in the range [0, 1].
	Eval(t float64) Point
	Start() Point
	End() Point
}

// ChordLength approximates the arc length of c by the length of the polyline
// through n+1 evenly spaced parameter values. It underestimates the true arc
// length and converges to it as n grows.
func ChordLength(c ParametricCurve, n int) float64 {
	if n < 1 {
		n = 1
	}
	var l float64
	prev := c.Start()
	for i := 1; i < n; i++ {
		p := c.Eval(float64(i) / float64(n))
		l += p.Distance(prev)
		prev = p
	}
	return l + c.End().Distance(prev)
}
