package oneline

import "fmt"

// Kind is the curve form of a [Stroke].
type Kind uint8

const (
	// Quadratic strokes have a single control point, C1.
	Quadratic Kind = iota
	// Cubic strokes have two control points; C1 follows A and C2 precedes B.
	Cubic
)

func (k Kind) String() string {
	switch k {
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// End names one of the two endpoints of a stroke.
type End uint8

const (
	EndA End = iota
	EndB
)

// Other returns the opposite endpoint.
func (e End) Other() End {
	return e ^ 1
}

func (e End) String() string {
	if e == EndA {
		return "A"
	}
	return "B"
}

// EndpointRef identifies one end of one stroke of a [Store]. It is the unit
// of graph adjacency and of path nodes, where it names the end the pen enters
// the stroke through.
type EndpointRef struct {
	Stroke int
	End    End
}

// Exit returns the reference to the opposite end of the same stroke.
func (r EndpointRef) Exit() EndpointRef {
	return EndpointRef{Stroke: r.Stroke, End: r.End.Other()}
}

func (r EndpointRef) String() string {
	return fmt.Sprintf("%d%s", r.Stroke, r.End)
}

// Stroke is the atomic drawable unit: a quadratic or cubic Bézier from A to B
// with an importance weight.
type Stroke struct {
	A      Point
	B      Point
	C1     Point
	C2     Point
	Kind   Kind
	Weight float64
}

// Quad returns a quadratic stroke from a to b with control point c.
func Quad(a, c, b Point, weight float64) Stroke {
	return Stroke{A: a, B: b, C1: c, Kind: Quadratic, Weight: weight}
}

// CubicStroke returns a cubic stroke from a to b with control points c1 and c2.
func CubicStroke(a, c1, c2, b Point, weight float64) Stroke {
	return Stroke{A: a, B: b, C1: c1, C2: c2, Kind: Cubic, Weight: weight}
}

// Endpoint returns the point at end e.
func (s Stroke) Endpoint(e End) Point {
	if e == EndA {
		return s.A
	}
	return s.B
}

// Control returns the control point adjacent to end e. For quadratic strokes
// this is always C1.
func (s Stroke) Control(e End) Point {
	if s.Kind == Cubic && e == EndB {
		return s.C2
	}
	return s.C1
}

// Controls returns the interior control points in A-to-B order.
func (s Stroke) Controls() []Point {
	if s.Kind == Cubic {
		return []Point{s.C1, s.C2}
	}
	return []Point{s.C1}
}

// Reverse returns a copy of s traversed from B to A: the endpoints swap, and
// so do the control points of a cubic. Weight and geometry are unchanged.
func (s Stroke) Reverse() Stroke {
	s.A, s.B = s.B, s.A
	if s.Kind == Cubic {
		s.C1, s.C2 = s.C2, s.C1
	}
	return s
}

// Oriented returns s oriented so that it is entered through end entry, that
// is, its A is the entry point.
func (s Stroke) Oriented(entry End) Stroke {
	if entry == EndB {
		return s.Reverse()
	}
	return s
}

// Curve returns the Bézier segment of the stroke.
func (s Stroke) Curve() ParametricCurve {
	if s.Kind == Cubic {
		return CubicBez{s.A, s.C1, s.C2, s.B}
	}
	return QuadBez{s.A, s.C1, s.B}
}

// Eval evaluates the stroke's curve at t ∈ [0, 1].
func (s Stroke) Eval(t float64) Point {
	return s.Curve().Eval(t)
}

// BoundingBox returns a box that contains the stroke. It is the box of the
// control polygon and may be larger than the tight bounds of the curve.
func (s Stroke) BoundingBox() Rect {
	if s.Kind == Cubic {
		return CubicBez{s.A, s.C1, s.C2, s.B}.Hull()
	}
	return QuadBez{s.A, s.C1, s.B}.Hull()
}

// degenerateEpsilon is the squared distance below which two points count as
// coincident for tangent and length purposes.
const degenerateEpsilon = 1e-12

// Degenerate reports whether the stroke cannot take part in scoring: it has
// a non-finite coordinate, its endpoints coincide, or a control point
// coincides with its adjacent endpoint so that the tangent there is
// undefined.
func (s Stroke) Degenerate() bool {
	for _, p := range []Point{s.A, s.B, s.C1, s.C2} {
		if !p.IsFinite() {
			return true
		}
	}
	if s.A.DistanceSquared(s.B) <= degenerateEpsilon {
		return true
	}
	return s.Control(EndA).DistanceSquared(s.A) <= degenerateEpsilon ||
		s.Control(EndB).DistanceSquared(s.B) <= degenerateEpsilon
}
