package oneline

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

// seg returns a straight quadratic stroke with its control at the midpoint.
func seg(x0, y0, x1, y1 float64) Stroke {
	a, b := Pt(x0, y0), Pt(x1, y1)
	return Quad(a, a.Midpoint(b), b, 1)
}

// chainStrokes lays five straight strokes of length 10 end to end along the
// x axis, 2 apart.
func chainStrokes() []Stroke {
	var out []Stroke
	for i := range 5 {
		x := float64(12 * i)
		out = append(out, seg(x, 0, x+10, 0))
	}
	return out
}

// crossingStrokes has two continuations out of stroke 0: stroke 1, whose
// connector cuts the heavy barrier stroke 2, and stroke 3, whose connector is
// clear.
func crossingStrokes() []Stroke {
	barrier := Quad(Pt(6, 5), Pt(9, 5), Pt(14, 5), 10)
	return []Stroke{
		seg(0, 0, 10, 0),
		seg(10, 10, 20, 10),
		barrier,
		seg(10, -10, 20, -10),
	}
}

// randomStrokes scatters n short strokes over a 200×200 canvas. Every third
// stroke is cubic.
func randomStrokes(seed uint64, n int) []Stroke {
	rng := rand.New(rand.NewPCG(seed, 1))
	out := make([]Stroke, 0, n)
	for i := range n {
		a := Pt(rng.Float64()*200, rng.Float64()*200)
		angle := rng.Float64() * 2 * math.Pi
		length := 10 + rng.Float64()*20
		dir := Vec(math.Cos(angle), math.Sin(angle))
		perp := Vec(-dir.Y, dir.X)
		b := a.Translate(dir.Mul(length))
		w := 0.5 + rng.Float64()*1.5
		if i%3 == 2 {
			c1 := a.Translate(dir.Mul(length / 3)).Translate(perp.Mul(rng.Float64()*10 - 5))
			c2 := a.Translate(dir.Mul(2 * length / 3)).Translate(perp.Mul(rng.Float64()*10 - 5))
			out = append(out, CubicStroke(a, c1, c2, b, w))
			continue
		}
		c := a.Midpoint(b).Translate(perp.Mul(rng.Float64()*10 - 5))
		out = append(out, Quad(a, c, b, w))
	}
	return out
}
