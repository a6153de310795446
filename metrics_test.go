package oneline

import (
	"math"
	"testing"
)

func TestMetricsLength(t *testing.T) {
	st := NewStore([]Stroke{
		seg(0, 0, 10, 0),
		Quad(Pt(0, 0), Pt(5, 5), Pt(10, 0), 1),
		CubicStroke(Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), 1),
	})
	m := NewMetrics(st, DefaultScoreOptions())

	tests := []struct {
		r    EndpointRef
		want float64
	}{
		{EndpointRef{0, EndA}, 10},
		{EndpointRef{0, EndB}, 10},
		{EndpointRef{1, EndA}, 2 * math.Hypot(5, 2.5)},
		{EndpointRef{1, EndB}, 2 * math.Hypot(5, 2.5)},
		{EndpointRef{2, EndA}, 3},
		{EndpointRef{2, EndB}, 3},
	}
	for _, tt := range tests {
		if got := m.Length(tt.r); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Length(%s) = %g, want %g", tt.r, got, tt.want)
		}
	}

	// A curved stroke is longer than its chord.
	if got := m.Length(EndpointRef{1, EndA}); got <= 10 {
		t.Errorf("curved stroke length %g not above its chord", got)
	}
}

func TestMetricsMemo(t *testing.T) {
	st := NewStore(chainStrokes())
	m := NewMetrics(st, DefaultScoreOptions())

	m.Length(EndpointRef{0, EndA})
	m.Length(EndpointRef{0, EndA})
	m.Length(EndpointRef{0, EndB})
	m.TransitionScore(EndpointRef{0, EndA}, EndpointRef{1, EndA}, nil)
	m.TransitionScore(EndpointRef{0, EndA}, EndpointRef{1, EndA}, nil)
	diff(t, MetricsStats{
		LengthHits:       1,
		LengthMisses:     2,
		TransitionHits:   1,
		TransitionMisses: 1,
	}, m.Stats())
}

func TestTransitionScoreShapes(t *testing.T) {
	const bias = 0.001
	tests := []struct {
		name    string
		strokes []Stroke
		want    float64
	}{
		{
			name:    "chain gap",
			strokes: []Stroke{seg(0, 0, 10, 0), seg(12, 0, 22, 0)},
			want:    1.0/3 - bias,
		},
		{
			name:    "touching straight",
			strokes: []Stroke{seg(0, 0, 10, 0), seg(10, 0, 20, 0)},
			want:    1 - bias,
		},
		{
			name:    "touching right angle",
			strokes: []Stroke{seg(0, 0, 10, 0), seg(10, 0, 10, 10)},
			want:    0.1 + 0.9*0.25 - bias,
		},
		{
			name:    "heavy candidate",
			strokes: []Stroke{seg(0, 0, 10, 0), Quad(Pt(10, 0), Pt(15, 0), Pt(20, 0), 3)},
			want:    (1 + 0.4*2) - bias,
		},
		{
			name:    "turning back",
			strokes: []Stroke{seg(0, 0, 10, 0), seg(10, 0, 0, 1)},
			want:    0.1 + 0.9*math.Pow(1-5/math.Hypot(5, 0.5), 2)/4 - bias,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStore(tt.strokes)
			m := NewMetrics(st, DefaultScoreOptions())
			got := m.TransitionScore(EndpointRef{0, EndA}, EndpointRef{1, EndA}, nil)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %.12g, want %.12g", got, tt.want)
			}
		})
	}
}

func TestTransitionScoreDegenerate(t *testing.T) {
	st := NewStore([]Stroke{
		seg(0, 0, 10, 0),
		Quad(Pt(12, 0), Pt(12, 0), Pt(20, 0), 1),
		Quad(Pt(12, 1), Pt(15, 1), Pt(12, 1), 1),
		Quad(Pt(12, 2), Pt(math.NaN(), 1), Pt(20, 2), 1),
	})
	m := NewMetrics(st, DefaultScoreOptions())
	for i := 1; i < st.Len(); i++ {
		for _, e := range []End{EndA, EndB} {
			next := EndpointRef{i, e}
			if got := m.TransitionScore(EndpointRef{0, EndA}, next, nil); got != 0 {
				t.Errorf("%s: got %g, want 0", next, got)
			}
			if got := m.TransitionScore(next, EndpointRef{0, EndA}, nil); got != 0 {
				t.Errorf("from %s: got %g, want 0", next, got)
			}
		}
	}
	if got := m.TransitionScore(EndpointRef{0, EndA}, EndpointRef{0, EndB}, nil); got != 0 {
		t.Errorf("self transition: got %g, want 0", got)
	}
	if got := m.TransitionScore(EndpointRef{0, EndA}, EndpointRef{8, EndB}, nil); got != 0 {
		t.Errorf("out of range: got %g, want 0", got)
	}
}

func TestTransitionScoreCrossing(t *testing.T) {
	st := NewStore(crossingStrokes())
	cur := EndpointRef{0, EndA}
	blocked := EndpointRef{1, EndA}
	clear := EndpointRef{3, EndA}

	m := NewMetrics(st, DefaultScoreOptions())
	sBlocked := m.TransitionScore(cur, blocked, nil)
	sClear := m.TransitionScore(cur, clear, nil)
	if sBlocked != 0 {
		t.Errorf("transition across the barrier scored %g, want 0", sBlocked)
	}
	if !(sClear > sBlocked) {
		t.Errorf("clear transition scored %g, not above %g", sClear, sBlocked)
	}

	// Without the penalty both transitions are mirror images.
	opts := DefaultScoreOptions()
	opts.CrossPenalty = 0
	m = NewMetrics(st, opts)
	if a, b := m.TransitionScore(cur, blocked, nil), m.TransitionScore(cur, clear, nil); math.Abs(a-b) > 1e-12 {
		t.Errorf("unpenalized scores differ: %g and %g", a, b)
	}

	// Crossing an already drawn stroke costs its weight times the factor.
	opts.VisitedCrossWeight = 0.001
	m = NewMetrics(st, opts)
	visited := Path{{EndpointRef: EndpointRef{2, EndB}}, {EndpointRef: cur}}
	want := sClear - 0.001*10
	if got := m.TransitionScore(cur, blocked, visited); math.Abs(got-want) > 1e-12 {
		t.Errorf("got %g, want %g", got, want)
	}
}

func TestTransitionScoreConnectorCrossing(t *testing.T) {
	// The connector 1B→2A cuts the earlier connector 0B→1A.
	st := NewStore([]Stroke{
		seg(0, 0, 10, 0),
		Quad(Pt(24, 50), Pt(22, 40), Pt(20, 30), 1),
		Quad(Pt(10, 20), Pt(5, 15), Pt(0, 10), 1),
	})
	cur := EndpointRef{1, EndA}
	next := EndpointRef{2, EndA}
	drawn := Path{{EndpointRef: EndpointRef{0, EndA}}, {EndpointRef: cur}}

	opts := DefaultScoreOptions()
	opts.ConnectorCrossWeight = 0.01
	m := NewMetrics(st, opts)
	alone := m.TransitionScore(cur, next, Path{{EndpointRef: cur}})
	if !(alone > 0.01) {
		t.Fatalf("unobstructed transition scored %g", alone)
	}
	if got := m.TransitionScore(cur, next, drawn); math.Abs(got-(alone-0.01)) > 1e-12 {
		t.Errorf("got %g, want %g", got, alone-0.01)
	}

	m = NewMetrics(st, DefaultScoreOptions())
	if got := m.TransitionScore(cur, next, drawn); got != 0 {
		t.Errorf("with the default weight got %g, want 0", got)
	}
}

func TestTransitionScoreFinite(t *testing.T) {
	st := NewStore(randomStrokes(3, 30))
	m := NewMetrics(st, DefaultScoreOptions())
	for i := range st.Len() {
		for j := range st.Len() {
			for _, e := range []End{EndA, EndB} {
				for _, f := range []End{EndA, EndB} {
					s := m.TransitionScore(EndpointRef{i, e}, EndpointRef{j, f}, nil)
					if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
						t.Fatalf("%d%s→%d%s scored %g", i, e, j, f, s)
					}
				}
			}
		}
	}
}
