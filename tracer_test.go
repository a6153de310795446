package oneline

import (
	"errors"
	"math"
	"testing"
)

func TestTracerOptionsValidate(t *testing.T) {
	if err := DefaultTracerOptions().Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	tests := []struct {
		name string
		mod  func(*TracerOptions)
	}{
		{"zero step", func(o *TracerOptions) { o.Step = 0 }},
		{"zero acceleration", func(o *TracerOptions) { o.Acceleration = 0 }},
		{"friction above 1", func(o *TracerOptions) { o.Friction = 1.5 }},
		{"negative lookahead", func(o *TracerOptions) { o.Lookahead = -1 }},
		{"zero dt", func(o *TracerOptions) { o.Dt = 0 }},
		{"full rewind", func(o *TracerOptions) { o.Rewind = 1 }},
		{"NaN tremor", func(o *TracerOptions) { o.Tremor = math.NaN() }},
		{"style above 1", func(o *TracerOptions) { o.Style = 2 }},
		{"negative noise", func(o *TracerOptions) { o.Noise = -0.1 }},
		{"negative max length", func(o *TracerOptions) { o.MaxLength = -1 }},
		{"negative max steps", func(o *TracerOptions) { o.MaxSteps = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultTracerOptions()
			tt.mod(&o)
			if _, err := NewTracer(o); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("got %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestTraceFollowsStrokes(t *testing.T) {
	strokes := chainStrokes()
	samples, err := Trace(strokes, DefaultTracerOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) < 10 {
		t.Fatalf("got %d samples", len(samples))
	}

	prev := Sample{Pos: strokes[0].A}
	for i, s := range samples {
		if !s.Pos.IsFinite() || math.IsNaN(s.Width) {
			t.Fatalf("sample %d is not finite: %+v", i, s)
		}
		if math.Abs(s.Distance-prev.Distance-s.Vel.Hypot()) > 1e-9 {
			t.Fatalf("sample %d: distance %g does not add up", i, s.Distance)
		}
		assertNear(t, s.Pos, prev.Pos.Translate(s.Vel), 1e-9)
		// The pen stays close to the strokes, which lie on the x axis.
		if math.Abs(s.Pos.Y) > 1 || s.Pos.X < -1 || s.Pos.X > 60 {
			t.Fatalf("sample %d strays to %s", i, s.Pos)
		}
		if s.Width <= 0 {
			t.Fatalf("sample %d has width %g", i, s.Width)
		}
		prev = s
	}
	if last := samples[len(samples)-1]; last.Pos.X < 40 {
		t.Errorf("pen stopped at %s", last.Pos)
	}
}

func TestTraceLimits(t *testing.T) {
	opts := DefaultTracerOptions()
	opts.MaxSteps = 10
	samples, err := Trace(chainStrokes(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 10 {
		t.Errorf("got %d samples, want 10", len(samples))
	}

	opts = DefaultTracerOptions()
	opts.MaxLength = 5
	samples, err = Trace(chainStrokes(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(samples); n == 0 || samples[n-1].Distance <= 5 {
		t.Fatalf("trace does not reach the length limit: %d samples", n)
	}
	for _, s := range samples[:len(samples)-1] {
		if s.Distance > 5 {
			t.Fatalf("trace continues past the length limit")
		}
	}

	samples, err = Trace(nil, DefaultTracerOptions())
	if err != nil || len(samples) != 0 {
		t.Errorf("got %d samples and %v for no strokes", len(samples), err)
	}
}

func TestTraceDeterministic(t *testing.T) {
	opts := DefaultTracerOptions()
	opts.Noise = 0.3
	opts.Tremor = 0.01
	opts.Seed = 42
	st := NewStore(randomStrokes(4, 6))
	var strokes []Stroke
	for _, s := range st.All() {
		strokes = append(strokes, s)
	}

	a, err := Trace(strokes, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Trace(strokes, opts)
	diff(t, a, b)

	// The seed only changes the jitter of the width.
	opts.Seed = 43
	c, _ := Trace(strokes, opts)
	if len(a) != len(c) {
		t.Fatalf("got %d and %d samples", len(a), len(c))
	}
	same := true
	for i := range a {
		assertNear(t, a[i].Pos, c[i].Pos, 0)
		same = same && a[i].Width == c[i].Width
	}
	if same {
		t.Error("different seeds produced identical widths")
	}
}

func TestTracerSamplesStop(t *testing.T) {
	tr, err := NewTracer(DefaultTracerOptions())
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for range tr.Samples(chainStrokes()) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("got %d samples, want 3", n)
	}
}

func TestPenWidth(t *testing.T) {
	if w := penWidth(0, 0.5); w != 0 {
		t.Errorf("resting pen has width %g", w)
	}
	prev := 0.0
	for _, speed := range []float64{0.1, 0.5, 1, 2, 4} {
		w := penWidth(speed, 0.5)
		if !(w > prev) {
			t.Errorf("width %g at speed %g not above %g", w, speed, prev)
		}
		prev = w
	}
}
