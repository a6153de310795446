package oneline

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

func TestReadStrokes(t *testing.T) {
	const in = `
strokes:
  - {a: [0, 0], c: [5, 2], b: [10, 0], weight: 2}
  - a: [10, 0]
    c1: [12, 3]
    c2: [18, 3]
    b: [20, 0]
`
	got, err := ReadStrokes(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Stroke{
		Quad(Pt(0, 0), Pt(5, 2), Pt(10, 0), 2),
		CubicStroke(Pt(10, 0), Pt(12, 3), Pt(18, 3), Pt(20, 0), 1),
	}, got)
}

func TestReadStrokesErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"both controls", "strokes: [{a: [0, 0], c: [1, 1], c1: [1, 1], c2: [2, 2], b: [3, 0]}]"},
		{"no control", "strokes: [{a: [0, 0], b: [3, 0]}]"},
		{"half cubic", "strokes: [{a: [0, 0], c1: [1, 1], b: [3, 0]}]"},
		{"short point", "strokes: [{a: [0], c: [1, 1], b: [3, 0]}]"},
		{"long point", "strokes: [{a: [0, 0, 0], c: [1, 1], b: [3, 0]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadStrokes(strings.NewReader(tt.in)); !errors.Is(err, ErrInvalidStroke) {
				t.Errorf("got %v, want %v", err, ErrInvalidStroke)
			}
		})
	}
	if _, err := ReadStrokes(strings.NewReader("strokes: [{a: [0, 0], c: [1, 1], b: [3, 0], colour: red}]")); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestStrokesRoundTrip(t *testing.T) {
	in := randomStrokes(9, 20)
	var buf bytes.Buffer
	if err := WriteStrokes(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadStrokes(&buf)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, in, out)

	out, err = ReadStrokes(strings.NewReader(""))
	if err != nil || len(out) != 0 {
		t.Errorf("empty input: got %v, %v", out, err)
	}
}

func TestWritePlan(t *testing.T) {
	st := NewStore(chainStrokes())
	p := Path{
		{EndpointRef: EndpointRef{1, EndB}, Length: 10},
		{EndpointRef: EndpointRef{0, EndB}, Length: 22, Score: 0.5},
	}
	plan := Plan{
		RunID:    uuid.MustParse("6f1c2a8e-35b1-4d0e-9a41-1d2b3c4d5e6f"),
		Start:    EndpointRef{1, EndB},
		Attempts: 2,
		Path:     p,
		Strokes:  Resolve(st, p),
	}
	var buf bytes.Buffer
	if err := WritePlan(&buf, plan); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		RunID    string `yaml:"run_id"`
		Start    string `yaml:"start"`
		Attempts int    `yaml:"attempts"`
		Score    float64
		Length   float64
		Path     []struct {
			Stroke int
			End    string
		}
		Strokes []map[string]any
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("%v\n%s", err, buf.String())
	}
	if doc.RunID != plan.RunID.String() || doc.Start != "1B" || doc.Attempts != 2 {
		t.Errorf("got header %q %q %d", doc.RunID, doc.Start, doc.Attempts)
	}
	if doc.Score != 0.5 || doc.Length != 22 {
		t.Errorf("got score %g and length %g", doc.Score, doc.Length)
	}
	if len(doc.Path) != 2 || doc.Path[1].Stroke != 0 || doc.Path[1].End != "B" {
		t.Errorf("got path %+v", doc.Path)
	}
	if len(doc.Strokes) != 2 {
		t.Errorf("got %d strokes", len(doc.Strokes))
	}
}
