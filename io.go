package oneline

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// The strokes file format:
//
//	strokes:
//	  - {a: [0, 0], c: [5, 2], b: [10, 0], weight: 1}
//	  - {a: [10, 0], c1: [12, 3], c2: [18, 3], b: [20, 0]}
//
// A stroke with c is quadratic; one with c1 and c2 is cubic. The weight
// defaults to 1.

type strokesDoc struct {
	Strokes []strokeDoc `yaml:"strokes"`
}

type strokeDoc struct {
	A      []float64 `yaml:"a,flow"`
	C      []float64 `yaml:"c,flow,omitempty"`
	C1     []float64 `yaml:"c1,flow,omitempty"`
	C2     []float64 `yaml:"c2,flow,omitempty"`
	B      []float64 `yaml:"b,flow"`
	Weight *float64  `yaml:"weight,omitempty"`
}

func pointDoc(p Point) []float64 {
	return []float64{p.X, p.Y}
}

func parsePoint(v []float64, key string) (Point, error) {
	if len(v) != 2 {
		return Point{}, errors.Wrapf(ErrInvalidStroke, "%s: want [x, y], got %d values", key, len(v))
	}
	return Pt(v[0], v[1]), nil
}

func newStrokeDoc(s Stroke) strokeDoc {
	w := s.Weight
	d := strokeDoc{A: pointDoc(s.A), B: pointDoc(s.B), Weight: &w}
	if s.Kind == Cubic {
		d.C1, d.C2 = pointDoc(s.C1), pointDoc(s.C2)
	} else {
		d.C = pointDoc(s.C1)
	}
	return d
}

func (d strokeDoc) stroke() (Stroke, error) {
	a, err := parsePoint(d.A, "a")
	if err != nil {
		return Stroke{}, err
	}
	b, err := parsePoint(d.B, "b")
	if err != nil {
		return Stroke{}, err
	}
	w := 1.0
	if d.Weight != nil {
		w = *d.Weight
	}

	switch {
	case d.C != nil && d.C1 == nil && d.C2 == nil:
		c, err := parsePoint(d.C, "c")
		if err != nil {
			return Stroke{}, err
		}
		return Quad(a, c, b, w), nil
	case d.C == nil && d.C1 != nil && d.C2 != nil:
		c1, err := parsePoint(d.C1, "c1")
		if err != nil {
			return Stroke{}, err
		}
		c2, err := parsePoint(d.C2, "c2")
		if err != nil {
			return Stroke{}, err
		}
		return CubicStroke(a, c1, c2, b, w), nil
	default:
		return Stroke{}, errors.Wrap(ErrInvalidStroke, "need either c or both c1 and c2")
	}
}

// ReadStrokes decodes a strokes file.
func ReadStrokes(r io.Reader) ([]Stroke, error) {
	var doc strokesDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse strokes")
	}
	out := make([]Stroke, 0, len(doc.Strokes))
	for i, d := range doc.Strokes {
		s, err := d.stroke()
		if err != nil {
			return nil, errors.Wrapf(err, "stroke %d", i)
		}
		out = append(out, s)
	}
	return out, nil
}

// WriteStrokes encodes strokes in the format read by [ReadStrokes].
func WriteStrokes(w io.Writer, strokes []Stroke) error {
	doc := strokesDoc{Strokes: make([]strokeDoc, len(strokes))}
	for i, s := range strokes {
		doc.Strokes[i] = newStrokeDoc(s)
	}
	return encodeYAML(w, doc)
}

type planDoc struct {
	RunID    string      `yaml:"run_id"`
	Start    string      `yaml:"start,omitempty"`
	Attempts int         `yaml:"attempts"`
	Score    float64     `yaml:"score"`
	Length   float64     `yaml:"length"`
	Path     []nodeDoc   `yaml:"path"`
	Strokes  []strokeDoc `yaml:"strokes"`
}

type nodeDoc struct {
	Stroke int     `yaml:"stroke"`
	End    string  `yaml:"end"`
	Length float64 `yaml:"length"`
	Score  float64 `yaml:"score"`
}

// WritePlan encodes p as YAML. The resolved strokes are listed under the
// strokes key in the same form as a strokes file.
func WritePlan(w io.Writer, p Plan) error {
	doc := planDoc{
		RunID:    p.RunID.String(),
		Attempts: p.Attempts,
		Score:    p.Path.Score(),
		Length:   p.Path.Length(),
		Path:     make([]nodeDoc, len(p.Path)),
		Strokes:  make([]strokeDoc, len(p.Strokes)),
	}
	if len(p.Path) > 0 {
		doc.Start = p.Start.String()
	}
	for i, n := range p.Path {
		doc.Path[i] = nodeDoc{Stroke: n.Stroke, End: n.End.String(), Length: n.Length, Score: n.Score}
	}
	for i, s := range p.Strokes {
		doc.Strokes[i] = newStrokeDoc(s)
	}
	return encodeYAML(w, doc)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode yaml")
	}
	return errors.Wrap(enc.Close(), "failed to encode yaml")
}
