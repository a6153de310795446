package oneline

import (
	"iter"
	"slices"
	"sync/atomic"

	"github.com/pkg/errors"
)

// PointID is the identity token of one point slot of a stored stroke. IDs are
// unique across every Store of the process; two points with equal coordinates
// in different slots have different IDs. The zero PointID names no point.
type PointID uint64

// point slots of a stroke, in PointID order
const (
	slotA = iota
	slotB
	slotC1
	slotC2
	slotsPerStroke
)

var lastPointID atomic.Uint64

// Store is an immutable, ordered collection of strokes. It is safe for
// concurrent use.
type Store struct {
	strokes []Stroke
	base    PointID
	bbox    Rect
}

// NewStore returns a Store holding a copy of strokes and issues the PointIDs
// of all their points.
func NewStore(strokes []Stroke) *Store {
	n := uint64(len(strokes) * slotsPerStroke)
	last := lastPointID.Add(n)
	bbox := EmptyRect
	for _, s := range strokes {
		bbox = bbox.Union(s.BoundingBox())
	}
	return &Store{
		strokes: slices.Clone(strokes),
		base:    PointID(last - n + 1),
		bbox:    bbox,
	}
}

// Len returns the number of strokes.
func (st *Store) Len() int {
	return len(st.strokes)
}

// Stroke returns the stroke at index i.
func (st *Store) Stroke(i int) Stroke {
	return st.strokes[i]
}

// All iterates over the strokes in order.
func (st *Store) All() iter.Seq2[int, Stroke] {
	return slices.All(st.strokes)
}

// Contains reports whether r refers to a stroke of st.
func (st *Store) Contains(r EndpointRef) bool {
	return r.Stroke >= 0 && r.Stroke < len(st.strokes) && r.End <= EndB
}

// Point returns the coordinates of the endpoint r.
func (st *Store) Point(r EndpointRef) Point {
	return st.strokes[r.Stroke].Endpoint(r.End)
}

// BoundingBox returns the union of all stroke bounding boxes. It is
// [EmptyRect] for an empty store.
func (st *Store) BoundingBox() Rect {
	return st.bbox
}

func (st *Store) slotID(stroke, slot int) PointID {
	return st.base + PointID(stroke*slotsPerStroke+slot)
}

// EndpointID returns the identity of the endpoint r.
func (st *Store) EndpointID(r EndpointRef) PointID {
	if r.End == EndA {
		return st.slotID(r.Stroke, slotA)
	}
	return st.slotID(r.Stroke, slotB)
}

// ControlID returns the identity of the control point adjacent to the
// endpoint r, mirroring [Stroke.Control].
func (st *Store) ControlID(r EndpointRef) PointID {
	if st.strokes[r.Stroke].Kind == Cubic && r.End == EndB {
		return st.slotID(r.Stroke, slotC2)
	}
	return st.slotID(r.Stroke, slotC1)
}

// Validate reports the first stroke that the engine cannot score. Weights
// must be finite and non-negative and the geometry must not be degenerate.
// Invalid strokes are still accepted by the engine, which treats them as
// unreachable; Validate lets producers catch them early.
func (st *Store) Validate() error {
	for i, s := range st.strokes {
		if s.Weight < 0 || !isFinite(s.Weight) {
			return errors.Wrapf(ErrInvalidStroke, "stroke %d: weight %g", i, s.Weight)
		}
		if s.Kind > Cubic {
			return errors.Wrapf(ErrInvalidStroke, "stroke %d: %s", i, s.Kind)
		}
		if s.Degenerate() {
			return errors.Wrapf(ErrDegenerateGeometry, "stroke %d", i)
		}
	}
	return nil
}
