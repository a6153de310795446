package oneline

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Edge is a side of the drawing that paths preferably start from.
type Edge uint8

const (
	Left Edge = iota
	Right
	Top
	Bottom
)

func (e Edge) String() string {
	switch e {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Edge(%d)", uint8(e))
	}
}

// ParseEdge parses the names returned by [Edge.String].
func ParseEdge(name string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	default:
		return 0, errors.Wrapf(ErrInvalidConfig, "unknown edge %q", name)
	}
}

// distance returns how far p is from the side e of r.
func (e Edge) distance(r Rect, p Point) float64 {
	switch e {
	case Right:
		return math.Abs(r.X1 - p.X)
	case Top:
		return math.Abs(p.Y - r.Y0)
	case Bottom:
		return math.Abs(r.Y1 - p.Y)
	default:
		return math.Abs(p.X - r.X0)
	}
}

// RankStarts orders the strokes of st as start candidates. Strokes close to
// the given edge of the drawing come first, with heavier strokes pulled
// forward: the rank key is the distance of the nearer endpoint divided by
// 2 + weight. Each candidate enters through its nearer endpoint. Degenerate
// strokes are left out; ties keep store order.
func RankStarts(st *Store, edge Edge) []EndpointRef {
	type ranked struct {
		ref EndpointRef
		key float64
	}
	bbox := st.BoundingBox()
	var rs []ranked
	for i, s := range st.All() {
		if s.Degenerate() {
			continue
		}
		da, db := edge.distance(bbox, s.A), edge.distance(bbox, s.B)
		r := ranked{ref: EndpointRef{i, EndA}, key: da}
		if db < da {
			r = ranked{ref: EndpointRef{i, EndB}, key: db}
		}
		r.key /= 2 + max(s.Weight, 0)
		if !isFinite(r.key) {
			r.key = math.Inf(1)
		}
		rs = append(rs, r)
	}
	slices.SortStableFunc(rs, func(a, b ranked) int {
		return cmp.Compare(a.key, b.key)
	})

	out := make([]EndpointRef, len(rs))
	for i, r := range rs {
		out[i] = r.ref
	}
	return out
}
