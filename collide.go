package oneline

// coarseGeometry approximates a stroke for collision tests by the segments
// from its endpoints to the centroid of its control polygon, which outline one
// triangle for a quadratic stroke. A cubic stroke uses one centroid per
// endpoint-adjacent triangle and yields four segments.
func coarseGeometry(s Stroke) []Line {
	if s.Kind == Cubic {
		ma := Centroid(s.A, s.C1, s.C2)
		mb := Centroid(s.B, s.C1, s.C2)
		return []Line{
			{s.A, ma},
			{s.B, ma},
			{s.A, mb},
			{s.B, mb},
		}
	}
	m := Centroid(s.A, s.B, s.C1)
	return []Line{
		{s.A, m},
		{s.B, m},
	}
}

// outline is the precomputed collision geometry of one stroke.
type outline struct {
	box   Rect
	lines []Line
}

func newOutlines(st *Store) []outline {
	out := make([]outline, st.Len())
	for i, s := range st.All() {
		lines := coarseGeometry(s)
		box := EmptyRect
		for _, l := range lines {
			box = box.Union(l.BoundingBox())
		}
		out[i] = outline{box: box, lines: lines}
	}
	return out
}

// crossedBy reports whether the segment l crosses the outline.
func (o *outline) crossedBy(l Line, box Rect) bool {
	if !o.box.Overlaps(box) {
		return false
	}
	for _, e := range o.lines {
		if l.Crosses(e) {
			return true
		}
	}
	return false
}
