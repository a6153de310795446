package oneline

import "github.com/pkg/errors"

// Resolve turns a path into drawable geometry: the stroke of every node,
// oriented so that it starts at the node's entry endpoint. Consecutive
// resolved strokes run end to start, up to the connector gap.
func Resolve(st *Store, p Path) []Stroke {
	out := make([]Stroke, 0, len(p))
	for _, n := range p {
		out = append(out, st.Stroke(n.Stroke).Oriented(n.End))
	}
	return out
}

// Traversal recovers the entry endpoints of resolved strokes by matching
// them against st. It is the inverse of [Resolve] up to the scores and
// lengths, which it does not reconstruct. Identical strokes are matched in
// store order, each at most once.
func Traversal(st *Store, resolved []Stroke) ([]EndpointRef, error) {
	index := make(map[Stroke][]EndpointRef, 2*st.Len())
	for i, s := range st.All() {
		index[s] = append(index[s], EndpointRef{i, EndA})
		if r := s.Reverse(); r != s {
			index[r] = append(index[r], EndpointRef{i, EndB})
		}
	}

	used := make([]bool, st.Len())
	out := make([]EndpointRef, 0, len(resolved))
outer:
	for i, s := range resolved {
		for _, r := range index[s] {
			if !used[r.Stroke] {
				used[r.Stroke] = true
				out = append(out, r)
				continue outer
			}
		}
		return nil, errors.Errorf("resolved stroke %d matches no unused stroke", i)
	}
	return out, nil
}
