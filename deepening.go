package oneline

import (
	"context"
	"slices"
)

// Deepening is a [PathSearch] that grows the path in rounds. Each round runs
// an exhaustive search up to DepthStep strokes beyond the committed path and
// keeps the first CommitStep strokes of the best extension, or all of it when
// the extension ends before the depth bound. Rounds stop when the committed
// path reaches the length limit or no extension exists.
//
// It explores far fewer nodes than [Backtracking] on dense drawings at the
// cost of never revisiting a committed choice.
type Deepening struct {
	st   *Store
	g    *Graph
	opts SearchOptions
}

// NewDeepening returns a deepening search over g.
func NewDeepening(st *Store, g *Graph, opts SearchOptions) *Deepening {
	return &Deepening{st: st, g: g, opts: opts}
}

// FindPath implements [PathSearch].
func (d *Deepening) FindPath(ctx context.Context, start EndpointRef, maxLength float64) Path {
	s, root, ok := newSearchState(ctx, d.st, d.g, d.opts, start, maxLength)
	if !ok {
		return nil
	}
	depth := max(d.opts.DepthStep, 1)
	commit := min(max(d.opts.CommitStep, 1), depth)

	s.push(root)
	for s.nodes.Length() < maxLength && !s.stopped {
		la := &lookahead{
			searchState: s,
			base:        len(s.nodes),
			limit:       depth,
			maxLength:   maxLength,
		}
		la.visit()
		ext := la.best
		if len(ext) == 0 {
			break
		}
		if len(ext) == depth && ext[len(ext)-1].Length < maxLength {
			ext = ext[:commit]
		}
		for _, n := range ext {
			s.push(n)
		}
	}
	return slices.Clone(s.nodes)
}

// lookahead is one depth-bounded round of [Deepening].
type lookahead struct {
	*searchState
	base      int
	limit     int
	maxLength float64

	best      Path
	bestScore float64
}

func (l *lookahead) visit() {
	depth := len(l.nodes) - l.base
	cur := l.nodes[len(l.nodes)-1]

	var cands []candidate
	terminal := depth >= l.limit || cur.Length >= l.maxLength
	if !terminal {
		cands = l.candidates()
		terminal = len(cands) == 0
	}
	if terminal || l.exhausted() {
		if depth > 0 && (l.best == nil || cur.Score > l.bestScore) {
			l.best = slices.Clone(l.nodes[l.base:])
			l.bestScore = cur.Score
		}
		return
	}

	for _, c := range cands {
		l.push(l.child(c))
		l.visit()
		l.pop()
		if l.stopped {
			return
		}
	}
}
