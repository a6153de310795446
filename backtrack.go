package oneline

import (
	"context"
	"slices"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Backtracking is a depth-first [PathSearch]. It explores candidates in rank
// order and abandons a branch whose score falls below a decayed fraction of
// the best partial score seen so far. The decay d/(d+PruneBias) at depth d
// tolerates weak prefixes near the start and tightens as paths grow.
//
// The best complete path is tracked across all branches. A path is complete
// when it reaches the length limit or its last stroke has no admissible
// continuation. Ties keep the path found first.
type Backtracking struct {
	st   *Store
	g    *Graph
	opts SearchOptions
}

// NewBacktracking returns a backtracking search over g.
func NewBacktracking(st *Store, g *Graph, opts SearchOptions) *Backtracking {
	return &Backtracking{st: st, g: g, opts: opts}
}

// frame is one level of the explicit recursion stack.
type frame struct {
	cands []candidate
	next  int
	// entered is set once any candidate survived pruning.
	entered bool
}

type backtrack struct {
	*searchState
	stack     *arraystack.Stack
	maxLength float64

	bestPrefix float64
	best       Path
	bestScore  float64
}

// FindPath implements [PathSearch].
func (b *Backtracking) FindPath(ctx context.Context, start EndpointRef, maxLength float64) Path {
	s, root, ok := newSearchState(ctx, b.st, b.g, b.opts, start, maxLength)
	if !ok {
		return nil
	}
	r := &backtrack{
		searchState: s,
		stack:       arraystack.New(),
		maxLength:   maxLength,
		bestScore:   -1,
	}
	r.run(root)
	return r.best
}

func (r *backtrack) run(root PathNode) {
	r.enter(root)
	for !r.stack.Empty() {
		top, _ := r.stack.Peek()
		f := top.(*frame)
		if f.next == len(f.cands) {
			if !f.entered {
				// Every continuation was pruned; the prefix is as far as
				// this branch gets.
				r.record()
			}
			r.stack.Pop()
			r.pop()
			continue
		}
		if r.exhausted() {
			r.record()
			return
		}
		c := f.cands[f.next]
		f.next++
		if r.enter(r.child(c)) {
			f.entered = true
		}
	}
}

// enter pushes n onto the path. If the path is complete it is recorded and n
// popped again; otherwise a frame for n's candidates is pushed. enter reports
// false if n was pruned.
func (r *backtrack) enter(n PathNode) bool {
	if d := len(r.nodes); d > 0 {
		if n.Score < r.bestPrefix*decay(d, r.opts.PruneBias) {
			return false
		}
		r.bestPrefix = max(r.bestPrefix, n.Score)
	}

	r.push(n)
	if n.Length >= r.maxLength {
		r.record()
		r.pop()
		return true
	}
	cands := r.candidates()
	if len(cands) == 0 {
		r.record()
		r.pop()
		return true
	}
	r.stack.Push(&frame{cands: cands})
	return true
}

func (r *backtrack) record() {
	if score := r.nodes.Score(); score > r.bestScore {
		r.best = slices.Clone(r.nodes)
		r.bestScore = score
	}
}

func decay(depth int, bias float64) float64 {
	d := float64(depth)
	if !(bias > 0) {
		return 1
	}
	return d / (d + bias)
}
