package oneline

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/pkg/errors"
)

// PathNode is one stroke of a path, entered through EndpointRef, with the
// path's cumulative length and score up to and including it.
type PathNode struct {
	EndpointRef
	Length float64
	Score  float64
}

// Path is an ordered sequence of path nodes. No stroke appears twice, and the
// exit of every node is adjacent to the entry of the next.
type Path []PathNode

// Score returns the cumulative score of the whole path.
func (p Path) Score() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].Score
}

// Length returns the cumulative length of the whole path.
func (p Path) Length() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].Length
}

// Refs returns the entry endpoints of the path in order.
func (p Path) Refs() []EndpointRef {
	out := make([]EndpointRef, len(p))
	for i, n := range p {
		out[i] = n.EndpointRef
	}
	return out
}

func (p Path) String() string {
	var sb strings.Builder
	for i, n := range p {
		if i > 0 {
			sb.WriteString(" → ")
		}
		sb.WriteString(n.EndpointRef.String())
	}
	return sb.String()
}

// Check verifies the path invariants against g: strokes are in range and
// visited at most once, and consecutive nodes are joined by graph edges.
func (p Path) Check(g *Graph) error {
	seen := make(map[int]bool, len(p))
	for i, n := range p {
		if n.Stroke < 0 || n.Stroke >= g.Len() {
			return errors.Errorf("node %d: stroke %d out of range", i, n.Stroke)
		}
		if seen[n.Stroke] {
			return errors.Errorf("node %d: stroke %d visited twice", i, n.Stroke)
		}
		seen[n.Stroke] = true
		if i > 0 && !g.Adjacent(p[i-1].Exit(), n.EndpointRef) {
			return errors.Errorf("node %d: %s is not adjacent to %s", i, n.EndpointRef, p[i-1].Exit())
		}
	}
	return nil
}

// PathSearch finds a high-scoring path through the proximity graph, starting
// at the given entry endpoint and stopping once the path is at least
// maxLength long.
//
// FindPath returns an empty path if start does not name a usable stroke or
// maxLength is not a positive number, and a single-node path if no
// admissible transition leaves start. When ctx is cancelled, the best path
// found so far is returned.
type PathSearch interface {
	FindPath(ctx context.Context, start EndpointRef, maxLength float64) Path
}

// Strategy selects a [PathSearch] implementation.
type Strategy uint8

const (
	// Backtrack is depth-first backtracking with score-decay pruning. It is
	// the default.
	Backtrack Strategy = iota
	// Deepen commits a few strokes at a time after each depth-bounded
	// lookahead.
	Deepen
)

func (s Strategy) String() string {
	switch s {
	case Backtrack:
		return "backtrack"
	case Deepen:
		return "deepening"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy parses the names returned by [Strategy.String].
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "backtrack", "backtracking":
		return Backtrack, nil
	case "deepen", "deepening":
		return Deepen, nil
	default:
		return 0, errors.Wrapf(ErrInvalidConfig, "unknown strategy %q", name)
	}
}

// SearchOptions tune both search strategies.
type SearchOptions struct {
	Score ScoreOptions `yaml:"score"`
	// PruneBias shapes the decay d/(d+PruneBias) applied to the best score
	// seen so far; a branch at depth d whose score falls below the decayed
	// best is abandoned. Larger values prune less.
	PruneBias float64 `yaml:"prune_bias"`
	// MaxExpansions bounds the number of nodes a single FindPath call
	// visits. Zero means no bound.
	MaxExpansions int `yaml:"max_expansions"`
	// DepthStep is the lookahead depth of the deepening strategy.
	DepthStep int `yaml:"depth_step"`
	// CommitStep is the number of lookahead nodes the deepening strategy
	// keeps per round.
	CommitStep int `yaml:"commit_step"`
}

// DefaultSearchOptions returns the default search tuning.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Score:         DefaultScoreOptions(),
		PruneBias:     5,
		MaxExpansions: 1 << 20,
		DepthStep:     6,
		CommitStep:    2,
	}
}

// NewSearch returns the search implementation for strategy s.
func NewSearch(s Strategy, st *Store, g *Graph, opts SearchOptions) (PathSearch, error) {
	switch s {
	case Backtrack:
		return NewBacktracking(st, g, opts), nil
	case Deepen:
		return NewDeepening(st, g, opts), nil
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown strategy %s", s)
	}
}

// candidate is an admissible move out of the last node of the partial path.
type candidate struct {
	ref    EndpointRef
	delta  float64 // transition score
	dist   float64 // connector length
	length float64 // connector plus stroke length
	gain   float64 // score added to the path
}

// rankCandidates orders by transition score, then shorter connectors, then
// stroke and end, so that exploration order is fully deterministic.
func rankCandidates(a, b any) int {
	x, y := a.(candidate), b.(candidate)
	if c := cmp.Compare(y.delta, x.delta); c != 0 {
		return c
	}
	if c := cmp.Compare(x.dist, y.dist); c != 0 {
		return c
	}
	if c := cmp.Compare(x.ref.Stroke, y.ref.Stroke); c != 0 {
		return c
	}
	return cmp.Compare(x.ref.End, y.ref.End)
}

// searchState is everything one FindPath call owns.
type searchState struct {
	ctx   context.Context
	st    *Store
	g     *Graph
	m     *Metrics
	opts  SearchOptions
	queue *priorityqueue.Queue

	nodes   Path
	visited []bool

	expansions int
	stopped    bool
}

// newSearchState validates the start and returns the state together with the
// root node.
func newSearchState(ctx context.Context, st *Store, g *Graph, opts SearchOptions, start EndpointRef, maxLength float64) (*searchState, PathNode, bool) {
	if !st.Contains(start) || !(maxLength > 0) || math.IsInf(maxLength, 1) {
		return nil, PathNode{}, false
	}
	if st.Stroke(start.Stroke).Degenerate() {
		return nil, PathNode{}, false
	}
	s := &searchState{
		ctx:     ctx,
		st:      st,
		g:       g,
		m:       NewMetrics(st, opts.Score),
		opts:    opts,
		queue:   priorityqueue.NewWith(rankCandidates),
		visited: make([]bool, st.Len()),
	}
	root := PathNode{EndpointRef: start, Length: s.m.Length(start)}
	return s, root, true
}

func (s *searchState) push(n PathNode) {
	s.nodes = append(s.nodes, n)
	s.visited[n.Stroke] = true
}

func (s *searchState) pop() {
	n := s.nodes[len(s.nodes)-1]
	s.visited[n.Stroke] = false
	s.nodes = s.nodes[:len(s.nodes)-1]
}

// exhausted counts one expansion and reports whether the search must stop,
// either because the expansion budget is spent or because ctx is done.
func (s *searchState) exhausted() bool {
	if s.stopped {
		return true
	}
	s.expansions++
	if s.opts.MaxExpansions > 0 && s.expansions > s.opts.MaxExpansions {
		s.stopped = true
	} else if s.expansions%256 == 0 && s.ctx.Err() != nil {
		s.stopped = true
	}
	return s.stopped
}

// candidates returns the admissible moves out of the last node, best first.
func (s *searchState) candidates() []candidate {
	cur := s.nodes[len(s.nodes)-1]
	for _, n := range s.g.Neighbors(cur.Exit()) {
		if s.visited[n.Stroke] {
			continue
		}
		delta, t := s.m.score(cur.EndpointRef, n, s.nodes, s.visited)
		if !(delta > 0) {
			continue
		}
		strokeLen := s.m.Length(n)
		denom := strokeLen + 2*t.dist
		if !(denom > 0) {
			continue
		}
		s.queue.Enqueue(candidate{
			ref:    n,
			delta:  delta,
			dist:   t.dist,
			length: t.dist + strokeLen,
			gain:   delta / denom,
		})
	}

	out := make([]candidate, 0, s.queue.Size())
	for {
		v, ok := s.queue.Dequeue()
		if !ok {
			break
		}
		out = append(out, v.(candidate))
	}
	return out
}

// child returns the node reached by taking c from the last node.
func (s *searchState) child(c candidate) PathNode {
	cur := s.nodes[len(s.nodes)-1]
	return PathNode{
		EndpointRef: c.ref,
		Length:      cur.Length + c.length,
		Score:       cur.Score + c.gain,
	}
}
