package oneline

// ScoreOptions tune [Metrics.TransitionScore]. The defaults come from
// [DefaultScoreOptions]; none of the values has a derivation beyond producing
// long, smooth paths with few crossings.
type ScoreOptions struct {
	// ImportanceMix blends the candidate's weight toward 1: the importance
	// factor is lerp(1, weight, ImportanceMix), so at values below 1 strokes
	// of weight 0 stay reachable.
	ImportanceMix float64 `yaml:"importance_mix"`
	// AngleWeight blends the continuity factor toward 1.
	AngleWeight float64 `yaml:"angle_weight"`
	// Bias is subtracted from every transition so that near-worthless moves
	// become inadmissible.
	Bias float64 `yaml:"bias"`
	// CrossPenalty is subtracted for every stroke not yet on the path that
	// the connecting edge crosses.
	CrossPenalty float64 `yaml:"cross_penalty"`
	// VisitedCrossWeight times the stroke's weight is subtracted for every
	// stroke already on the path that the connecting edge crosses.
	VisitedCrossWeight float64 `yaml:"visited_cross_weight"`
	// ConnectorCrossWeight times the weight of the stroke it leads into is
	// subtracted for every connecting edge already on the path that the new
	// connecting edge crosses.
	ConnectorCrossWeight float64 `yaml:"connector_cross_weight"`
}

// DefaultScoreOptions returns the tuning used when a config leaves score
// options out.
func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{
		ImportanceMix:        0.4,
		AngleWeight:          0.9,
		Bias:                 0.001,
		CrossPenalty:         1,
		VisitedCrossWeight:   8,
		ConnectorCrossWeight: 4,
	}
}

// MetricsStats counts memo table hits and misses.
type MetricsStats struct {
	LengthHits       int
	LengthMisses     int
	TransitionHits   int
	TransitionMisses int
}

// transition is the path-independent part of a scored move, memoized under
// the identities of (prevControl, junction, candidateEntry, candidateControl).
type transition struct {
	ok       bool
	base     float64
	from, to Point
	dist     float64

	// strokes, other than the two joined, whose outline the connector crosses
	crosses []int
}

// Metrics computes stroke lengths and transition scores over one [Store],
// memoizing everything that depends only on point identities.
//
// A Metrics is search state: it is not safe for concurrent use, and each
// search owns its own.
type Metrics struct {
	st       *Store
	opts     ScoreOptions
	outlines []outline

	lengths     map[[4]PointID]float64
	transitions map[[4]PointID]*transition
	stats       MetricsStats
}

// NewMetrics returns an empty Metrics for st.
func NewMetrics(st *Store, opts ScoreOptions) *Metrics {
	return &Metrics{
		st:          st,
		opts:        opts,
		outlines:    newOutlines(st),
		lengths:     make(map[[4]PointID]float64),
		transitions: make(map[[4]PointID]*transition),
	}
}

// Stats returns the memo statistics accumulated so far.
func (m *Metrics) Stats() MetricsStats {
	return m.stats
}

// Length approximates the arc length of the stroke entered through r by the
// chords through its de Casteljau points: two chords for a quadratic stroke,
// three for a cubic one.
func (m *Metrics) Length(r EndpointRef) float64 {
	s := m.st.Stroke(r.Stroke)
	key := [4]PointID{m.st.EndpointID(r), m.st.ControlID(r), 0, m.st.EndpointID(r.Exit())}
	if s.Kind == Cubic {
		key[2] = m.st.ControlID(r.Exit())
	}
	if l, ok := m.lengths[key]; ok {
		m.stats.LengthHits++
		return l
	}
	m.stats.LengthMisses++

	n := 2
	if s.Kind == Cubic {
		n = 3
	}
	l := ChordLength(s.Oriented(r.End).Curve(), n)
	if !isFinite(l) {
		l = 0
	}
	m.lengths[key] = l
	return l
}

// TransitionScore scores the move from the stroke entered through cur to the
// stroke entered through next, given the partial path drawn so far (which
// normally ends with cur). The junction is the exit of cur. The score is never
// negative, and zero marks an inadmissible move. Moves from or to degenerate
// strokes always score zero.
func (m *Metrics) TransitionScore(cur, next EndpointRef, partial Path) float64 {
	if !m.st.Contains(cur) || !m.st.Contains(next) || cur.Stroke == next.Stroke {
		return 0
	}
	visited := make([]bool, m.st.Len())
	for _, n := range partial {
		if m.st.Contains(n.EndpointRef) {
			visited[n.Stroke] = true
		}
	}
	v, _ := m.score(cur, next, partial, visited)
	return v
}

// score is TransitionScore for callers that maintain the visited set. Both
// references must be valid.
func (m *Metrics) score(cur, next EndpointRef, partial Path, visited []bool) (float64, *transition) {
	t := m.transition(cur, next)
	if !t.ok || t.base <= 0 {
		return 0, t
	}
	v := t.base

	for _, k := range t.crosses {
		if visited[k] {
			v -= m.opts.VisitedCrossWeight * m.st.Stroke(k).Weight
		} else {
			v -= m.opts.CrossPenalty
		}
	}

	if t.dist > 0 && len(partial) > 1 {
		conn := Line{t.from, t.to}
		box := conn.BoundingBox()
		for i := 1; i < len(partial); i++ {
			prev := Line{m.st.Point(partial[i-1].Exit()), m.st.Point(partial[i].EndpointRef)}
			if !prev.BoundingBox().Overlaps(box) {
				continue
			}
			if conn.Crosses(prev) {
				v -= m.opts.ConnectorCrossWeight * m.st.Stroke(partial[i].Stroke).Weight
			}
		}
	}

	if !(v > 0) || !isFinite(v) {
		return 0, t
	}
	return v, t
}

func (m *Metrics) transition(cur, next EndpointRef) *transition {
	exit := cur.Exit()
	key := [4]PointID{
		m.st.ControlID(exit),
		m.st.EndpointID(exit),
		m.st.EndpointID(next),
		m.st.ControlID(next),
	}
	if t, ok := m.transitions[key]; ok {
		m.stats.TransitionHits++
		return t
	}
	m.stats.TransitionMisses++

	t := m.computeTransition(cur, next)
	m.transitions[key] = t
	return t
}

func (m *Metrics) computeTransition(cur, next EndpointRef) *transition {
	cs := m.st.Stroke(cur.Stroke)
	ns := m.st.Stroke(next.Stroke)
	exit := cur.End.Other()

	t := &transition{
		from: cs.Endpoint(exit),
		to:   ns.Endpoint(next.End),
	}
	if cs.Degenerate() || ns.Degenerate() {
		return t
	}

	in := t.from.Sub(cs.Control(exit))
	gap := t.to.Sub(t.from)
	out := ns.Control(next.End).Sub(t.to)
	t.dist = gap.Hypot()

	cosPrev, okPrev := in.Cos(gap)
	cosNext, okNext := gap.Cos(out)
	if !okPrev || !okNext {
		// The endpoints (nearly) touch: compare the tangents directly.
		c, _ := in.Cos(out)
		cosPrev, cosNext = c, c
		t.dist = 0
	}

	continuity := lerp(1, (cosNext+1)*(cosPrev+1)/4, m.opts.AngleWeight)
	importance := lerp(1, ns.Weight, m.opts.ImportanceMix)
	falloff := 1 / (1 + t.dist)
	t.base = importance*continuity*falloff - m.opts.Bias
	if !isFinite(t.base) {
		return t
	}
	t.ok = true

	if t.dist > 0 {
		conn := Line{t.from, t.to}
		box := conn.BoundingBox()
		for k := range m.outlines {
			if k == cur.Stroke || k == next.Stroke {
				continue
			}
			if m.outlines[k].crossedBy(conn, box) {
				t.crosses = append(t.crosses, k)
			}
		}
	}
	return t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
