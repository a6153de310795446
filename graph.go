package oneline

import "slices"

// Graph is the endpoint proximity graph of a [Store]: two endpoints of
// different strokes are adjacent if they are closer than the cutoff distance.
// Moving along an edge is the only legal way to get from one stroke to
// another. A Graph is immutable and safe for concurrent use.
type Graph struct {
	cutoff float64
	edges  int

	// adj[i][e] lists the endpoints near end e of stroke i.
	adj [][2][]EndpointRef
}

// BuildGraph computes the proximity graph of st for the given cutoff. Pairs of
// endpoints at a distance strictly below cutoff are adjacent. A cutoff that is
// not positive yields a graph without edges.
//
// Adjacency is symmetric, and neighbour lists are in the order the pairs are
// discovered: by the lower stroke index, then the higher, then by end.
func BuildGraph(st *Store, cutoff float64) *Graph {
	n := st.Len()
	g := &Graph{
		cutoff: cutoff,
		adj:    make([][2][]EndpointRef, n),
	}
	if !(cutoff > 0) {
		return g
	}
	r2 := cutoff * cutoff

	boxes := make([]Rect, n)
	for i, s := range st.All() {
		boxes[i] = NewRectFromPoints(s.A, s.B).Inflate(cutoff, cutoff)
	}

	for i := 0; i < n; i++ {
		si := st.Stroke(i)
		for j := i + 1; j < n; j++ {
			if !boxes[i].Overlaps(boxes[j]) {
				continue
			}
			sj := st.Stroke(j)
			for _, ei := range [2]End{EndA, EndB} {
				for _, ej := range [2]End{EndA, EndB} {
					if si.Endpoint(ei).DistanceSquared(sj.Endpoint(ej)) < r2 {
						g.link(EndpointRef{i, ei}, EndpointRef{j, ej})
					}
				}
			}
		}
	}
	return g
}

func (g *Graph) link(p, q EndpointRef) {
	g.adj[p.Stroke][p.End] = append(g.adj[p.Stroke][p.End], q)
	g.adj[q.Stroke][q.End] = append(g.adj[q.Stroke][q.End], p)
	g.edges++
}

// Cutoff returns the distance cutoff the graph was built with.
func (g *Graph) Cutoff() float64 {
	return g.cutoff
}

// Len returns the number of strokes the graph covers.
func (g *Graph) Len() int {
	return len(g.adj)
}

// Edges returns the number of undirected edges.
func (g *Graph) Edges() int {
	return g.edges
}

// Neighbors returns the endpoints adjacent to r. The returned slice is shared
// and must not be modified. Out-of-range references have no neighbours.
func (g *Graph) Neighbors(r EndpointRef) []EndpointRef {
	if r.Stroke < 0 || r.Stroke >= len(g.adj) || r.End > EndB {
		return nil
	}
	return g.adj[r.Stroke][r.End]
}

// Adjacent reports whether p and q are neighbours.
func (g *Graph) Adjacent(p, q EndpointRef) bool {
	return slices.Contains(g.Neighbors(p), q)
}
