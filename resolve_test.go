package oneline

import (
	"testing"
)

func TestResolve(t *testing.T) {
	st := NewStore(chainStrokes())
	p := Path{
		{EndpointRef: EndpointRef{2, EndB}},
		{EndpointRef: EndpointRef{1, EndB}},
		{EndpointRef: EndpointRef{0, EndB}},
	}
	got := Resolve(st, p)
	diff(t, []Stroke{seg(34, 0, 24, 0), seg(22, 0, 12, 0), seg(10, 0, 0, 0)}, got)

	for i := 1; i < len(got); i++ {
		if d := got[i-1].B.Distance(got[i].A); d != 2 {
			t.Errorf("gap %d: got %g, want 2", i, d)
		}
	}
	diff(t, []Stroke{}, Resolve(st, nil))
}

func TestTraversal(t *testing.T) {
	st := NewStore(randomStrokes(2, 10))
	refs := []EndpointRef{{3, EndB}, {0, EndA}, {9, EndB}, {4, EndA}}
	var p Path
	for _, r := range refs {
		p = append(p, PathNode{EndpointRef: r})
	}
	got, err := Traversal(st, Resolve(st, p))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, refs, got)
}

func TestTraversalDuplicates(t *testing.T) {
	s := Quad(Pt(0, 0), Pt(5, 5), Pt(10, 0), 1)
	st := NewStore([]Stroke{s, s})
	got, err := Traversal(st, []Stroke{s, s.Reverse()})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []EndpointRef{{0, EndA}, {1, EndB}}, got)

	if _, err := Traversal(st, []Stroke{s, s, s}); err == nil {
		t.Error("a third copy was matched")
	}
	if _, err := Traversal(st, []Stroke{seg(1, 2, 3, 4)}); err == nil {
		t.Error("an unknown stroke was matched")
	}
}
