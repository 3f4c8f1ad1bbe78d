package state

import (
	"maps"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

var pt = lattice.Pt

func clone(s *State) *State {
	return &State{
		edges:     maps.Clone(s.edges),
		forbidden: maps.Clone(s.forbidden),
		degree:    maps.Clone(s.degree),
		points:    maps.Clone(s.points),
	}
}

func diffState(a, b *State) string {
	return cmp.Diff(a, b, cmp.AllowUnexported(State{}))
}

func TestAddPathBasic(t *testing.T) {
	s := New()
	u := s.AddPath([]lattice.Point{pt(0, 0), pt(1, 0), pt(1, 1)})

	if len(u.AddedEdges) != 2 {
		t.Errorf("AddedEdges = %v, want 2 edges", u.AddedEdges)
	}
	if len(u.AddedPoints) != 3 {
		t.Errorf("AddedPoints = %v, want 3 points", u.AddedPoints)
	}
	if !s.HasEdge(pt(0, 0), pt(1, 0)) || !s.HasEdge(pt(1, 0), pt(0, 0)) {
		t.Error("edge must be stored in both orientations")
	}
	if got := s.Degree(pt(1, 0)); got != 2 {
		t.Errorf("Degree(1,0) = %d, want 2", got)
	}
	if got := s.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount = %d, want 2", got)
	}
	if err := s.Check(); err != nil {
		t.Error(err)
	}
}

func TestAddPathSkipsExistingEdges(t *testing.T) {
	s := New()
	s.AddPath([]lattice.Point{pt(0, 0), pt(1, 0)})
	u := s.AddPath([]lattice.Point{pt(0, 0), pt(1, 0), pt(2, 0)})

	if len(u.AddedEdges) != 1 || u.AddedEdges[0] != lattice.E(pt(1, 0), pt(2, 0)) {
		t.Errorf("AddedEdges = %v, want only (1,0)-(2,0)", u.AddedEdges)
	}
	if len(u.AddedPoints) != 1 || u.AddedPoints[0] != pt(2, 0) {
		t.Errorf("AddedPoints = %v, want only (2,0)", u.AddedPoints)
	}
	if got := s.Degree(pt(1, 0)); got != 2 {
		t.Errorf("Degree(1,0) = %d, want 2", got)
	}
}

func TestDiagonalForbidsCrossing(t *testing.T) {
	s := New()
	u := s.AddPath([]lattice.Point{pt(0, 0), pt(1, 1)})

	if !s.IsForbidden(pt(1, 0), pt(0, 1)) || !s.IsForbidden(pt(0, 1), pt(1, 0)) {
		t.Error("crossing diagonal must be forbidden in both orientations")
	}
	if len(u.NewForbidden) != 1 {
		t.Errorf("NewForbidden = %v, want the crossing diagonal", u.NewForbidden)
	}

	// an existing crossing edge is not forbidden
	s = New()
	s.AddPath([]lattice.Point{pt(1, 0), pt(0, 1)})
	if s.CanAddPath([]lattice.Point{pt(0, 0), pt(1, 1)}) {
		t.Error("adding a crossing diagonal must be rejected")
	}
}

func TestSaturatedVertexForbidsRest(t *testing.T) {
	s := New()
	s.AddPath([]lattice.Point{pt(-1, 0), pt(0, 0), pt(1, 0)})
	u := s.AddPath([]lattice.Point{pt(0, 0), pt(0, 1)})

	if got := s.Degree(pt(0, 0)); got != MaxDegree {
		t.Fatalf("Degree = %d, want %d", got, MaxDegree)
	}
	free := 0
	for _, q := range lattice.Neighbours(pt(0, 0)) {
		if s.HasEdge(pt(0, 0), q) {
			continue
		}
		free++
		if !s.IsForbidden(pt(0, 0), q) {
			t.Errorf("edge to %v should be forbidden", q)
		}
	}
	if free != 5 || len(u.NewForbidden) != 5 {
		t.Errorf("free = %d, NewForbidden = %d; want 5 and 5", free, len(u.NewForbidden))
	}
	if s.CanAddPath([]lattice.Point{pt(0, 0), pt(0, -1)}) {
		t.Error("saturated vertex must reject new edges")
	}
	if err := s.Check(); err != nil {
		t.Error(err)
	}
}

func TestCanAddPathTalliesWholePath(t *testing.T) {
	s := New()
	s.AddPath([]lattice.Point{pt(0, 0), pt(1, 0)})
	s.AddPath([]lattice.Point{pt(0, 0), pt(-1, 0)})

	// (0,0) has degree 2; the walk touches it twice, which would make 4
	walk := []lattice.Point{pt(0, 1), pt(0, 0), pt(0, -1)}
	if s.CanAddPath(walk) {
		t.Error("walk through a degree-2 vertex adds two edges and must be rejected")
	}
	if !s.CanAddPath([]lattice.Point{pt(0, 1), pt(0, 0)}) {
		t.Error("a single extra edge fits")
	}
	// existing edges do not count
	if !s.CanAddPath([]lattice.Point{pt(1, 0), pt(0, 0), pt(-1, 0)}) {
		t.Error("path made of existing edges must be accepted")
	}
}

func TestRoundTrip(t *testing.T) {
	paths := [][]lattice.Point{
		{pt(0, 0), pt(-1, 0), pt(0, 1), pt(1, 0), pt(1, -1), pt(0, 0)},
		{pt(1, 1), pt(2, 1)},
		{pt(0, 1), pt(1, 1), pt(1, 0)},
		{pt(2, 1), pt(3, 2), pt(3, 3)},
	}

	s := New()
	var stack []Undo
	var before []*State
	for _, p := range paths {
		if !s.CanAddPath(p) {
			continue
		}
		before = append(before, clone(s))
		stack = append(stack, s.AddPath(p))
		if err := s.Check(); err != nil {
			t.Fatalf("after adding %v: %v", p, err)
		}
	}
	if len(stack) < 2 {
		t.Fatalf("expected at least two admissible paths, got %d", len(stack))
	}

	for i := len(stack) - 1; i >= 0; i-- {
		s.RemovePath(stack[i])
		if d := diffState(before[i], s); d != "" {
			t.Fatalf("state after undoing path %d differs (-want +got):\n%s", i, d)
		}
	}
	if d := diffState(New(), s); d != "" {
		t.Errorf("state not empty after undoing everything:\n%s", d)
	}
}

func TestRecentPoints(t *testing.T) {
	s := New()
	u := s.AddPath([]lattice.Point{pt(1, 0), pt(0, 0), pt(0, 1)})
	got := u.RecentPoints()
	want := []lattice.Point{pt(0, 0), pt(0, 1), pt(1, 0)}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("RecentPoints (-want +got):\n%s", d)
	}
}

func TestSnapshot(t *testing.T) {
	s := New()
	s.AddPath([]lattice.Point{pt(1, 1), pt(0, 0), pt(1, 0)})
	snap := s.Snapshot()

	want := []lattice.Edge{
		lattice.E(pt(0, 0), pt(1, 0)),
		lattice.E(pt(0, 0), pt(1, 1)),
	}
	if d := cmp.Diff(want, snap.Edges); d != "" {
		t.Errorf("Edges (-want +got):\n%s", d)
	}
	if !snap.HasEdge(pt(1, 0), pt(0, 0)) {
		t.Error("snapshot should find edge in either orientation")
	}
	if !snap.IsForbidden(pt(1, 0), pt(0, 1)) {
		t.Error("snapshot should contain the crossing diagonal")
	}
	lo, hi, ok := snap.Bounds()
	if !ok || lo != pt(0, 0) || hi != pt(1, 1) {
		t.Errorf("Bounds = %v %v %v", lo, hi, ok)
	}

	// the snapshot is a copy
	s.AddPath([]lattice.Point{pt(1, 0), pt(2, 0)})
	if len(snap.Edges) != 2 {
		t.Error("snapshot must not change with the state")
	}
}
