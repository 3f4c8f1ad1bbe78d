package pattern

import (
	"testing"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

var pt = lattice.Pt

// lShape is an asymmetric pattern: its eight images are pairwise distinct.
var lShape = FromPath([]lattice.Point{pt(0, 0), pt(1, 0), pt(2, 0), pt(2, 1)})

func TestNewLibrary(t *testing.T) {
	lib := NewLibrary([]Pattern{lShape, lShape})
	if got := lib.Len(); got != 16 {
		t.Fatalf("Len = %d, want 16", got)
	}

	distinct := map[string]bool{}
	for _, p := range lib.Patterns()[:8] {
		distinct[key(p)] = true
	}
	if len(distinct) != 8 {
		t.Errorf("asymmetric pattern produced %d distinct images, want 8", len(distinct))
	}

	// a fully symmetric pattern (a unit square) keeps its duplicates
	square := FromPath([]lattice.Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1), pt(0, 0)})
	if got := NewLibrary([]Pattern{square}).Len(); got != 8 {
		t.Errorf("Len = %d, want 8", got)
	}
}

func TestDetect(t *testing.T) {
	g := state.New()
	g.AddPath([]lattice.Point{pt(5, 5), pt(6, 5), pt(7, 5), pt(7, 6)})
	lib := NewLibrary(nil)

	pp, ok := lib.Detect(g, pt(6, 5), lShape)
	if !ok || pp != pt(1, 0) {
		t.Errorf("Detect at (6,5) = %v, %v; want (1,0), true", pp, ok)
	}
	if _, ok := lib.Detect(g, pt(6, 6), lShape); ok {
		t.Error("pattern must not be found at (6,6)")
	}
}

func TestSymmetryClosure(t *testing.T) {
	anchor := pt(2, 1)
	for i, s := range lattice.Symmetries {
		g := state.New()
		image := lShape.Transform(s)
		for _, e := range image {
			g.AddPath([]lattice.Point{e.A, e.B})
		}
		lib := NewLibrary([]Pattern{lShape})
		if _, ok := lib.Detect(g, s.Apply(anchor), lib.Patterns()[i]); !ok {
			t.Errorf("symmetry %d: T(P) not found at T(p)", i)
		}
		found, ok := lib.FindNear(g, []lattice.Point{s.Apply(anchor)})
		if !ok {
			t.Errorf("symmetry %d: FindNear missed the pattern", i)
			continue
		}
		for _, e := range found {
			if !g.HasEdge(e.A, e.B) {
				t.Errorf("symmetry %d: reported edge %v not in graph", i, e)
			}
		}
	}
}

func TestFindNearTranslatesToGlobal(t *testing.T) {
	g := state.New()
	g.AddPath([]lattice.Point{pt(-3, 2), pt(-2, 2), pt(-1, 2), pt(-1, 3)})
	lib := NewLibrary([]Pattern{lShape})

	found, ok := lib.FindNear(g, []lattice.Point{pt(10, 10), pt(-1, 3)})
	if !ok {
		t.Fatal("pattern not found")
	}
	want := map[lattice.Edge]bool{
		lattice.E(pt(-3, 2), pt(-2, 2)): true,
		lattice.E(pt(-2, 2), pt(-1, 2)): true,
		lattice.E(pt(-1, 2), pt(-1, 3)): true,
	}
	if len(found) != 3 {
		t.Fatalf("found %v", found)
	}
	for _, e := range found {
		if !want[e.Canonical()] {
			t.Errorf("unexpected edge %v", e)
		}
	}

	if _, ok := lib.FindNear(g, []lattice.Point{pt(10, 10)}); ok {
		t.Error("no pattern touches (10,10)")
	}
}

func key(p Pattern) string {
	s := ""
	for _, e := range p {
		s += e.Canonical().String() + ";"
	}
	return s
}
