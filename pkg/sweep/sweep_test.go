package sweep

import (
	"context"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

func TestShortestPaths(t *testing.T) {
	g := NewGraph()
	a, b, c := lattice.Pt(0, 0), lattice.Pt(1, 0), lattice.Pt(1, 1)
	g.AddEdge(a, b, exact.One)
	g.AddEdge(b, c, exact.One)
	g.AddEdge(a, c, exact.New(3, 0))
	g.AddEdge(a, b, exact.New(9, 0)) // ignored, already adjacent

	dist := g.ShortestPaths(a, 0, nil)
	want := map[lattice.Point]exact.Number{a: exact.Zero, b: exact.One, c: exact.New(2, 0)}
	if diff := cmp.Diff(want, dist); diff != "" {
		t.Errorf("ShortestPaths mismatch (-want +got):\n%s", diff)
	}

	if got := g.ShortestPaths(a, 2, nil); len(got) != 2 {
		t.Errorf("limited search settled %d vertices, want 2", len(got))
	}
	if got := len(g.Edges()); got != 3 {
		t.Errorf("Edges() = %d, want 3", got)
	}
}

func TestAddSegmentRejectsLongEdges(t *testing.T) {
	g := NewGraph()
	if err := g.AddSegment(lattice.Pt(0, 0), lattice.Pt(2, 0)); err == nil {
		t.Error("expected error for a segment of length 2")
	}
	p := &Periodic{Name: "bad", Reach: 0, Motif: [][]lattice.Point{{{0, 0}, {1, 2}}}}
	if _, err := p.Graph(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Graph() error = %v, want INVALID_INPUT", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGraph()
	g.AddEdge(lattice.Pt(0, 0), lattice.Pt(1, 0), exact.One)
	c := g.Clone()
	c.AddEdge(lattice.Pt(1, 0), lattice.Pt(1, 1), exact.One)
	if g.HasEdge(lattice.Pt(1, 0), lattice.Pt(1, 1)) {
		t.Error("edge added to clone leaked into original")
	}
	if !c.HasEdge(lattice.Pt(0, 0), lattice.Pt(1, 0)) {
		t.Error("clone lost an original edge")
	}
}

func TestLemma24(t *testing.T) {
	r, err := Lemma24(DefaultLemma24Radius)
	if err != nil {
		t.Fatalf("Lemma24: %v", err)
	}
	if r.Pairs != 21*21 {
		t.Errorf("Pairs = %d, want %d", r.Pairs, 21*21)
	}

	if _, err := Lemma24(0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Lemma24(0) error = %v, want INVALID_INPUT", err)
	}
}

func TestFundamentalParallelogram(t *testing.T) {
	pts := FundamentalParallelogram(lattice.Vector{DX: 4, DY: 0}, lattice.Vector{DX: 2, DY: -3})
	if len(pts) != 18 {
		t.Errorf("len = %d, want 18", len(pts))
	}
	if !slices.Contains(pts, lattice.Pt(0, 0)) {
		t.Error("origin missing")
	}
	if slices.Contains(pts, lattice.Pt(4, 0)) {
		t.Error("(4, 0) lies on the excluded side")
	}
}

func TestVerifyLocalDilationDisconnected(t *testing.T) {
	g := NewGraph()
	g.AddEdge(lattice.Pt(0, 0), lattice.Pt(1, 0), exact.One)
	_, err := verifyLocalDilation(g, []lattice.Point{lattice.Pt(0, 0)})
	if !errors.Is(err, errors.ErrCodeDilationViolated) {
		t.Errorf("error = %v, want DILATION_VIOLATED", err)
	}
}

func TestProposition21Variant(t *testing.T) {
	vertical := Proposition21Variant(0)
	if len(vertical) != 2*len(Proposition21Choices) {
		t.Fatalf("len = %d", len(vertical))
	}
	if want := lattice.E(lattice.Pt(0, 3), lattice.Pt(0, 2)); vertical[0] != want {
		t.Errorf("mask 0 first edge = %v, want %v", vertical[0], want)
	}
	horizontal := Proposition21Variant(1)
	if want := lattice.E(lattice.Pt(0, 3), lattice.Pt(1, 3)); horizontal[0] != want {
		t.Errorf("mask 1 first edge = %v, want %v", horizontal[0], want)
	}
	if horizontal[2] != vertical[2] {
		t.Error("mask 1 changed the second square")
	}
}

func TestProposition21(t *testing.T) {
	r, err := Proposition21(context.Background())
	if err != nil {
		t.Fatalf("Proposition21: %v", err)
	}
	if r.Cases != 16 {
		t.Errorf("Cases = %d, want 16", r.Cases)
	}
	if want := 16 * len(Proposition21Sources) * closePoints; r.Pairs != want {
		t.Errorf("Pairs = %d, want %d", r.Pairs, want)
	}
}

func TestProposition21Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Proposition21(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestFigure2(t *testing.T) {
	r, err := Figure2(context.Background())
	if err != nil {
		t.Fatalf("Figure2: %v", err)
	}
	if r.Cases != 3 {
		t.Errorf("Cases = %d, want 3", r.Cases)
	}
	if r.Pairs != r.Sources*closePoints {
		t.Errorf("Pairs = %d, want %d", r.Pairs, r.Sources*closePoints)
	}
}

func TestFindObviousShortcut(t *testing.T) {
	walk := []lattice.Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	sc, ok := FindObviousShortcut(walk)
	if !ok {
		t.Fatal("expected a shortcut")
	}
	if want := (Shortcut{P: lattice.Pt(0, 0), Q: lattice.Pt(1, 0)}); sc != want {
		t.Errorf("shortcut = %+v, want %+v", sc, want)
	}

	if _, ok := FindObviousShortcut([]lattice.Point{{0, 0}, {1, 1}, {1, 2}}); ok {
		t.Error("straight-ish walk reported a shortcut")
	}
}

func TestLemma38(t *testing.T) {
	r := Lemma38()
	if len(r.Valid)+len(r.Rejected) != r.Cases {
		t.Fatalf("valid %d + rejected %d != %d", len(r.Valid), len(r.Rejected), r.Cases)
	}

	lo, hiSq := exact.New(3, 1), exact.Dilation.Pow(2).Scale(5)
	for _, w := range r.Valid {
		if err := lattice.ValidateWalk(w); err != nil {
			t.Fatalf("%v: %v", w, err)
		}
		l := lattice.WalkLength(w)
		if !l.Greater(lo) || l.Pow(2).Greater(hiSq) {
			t.Errorf("%v has length %v outside the window", w, l)
		}
	}
	for _, rej := range r.Rejected {
		if _, ok := FindObviousShortcut(rej.Walk); !ok {
			t.Errorf("%v rejected without a shortcut", rej.Walk)
		}
	}

	key := func(w []lattice.Point) string { return claims.FormatPath(w) }
	valid := make(map[string]bool, len(r.Valid))
	for _, w := range r.Valid {
		valid[key(w)] = true
	}

	for _, name := range []string{"p1", "p2", "p3", "p4"} {
		c, err := claims.Default().Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if !valid[key(c.Seed)] {
			t.Errorf("seed of %s is not among the valid walks", name)
		}
	}

	// Reflection through (1/2, 1) swaps the endpoints.
	for _, w := range r.Valid {
		img := make([]lattice.Point, len(w))
		for i, p := range w {
			img[len(w)-1-i] = lattice.Pt(1-p.X, 2-p.Y)
		}
		if !valid[key(img)] {
			t.Errorf("image of %v under the point reflection is missing", w)
		}
	}
}
