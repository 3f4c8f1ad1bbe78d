package prover

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/pattern"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

var pt = lattice.Pt

// recorder counts events and checks that every snapshot is consistent.
type recorder struct {
	NoopObserver
	t *testing.T

	starts, ends, finished int
	shortcuts, patterns    int
	deductions, contras    int
	branches               []int

	deduced  [][]lattice.Point
	conflict [][2]lattice.Point
	snaps    []state.Snapshot
}

func (r *recorder) OnProofStart(*Claim)  { r.starts++ }
func (r *recorder) OnProofEnd(*Claim)    { r.ends++ }
func (r *recorder) OnAllProofsFinished() { r.finished++ }

func (r *recorder) OnShortcutFound(s state.Snapshot, walk []lattice.Point) {
	r.shortcuts++
	if len(walk) < 2 {
		r.t.Errorf("shortcut %v is too short", walk)
	}
}

func (r *recorder) OnPatternMatched(s state.Snapshot, p pattern.Pattern) {
	r.patterns++
	for _, e := range p {
		if !s.HasEdge(e.A, e.B) {
			r.t.Errorf("pattern edge %v missing from snapshot", e)
		}
	}
}

func (r *recorder) OnUniquePathDeduced(_ state.Snapshot, walk []lattice.Point) {
	r.deductions++
	r.deduced = append(r.deduced, walk)
}

func (r *recorder) OnContradiction(_ state.Snapshot, p, q lattice.Point) {
	r.contras++
	r.conflict = append(r.conflict, [2]lattice.Point{p, q})
}

func (r *recorder) OnBranchExplored(s state.Snapshot, n int) {
	r.branches = append(r.branches, n)
	r.snaps = append(r.snaps, s)
}

// axisLemma forbids every axis-parallel unit edge.
var axisLemma = &Claim{Name: "axis", Seed: []lattice.Point{pt(0, 0), pt(1, 0)}}

func diagonalClaim() *Claim {
	return &Claim{
		Name:           "diag",
		Seed:           []lattice.Point{pt(0, 0), pt(1, 1)},
		Candidates:     []lattice.Edge{lattice.E(pt(0, 0), pt(1, 0))},
		ExpectedLeaves: 1,
		KnownLemmas:    []*Claim{axisLemma},
	}
}

func TestProveClosesEveryBranchWithPatterns(t *testing.T) {
	rec := &recorder{t: t}
	res, err := Prove(context.Background(), diagonalClaim(), rec, WithInvariantChecks())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if rec.starts != 1 || rec.ends != 1 {
		t.Errorf("start/end = %d/%d, want 1/1", rec.starts, rec.ends)
	}
	if len(rec.branches) != 1 || rec.branches[0] != 1 {
		t.Errorf("branches = %v, want [1]", rec.branches)
	}
	// the detour through (0,1) crosses the seed diagonal and is skipped
	if rec.patterns != 4 {
		t.Errorf("patterns = %d, want 4", rec.patterns)
	}
	if res.Branches != 1 || res.Patterns != 4 || res.Shortcuts != 0 {
		t.Errorf("result = %+v", res)
	}
	if !res.Complete() {
		t.Error("result should match the expected leaf count")
	}
	if err := res.CheckLeaves(); err != nil {
		t.Error(err)
	}
}

// saturatedClaim starts with (0,0) at degree 3. The pair (0,0)-(0,-1) can
// then only be joined through (-1,0), which in turn saturates (-1,0) and
// leaves (-1,0)-(-2,0) without any admissible walk.
func saturatedClaim() *Claim {
	return &Claim{
		Name: "saturated",
		Seed: []lattice.Point{pt(0, 0), pt(-1, 0), pt(0, 1), pt(0, 0), pt(1, 1)},
	}
}

func TestProveFollowsForcedPath(t *testing.T) {
	rec := &recorder{t: t}
	res, err := Prove(context.Background(), saturatedClaim(), rec, WithInvariantChecks())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	want := [][]lattice.Point{{pt(0, 0), pt(-1, 0), pt(0, -1)}}
	if d := cmp.Diff(want, rec.deduced); d != "" {
		t.Errorf("deduced walks (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{1, 2}, rec.branches); d != "" {
		t.Fatalf("branches (-want +got):\n%s", d)
	}
	if rec.snaps[0].HasEdge(pt(-1, 0), pt(0, -1)) {
		t.Error("forced edge present before the deduction")
	}
	if !rec.snaps[1].HasEdge(pt(-1, 0), pt(0, -1)) {
		t.Error("the recursion did not add the forced walk")
	}
	if res.Deductions != 1 || res.Contradictions != 1 || res.Branches != 2 {
		t.Errorf("result = %+v", res)
	}
	if rec.ends != 1 {
		t.Errorf("OnProofEnd called %d times", rec.ends)
	}
}

func TestContradictionWinsOverForcedPath(t *testing.T) {
	rec := &recorder{t: t}
	if _, err := Prove(context.Background(), saturatedClaim(), rec); err != nil {
		t.Fatal(err)
	}

	// In the second branch (-1,0)-(-2,-1) has a single walk and is scanned
	// before (-1,0)-(-2,0), which has none. Only the contradiction counts.
	want := [][2]lattice.Point{{pt(-1, 0), pt(-2, 0)}}
	if d := cmp.Diff(want, rec.conflict); d != "" {
		t.Errorf("contradictions (-want +got):\n%s", d)
	}
	if rec.deductions != 1 {
		t.Errorf("deductions = %d, the contradictory branch must not recurse", rec.deductions)
	}
	if len(rec.branches) != 2 {
		t.Errorf("branches = %v, want 2", rec.branches)
	}
}

func TestProveShortcutAtSeed(t *testing.T) {
	c := &Claim{
		Name: "short",
		Seed: []lattice.Point{pt(0, 0), pt(1, 0)},
		Target: &Target{
			U:     pt(0, 0),
			V:     pt(1, 0),
			Bound: exact.Int(2),
		},
	}
	rec := &recorder{t: t}
	res, err := Prove(context.Background(), c, rec)
	if err != nil {
		t.Fatal(err)
	}
	if res.Shortcuts != 1 || res.Branches != 0 || rec.shortcuts != 1 {
		t.Errorf("result = %+v, observed %d shortcuts", res, rec.shortcuts)
	}
	if rec.ends != 1 {
		t.Errorf("OnProofEnd called %d times", rec.ends)
	}
}

func TestProveCandidatesExhausted(t *testing.T) {
	c := &Claim{
		Name:       "stuck",
		Seed:       []lattice.Point{pt(0, 0), pt(1, 0)},
		Candidates: []lattice.Edge{lattice.E(pt(0, 0), pt(1, 0))},
	}
	rec := &recorder{t: t}
	_, err := Prove(context.Background(), c, rec)
	if !errors.Is(err, errors.ErrCodeCandidatesExhausted) {
		t.Fatalf("err = %v, want CANDIDATES_EXHAUSTED", err)
	}
	if !stderrors.Is(err, ErrCandidatesExhausted) {
		t.Error("error should wrap ErrCandidatesExhausted")
	}
	if msg := errors.UserMessage(err); msg != "claim stuck: no unresolved candidate pair (edges: 1)" {
		t.Errorf("message = %q", msg)
	}
	if rec.ends != 0 {
		t.Error("OnProofEnd must not be called for a failed proof")
	}
}

func TestProveLeafMismatch(t *testing.T) {
	c := diagonalClaim()
	c.ExpectedLeaves = 7
	res, err := Prove(context.Background(), c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Complete() {
		t.Error("1 branch should not match 7")
	}
	if err := res.CheckLeaves(); !errors.Is(err, errors.ErrCodeLeafCountMismatch) {
		t.Errorf("CheckLeaves = %v", err)
	}
}

func TestProveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Prove(ctx, diagonalClaim(), nil); !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestProveAll(t *testing.T) {
	rec := &recorder{t: t}
	results, err := ProveAll(context.Background(), []*Claim{axisLemmaClaim(), diagonalClaim()}, rec)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || rec.finished != 1 || rec.ends != 2 {
		t.Errorf("results=%d finished=%d ends=%d", len(results), rec.finished, rec.ends)
	}

	rec = &recorder{t: t}
	stuck := &Claim{Name: "stuck", Seed: []lattice.Point{pt(0, 0), pt(1, 0)}}
	results, err = ProveAll(context.Background(), []*Claim{stuck, diagonalClaim()}, rec)
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(results) != 0 || rec.finished != 0 {
		t.Errorf("results=%d finished=%d after failure", len(results), rec.finished)
	}
}

// axisLemmaClaim is closed at once by a shortcut along its own edge.
func axisLemmaClaim() *Claim {
	return &Claim{
		Name:   "axis",
		Seed:   []lattice.Point{pt(0, 0), pt(1, 0)},
		Target: &Target{U: pt(0, 0), V: pt(1, 0), Bound: exact.Int(2)},
	}
}

func TestExpandRestoresState(t *testing.T) {
	e := NewEngine(context.Background(), diagonalClaim(), nil, WithInvariantChecks())
	if err := e.Expand([]lattice.Point{pt(0, 0), pt(1, 1)}); err != nil {
		t.Fatal(err)
	}
	g := e.State()
	if g.EdgeCount() != 0 || g.ForbiddenCount() != 0 || len(g.Points()) != 0 {
		t.Errorf("state not restored: %d edges, %d forbidden, %d points",
			g.EdgeCount(), g.ForbiddenCount(), len(g.Points()))
	}
	if len(e.known) != 0 {
		t.Errorf("%d satisfied pairs left behind", len(e.known))
	}
}

func TestExpandForcedPathRestoresState(t *testing.T) {
	e := NewEngine(context.Background(), saturatedClaim(), nil, WithInvariantChecks())
	if err := e.Expand(saturatedClaim().Seed); err != nil {
		t.Fatal(err)
	}
	g := e.State()
	if g.EdgeCount() != 0 || g.ForbiddenCount() != 0 || len(g.Points()) != 0 || len(e.known) != 0 {
		t.Errorf("state not restored: %d edges, %d forbidden, %d points, %d known",
			g.EdgeCount(), g.ForbiddenCount(), len(g.Points()), len(e.known))
	}
}

func TestNearbyPairs(t *testing.T) {
	e := NewEngine(context.Background(), diagonalClaim(), nil)
	undo := e.g.AddPath([]lattice.Point{pt(0, 0), pt(1, 0)})
	pairs := e.nearbyPairs(undo.RecentPoints())

	seen := map[lattice.Edge]bool{}
	for _, pq := range pairs {
		d := lattice.DistSquared(pq.A, pq.B)
		if d < 1 || d > 5 {
			t.Errorf("pair %v has |pq|² = %d", pq, d)
		}
		if !e.g.HasPoint(pq.A) {
			t.Errorf("pair %v does not start at a graph point", pq)
		}
		if seen[pq.Reverse()] {
			t.Errorf("pair %v listed in both orientations", pq)
		}
		seen[pq] = true
	}
	if !seen[lattice.E(pt(0, 0), pt(1, 0))] {
		t.Error("the inserted edge itself must be examined")
	}
	if got := e.nearbyPairs(nil); got != nil {
		t.Errorf("no recent points should give no pairs, got %v", got)
	}
}

func TestClaimValidate(t *testing.T) {
	tests := []struct {
		name    string
		claim   *Claim
		wantErr bool
	}{
		{"valid", diagonalClaim(), false},
		{"nil", nil, true},
		{"bad name", &Claim{Name: "Bad Name", Seed: []lattice.Point{pt(0, 0), pt(1, 0)}}, true},
		{"short seed", &Claim{Name: "x", Seed: []lattice.Point{pt(0, 0)}}, true},
		{"long step", &Claim{Name: "x", Seed: []lattice.Point{pt(0, 0), pt(2, 0)}}, true},
		{"diagonal candidate", &Claim{
			Name:       "x",
			Seed:       []lattice.Point{pt(0, 0), pt(1, 0)},
			Candidates: []lattice.Edge{lattice.E(pt(0, 0), pt(1, 1))},
		}, true},
		{"degenerate target", &Claim{
			Name:   "x",
			Seed:   []lattice.Point{pt(0, 0), pt(1, 0)},
			Target: &Target{U: pt(1, 2), V: pt(1, 2), Bound: exact.One},
		}, true},
		{"non-positive bound", &Claim{
			Name:   "x",
			Seed:   []lattice.Point{pt(0, 0), pt(1, 0)},
			Target: &Target{U: pt(0, 0), V: pt(1, 2), Bound: exact.New(3, -3)},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claim.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidClaim) {
				t.Errorf("Validate() returned wrong error code: %v", err)
			}
		})
	}
}
