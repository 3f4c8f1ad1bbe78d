package prover

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/oracle"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/pattern"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// ErrCandidatesExhausted is the cause of the error returned when a branch
// needs to split but every candidate pair is already satisfied.
var ErrCandidatesExhausted = stderrors.New("candidate list exhausted")

// Engine holds the search state of one claim. It is not safe for
// concurrent use.
type Engine struct {
	ctx      context.Context
	claim    *Claim
	observer Observer
	logger   *log.Logger
	check    bool

	g     *state.State
	lib   *pattern.Library
	known map[lattice.Edge]struct{}

	stats Result
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used for proof progress.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithInvariantChecks makes the engine verify the state invariants after
// every insertion. It is slow and meant for tests.
func WithInvariantChecks() Option {
	return func(e *Engine) { e.check = true }
}

// NewEngine returns an engine for c with an empty state. The claim is
// assumed valid.
func NewEngine(ctx context.Context, c *Claim, obs Observer, opts ...Option) *Engine {
	if obs == nil {
		obs = NoopObserver{}
	}
	e := &Engine{
		ctx:      ctx,
		claim:    c,
		observer: obs,
		logger:   log.New(io.Discard),
		g:        state.New(),
		lib:      pattern.NewLibrary(c.Patterns()),
		known:    make(map[lattice.Edge]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.stats.Claim = c
	return e
}

// State returns the live graph state. It is only meaningful between calls.
func (e *Engine) State() *state.State { return e.g }

// Expand adds path to the state, examines the resulting branch and
// recurses. All changes it makes, including newly satisfied pairs, are
// reverted before it returns.
func (e *Engine) Expand(path []lattice.Point) error {
	if err := e.ctx.Err(); err != nil {
		return err
	}

	undo := e.g.AddPath(path)
	var satisfied []lattice.Edge
	defer func() {
		e.g.RemovePath(undo)
		for _, pq := range satisfied {
			delete(e.known, pq)
		}
	}()

	if e.check {
		if err := e.g.Check(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "claim %s", e.claim.Name)
		}
	}

	if t := e.claim.Target; t != nil {
		if walk, ok := oracle.FindShortcut(e.g, t.U, t.V, t.Bound); ok {
			e.stats.Shortcuts++
			e.observer.OnShortcutFound(e.g.Snapshot(), walk)
			return nil
		}
	}

	recent := undo.RecentPoints()
	if p, ok := e.lib.FindNear(e.g, recent); ok {
		e.stats.Patterns++
		e.observer.OnPatternMatched(e.g.Snapshot(), p)
		return nil
	}

	e.stats.Branches++
	e.observer.OnBranchExplored(e.g.Snapshot(), e.stats.Branches)
	e.logger.Debug("branch", "claim", e.claim.Name, "n", e.stats.Branches, "edges", e.g.EdgeCount())

	var unique []lattice.Point
	for _, pq := range e.nearbyPairs(recent) {
		if _, ok := e.known[pq]; ok {
			continue
		}
		if oracle.ExistsGoodPath(e.g, pq.A, pq.B) {
			for _, k := range [2]lattice.Edge{pq, pq.Reverse()} {
				e.known[k] = struct{}{}
				satisfied = append(satisfied, k)
			}
			continue
		}

		walks := oracle.FindPaths(e.g, pq.A, pq.B, 2)
		if len(walks) == 0 {
			e.stats.Contradictions++
			e.observer.OnContradiction(e.g.Snapshot(), pq.A, pq.B)
			return nil
		}
		// The first forced walk is kept; later pairs are still scanned
		// because one of them may be contradictory.
		if len(walks) == 1 && unique == nil {
			unique = walks[0]
		}
	}

	if unique != nil {
		e.stats.Deductions++
		e.observer.OnUniquePathDeduced(e.g.Snapshot(), unique)
		return e.Expand(unique)
	}

	return e.split()
}

// split branches on the five short paths of the first candidate pair that
// is not known to be satisfied.
func (e *Engine) split() error {
	for _, c := range e.claim.Candidates {
		if _, ok := e.known[c]; ok {
			continue
		}
		paths, err := lattice.FiveShortPaths(c.A, c.B)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidClaim, err, "claim %s: candidate %v", e.claim.Name, c)
		}
		e.logger.Debug("split", "claim", e.claim.Name, "pair", c)
		for _, p := range paths {
			if !e.g.CanAddPath(p) {
				continue
			}
			if err := e.Expand(p); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Wrap(errors.ErrCodeCandidatesExhausted, ErrCandidatesExhausted,
		"claim %s: no unresolved candidate pair (edges: %d)", e.claim.Name, e.g.EdgeCount())
}

// nearbyPairs lists the pairs (p, q) with 1 ≤ |pq| ≤ √5 around the points
// touched by the last insertion: p within Manhattan distance 3 and q within
// distance 2 of a recent point. A pair is listed in one orientation only.
func (e *Engine) nearbyPairs(recent []lattice.Point) []lattice.Edge {
	if len(recent) == 0 {
		return nil
	}
	var pairs []lattice.Edge
	seen := make(map[lattice.Edge]struct{})
	for _, p := range e.g.Points() {
		if !lattice.IsCloseTo(p, recent, 3) {
			continue
		}
		for dx := -2; dx <= 2; dx++ {
			for dy := -2; dy <= 2; dy++ {
				if m := abs(dx) + abs(dy); m < 1 || m > 3 {
					continue
				}
				q := lattice.Translate(p, lattice.Vector{DX: dx, DY: dy})
				if !lattice.IsCloseTo(q, recent, 2) {
					continue
				}
				if _, ok := seen[lattice.E(q, p)]; ok {
					continue
				}
				pq := lattice.E(p, q)
				seen[pq] = struct{}{}
				pairs = append(pairs, pq)
			}
		}
	}
	return pairs
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
