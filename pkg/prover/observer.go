package prover

import (
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/pattern"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// Observer receives search events. Calls are synchronous and made from the
// goroutine running the proof.
type Observer interface {
	OnProofStart(c *Claim)
	OnProofEnd(c *Claim)
	OnAllProofsFinished()

	// OnShortcutFound reports a walk between the target endpoints shorter
	// than the bound.
	OnShortcutFound(s state.Snapshot, walk []lattice.Point)

	// OnPatternMatched reports a known lemma configuration in global
	// coordinates.
	OnPatternMatched(s state.Snapshot, p pattern.Pattern)

	// OnUniquePathDeduced reports a walk that is about to be added because
	// it is the only way left to join its endpoints.
	OnUniquePathDeduced(s state.Snapshot, walk []lattice.Point)

	// OnContradiction reports a pair that can no longer be joined.
	OnContradiction(s state.Snapshot, p, q lattice.Point)

	// OnBranchExplored is called once per branch that is neither closed by
	// a shortcut nor by a pattern. count starts at 1 for every claim.
	OnBranchExplored(s state.Snapshot, count int)
}

// NoopObserver ignores every event.
type NoopObserver struct{}

func (NoopObserver) OnProofStart(*Claim)                                          {}
func (NoopObserver) OnProofEnd(*Claim)                                            {}
func (NoopObserver) OnAllProofsFinished()                                         {}
func (NoopObserver) OnShortcutFound(state.Snapshot, []lattice.Point)              {}
func (NoopObserver) OnPatternMatched(state.Snapshot, pattern.Pattern)             {}
func (NoopObserver) OnUniquePathDeduced(state.Snapshot, []lattice.Point)          {}
func (NoopObserver) OnContradiction(state.Snapshot, lattice.Point, lattice.Point) {}
func (NoopObserver) OnBranchExplored(state.Snapshot, int)                         {}

// MultiObserver forwards every event to each observer in order.
type MultiObserver []Observer

func (m MultiObserver) OnProofStart(c *Claim) {
	for _, o := range m {
		o.OnProofStart(c)
	}
}

func (m MultiObserver) OnProofEnd(c *Claim) {
	for _, o := range m {
		o.OnProofEnd(c)
	}
}

func (m MultiObserver) OnAllProofsFinished() {
	for _, o := range m {
		o.OnAllProofsFinished()
	}
}

func (m MultiObserver) OnShortcutFound(s state.Snapshot, walk []lattice.Point) {
	for _, o := range m {
		o.OnShortcutFound(s, walk)
	}
}

func (m MultiObserver) OnPatternMatched(s state.Snapshot, p pattern.Pattern) {
	for _, o := range m {
		o.OnPatternMatched(s, p)
	}
}

func (m MultiObserver) OnUniquePathDeduced(s state.Snapshot, walk []lattice.Point) {
	for _, o := range m {
		o.OnUniquePathDeduced(s, walk)
	}
}

func (m MultiObserver) OnContradiction(s state.Snapshot, p, q lattice.Point) {
	for _, o := range m {
		o.OnContradiction(s, p, q)
	}
}

func (m MultiObserver) OnBranchExplored(s state.Snapshot, count int) {
	for _, o := range m {
		o.OnBranchExplored(s, count)
	}
}
