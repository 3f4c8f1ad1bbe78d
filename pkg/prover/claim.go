package prover

import (
	"fmt"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/pattern"
)

// Target is the pair whose shortcut closes a branch: a walk from U to V
// strictly shorter than Bound shows the graph is not locally optimal.
type Target struct {
	U, V  lattice.Point
	Bound exact.Number
}

func (t Target) String() string {
	return fmt.Sprintf("%v-%v < %v", t.U, t.V, t.Bound)
}

// Claim is one statement to verify.
type Claim struct {
	Name        string
	Description string

	// Target is nil when the claim is closed by patterns and
	// contradictions only.
	Target *Target

	// Seed is the configuration assumed present at the start.
	Seed []lattice.Point

	// Candidates are the unit-distance pairs the engine branches on, in
	// order. The first pair not yet known to be satisfied is used.
	Candidates []lattice.Edge

	// ExpectedLeaves is the number of explored branches of a complete run.
	ExpectedLeaves int

	// KnownLemmas are proved claims whose seeds become forbidden patterns.
	KnownLemmas []*Claim
}

// Validate checks the claim's geometry without running it.
func (c *Claim) Validate() error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidClaim, "claim is nil")
	}
	if err := errors.ValidateClaimName(c.Name); err != nil {
		return err
	}
	if len(c.Seed) < 2 {
		return errors.New(errors.ErrCodeInvalidClaim, "claim %s: seed needs at least two points", c.Name)
	}
	if err := lattice.ValidateWalk(c.Seed); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidClaim, err, "claim %s: seed", c.Name)
	}
	for _, e := range c.Candidates {
		if lattice.DistSquared(e.A, e.B) != 1 {
			return errors.New(errors.ErrCodeInvalidClaim, "claim %s: candidate %v is not a unit pair", c.Name, e)
		}
	}
	if t := c.Target; t != nil {
		if t.U == t.V {
			return errors.New(errors.ErrCodeInvalidClaim, "claim %s: target endpoints coincide", c.Name)
		}
		if !t.Bound.IsPositive() {
			return errors.New(errors.ErrCodeInvalidClaim, "claim %s: target bound %v is not positive", c.Name, t.Bound)
		}
	}
	for _, l := range c.KnownLemmas {
		if l == nil {
			return errors.New(errors.ErrCodeInvalidClaim, "claim %s: nil lemma", c.Name)
		}
		if l == c {
			return errors.New(errors.ErrCodeInvalidClaim, "claim %s: uses itself as a lemma", c.Name)
		}
		if err := lattice.ValidateWalk(l.Seed); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidClaim, err, "claim %s: lemma %s", c.Name, l.Name)
		}
	}
	return nil
}

// Patterns returns the seeds of the known lemmas as base patterns.
func (c *Claim) Patterns() []pattern.Pattern {
	out := make([]pattern.Pattern, 0, len(c.KnownLemmas))
	for _, l := range c.KnownLemmas {
		out = append(out, pattern.FromPath(l.Seed))
	}
	return out
}

// LemmaNames returns the names of the known lemmas in order.
func (c *Claim) LemmaNames() []string {
	names := make([]string, len(c.KnownLemmas))
	for i, l := range c.KnownLemmas {
		names[i] = l.Name
	}
	return names
}
