package prover

import (
	"context"
	"time"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
)

// Result summarises a finished proof.
type Result struct {
	Claim *Claim

	// Branches counts OnBranchExplored events.
	Branches       int
	Shortcuts      int
	Patterns       int
	Deductions     int
	Contradictions int

	Duration time.Duration
}

// Complete reports whether the number of explored branches matches the
// claim's expectation. Claims without an expectation are always complete.
func (r *Result) Complete() bool {
	return r.Claim.ExpectedLeaves == 0 || r.Branches == r.Claim.ExpectedLeaves
}

// CheckLeaves returns a LEAF_COUNT_MISMATCH error when [Result.Complete]
// is false.
func (r *Result) CheckLeaves() error {
	if r.Complete() {
		return nil
	}
	return errors.New(errors.ErrCodeLeafCountMismatch,
		"claim %s: explored %d branches, expected %d", r.Claim.Name, r.Branches, r.Claim.ExpectedLeaves)
}

// Prove verifies one claim. OnProofStart and OnProofEnd bracket the search;
// OnProofEnd is not called when the search fails.
func Prove(ctx context.Context, c *Claim, obs Observer, opts ...Option) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	e := NewEngine(ctx, c, obs, opts...)
	start := time.Now()

	e.logger.Info("Proving", "claim", c.Name, "lemmas", c.LemmaNames())
	e.observer.OnProofStart(c)
	if err := e.Expand(c.Seed); err != nil {
		return nil, err
	}
	e.observer.OnProofEnd(c)

	res := e.stats
	res.Duration = time.Since(start)
	e.logger.Info("Proved", "claim", c.Name, "branches", res.Branches,
		"elapsed", res.Duration.Round(time.Millisecond))
	return &res, nil
}

// ProveAll proves the claims in order and stops at the first error.
// OnAllProofsFinished is called only when every claim was proved.
func ProveAll(ctx context.Context, claims []*Claim, obs Observer, opts ...Option) ([]*Result, error) {
	if obs == nil {
		obs = NoopObserver{}
	}
	results := make([]*Result, 0, len(claims))
	for _, c := range claims {
		res, err := Prove(ctx, c, obs, opts...)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	obs.OnAllProofsFinished()
	return results, nil
}
