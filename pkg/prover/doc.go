// Package prover runs the exhaustive case analysis behind each lemma.
//
// A [Claim] states that no locally optimal graph of maximum degree three
// and local dilation 1+√2 contains a given seed configuration. [Prove]
// assumes the seed is present and grows it recursively. Every branch ends
// in one of three ways:
//
//   - a shortcut: the claim's target pair is joined by a walk strictly
//     shorter than its bound, so the graph is not locally optimal;
//   - a pattern: the configuration of an already proved lemma appears;
//   - a contradiction: some nearby pair can no longer be joined by a
//     short enough walk.
//
// Otherwise the engine either follows the only possible walk between some
// pair (a deduction) or branches over the five short paths of the first
// unresolved pair in the claim's candidate list. Running out of candidates
// is fatal: the proof is then incomplete and [Prove] returns an error with
// code CANDIDATES_EXHAUSTED.
//
// # Observers
//
// Every event is reported synchronously to an [Observer] together with a
// [state.Snapshot]. Observers may block; the search resumes when the
// callback returns. Embed [NoopObserver] to implement only some events.
//
// # Example
//
//	res, err := prover.Prove(ctx, claim, prover.NoopObserver{},
//	    prover.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s: %d branches\n", claim.Name, res.Branches)
package prover
