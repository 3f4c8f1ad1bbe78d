// Package state holds the mutable partial graph explored by the prover.
//
// A [State] stores present edges, forbidden edges, vertex degrees and the
// set of touched points. It changes only through [State.AddPath], which
// returns an [Undo] record, and [State.RemovePath], which reverts exactly
// that record. Calls must nest like a stack: the prover adds a path on
// entry to a branch and removes it on every exit path of that branch, so
// the live changes always correspond to the current recursion.
//
// # Derived forbidden edges
//
// Adding a diagonal forbids the diagonal crossing it. A vertex whose degree
// reaches [MaxDegree] forbids all of its remaining incident steps.
package state
