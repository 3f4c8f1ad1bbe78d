// Package sweep runs the finite verifications that accompany the
// case analysis: exhaustive shortest-path checks on explicit graphs and
// an enumeration of candidate shortest walks.
//
//   - [Lemma24]: in the complete graph on a window of Z² where a step of
//     Manhattan length k costs k-1 + (1+√2) for k ≤ 3, every point is
//     within dilation 1+√2 of the origin.
//   - [Proposition21]: the sixteen variants of a periodic graph all have
//     local dilation at most 1+√2.
//   - [Figure2]: the same property for three further periodic graphs.
//   - [Lemma38]: the cycle-free walks from (0,0) to (1,2) whose length lies
//     in (3+√2, √5(1+√2)] and that contain no obviously shortcut subwalk.
//
// All lengths are exact elements of Z[√2]; Euclidean budgets are compared
// through their squares.
package sweep
