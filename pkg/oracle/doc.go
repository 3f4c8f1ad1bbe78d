// Package oracle answers dilation questions about a partial graph.
//
// All searches are depth-first over the eight lattice directions and use
// exact arithmetic. Length budgets are compared as squares,
// length² ≤ (1+√2)²·|pq|², so no square root is ever taken. A branch is
// pruned as soon as the length travelled plus the diagonal Manhattan
// distance to the target exceeds the budget; that distance never
// overestimates, so pruning loses no solution.
//
//   - [ExistsGoodPath] uses present edges only.
//   - [FindPaths] uses any step that is not forbidden and keeps walks the
//     state could still accept.
//   - [FindShortcut] prices absent steps at 1+√2 times their length.
package oracle
