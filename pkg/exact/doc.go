// Package exact implements arithmetic over the ring Z[√2].
//
// Every length in a lattice graph whose edges are axial (length 1) or
// diagonal (length √2) is an element a + b·√2 with integer a and b. The
// dilation target 1+√2 also lives in the ring, so dilation checks can be
// carried out without floating point:
//
//	bound := exact.Dilation.Pow(2).Mul(exact.Int(5)) // (1+√2)² · |pq|²
//	ok := length.Pow(2).LessEq(bound)
//
// The ring is not closed under square roots (√(√2) is not in it), which is
// why callers compare squared lengths against squared bounds.
//
// # Ordering
//
// [Number.IsPositive] decides the sign of a + b·√2 exactly by comparing a²
// with 2b² according to the signs of a and b. All comparison methods are
// derived from it.
package exact
