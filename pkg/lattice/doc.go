// Package lattice provides points, vectors and edges of the square lattice
// Z² together with the distance functions used by the prover.
//
// # Steps
//
// A lattice graph in this module only has edges between neighbours: four
// axial steps of length 1 and four diagonal steps of length √2. The eight
// steps are listed in [Directions] in a fixed order; every search explores
// neighbours in that order, which makes search results deterministic.
//
// # Distances
//
// [DistSquared] and [Manhattan] are integer valued. [ManhattanWithDiagonals]
// returns the exact length of a shortest walk as an [exact.Number] and is
// the admissible lower bound used for pruning.
//
// # Symmetries
//
// [Symmetries] holds the eight origin-fixing symmetries of the lattice
// (rotations by multiples of 90°, with and without a reflection). They are
// used to expand forbidden patterns.
package lattice
