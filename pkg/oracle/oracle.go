package oracle

import (
	"slices"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// dilationSquared is (1+√2)² = 3 + 2√2.
var dilationSquared = exact.Dilation.Pow(2)

// Bound returns the squared length budget (1+√2)²·|pq|² of the pair p, q.
func Bound(p, q lattice.Point) exact.Number {
	return dilationSquared.Mul(exact.Int(lattice.DistSquared(p, q)))
}

// ExistsGoodPath reports whether a walk of present edges joins p and q
// with length at most (1+√2)·|pq|. The search never steps straight back to
// the point it came from and stops at the first success.
func ExistsGoodPath(g *state.State, p, q lattice.Point) bool {
	bound := Bound(p, q)

	var dfs func(u lattice.Point, length exact.Number, prev *lattice.Point) bool
	dfs = func(u lattice.Point, length exact.Number, prev *lattice.Point) bool {
		if u == q {
			return length.Pow(2).LessEq(bound)
		}
		if length.Add(lattice.ManhattanWithDiagonals(q, u)).Pow(2).Greater(bound) {
			return false
		}
		for _, d := range lattice.Directions {
			v := lattice.Translate(u, d.Vector)
			if prev != nil && v == *prev {
				continue
			}
			if !g.HasEdge(u, v) {
				continue
			}
			if dfs(v, length.Add(d.Norm), &u) {
				return true
			}
		}
		return false
	}
	return dfs(p, exact.Zero, nil)
}

// FindPaths returns up to limit distinct walks from p to q of length at
// most (1+√2)·|pq| that avoid forbidden edges and pass
// [state.State.CanAddPath]. Walks may use edges that are not present yet.
// A limit of zero or less means no limit; otherwise the search stops as
// soon as limit walks are found.
//
// With limit 2 the result distinguishes the three cases the prover cares
// about: no walk (contradiction), exactly one (forced) and several.
func FindPaths(g *state.State, p, q lattice.Point, limit int) [][]lattice.Point {
	bound := Bound(p, q)
	var paths [][]lattice.Point

	var dfs func(u lattice.Point, length exact.Number, path []lattice.Point) bool
	dfs = func(u lattice.Point, length exact.Number, path []lattice.Point) bool {
		if u == q && length.Pow(2).LessEq(bound) && g.CanAddPath(path) {
			paths = append(paths, slices.Clone(path))
			return limit > 0 && len(paths) >= limit
		}
		if length.Add(lattice.ManhattanWithDiagonals(q, u)).Pow(2).Greater(bound) {
			return false
		}
		for _, d := range lattice.Directions {
			v := lattice.Translate(u, d.Vector)
			if len(path) > 1 && v == path[len(path)-2] {
				continue
			}
			if g.IsForbidden(u, v) {
				continue
			}
			if dfs(v, length.Add(d.Norm), append(path, v)) {
				return true
			}
		}
		return false
	}
	dfs(p, exact.Zero, []lattice.Point{p})
	return paths
}

// FindShortcut looks for a walk from u to v of length strictly less than
// bound. A present edge costs its length; any other step costs its length
// times 1+√2, since in a graph of local dilation 1+√2 two neighbours are
// always joined by a path at most that long.
func FindShortcut(g *state.State, u, v lattice.Point, bound exact.Number) ([]lattice.Point, bool) {
	var dfs func(x lattice.Point, length exact.Number, prev *lattice.Point) []lattice.Point
	dfs = func(x lattice.Point, length exact.Number, prev *lattice.Point) []lattice.Point {
		if x == v && length.Less(bound) {
			return []lattice.Point{v}
		}
		if length.Add(lattice.ManhattanWithDiagonals(v, x)).GreaterEq(bound) {
			return nil
		}
		for _, d := range lattice.Directions {
			y := lattice.Translate(x, d.Vector)
			if prev != nil && y == *prev {
				continue
			}
			cost := d.Norm
			if !g.HasEdge(x, y) {
				cost = cost.Mul(exact.Dilation)
			}
			if rest := dfs(y, length.Add(cost), &x); rest != nil {
				return append([]lattice.Point{x}, rest...)
			}
		}
		return nil
	}
	walk := dfs(u, exact.Zero, nil)
	return walk, walk != nil
}
