package lattice

import (
	"errors"
	"fmt"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
)

var (
	// ErrNotUnitPair is returned by [FiveShortPaths] when the two points
	// are not at Euclidean distance 1.
	ErrNotUnitPair = errors.New("points are not at distance 1")

	// ErrNotAWalk is returned by [ValidateWalk] when two consecutive points
	// are not lattice neighbours.
	ErrNotAWalk = errors.New("consecutive points are not lattice neighbours")
)

// Point is a location on the integer lattice Z².
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// String formats the point as "(x, y)".
func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Less orders points by X then Y.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Vector is a lattice translation.
type Vector struct {
	DX, DY int
}

// Edge is an ordered pair of points. A graph stores both orientations of
// each undirected edge.
type Edge struct {
	A, B Point
}

// E is shorthand for Edge{a, b}.
func E(a, b Point) Edge { return Edge{A: a, B: b} }

// Reverse returns the edge with its endpoints swapped.
func (e Edge) Reverse() Edge { return Edge{A: e.B, B: e.A} }

// Canonical returns the orientation whose first endpoint is smaller.
func (e Edge) Canonical() Edge {
	if e.B.Less(e.A) {
		return e.Reverse()
	}
	return e
}

// IsDiagonal reports whether the edge joins opposite corners of a unit square.
func (e Edge) IsDiagonal() bool { return Manhattan(e.A, e.B) == 2 && e.A.X != e.B.X && e.A.Y != e.B.Y }

// Crossing returns the other diagonal of the unit square spanned by a
// diagonal edge. The result is meaningless for axial edges.
func (e Edge) Crossing() Edge {
	v := Vec(e.A, e.B)
	return Edge{
		A: Translate(e.A, Vector{v.DX, 0}),
		B: Translate(e.A, Vector{0, v.DY}),
	}
}

// String formats the edge as "(x1, y1)-(x2, y2)".
func (e Edge) String() string { return e.A.String() + "-" + e.B.String() }

// Translate returns the image of p under the translation v.
func Translate(p Point, v Vector) Point { return Point{p.X + v.DX, p.Y + v.DY} }

// Vec returns the vector from p to q.
func Vec(p, q Point) Vector { return Vector{q.X - p.X, q.Y - p.Y} }

// DistSquared returns the squared Euclidean distance between p and q.
func DistSquared(p, q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Manhattan returns |Δx| + |Δy|.
func Manhattan(p, q Point) int {
	return abs(q.X-p.X) + abs(q.Y-p.Y)
}

// ManhattanWithDiagonals returns the length of a shortest lattice walk
// from p to q using axial and diagonal steps: (M−m) + m·√2 where
// m = min(|Δx|,|Δy|) and M = max(|Δx|,|Δy|). It never overestimates the
// length of any walk between p and q.
func ManhattanWithDiagonals(p, q Point) exact.Number {
	dx, dy := abs(q.X-p.X), abs(q.Y-p.Y)
	m, M := min(dx, dy), max(dx, dy)
	return exact.New(int64(M-m), int64(m))
}

// IsCloseTo reports whether p is within Manhattan distance d of at least
// one point of set.
func IsCloseTo(p Point, set []Point, d int) bool {
	for _, q := range set {
		if Manhattan(p, q) <= d {
			return true
		}
	}
	return false
}

// PathEdges returns the consecutive edges (p0,p1), (p1,p2), ... of a path.
func PathEdges(path []Point) []Edge {
	if len(path) < 2 {
		return nil
	}
	out := make([]Edge, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		out = append(out, Edge{path[i], path[i+1]})
	}
	return out
}

// ValidateWalk checks that path has at least two points and that every
// consecutive pair is an axial or diagonal lattice step.
func ValidateWalk(path []Point) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: walk needs at least two points, got %d", ErrNotAWalk, len(path))
	}
	for _, e := range PathEdges(path) {
		if !IsStep(e.A, e.B) {
			return fmt.Errorf("%w: %s", ErrNotAWalk, e)
		}
	}
	return nil
}

// IsStep reports whether p and q are distinct lattice neighbours
// (axial or diagonal).
func IsStep(p, q Point) bool {
	dx, dy := abs(q.X-p.X), abs(q.Y-p.Y)
	return p != q && dx <= 1 && dy <= 1
}

// rightUpLeftDown lists the axial unit vectors in counter-clockwise order.
var rightUpLeftDown = [4]Vector{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// FiveShortPaths returns the five walks of length at most 1+√2 joining two
// points at distance 1: the direct edge, then the four two-edge detours
// through a perpendicular neighbour of p (left, right) and of q (left,
// right).
func FiveShortPaths(p, q Point) ([][]Point, error) {
	v := Vec(p, q)
	i := -1
	for k, d := range rightUpLeftDown {
		if d == v {
			i = k
			break
		}
	}
	if i < 0 {
		return nil, fmt.Errorf("%w: %s and %s", ErrNotUnitPair, p, q)
	}
	left := rightUpLeftDown[(i+1)%4]
	right := rightUpLeftDown[(i+3)%4]

	paths := [][]Point{{p, q}}
	for _, pt := range [2]Point{p, q} {
		for _, d := range [2]Vector{left, right} {
			paths = append(paths, []Point{p, Translate(pt, d), q})
		}
	}
	return paths, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
