package sweep

import (
	"time"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

// DefaultLemma24Radius is the half-width of the window checked by default.
const DefaultLemma24Radius = 10

// Lemma24 builds the graph on [-radius, radius]² in which points at
// Manhattan distance 1, 2 or 3 are joined by edges of length 1+√2, 2+√2
// and 3+√2, and checks that the graph distance from the origin to every
// point p is at most (1+√2)|0p|.
func Lemma24(radius int) (*Report, error) {
	if radius < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "radius must be positive, got %d", radius)
	}
	start := time.Now()

	costs := [4]exact.Number{1: exact.New(1, 1), 2: exact.New(2, 1), 3: exact.New(3, 1)}
	inside := func(p lattice.Point) bool {
		return -radius <= p.X && p.X <= radius && -radius <= p.Y && p.Y <= radius
	}

	g := NewGraph()
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			p := lattice.Pt(x, y)
			for dx := -3; dx <= 3; dx++ {
				for dy := -3; dy <= 3; dy++ {
					q := lattice.Translate(p, lattice.Vector{DX: dx, DY: dy})
					d := lattice.Manhattan(p, q)
					if d == 0 || d > 3 || !inside(q) {
						continue
					}
					g.AddEdge(p, q, costs[d])
				}
			}
		}
	}

	origin := lattice.Pt(0, 0)
	dist := g.ShortestPaths(origin, 0, nil)
	dilSq := exact.Dilation.Pow(2)
	pairs := 0
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			p := lattice.Pt(x, y)
			bound := dilSq.Mul(exact.Int(lattice.DistSquared(origin, p)))
			if d := dist[p]; d.Pow(2).Greater(bound) {
				return nil, errors.New(errors.ErrCodeDilationViolated, "lemma 2.4 fails at %v: distance %v", p, d)
			}
			pairs++
		}
	}

	return &Report{
		Name:     "lemma-2.4",
		Cases:    1,
		Sources:  1,
		Pairs:    pairs,
		Duration: time.Since(start),
	}, nil
}
