package sweep

import (
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

// Periodic describes a doubly periodic geometric graph: a motif of walks
// repeated along the lattice generated by U and V.
type Periodic struct {
	Name  string
	U, V  lattice.Vector
	Reach int // copies along each generator on either side of the origin
	Motif [][]lattice.Point
}

// Shift returns i·U + j·V.
func (p *Periodic) Shift(i, j int) lattice.Vector {
	return lattice.Vector{DX: i*p.U.DX + j*p.V.DX, DY: i*p.U.DY + j*p.V.DY}
}

// Graph materialises the translated copies of the motif.
func (p *Periodic) Graph() (*Graph, error) {
	g := NewGraph()
	for i := -p.Reach; i <= p.Reach; i++ {
		for j := -p.Reach; j <= p.Reach; j++ {
			shift := p.Shift(i, j)
			for _, path := range p.Motif {
				if err := g.AddPath(path, shift); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", p.Name)
				}
			}
		}
	}
	return g, nil
}

// FundamentalParallelogram returns the lattice points p in [-10, 10]² with
// 0 ≤ p·v1 < |v1|² and 0 ≤ p·v2 < |v2|².
func FundamentalParallelogram(v1, v2 lattice.Vector) []lattice.Point {
	n1 := v1.DX*v1.DX + v1.DY*v1.DY
	n2 := v2.DX*v2.DX + v2.DY*v2.DY

	var out []lattice.Point
	for x := -10; x <= 10; x++ {
		for y := -10; y <= 10; y++ {
			s1 := x*v1.DX + y*v1.DY
			s2 := x*v2.DX + y*v2.DY
			if 0 <= s1 && s1 < n1 && 0 <= s2 && s2 < n2 {
				out = append(out, lattice.Pt(x, y))
			}
		}
	}
	return out
}

// closePoints is the number of lattice points within distance √5 of a
// point, the point itself included.
const closePoints = 21

// verifyLocalDilation checks that every pair (p, q) with p in sources and
// |pq| ≤ √5 is joined in g by a path of length at most (1+√2)|pq|. It
// returns the number of pairs checked.
func verifyLocalDilation(g *Graph, sources []lattice.Point) (int, error) {
	dilSq := exact.Dilation.Pow(2)
	pairs := 0
	for _, p := range sources {
		near := func(q lattice.Point) bool { return lattice.DistSquared(p, q) <= 5 }
		dist := g.ShortestPaths(p, closePoints, near)

		for dx := -2; dx <= 2; dx++ {
			for dy := -2; dy <= 2; dy++ {
				q := lattice.Translate(p, lattice.Vector{DX: dx, DY: dy})
				if !near(q) {
					continue
				}
				d, ok := dist[q]
				if !ok {
					return pairs, errors.New(errors.ErrCodeDilationViolated, "%v and %v are not connected", p, q)
				}
				if d.Pow(2).Greater(dilSq.Mul(exact.Int(lattice.DistSquared(p, q)))) {
					return pairs, errors.New(errors.ErrCodeDilationViolated,
						"dilation between %v and %v exceeds 1+sqrt(2): graph distance %v", p, q, d)
				}
				pairs++
			}
		}
	}
	return pairs, nil
}
