package sweep

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

// Proposition21Graph is the fixed part of the family of graphs in
// Proposition 2.1.
var Proposition21Graph = &Periodic{
	Name:  "proposition-2.1",
	U:     lattice.Vector{DX: 2, DY: -2},
	V:     lattice.Vector{DX: 5, DY: 0},
	Reach: 4,
	Motif: [][]lattice.Point{
		{{0, 0}, {1, 1}, {1, 2}, {2, 2}, {3, 3}, {3, 2}, {4, 2}, {4, 1}, {5, 1}},
		{{1, 1}, {2, 1}, {2, 2}},
		{{1, -1}, {2, 0}, {3, 1}, {4, 2}},
	},
}

// Proposition21Sources are representatives of every vertex orbit of the
// periodic graph.
var Proposition21Sources = []lattice.Point{
	{1, -1}, {2, -1}, {3, -1},
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{2, 1}, {3, 1}, {3, 2},
}

// Proposition21Choices are the lower-left corners of the unit squares
// whose pair of sides, horizontal or vertical, varies across the family.
var Proposition21Choices = []lattice.Point{{0, 3}, {2, 1}, {4, -1}, {-1, -1}}

// Proposition21Variant returns the edges added by mask: bit i set selects
// the horizontal sides of the square at Proposition21Choices[i], clear
// selects its vertical sides.
func Proposition21Variant(mask int) []lattice.Edge {
	var out []lattice.Edge
	for i, c := range Proposition21Choices {
		x, y := c.X, c.Y
		if mask&(1<<i) != 0 {
			out = append(out,
				lattice.E(lattice.Pt(x, y), lattice.Pt(x+1, y)),
				lattice.E(lattice.Pt(x, y-1), lattice.Pt(x+1, y-1)))
		} else {
			out = append(out,
				lattice.E(lattice.Pt(x, y), lattice.Pt(x, y-1)),
				lattice.E(lattice.Pt(x+1, y), lattice.Pt(x+1, y-1)))
		}
	}
	return out
}

// Proposition21 checks every variant of the family concurrently. The
// first violation cancels the remaining variants.
func Proposition21(ctx context.Context) (*Report, error) {
	start := time.Now()
	base, err := Proposition21Graph.Graph()
	if err != nil {
		return nil, err
	}

	cases := 1 << len(Proposition21Choices)
	var pairs atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for mask := 0; mask < cases; mask++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			variant := base.Clone()
			for _, e := range Proposition21Variant(mask) {
				if err := variant.AddSegment(e.A, e.B); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "variant %04b", mask)
				}
			}
			n, err := verifyLocalDilation(variant, Proposition21Sources)
			if err != nil {
				return errors.Wrap(errors.ErrCodeDilationViolated, err, "proposition 2.1, variant %04b", mask)
			}
			pairs.Add(int64(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		Name:     Proposition21Graph.Name,
		Cases:    cases,
		Sources:  len(Proposition21Sources),
		Pairs:    int(pairs.Load()),
		Duration: time.Since(start),
	}, nil
}
