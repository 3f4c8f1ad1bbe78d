package sweep

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

// Figure2Graphs are the three periodic examples of locally optimal
// degree-three graphs.
var Figure2Graphs = []*Periodic{
	{
		Name:  "first",
		U:     lattice.Vector{DX: 4, DY: 0},
		V:     lattice.Vector{DX: 2, DY: -3},
		Reach: 3,
		Motif: [][]lattice.Point{
			{{0, 1}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {4, 1}, {5, 1}, {4, 2}, {3, 3}},
			{{2, 0}, {2, 1}, {1, 2}, {1, 1}},
			{{1, 2}, {2, 2}, {1, 3}},
			{{2, 1}, {3, 1}, {4, 0}},
			{{3, 1}, {3, 2}},
			{{2, 2}, {3, 2}, {4, 2}},
		},
	},
	{
		Name:  "second",
		U:     lattice.Vector{DX: 3, DY: 2},
		V:     lattice.Vector{DX: 4, DY: -4},
		Reach: 3,
		Motif: [][]lattice.Point{
			{{0, 0}, {1, 0}, {1, -1}, {2, -1}, {2, -2}, {3, -2}, {3, -3}, {4, -3}},
			{{4, -3}, {4, -4}, {5, -3}, {6, -2}, {7, -1}},
			{{1, -1}, {2, 0}, {2, 1}, {1, 1}},
			{{3, -3}, {4, -2}, {4, -1}, {4, 0}, {3, -1}, {2, -2}},
			{{6, -2}, {5, -2}, {5, -1}, {6, 0}},
			{{4, -2}, {5, -2}},
			{{4, -1}, {5, -1}},
			{{4, 0}, {5, 1}},
			{{2, 0}, {3, 0}},
			{{2, 1}, {3, 1}},
			{{3, -1}, {3, 0}, {3, 1}, {4, 2}},
		},
	},
	{
		Name:  "third",
		U:     lattice.Vector{DX: 2, DY: 3},
		V:     lattice.Vector{DX: 4, DY: -3},
		Reach: 3,
		Motif: [][]lattice.Point{
			{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {3, 2}, {4, 2}, {4, 1}, {5, 1}, {5, 0}, {6, 1}, {6, 0}, {7, 0}},
			{{2, 2}, {2, 1}, {2, 0}, {3, 0}, {3, -1}, {4, 0}, {4, -1}, {5, -1}, {5, -2}},
			{{4, -1}, {4, -2}},
			{{2, -2}, {3, -1}},
			{{1, -1}, {2, 0}},
			{{5, -1}, {5, 0}},
			{{3, 1}, {4, 2}},
			{{4, 0}, {5, 1}},
			{{2, 1}, {3, 1}, {3, 0}},
		},
	},
}

// Figure2 checks the local dilation of each graph in [Figure2Graphs] from
// every point of its fundamental parallelogram.
func Figure2(ctx context.Context) (*Report, error) {
	start := time.Now()
	var pairs, sources atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range Figure2Graphs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			graph, err := p.Graph()
			if err != nil {
				return err
			}
			src := FundamentalParallelogram(p.U, p.V)
			n, err := verifyLocalDilation(graph, src)
			if err != nil {
				return errors.Wrap(errors.ErrCodeDilationViolated, err, "figure 2, %s graph", p.Name)
			}
			pairs.Add(int64(n))
			sources.Add(int64(len(src)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		Name:     "figure-2",
		Cases:    len(Figure2Graphs),
		Sources:  int(sources.Load()),
		Pairs:    int(pairs.Load()),
		Duration: time.Since(start),
	}, nil
}
