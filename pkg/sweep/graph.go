package sweep

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/queues/priorityqueue"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// Arc is a weighted half-edge.
type Arc struct {
	To     lattice.Point
	Length exact.Number
}

// Graph is an undirected graph on lattice points with exact edge lengths.
type Graph struct {
	adj map[lattice.Point][]Arc
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[lattice.Point][]Arc)}
}

// AddEdge joins a and b with the given length. Repeated edges are ignored.
func (g *Graph) AddEdge(a, b lattice.Point, length exact.Number) {
	if a == b || g.HasEdge(a, b) {
		return
	}
	g.adj[a] = append(g.adj[a], Arc{To: b, Length: length})
	g.adj[b] = append(g.adj[b], Arc{To: a, Length: length})
}

// AddSegment joins a and b with their Euclidean length. Only axial and
// diagonal unit steps are accepted.
func (g *Graph) AddSegment(a, b lattice.Point) error {
	length, ok := lattice.StepNorm(a, b)
	if !ok {
		return fmt.Errorf("segment %v-%v is longer than sqrt(2)", a, b)
	}
	g.AddEdge(a, b, length)
	return nil
}

// AddPath adds the segments of path translated by shift.
func (g *Graph) AddPath(path []lattice.Point, shift lattice.Vector) error {
	for _, e := range lattice.PathEdges(path) {
		if err := g.AddSegment(lattice.Translate(e.A, shift), lattice.Translate(e.B, shift)); err != nil {
			return err
		}
	}
	return nil
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b lattice.Point) bool {
	for _, arc := range g.adj[a] {
		if arc.To == b {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{adj: make(map[lattice.Point][]Arc, len(g.adj))}
	for p, arcs := range g.adj {
		c.adj[p] = slices.Clone(arcs)
	}
	return c
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.adj) }

// Edges returns every edge once, in canonical orientation and sorted.
func (g *Graph) Edges() []lattice.Edge {
	var out []lattice.Edge
	for a, arcs := range g.adj {
		for _, arc := range arcs {
			if e := lattice.E(a, arc.To); e.Canonical() == e {
				out = append(out, e)
			}
		}
	}
	slices.SortFunc(out, func(e, f lattice.Edge) int {
		switch {
		case e.A != f.A:
			return comparePoints(e.A, f.A)
		default:
			return comparePoints(e.B, f.B)
		}
	})
	return out
}

// Snapshot returns the graph as a drawable snapshot without forbidden
// edges.
func (g *Graph) Snapshot() state.Snapshot {
	return state.Snapshot{Edges: g.Edges()}
}

func comparePoints(p, q lattice.Point) int {
	switch {
	case p.Less(q):
		return -1
	case q.Less(p):
		return 1
	}
	return 0
}

type queued struct {
	dist exact.Number
	p    lattice.Point
}

// ShortestPaths runs Dijkstra from src. When limit is positive the search
// stops as soon as limit settled vertices satisfy count; a nil count
// counts every vertex. The returned map holds the settled distances.
func (g *Graph) ShortestPaths(src lattice.Point, limit int, count func(lattice.Point) bool) map[lattice.Point]exact.Number {
	pq := priorityqueue.NewWith(func(a, b interface{}) int {
		return exact.Compare(a.(queued).dist, b.(queued).dist)
	})
	pq.Enqueue(queued{exact.Zero, src})

	dist := make(map[lattice.Point]exact.Number)
	counted := 0
	for !pq.Empty() && (limit <= 0 || counted < limit) {
		v, _ := pq.Dequeue()
		cur := v.(queued)
		if _, done := dist[cur.p]; done {
			continue
		}
		dist[cur.p] = cur.dist
		if count == nil || count(cur.p) {
			counted++
		}
		for _, arc := range g.adj[cur.p] {
			if _, done := dist[arc.To]; !done {
				pq.Enqueue(queued{cur.dist.Add(arc.Length), arc.To})
			}
		}
	}
	return dist
}
