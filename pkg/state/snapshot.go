package state

import "github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"

// Snapshot is a read-only copy of a state's edges, handed to observers.
// Edges are in canonical orientation and sorted.
type Snapshot struct {
	Edges     []lattice.Edge `json:"edges"`
	Forbidden []lattice.Edge `json:"forbidden"`
}

// Snapshot copies the current edges and forbidden edges.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Edges:     s.Edges(),
		Forbidden: s.Forbidden(),
	}
}

// HasEdge reports whether the snapshot contains a–b in either orientation.
func (s Snapshot) HasEdge(a, b lattice.Point) bool {
	return containsEdge(s.Edges, lattice.Edge{A: a, B: b})
}

// IsForbidden reports whether the snapshot forbids a–b.
func (s Snapshot) IsForbidden(a, b lattice.Point) bool {
	return containsEdge(s.Forbidden, lattice.Edge{A: a, B: b})
}

// Bounds returns the smallest and largest coordinates touched by the
// snapshot. ok is false for an empty snapshot.
func (s Snapshot) Bounds() (lo, hi lattice.Point, ok bool) {
	first := true
	visit := func(p lattice.Point) {
		if first {
			lo, hi, first = p, p, false
			return
		}
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	for _, list := range [2][]lattice.Edge{s.Edges, s.Forbidden} {
		for _, e := range list {
			visit(e.A)
			visit(e.B)
		}
	}
	return lo, hi, !first
}

func containsEdge(list []lattice.Edge, e lattice.Edge) bool {
	c := e.Canonical()
	for _, f := range list {
		if f == c {
			return true
		}
	}
	return false
}
