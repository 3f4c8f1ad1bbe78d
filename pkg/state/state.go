package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

// MaxDegree is the maximum number of edges incident to a vertex.
const MaxDegree = 3

// ErrInvariant is returned by [State.Check] when the state is inconsistent.
var ErrInvariant = errors.New("graph state invariant violated")

// State is the partial graph under construction: its edges, the edges it
// is proven never to contain, vertex degrees and touched points.
//
// Both orientations of every edge and forbidden edge are stored. State is
// only mutated through [State.AddPath] and [State.RemovePath], which must
// be paired in LIFO order.
//
// The zero value is not usable; use New. State is not safe for concurrent
// use.
type State struct {
	edges     map[lattice.Edge]struct{}
	forbidden map[lattice.Edge]struct{}
	degree    map[lattice.Point]int
	points    map[lattice.Point]struct{}
}

// Undo records the changes made by one [State.AddPath] call. Each edge is
// listed in one orientation only.
type Undo struct {
	AddedEdges   []lattice.Edge
	AddedPoints  []lattice.Point
	NewForbidden []lattice.Edge
}

// RecentPoints returns the endpoints of the added edges, deduplicated and
// sorted.
func (u Undo) RecentPoints() []lattice.Point {
	seen := make(map[lattice.Point]struct{}, 2*len(u.AddedEdges))
	for _, e := range u.AddedEdges {
		seen[e.A] = struct{}{}
		seen[e.B] = struct{}{}
	}
	return sortedPoints(seen)
}

// New creates an empty state.
func New() *State {
	return &State{
		edges:     make(map[lattice.Edge]struct{}),
		forbidden: make(map[lattice.Edge]struct{}),
		degree:    make(map[lattice.Point]int),
		points:    make(map[lattice.Point]struct{}),
	}
}

// HasEdge reports whether the edge a–b is present.
func (s *State) HasEdge(a, b lattice.Point) bool {
	_, ok := s.edges[lattice.Edge{A: a, B: b}]
	return ok
}

// IsForbidden reports whether the edge a–b is forbidden.
func (s *State) IsForbidden(a, b lattice.Point) bool {
	_, ok := s.forbidden[lattice.Edge{A: a, B: b}]
	return ok
}

// Degree returns the number of edges incident to p.
func (s *State) Degree(p lattice.Point) int { return s.degree[p] }

// HasPoint reports whether p has been touched by an added path.
func (s *State) HasPoint(p lattice.Point) bool {
	_, ok := s.points[p]
	return ok
}

// Points returns the touched points in sorted order.
func (s *State) Points() []lattice.Point { return sortedPoints(s.points) }

// Edges returns the present edges, one canonical orientation each, sorted.
func (s *State) Edges() []lattice.Edge { return canonicalEdges(s.edges) }

// Forbidden returns the forbidden edges, one canonical orientation each,
// sorted.
func (s *State) Forbidden() []lattice.Edge { return canonicalEdges(s.forbidden) }

// EdgeCount returns the number of undirected edges.
func (s *State) EdgeCount() int { return len(s.edges) / 2 }

// ForbiddenCount returns the number of undirected forbidden edges.
func (s *State) ForbiddenCount() int { return len(s.forbidden) / 2 }

// CanAddPath reports whether path can be added: none of its steps is
// forbidden, and adding its missing edges keeps every degree at most
// [MaxDegree]. Increments are tallied across the whole path.
func (s *State) CanAddPath(path []lattice.Point) bool {
	increment := make(map[lattice.Point]int)
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if s.IsForbidden(a, b) {
			return false
		}
		if s.HasEdge(a, b) {
			continue
		}
		for _, p := range [2]lattice.Point{a, b} {
			increment[p]++
			if s.degree[p]+increment[p] > MaxDegree {
				return false
			}
		}
	}
	return true
}

// AddPath adds every step of path that is not already an edge and derives
// the forbidden edges implied by the insertion:
//
//   - the diagonal crossing a newly added diagonal is forbidden;
//   - a vertex whose degree reaches MaxDegree forbids all its free
//     incident steps.
//
// The caller must have checked [State.CanAddPath]. The returned Undo must
// be passed to [State.RemovePath] before any earlier Undo is.
func (s *State) AddPath(path []lattice.Point) Undo {
	var u Undo
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if !s.HasEdge(a, b) {
			u.AddedEdges = append(u.AddedEdges, lattice.Edge{A: a, B: b})
			u.NewForbidden = append(u.NewForbidden, s.addEdge(a, b)...)
		}
		for _, p := range [2]lattice.Point{a, b} {
			if !s.HasPoint(p) {
				u.AddedPoints = append(u.AddedPoints, p)
				s.points[p] = struct{}{}
			}
		}
	}
	return u
}

// addEdge inserts a–b in both orientations and returns the newly forbidden
// edges, one orientation each.
func (s *State) addEdge(a, b lattice.Point) []lattice.Edge {
	s.degree[a]++
	s.degree[b]++
	s.edges[lattice.Edge{A: a, B: b}] = struct{}{}
	s.edges[lattice.Edge{A: b, B: a}] = struct{}{}

	var added []lattice.Edge
	forbid := func(e lattice.Edge) {
		if s.HasEdge(e.A, e.B) || s.IsForbidden(e.A, e.B) {
			return
		}
		s.forbidden[e] = struct{}{}
		s.forbidden[e.Reverse()] = struct{}{}
		added = append(added, e)
	}

	if e := (lattice.Edge{A: a, B: b}); e.IsDiagonal() {
		forbid(e.Crossing())
	}
	for _, p := range [2]lattice.Point{a, b} {
		if s.degree[p] != MaxDegree {
			continue
		}
		for _, q := range lattice.Neighbours(p) {
			forbid(lattice.Edge{A: p, B: q})
		}
	}
	return added
}

// RemovePath reverts the changes recorded in u.
func (s *State) RemovePath(u Undo) {
	for _, e := range u.AddedEdges {
		s.degree[e.A]--
		s.degree[e.B]--
		if s.degree[e.A] == 0 {
			delete(s.degree, e.A)
		}
		if s.degree[e.B] == 0 {
			delete(s.degree, e.B)
		}
		delete(s.edges, e)
		delete(s.edges, e.Reverse())
	}
	for _, p := range u.AddedPoints {
		delete(s.points, p)
	}
	for _, e := range u.NewForbidden {
		delete(s.forbidden, e)
		delete(s.forbidden, e.Reverse())
	}
}

// Check verifies the state invariants: edge sets are symmetric and
// disjoint, and every degree equals the number of incident edges and is
// at most MaxDegree.
func (s *State) Check() error {
	incident := make(map[lattice.Point]int)
	for e := range s.edges {
		if _, ok := s.edges[e.Reverse()]; !ok {
			return fmt.Errorf("%w: edge %s stored in one orientation", ErrInvariant, e)
		}
		if _, ok := s.forbidden[e]; ok {
			return fmt.Errorf("%w: edge %s is both present and forbidden", ErrInvariant, e)
		}
		incident[e.A]++
	}
	for e := range s.forbidden {
		if _, ok := s.forbidden[e.Reverse()]; !ok {
			return fmt.Errorf("%w: forbidden edge %s stored in one orientation", ErrInvariant, e)
		}
	}
	for p, d := range s.degree {
		if d != incident[p] {
			return fmt.Errorf("%w: degree of %s is %d, has %d incident edges", ErrInvariant, p, d, incident[p])
		}
		if d > MaxDegree {
			return fmt.Errorf("%w: degree of %s is %d", ErrInvariant, p, d)
		}
	}
	for p, n := range incident {
		if s.degree[p] != n {
			return fmt.Errorf("%w: %s has %d incident edges, degree %d", ErrInvariant, p, n, s.degree[p])
		}
	}
	return nil
}

func sortedPoints(set map[lattice.Point]struct{}) []lattice.Point {
	out := make([]lattice.Point, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	slices.SortFunc(out, comparePoints)
	return out
}

func canonicalEdges(set map[lattice.Edge]struct{}) []lattice.Edge {
	out := make([]lattice.Edge, 0, len(set)/2)
	for e := range set {
		if c := e.Canonical(); c == e {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, compareEdges)
	return out
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

func compareEdges(e, f lattice.Edge) int {
	if c := comparePoints(e.A, f.A); c != 0 {
		return c
	}
	return comparePoints(e.B, f.B)
}
