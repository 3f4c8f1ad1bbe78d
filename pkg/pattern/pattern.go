// Package pattern detects forbidden local configurations in a partial graph.
//
// A pattern is a small set of edges in its own coordinates, typically the
// configuration of a previously proved lemma. A [Library] stores each base
// pattern under all eight lattice symmetries and finds translated copies of
// them among the present edges of a [state.State].
package pattern

import (
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// Pattern is a set of edges in pattern-local coordinates.
type Pattern []lattice.Edge

// FromPath returns the pattern formed by the consecutive edges of a path.
func FromPath(path []lattice.Point) Pattern { return Pattern(lattice.PathEdges(path)) }

// Points returns the distinct endpoints of the pattern in first-seen order.
func (p Pattern) Points() []lattice.Point {
	seen := make(map[lattice.Point]struct{}, 2*len(p))
	var out []lattice.Point
	for _, e := range p {
		for _, q := range [2]lattice.Point{e.A, e.B} {
			if _, ok := seen[q]; !ok {
				seen[q] = struct{}{}
				out = append(out, q)
			}
		}
	}
	return out
}

// Transform returns the image of the pattern under t.
func (p Pattern) Transform(t lattice.Transform) Pattern {
	out := make(Pattern, len(p))
	for i, e := range p {
		out[i] = t.ApplyEdge(e)
	}
	return out
}

// Translate returns the pattern shifted by v.
func (p Pattern) Translate(v lattice.Vector) Pattern {
	out := make(Pattern, len(p))
	for i, e := range p {
		out[i] = lattice.Edge{A: lattice.Translate(e.A, v), B: lattice.Translate(e.B, v)}
	}
	return out
}

// Library holds every symmetry image of a set of base patterns.
type Library struct {
	patterns []Pattern
}

// NewLibrary expands each base pattern under the eight lattice symmetries,
// in [lattice.Symmetries] order. Symmetric bases yield duplicate images,
// which are kept.
func NewLibrary(bases []Pattern) *Library {
	lib := &Library{patterns: make([]Pattern, 0, 8*len(bases))}
	for _, base := range bases {
		for _, t := range lattice.Symmetries {
			lib.patterns = append(lib.patterns, base.Transform(t))
		}
	}
	return lib
}

// Len returns the number of stored patterns.
func (l *Library) Len() int { return len(l.patterns) }

// Patterns returns the stored patterns.
func (l *Library) Patterns() []Pattern { return l.patterns }

// Detect reports whether p occurs among g's edges with one of its points
// placed on anchor. It returns the first such pattern point, trying points
// in [Pattern.Points] order.
func (l *Library) Detect(g *state.State, anchor lattice.Point, p Pattern) (lattice.Point, bool) {
	return detect(g, anchor, p)
}

func detect(g *state.State, anchor lattice.Point, p Pattern) (lattice.Point, bool) {
	for _, pp := range p.Points() {
		v := lattice.Vec(pp, anchor)
		found := true
		for _, e := range p {
			if !g.HasEdge(lattice.Translate(e.A, v), lattice.Translate(e.B, v)) {
				found = false
				break
			}
		}
		if found {
			return pp, true
		}
	}
	return lattice.Point{}, false
}

// FindNear looks for a stored pattern anchored at one of the recent points
// and returns the first match in global coordinates. A pattern that was
// absent before the last insertion and is present afterwards must use one
// of the inserted points, so scanning recent points is enough.
func (l *Library) FindNear(g *state.State, recent []lattice.Point) (Pattern, bool) {
	for _, r := range recent {
		for _, p := range l.patterns {
			if pp, ok := detect(g, r, p); ok {
				return p.Translate(lattice.Vec(pp, r)), true
			}
		}
	}
	return nil, false
}
