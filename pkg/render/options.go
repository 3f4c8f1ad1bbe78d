package render

import (
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// Options configures a drawing.
type Options struct {
	// Title is printed above the drawing.
	Title string

	// Highlight edges are drawn emphasised, whether present or not.
	Highlight []lattice.Edge

	// Marks are points drawn emphasised, such as a target pair.
	Marks []lattice.Point

	// HideForbidden omits forbidden edges.
	HideForbidden bool

	// Window restricts the drawing to the box [Lo, Hi]. A zero window
	// covers everything drawn plus a margin of one.
	Window Window
}

// Window is an inclusive box of lattice coordinates.
type Window struct {
	Lo, Hi lattice.Point
}

// IsZero reports whether w is unset.
func (w Window) IsZero() bool { return w == Window{} }

// Contains reports whether p lies inside w.
func (w Window) Contains(p lattice.Point) bool {
	return p.X >= w.Lo.X && p.X <= w.Hi.X && p.Y >= w.Lo.Y && p.Y <= w.Hi.Y
}

// window resolves the drawing box for s.
func (o Options) window(s state.Snapshot) Window {
	if !o.Window.IsZero() {
		return o.Window
	}
	lo, hi, ok := s.Bounds()
	if !ok {
		lo, hi = lattice.Point{}, lattice.Point{}
	}
	extend := func(p lattice.Point) {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	for _, e := range o.Highlight {
		extend(e.A)
		extend(e.B)
	}
	for _, p := range o.Marks {
		extend(p)
	}
	return Window{
		Lo: lattice.Pt(lo.X-1, lo.Y-1),
		Hi: lattice.Pt(hi.X+1, hi.Y+1),
	}
}

// SeedOptions draws a seed path highlighted with the given points marked.
func SeedOptions(title string, seed []lattice.Point, marks ...lattice.Point) Options {
	return Options{Title: title, Highlight: lattice.PathEdges(seed), Marks: marks}
}
