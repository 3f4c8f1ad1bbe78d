// Package render draws partial lattice graphs.
//
// Two outputs are supported:
//
//   - Graphviz drawings. [ToDOT] pins every lattice point at its
//     coordinates so that neato keeps the geometry; [RenderSVG] lays the
//     graph out with github.com/goccy/go-graphviz. [ToPDF] and [ToPNG]
//     convert the SVG with the external rsvg-convert tool.
//   - Character drawings. [Draw] builds a [Canvas] of typed cells that the
//     terminal viewer colours; [ASCII] flattens it to plain text.
//
// Present edges are solid, forbidden edges dashed (or marked with "x" in
// character drawings), and highlighted edges (a shortcut, a matched
// pattern, a deduced walk) are drawn on top.
//
//	snap := g.Snapshot()
//	dot := render.ToDOT(snap, render.Options{Highlight: lattice.PathEdges(walk)})
//	svg, err := render.RenderSVG(ctx, dot)
package render
