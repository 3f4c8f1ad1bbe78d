package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// ToDOT converts a snapshot to an undirected Graphviz graph whose nodes are
// pinned at their lattice coordinates. Render it with neato, as
// [RenderSVG] does.
func ToDOT(s state.Snapshot, opts Options) string {
	w := opts.window(s)
	marked := make(map[lattice.Point]bool, len(opts.Marks))
	for _, p := range opts.Marks {
		marked[p] = true
	}
	used := make(map[lattice.Point]bool)
	for _, e := range s.Edges {
		used[e.A], used[e.B] = true, true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, label=\"\", width=0.06, fixedsize=true, color=gray75, fillcolor=gray75];\n")
	buf.WriteString("  edge [penwidth=3, color=black];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=20;\n", opts.Title)
	}
	buf.WriteString("\n")

	for y := w.Hi.Y; y >= w.Lo.Y; y-- {
		for x := w.Lo.X; x <= w.Hi.X; x++ {
			p := lattice.Pt(x, y)
			attrs := fmt.Sprintf("pos=\"%d,%d!\"", x, y)
			switch {
			case marked[p]:
				attrs += ", width=0.2, color=magenta, fillcolor=magenta"
			case used[p]:
				attrs += ", width=0.12, color=black, fillcolor=black"
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(p), attrs)
		}
	}

	buf.WriteString("\n")
	if !opts.HideForbidden {
		for _, e := range s.Forbidden {
			if w.Contains(e.A) && w.Contains(e.B) {
				fmt.Fprintf(&buf, "  %q -- %q [style=dashed, penwidth=1, color=salmon];\n", nodeID(e.A), nodeID(e.B))
			}
		}
	}
	for _, e := range s.Edges {
		if w.Contains(e.A) && w.Contains(e.B) {
			fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(e.A), nodeID(e.B))
		}
	}
	for _, e := range opts.Highlight {
		if w.Contains(e.A) && w.Contains(e.B) {
			fmt.Fprintf(&buf, "  %q -- %q [penwidth=6, color=darkviolet];\n", nodeID(e.A), nodeID(e.B))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(p lattice.Point) string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// RenderSVG renders a DOT graph to SVG with the neato layout, which keeps
// pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one
// whose width and height match the viewBox, so browsers scale it cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
