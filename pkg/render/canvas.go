package render

import (
	"strings"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// CellKind classifies a character of a [Canvas].
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellGrid
	CellVertex
	CellMark
	CellEdge
	CellForbidden
	CellHighlight
)

// Cell is one character of a drawing.
type Cell struct {
	Rune rune
	Kind CellKind
}

// Canvas is a character drawing of a window of the lattice. Lattice point
// (x, y) sits at column 4(x-Lo.X) and row 2(Hi.Y-y), so north is up.
type Canvas struct {
	Window Window
	Title  string
	Cells  [][]Cell
}

const (
	colsPerUnit = 4
	rowsPerUnit = 2
)

// Draw renders s inside the options' window.
func Draw(s state.Snapshot, opts Options) *Canvas {
	w := opts.window(s)
	width := colsPerUnit*(w.Hi.X-w.Lo.X) + 1
	height := rowsPerUnit*(w.Hi.Y-w.Lo.Y) + 1
	c := &Canvas{Window: w, Title: opts.Title, Cells: make([][]Cell, height)}
	for r := range c.Cells {
		c.Cells[r] = make([]Cell, width)
		for col := range c.Cells[r] {
			c.Cells[r][col] = Cell{Rune: ' ', Kind: CellEmpty}
		}
	}

	for y := w.Lo.Y; y <= w.Hi.Y; y++ {
		for x := w.Lo.X; x <= w.Hi.X; x++ {
			c.set(lattice.Pt(x, y), Cell{'·', CellGrid})
		}
	}
	if !opts.HideForbidden {
		for _, e := range s.Forbidden {
			c.edge(e, CellForbidden)
		}
	}
	for _, e := range s.Edges {
		c.edge(e, CellEdge)
		c.set(e.A, Cell{'o', CellVertex})
		c.set(e.B, Cell{'o', CellVertex})
	}
	for _, e := range opts.Highlight {
		c.edge(e, CellHighlight)
	}
	for _, p := range opts.Marks {
		c.set(p, Cell{'@', CellMark})
	}
	return c
}

func (c *Canvas) pos(p lattice.Point) (row, col int) {
	return rowsPerUnit * (c.Window.Hi.Y - p.Y), colsPerUnit * (p.X - c.Window.Lo.X)
}

func (c *Canvas) set(p lattice.Point, cell Cell) {
	if !c.Window.Contains(p) {
		return
	}
	r, col := c.pos(p)
	c.Cells[r][col] = cell
}

func (c *Canvas) edge(e lattice.Edge, kind CellKind) {
	if !c.Window.Contains(e.A) || !c.Window.Contains(e.B) || !lattice.IsStep(e.A, e.B) {
		return
	}
	r1, c1 := c.pos(e.A)
	r2, c2 := c.pos(e.B)
	if c1 > c2 {
		r1, c1, r2, c2 = r2, c2, r1, c1
	}

	put := func(r, col int, ch rune) {
		if kind == CellForbidden {
			if cur := c.Cells[r][col].Kind; cur == CellEdge || cur == CellHighlight {
				return
			}
			ch = 'x'
		}
		c.Cells[r][col] = Cell{ch, kind}
	}

	switch {
	case r1 == r2:
		if kind == CellForbidden {
			put(r1, c1+colsPerUnit/2, 'x')
			return
		}
		ch := '-'
		if kind == CellHighlight {
			ch = '='
		}
		for col := c1 + 1; col < c2; col++ {
			put(r1, col, ch)
		}
	case c1 == c2:
		ch := '|'
		if kind == CellHighlight {
			ch = '‖'
		}
		put((r1+r2)/2, c1, ch)
	default:
		// rows grow southwards, so a falling row index means a rising edge
		ch := '\\'
		if r2 < r1 {
			ch = '/'
		}
		put((r1+r2)/2, (c1+c2)/2, ch)
	}
}

// String renders the canvas as plain text, title first.
func (c *Canvas) String() string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(c.Title)
		b.WriteByte('\n')
	}
	for _, row := range c.Cells {
		line := make([]rune, len(row))
		for i, cell := range row {
			line[i] = cell.Rune
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// ASCII draws s as plain text.
func ASCII(s state.Snapshot, opts Options) string {
	return Draw(s, opts).String()
}
