package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

type edge struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Forbidden bool   `json:"forbidden,omitempty"`
}

func nodeID(p lattice.Point) string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// WriteJSON encodes a configuration as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(s state.Snapshot, w io.Writer) error {
	out := graph{Nodes: []node{}, Edges: make([]edge, 0, len(s.Edges)+len(s.Forbidden))}
	seen := make(map[lattice.Point]bool)
	add := func(p lattice.Point) string {
		id := nodeID(p)
		if !seen[p] {
			seen[p] = true
			out.Nodes = append(out.Nodes, node{ID: id, X: p.X, Y: p.Y})
		}
		return id
	}

	for _, e := range s.Edges {
		out.Edges = append(out.Edges, edge{From: add(e.A), To: add(e.B)})
	}
	for _, e := range s.Forbidden {
		out.Edges = append(out.Edges, edge{From: add(e.A), To: add(e.B), Forbidden: true})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a configuration to a JSON file at path.
func ExportJSON(s state.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
