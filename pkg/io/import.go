package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
)

// ReadJSON decodes a configuration from r.
//
// ReadJSON returns an INVALID_INPUT error if:
//   - The JSON is malformed
//   - Two nodes share an ID
//   - An edge references an unknown node ID
//   - An edge is not a unit or diagonal step
//
// Edges of the result are in canonical orientation and sorted, with
// duplicates removed, as in a snapshot taken from the search.
func ReadJSON(r io.Reader) (state.Snapshot, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return state.Snapshot{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode configuration")
	}

	points := make(map[string]lattice.Point, len(data.Nodes))
	for _, n := range data.Nodes {
		if _, dup := points[n.ID]; dup {
			return state.Snapshot{}, errors.New(errors.ErrCodeInvalidInput, "node %s: duplicate id", n.ID)
		}
		points[n.ID] = lattice.Pt(n.X, n.Y)
	}

	var s state.Snapshot
	for _, e := range data.Edges {
		a, okA := points[e.From]
		b, okB := points[e.To]
		if !okA || !okB {
			return state.Snapshot{}, errors.New(errors.ErrCodeInvalidInput, "edge %s->%s: unknown node", e.From, e.To)
		}
		if _, ok := lattice.StepNorm(a, b); !ok {
			return state.Snapshot{}, errors.New(errors.ErrCodeInvalidInput, "edge %s->%s: not a unit or diagonal step", e.From, e.To)
		}
		if e.Forbidden {
			s.Forbidden = append(s.Forbidden, lattice.E(a, b).Canonical())
		} else {
			s.Edges = append(s.Edges, lattice.E(a, b).Canonical())
		}
	}
	s.Edges = normalize(s.Edges)
	s.Forbidden = normalize(s.Forbidden)
	return s, nil
}

func normalize(edges []lattice.Edge) []lattice.Edge {
	slices.SortFunc(edges, compareEdges)
	return slices.Compact(edges)
}

// ImportJSON reads a configuration from the JSON file at path.
func ImportJSON(path string) (state.Snapshot, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return state.Snapshot{}, errors.New(errors.ErrCodeFileNotFound, "configuration file %s not found", path)
	}
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
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
