// Package io provides JSON import and export for lattice configurations.
//
// # Overview
//
// A configuration is the set of edges and forbidden edges the search held
// at some point, as carried by state.Snapshot. `spanners prove --svg`
// saves the last configuration of every claim next to its drawing, and
// `spanners render --snapshot` draws a saved file again.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "0,0", "x": 0, "y": 0},
//	    {"id": "1,1", "x": 1, "y": 1},
//	    {"id": "1,0", "x": 1, "y": 0}
//	  ],
//	  "edges": [
//	    {"from": "0,0", "to": "1,1"},
//	    {"from": "0,0", "to": "1,0", "forbidden": true}
//	  ]
//	}
//
// Node IDs are free-form but must be unique; coordinates are what count.
// Every edge must join two known nodes at distance 1 or √2.
//
// # Import
//
// Use [ImportJSON] to read a configuration from a file path, or [ReadJSON]
// to read from any io.Reader:
//
//	snap, err := io.ImportJSON("p4.json")
//
// # Export
//
// Use [ExportJSON] to write to a file, or [WriteJSON] to write to any
// io.Writer. Nodes are written in the order their points first appear.
package io
