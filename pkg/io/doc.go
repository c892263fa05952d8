// Package io provides JSON import and export for decision graphs.
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "n1", "kind": "goal", "label": "Ship it"},
//	    {"id": "n2", "kind": "decision", "label": "How"}
//	  ],
//	  "edges": [
//	    {"id": "e1", "source": "n1", "target": "n2"}
//	  ]
//	}
//
// Node kinds are normalized on import: legacy spellings such as
// "decision_node" or "Outcome-Terminal" map onto the canonical set,
// and unrecognized kinds fall back to "factor". Import reports the
// affected node IDs so callers can warn without rejecting the file.
//
// Structural problems (dangling edges, duplicate edges, cycles) are
// deliberately not import errors: the validators downstream detect
// them and suggest fixes, so a broken file can still be loaded and
// repaired.
package io
