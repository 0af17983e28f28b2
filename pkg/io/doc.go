// Package io provides JSON import and export for passages.
//
// # Overview
//
// The format is a flat listing of nodes and edges, close to how annotation
// tools store passages, and is what the CLI and HTTP API accept.
//
// # JSON Format
//
//	{
//	  "id": "120",
//	  "nodes": [
//	    {"id": "0.1", "layer": "0", "tag": "Word", "text": "John", "position": 1},
//	    {"id": "1.1", "layer": "1", "tag": "FN"},
//	    {"id": "1.2", "layer": "1", "tag": "FN", "implicit": true}
//	  ],
//	  "edges": [
//	    {"parent": "1.1", "child": "1.2", "tags": ["H"]},
//	    {"parent": "1.2", "child": "1.3", "tags": ["A"], "remote": true}
//	  ],
//	  "heads": ["1.1"]
//	}
//
// # Node Fields
//
// Required:
//   - id: "<layer>.<n>" identifier
//   - layer: "0" for terminals, "1" for units
//   - tag: Word, Punctuation, FN, LKG or PNCT
//
// Optional:
//   - text, position: terminal surface form and 1-based order
//   - implicit: unit with no surface realisation
//   - tree_id: external identifier shown in diagnostics
//   - meta: freeform object carried through unchanged
//
// # Edge Fields
//
// "tags" lists one or more edge tags (H, A, P, S, D, ...). An empty list
// is accepted and left for the validator. "remote" marks a secondary edge.
//
// # Import
//
// Use [ImportJSON] to read from a file path, or [ReadJSON] to read from any
// io.Reader. Import only rejects input that cannot be represented at all;
// see [ReadJSON] for the error codes.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write indented JSON that re-imports
// identically. [Marshal] returns the compact form used for hashing.
package io
