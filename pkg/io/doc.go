// Package io reads and writes hierarchies and multimethod definitions.
//
// # Overview
//
// Two formats are supported:
//
//   - JSON, a lossless snapshot of a hierarchy's nodes and edges, for
//     exchange with other tools and for re-import
//   - TOML definition files, hand-written descriptions of a hierarchy plus
//     multimethods whose implementations return fixed labels
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "button"},
//	    {"id": "widget"},
//	    {"id": "toggle_button"}
//	  ],
//	  "edges": [
//	    {"child": "button", "parent": "widget"},
//	    {"child": "toggle_button", "parent": "button"}
//	  ]
//	}
//
// Nodes are listed in registration order and edges in insertion order.
// [ExportJSON] and [WriteJSON] write this format; [ImportJSON] and [ReadJSON]
// replay it into a new hierarchy whose nodes are strings. An optional "id"
// field carries the diagnostic ID of the exported hierarchy and is ignored on
// import.
//
// # Definition Files
//
// A definition file declares edges, an optional single root and any number
// of multimethods:
//
//	root = "thing"
//
//	[[edge]]
//	child = "button"
//	parent = "widget"
//
//	[[method]]
//	name = "to_string"
//	default = "unknown widget"
//
//	  [[method.impl]]
//	  dispatch = ["button"]
//	  label = "I am a button"
//
//	  [[method.prefer]]
//	  dispatch = ["rect", "shape"]
//	  over = [["shape", "rect"]]
//
// A one-element dispatch list is an atom; a longer one is a tuple. Use
// [LoadDefinition] or [ReadTOML] to decode, then [Definition.Build] to obtain
// a [Model] that resolves dispatch values to labels:
//
//	def, err := io.LoadDefinition("gui.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model, err := def.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	label, err := model.Resolve("to_string", hierarchy.Atom("toggle_button"))
//
// # Errors
//
// Errors carry codes from [github.com/matzehuels/hierarchy/pkg/errors]:
// INVALID_FORMAT for undecodable input or unknown keys, INVALID_NODE and
// INVALID_INPUT for bad names and dispatch values, FILE_NOT_FOUND for
// missing files. Hierarchy and multimethod errors are returned unchanged.
package io
