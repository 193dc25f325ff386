package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/hierarchy/pkg/errors"
	"github.com/matzehuels/hierarchy/pkg/hierarchy"
)

type document struct {
	ID    string `json:"id,omitempty"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID string `json:"id"`
}

type edge struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

// WriteJSON encodes a hierarchy as JSON and writes it to w.
//
// Nodes are written in registration order using their fmt.Sprint form, and
// edges in insertion order, so the output can be re-imported with
// [ReadJSON]. Returns an error with code INVALID_NODE if two distinct nodes
// print the same.
func WriteJSON(h *hierarchy.Hierarchy, w io.Writer) error {
	nodes := h.Nodes()
	out := document{
		ID:    h.ID(),
		Nodes: make([]node, len(nodes)),
	}

	seen := make(map[string]any, len(nodes))
	for i, n := range nodes {
		id := fmt.Sprint(n)
		if prev, ok := seen[id]; ok {
			return errs.New(errs.ErrCodeInvalidNode,
				"nodes %#v and %#v have the same name %q", prev, n, id)
		}
		seen[id] = n
		out.Nodes[i] = node{ID: id}
	}
	for _, e := range h.Edges() {
		out.Edges = append(out.Edges, edge{Child: fmt.Sprint(e.Child), Parent: fmt.Sprint(e.Parent)})
	}
	if out.Edges == nil {
		out.Edges = []edge{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode")
	}
	return nil
}

// ExportJSON writes a hierarchy to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(h *hierarchy.Hierarchy, path string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(h, f)
}
