package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	errs "github.com/matzehuels/hierarchy/pkg/errors"
	"github.com/matzehuels/hierarchy/pkg/hierarchy"
)

// ReadJSON decodes a JSON hierarchy from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "button"}, {"id": "widget"}],
//	  "edges": [{"child": "button", "parent": "widget"}]
//	}
//
// Nodes are registered first, in order, then every edge is derived in
// order with the usual validation. Nodes of the returned hierarchy are
// strings. Edges may name nodes missing from "nodes"; they are registered
// on first use.
//
// ReadJSON returns an error if:
//   - The JSON is malformed (code INVALID_FORMAT)
//   - A node name is invalid (code INVALID_NODE)
//   - An edge would close a cycle or duplicates an indirect ancestor
//
// Hierarchy errors keep their sentinel, so errors.Is with
// [hierarchy.ErrCircularRelationship] works on the result.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*hierarchy.Hierarchy, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}

	h := hierarchy.New()
	for _, n := range data.Nodes {
		if err := errs.ValidateNodeName(n.ID); err != nil {
			return nil, err
		}
		if err := h.AddNode(n.ID); err != nil {
			return nil, err
		}
	}
	for _, e := range data.Edges {
		if err := errs.ValidateNodeName(e.Child); err != nil {
			return nil, err
		}
		if err := errs.ValidateNodeName(e.Parent); err != nil {
			return nil, err
		}
		if err := h.Derive(e.Child, e.Parent); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// ImportJSON reads a JSON file at path and returns the decoded hierarchy.
//
// A missing file is reported with code FILE_NOT_FOUND. Decoding errors are
// the same as for [ReadJSON].
func ImportJSON(path string) (*hierarchy.Hierarchy, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

func open(path string) (*os.File, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}
