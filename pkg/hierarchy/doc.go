// Package hierarchy provides a mutable directed acyclic graph of is-a
// relationships used to rank dispatch values by specificity.
//
// # Overview
//
// A [Hierarchy] records child → parent edges between arbitrary comparable
// values (strings, ints, [reflect.Type] values, small structs). For every node
// it keeps the full ancestor closure, including the node itself, so that
// [Hierarchy.IsA] is a map lookup rather than a graph walk. The closure is
// maintained incrementally: inserting an edge pushes the parent's ancestors
// down to every descendant of the child, stopping at subtrees that already
// know them.
//
// # Basic Usage
//
//	h := hierarchy.New()
//	_ = h.Derive("button", "widget")
//	_ = h.Derive("toggle_button", "button")
//
//	h.IsA(hierarchy.Atom("toggle_button"), hierarchy.Atom("widget")) // true
//
// Relationships can be added long after nodes were first used. Deriving an
// existing node from a new parent, or grafting a new common root with
// [Hierarchy.AddRoot], updates the closure of every node below it.
//
// # Dispatch Values
//
// Queries take a [Value], which is either an atom wrapping one node or a
// tuple of values. Tuples are related position by position and only to tuples
// of the same length, which is how multi-argument dispatch is expressed:
//
//	h.IsA(hierarchy.TupleOf("square", "rect"), hierarchy.TupleOf("rect", "shape")) // true
//
// # Validation
//
// [Hierarchy.Derive] rejects edges that would close a cycle
// ([ErrCircularRelationship]) and edges whose parent is already an indirect
// ancestor of the child ([ErrParentAlreadyInHierarchy]). Re-deriving an
// existing direct edge is a no-op. Errors wrap the sentinels in
// [github.com/matzehuels/hierarchy/pkg/errors.Error] values carrying a code.
//
// The [Strict] option restricts the hierarchy to a tree grown downward from
// a single root, reporting [ErrParentNotInHierarchy] and
// [ErrChildAlreadyInHierarchy].
//
// # Ambient Types
//
// An [Oracle] supplies a secondary is-a relation for atoms the recorded
// closure does not relate. [ReflectOracle] relates Go types through
// interface implementation, and values to their dynamic types.
//
// # Versioning
//
// Every structural change (a new node, a new edge, a graft) increments
// [Hierarchy.Version] exactly once. Derived caches compare versions to detect
// staleness; the version can be read without locking.
//
// # Concurrency
//
// Hierarchy instances are safe for concurrent use. Writers hold an exclusive
// lock for the whole closure update, so readers never observe a partially
// updated ancestor set. [Hierarchy.Read] runs several queries under one read
// lock.
package hierarchy
