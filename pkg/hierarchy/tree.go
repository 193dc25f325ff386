package hierarchy

import "github.com/matzehuels/hierarchy/pkg/observability"

// Tree is an ordered forest used to derive many relationships in one call.
// Each branch's children are derived from the branch node.
type Tree []Branch

// Branch is a node together with the subtree below it.
type Branch struct {
	Node     any
	Children Tree
}

// Sub builds a branch from a node and its children.
//
//	hierarchy.Tree{
//	    hierarchy.Sub("mammal",
//	        hierarchy.Sub("primate", hierarchy.Sub("human"), hierarchy.Sub("bonobo")),
//	        hierarchy.Sub("rodent", hierarchy.Sub("rat"))),
//	}
func Sub(node any, children ...Branch) Branch {
	return Branch{Node: node, Children: children}
}

// DeriveTree registers every top-level node of t and derives each nested
// node from its enclosing node, depth-first. Every edge is validated like
// [Hierarchy.Derive]. On failure, edges derived before the failing one are
// kept and the error is returned.
func (h *Hierarchy) DeriveTree(t Tree) error {
	return h.deriveTree(nil, t, false)
}

// DeriveUnder derives every top-level node of t from parent, then proceeds
// like [Hierarchy.DeriveTree].
func (h *Hierarchy) DeriveUnder(parent any, t Tree) error {
	return h.deriveTree(unwrap(parent), t, true)
}

type deriveEvent struct {
	child, parent any
	changed       bool
	err           error
}

func (h *Hierarchy) deriveTree(parent any, t Tree, attached bool) error {
	var events []deriveEvent

	h.mu.Lock()
	err := h.walk(parent, t, attached, &events)
	h.mu.Unlock()

	// Hooks run after the lock is released so they may query h.
	hooks := observability.Hierarchy()
	for _, e := range events {
		hooks.OnDerive(h.id, e.child, e.parent, e.changed, e.err)
	}
	return err
}

func (h *Hierarchy) walk(parent any, t Tree, attached bool, events *[]deriveEvent) error {
	for _, b := range t {
		node := unwrap(b.Node)
		if attached {
			changed, err := h.derive(node, parent)
			*events = append(*events, deriveEvent{node, parent, changed, err})
			if err != nil {
				return err
			}
		} else {
			if err := h.addNode(node); err != nil {
				return err
			}
		}
		if err := h.walk(node, b.Children, true, events); err != nil {
			return err
		}
	}
	return nil
}
