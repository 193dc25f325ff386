package hierarchy

import (
	"errors"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	errs "github.com/matzehuels/hierarchy/pkg/errors"
	"github.com/matzehuels/hierarchy/pkg/observability"
)

var (
	// ErrInvalidNode is returned when a node is nil or not comparable.
	// Nodes are used as map keys and must support ==.
	ErrInvalidNode = errors.New("invalid node")

	// ErrCircularRelationship is returned by [Hierarchy.Derive] when the
	// parent is already a descendant of the child (or is the child itself).
	ErrCircularRelationship = errors.New("circular relationship")

	// ErrParentAlreadyInHierarchy is returned by [Hierarchy.Derive] when the
	// parent is already an indirect ancestor of the child, and by
	// [Hierarchy.AddRoot] when the new root is already a known node.
	ErrParentAlreadyInHierarchy = errors.New("parent already in hierarchy")

	// ErrParentNotInHierarchy is returned by [Hierarchy.Derive] in strict
	// mode when the parent has not been registered yet, and by
	// [Hierarchy.AddNode] in strict mode when the node would become a
	// second root.
	ErrParentNotInHierarchy = errors.New("parent not in hierarchy")

	// ErrChildAlreadyInHierarchy is returned by [Hierarchy.Derive] in strict
	// mode when the child is already registered under another parent.
	ErrChildAlreadyInHierarchy = errors.New("child already in hierarchy")
)

// Edge is a direct child → parent relationship.
type Edge struct {
	Child  any
	Parent any
}

// Option configures a Hierarchy at construction.
type Option func(*Hierarchy)

// WithRoot registers root as the first node. A nil or non-comparable root
// is ignored, leaving the hierarchy empty.
func WithRoot(root any) Option {
	return func(h *Hierarchy) {
		root = unwrap(root)
		if checkNode(root) != nil {
			return
		}
		h.register(root)
	}
}

// WithOracle installs an ambient subtype relation consulted by
// [Hierarchy.IsA] when the recorded closure does not relate two atoms.
func WithOracle(o Oracle) Option {
	return func(h *Hierarchy) {
		h.oracle = o
	}
}

// Strict makes the hierarchy a tree grown downward from a single root:
// parents must already be registered, a registered child cannot be derived
// under a new parent, and once a node exists no isolated node may be added.
// New roots may still be grafted on top with [Hierarchy.AddRoot].
func Strict() Option {
	return func(h *Hierarchy) {
		h.strict = true
	}
}

// Hierarchy is a directed acyclic graph of is-a relationships between
// comparable values. It stores the reflexive ancestor closure of every node,
// so is-a queries are a map lookup.
//
// The zero value is not usable - use New to create a Hierarchy.
// Hierarchy is safe for concurrent use.
type Hierarchy struct {
	mu        sync.RWMutex
	id        string
	oracle    Oracle
	strict    bool
	order     []any                    // registration order
	parents   map[any][]any            // child -> direct parents
	children  map[any][]any            // parent -> direct children
	ancestors map[any]map[any]struct{} // node -> reflexive ancestor closure
	edges     []Edge                   // insertion order
	version   atomic.Uint64
}

// New creates an empty Hierarchy with version 0.
func New(opts ...Option) *Hierarchy {
	h := &Hierarchy{
		id:        uuid.NewString(),
		parents:   make(map[any][]any),
		children:  make(map[any][]any),
		ancestors: make(map[any]map[any]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ID returns a random identifier used to tell hierarchies apart in
// observability events.
func (h *Hierarchy) ID() string { return h.id }

// Version returns the number of structural changes applied so far.
// It can be read without holding any lock.
func (h *Hierarchy) Version() uint64 { return h.version.Load() }

// AddNode registers n as an isolated node. Registering a known node is a
// no-op. In strict mode only the first node may be added this way; later
// ones return ErrParentNotInHierarchy.
func (h *Hierarchy) AddNode(n any) error {
	n = unwrap(n)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addNode(n)
}

func (h *Hierarchy) addNode(n any) error {
	if err := checkNode(n); err != nil {
		return err
	}
	if _, ok := h.ancestors[n]; ok {
		return nil
	}
	if h.strict && len(h.order) > 0 {
		return errs.Wrap(errs.ErrCodeParentNotInHierarchy, ErrParentNotInHierarchy,
			"%v has no parent and %v is already the root", n, h.roots()[0])
	}
	h.register(n)
	h.version.Add(1)
	return nil
}

// Derive records that child is-a parent, registering unknown nodes.
//
// Re-deriving an existing direct edge is a no-op and leaves the version
// unchanged. Returns ErrCircularRelationship if parent is already a
// descendant of child, and ErrParentAlreadyInHierarchy if parent is already
// an indirect ancestor of child. Atom values are unwrapped to their node.
func (h *Hierarchy) Derive(child, parent any) error {
	child, parent = unwrap(child), unwrap(parent)
	h.mu.Lock()
	changed, err := h.derive(child, parent)
	h.mu.Unlock()
	observability.Hierarchy().OnDerive(h.id, child, parent, changed, err)
	return err
}

func (h *Hierarchy) derive(child, parent any) (bool, error) {
	if err := checkNode(child); err != nil {
		return false, err
	}
	if err := checkNode(parent); err != nil {
		return false, err
	}
	if slices.Contains(h.parents[child], parent) {
		return false, nil
	}
	if h.strict {
		if _, ok := h.ancestors[parent]; !ok {
			return false, errs.Wrap(errs.ErrCodeParentNotInHierarchy, ErrParentNotInHierarchy,
				"derive %v from %v", child, parent)
		}
		if _, ok := h.ancestors[child]; ok {
			return false, errs.Wrap(errs.ErrCodeChildAlreadyInHierarchy, ErrChildAlreadyInHierarchy,
				"%v is already registered", child)
		}
	}
	if child == parent || h.isAncestor(child, parent) {
		return false, errs.Wrap(errs.ErrCodeCircularRelationship, ErrCircularRelationship,
			"%v is already an ancestor of %v", child, parent)
	}
	if h.isAncestor(parent, child) {
		return false, errs.Wrap(errs.ErrCodeParentAlreadyInHierarchy, ErrParentAlreadyInHierarchy,
			"%v is already an indirect ancestor of %v", parent, child)
	}
	h.addEdge(child, parent)
	return true, nil
}

// addEdge inserts child → parent and pushes the parent's closure down to
// every descendant of child. The caller holds the write lock and has
// validated the edge.
func (h *Hierarchy) addEdge(child, parent any) {
	h.register(child)
	h.register(parent)
	h.parents[child] = append(h.parents[child], parent)
	h.children[parent] = append(h.children[parent], child)
	h.edges = append(h.edges, Edge{Child: child, Parent: parent})
	h.propagate(child, h.ancestors[parent])
	h.version.Add(1)
}

// propagate adds every node of above to the closure of from and its
// descendants. A node whose closure already holds all of above is not
// descended into: its descendants' closures contain its own.
func (h *Hierarchy) propagate(from any, above map[any]struct{}) {
	queue := []any{from}
	seen := map[any]struct{}{from: {}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		closure := h.ancestors[n]
		grew := false
		for a := range above {
			if _, ok := closure[a]; !ok {
				closure[a] = struct{}{}
				grew = true
			}
		}
		if !grew {
			continue
		}
		for _, c := range h.children[n] {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				queue = append(queue, c)
			}
		}
	}
}

// AddRoot grafts root above every current root, so that every existing node
// becomes a descendant of it. Returns ErrParentAlreadyInHierarchy if root is
// already a known node. The whole graft counts as one structural change.
func (h *Hierarchy) AddRoot(root any) error {
	root = unwrap(root)
	h.mu.Lock()
	grafted, err := h.addRoot(root)
	h.mu.Unlock()
	observability.Hierarchy().OnGraft(h.id, root, grafted, err)
	return err
}

func (h *Hierarchy) addRoot(root any) (int, error) {
	if err := checkNode(root); err != nil {
		return 0, err
	}
	if _, ok := h.ancestors[root]; ok {
		return 0, errs.Wrap(errs.ErrCodeParentAlreadyInHierarchy, ErrParentAlreadyInHierarchy,
			"%v is already a known node", root)
	}
	roots := h.roots()
	h.register(root)
	above := h.ancestors[root]
	for _, r := range roots {
		h.parents[r] = append(h.parents[r], root)
		h.children[root] = append(h.children[root], r)
		h.edges = append(h.edges, Edge{Child: r, Parent: root})
		h.propagate(r, above)
	}
	h.version.Add(1)
	return len(roots), nil
}

// IsA reports whether child is-a parent.
//
// Atoms are related when parent is in the ancestor closure of child, or when
// the configured [Oracle] relates them. Tuples are related when they have the
// same length and every component is related. An atom and a tuple are never
// related. Unknown nodes are not an error; they are related to nothing
// unless the oracle says otherwise.
func (h *Hierarchy) IsA(child, parent Value) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isA(child, parent)
}

func (h *Hierarchy) isA(child, parent Value) bool {
	if child.tuple || parent.tuple {
		if child.tuple != parent.tuple || len(child.elems) != len(parent.elems) {
			return false
		}
		for i := range child.elems {
			if !h.isA(child.elems[i], parent.elems[i]) {
				return false
			}
		}
		return true
	}
	if h.isAncestor(parent.atom, child.atom) {
		return true
	}
	return h.oracle != nil && h.oracle.IsA(child.atom, parent.atom)
}

// Matches reports whether v can be dispatched to a method registered under
// pattern. It is [Hierarchy.IsA] relaxed so that equal components always
// match, whether or not they are registered nodes.
func (h *Hierarchy) Matches(v, pattern Value) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.matches(v, pattern)
}

func (h *Hierarchy) matches(v, pattern Value) bool {
	if v.tuple || pattern.tuple {
		if v.tuple != pattern.tuple || len(v.elems) != len(pattern.elems) {
			return false
		}
		for i := range v.elems {
			if !h.matches(v.elems[i], pattern.elems[i]) {
				return false
			}
		}
		return true
	}
	return v.key == pattern.key || h.isA(v, pattern)
}

// isAncestor reports whether a is in the closure of n.
func (h *Hierarchy) isAncestor(a, n any) bool {
	_, ok := h.ancestors[n][a]
	return ok
}

// Reader answers queries against a hierarchy whose read lock is held by
// [Hierarchy.Read]. It must not be retained after the callback returns.
type Reader interface {
	IsA(child, parent Value) bool
	Matches(v, pattern Value) bool
	Version() uint64
}

type reader struct{ h *Hierarchy }

func (r reader) IsA(child, parent Value) bool   { return r.h.isA(child, parent) }
func (r reader) Matches(v, pattern Value) bool { return r.h.matches(v, pattern) }
func (r reader) Version() uint64                { return r.h.Version() }

// Read runs fn with the read lock held. Use it to run many queries against
// one consistent state; calling locking methods of h from fn can deadlock
// with a waiting writer.
func (h *Hierarchy) Read(fn func(Reader)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn(reader{h})
}

// Has reports whether n is a registered node.
func (h *Hierarchy) Has(n any) bool {
	n = unwrap(n)
	if checkNode(n) != nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.ancestors[n]
	return ok
}

// Len returns the number of registered nodes.
func (h *Hierarchy) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.order)
}

// Nodes returns all nodes in registration order.
func (h *Hierarchy) Nodes() []any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.order)
}

// Parents returns the direct parents of n in derivation order.
// Returns nil if n has no parents or is unknown.
func (h *Hierarchy) Parents(n any) []any {
	n = unwrap(n)
	if checkNode(n) != nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.parents[n])
}

// Children returns the direct children of n in derivation order.
// Returns nil if n has no children or is unknown.
func (h *Hierarchy) Children(n any) []any {
	n = unwrap(n)
	if checkNode(n) != nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.children[n])
}

// Ancestors returns the reflexive ancestor closure of n in registration
// order. Returns nil if n is unknown.
func (h *Hierarchy) Ancestors(n any) []any {
	n = unwrap(n)
	if checkNode(n) != nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	closure, ok := h.ancestors[n]
	if !ok {
		return nil
	}
	out := make([]any, 0, len(closure))
	for _, m := range h.order {
		if _, ok := closure[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Descendants returns n and every node below it in registration order.
// Returns nil if n is unknown.
func (h *Hierarchy) Descendants(n any) []any {
	n = unwrap(n)
	if checkNode(n) != nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.ancestors[n]; !ok {
		return nil
	}
	var out []any
	for _, m := range h.order {
		if h.isAncestor(n, m) {
			out = append(out, m)
		}
	}
	return out
}

// Roots returns the nodes without parents in registration order.
func (h *Hierarchy) Roots() []any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.roots()
}

func (h *Hierarchy) roots() []any {
	var out []any
	for _, n := range h.order {
		if len(h.parents[n]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns every direct edge in insertion order. Replaying them with
// [Hierarchy.Derive] into an empty hierarchy rebuilds the same closure.
func (h *Hierarchy) Edges() []Edge {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.edges)
}

// register adds n with a reflexive closure and reports whether it was new.
// It does not touch the version.
func (h *Hierarchy) register(n any) bool {
	if _, ok := h.ancestors[n]; ok {
		return false
	}
	h.ancestors[n] = map[any]struct{}{n: {}}
	h.order = append(h.order, n)
	return true
}

func unwrap(n any) any {
	if v, ok := n.(Value); ok && !v.tuple {
		return v.atom
	}
	return n
}

func checkNode(n any) error {
	if n == nil {
		return errs.Wrap(errs.ErrCodeInvalidNode, ErrInvalidNode, "node must not be nil")
	}
	if !reflect.TypeOf(n).Comparable() {
		return errs.Wrap(errs.ErrCodeInvalidNode, ErrInvalidNode, "%T is not comparable", n)
	}
	return nil
}
