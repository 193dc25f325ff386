// Package observability provides hooks for metrics, tracing, and logging of
// hierarchy mutations and multimethod dispatch.
//
// The hierarchy and multimethod packages never log on their own. They report
// events to the hooks registered here, which default to no-ops, so embedding
// applications decide whether and how events are recorded.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHierarchyHooks(&myHierarchyHooks{})
//	    observability.SetDispatchHooks(&myDispatchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dispatch().OnCacheMiss(name, value)
//	// ... resolve ...
//	observability.Dispatch().OnResolve(name, value, duration, err)
//
// Values are passed as [fmt.Stringer] so hooks that ignore them pay nothing
// for formatting.
package observability

import (
	"fmt"
	"sync"
	"time"
)

// =============================================================================
// Hierarchy Hooks
// =============================================================================

// HierarchyHooks receives events from hierarchy mutations.
// The hierarchy argument is the diagnostic ID of the hierarchy.
type HierarchyHooks interface {
	// OnDerive records an edge insertion attempt. changed is false for
	// idempotent re-derivations and failures.
	OnDerive(hierarchy string, child, parent any, changed bool, err error)

	// OnGraft records the grafting of a new root above the existing roots.
	OnGraft(hierarchy string, root any, grafted int, err error)
}

// =============================================================================
// Dispatch Hooks
// =============================================================================

// DispatchHooks receives events from multimethod resolution.
type DispatchHooks interface {
	// OnCacheHit records a resolution served from the cache.
	OnCacheHit(method string, value fmt.Stringer)

	// OnCacheMiss records a resolution that had to scan the method table.
	OnCacheMiss(method string, value fmt.Stringer)

	// OnResolve records the outcome of a full resolution scan.
	OnResolve(method string, value fmt.Stringer, duration time.Duration, err error)

	// OnCacheRetry records a discarded resolution because a table or the
	// hierarchy changed while it was computed.
	OnCacheRetry(method string, value fmt.Stringer)

	// OnInvalidate records a cache reset.
	OnInvalidate(method string, reason string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHierarchyHooks is a no-op implementation of HierarchyHooks.
type NoopHierarchyHooks struct{}

func (NoopHierarchyHooks) OnDerive(string, any, any, bool, error) {}
func (NoopHierarchyHooks) OnGraft(string, any, int, error)        {}

// NoopDispatchHooks is a no-op implementation of DispatchHooks.
type NoopDispatchHooks struct{}

func (NoopDispatchHooks) OnCacheHit(string, fmt.Stringer)                      {}
func (NoopDispatchHooks) OnCacheMiss(string, fmt.Stringer)                     {}
func (NoopDispatchHooks) OnResolve(string, fmt.Stringer, time.Duration, error) {}
func (NoopDispatchHooks) OnCacheRetry(string, fmt.Stringer)                    {}
func (NoopDispatchHooks) OnInvalidate(string, string)                          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	hierarchyHooks HierarchyHooks = NoopHierarchyHooks{}
	dispatchHooks  DispatchHooks  = NoopDispatchHooks{}
	hooksMu        sync.RWMutex
)

// SetHierarchyHooks registers custom hierarchy hooks.
// This should be called once at application startup before any hierarchy is mutated.
func SetHierarchyHooks(h HierarchyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		hierarchyHooks = h
	}
}

// SetDispatchHooks registers custom dispatch hooks.
// This should be called once at application startup before any dispatch.
func SetDispatchHooks(h DispatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dispatchHooks = h
	}
}

// Hierarchy returns the registered hierarchy hooks.
func Hierarchy() HierarchyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hierarchyHooks
}

// Dispatch returns the registered dispatch hooks.
func Dispatch() DispatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dispatchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hierarchyHooks = NoopHierarchyHooks{}
	dispatchHooks = NoopDispatchHooks{}
}
