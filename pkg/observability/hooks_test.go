package observability

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type name string

func (n name) String() string { return string(n) }

func TestNoopHooksDoNotPanic(t *testing.T) {
	// Hierarchy hooks
	h := NoopHierarchyHooks{}
	h.OnDerive("h1", "button", "widget", true, nil)
	h.OnDerive("h1", "widget", "button", false, errors.New("cycle"))
	h.OnGraft("h1", "thing", 2, nil)

	// Dispatch hooks
	d := NoopDispatchHooks{}
	d.OnCacheHit("to_string", name("button"))
	d.OnCacheMiss("to_string", name("button"))
	d.OnResolve("to_string", name("button"), time.Millisecond, nil)
	d.OnCacheRetry("to_string", name("button"))
	d.OnInvalidate("to_string", "hierarchy changed")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Hierarchy().(NoopHierarchyHooks); !ok {
		t.Error("Hierarchy() should return NoopHierarchyHooks by default")
	}
	if _, ok := Dispatch().(NoopDispatchHooks); !ok {
		t.Error("Dispatch() should return NoopDispatchHooks by default")
	}

	// Set custom hooks
	customHierarchy := &testHierarchyHooks{}
	SetHierarchyHooks(customHierarchy)
	if Hierarchy() != customHierarchy {
		t.Error("SetHierarchyHooks should set custom hooks")
	}

	customDispatch := &testDispatchHooks{}
	SetDispatchHooks(customDispatch)
	if Dispatch() != customDispatch {
		t.Error("SetDispatchHooks should set custom hooks")
	}

	// Custom hooks receive events
	Dispatch().OnCacheHit("to_string", name("button"))
	if customDispatch.hits != 1 {
		t.Errorf("hits = %d, want 1", customDispatch.hits)
	}

	// Reset and verify
	Reset()
	if _, ok := Hierarchy().(NoopHierarchyHooks); !ok {
		t.Error("Reset() should restore NoopHierarchyHooks")
	}
	if _, ok := Dispatch().(NoopDispatchHooks); !ok {
		t.Error("Reset() should restore NoopDispatchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDispatchHooks{}
	SetDispatchHooks(custom)

	// Setting nil should be ignored
	SetDispatchHooks(nil)
	SetHierarchyHooks(nil)

	if Dispatch() != custom {
		t.Error("SetDispatchHooks(nil) should be ignored")
	}
	if _, ok := Hierarchy().(NoopHierarchyHooks); !ok {
		t.Error("SetHierarchyHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testHierarchyHooks struct{ NoopHierarchyHooks }

type testDispatchHooks struct {
	NoopDispatchHooks
	hits int
}

func (h *testDispatchHooks) OnCacheHit(string, fmt.Stringer) { h.hits++ }
