package versioned

import (
	"maps"
	"slices"
	"testing"
)

func TestSetCountsEveryWrite(t *testing.T) {
	m := New[string, int]()
	if m.Version() != 0 {
		t.Fatalf("Version() = %d, want 0", m.Version())
	}

	m.Set("a", 1)
	m.Set("a", 1) // same value still counts
	m.Set("b", 2)

	if m.Version() != 3 {
		t.Errorf("Version() = %d, want 3", m.Version())
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestReadsDoNotCount(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	before := m.Version()

	m.Get("a")
	m.Get("missing")
	m.Has("a")
	m.Len()
	for range m.All() {
	}
	slices.Collect(m.Keys())
	slices.Collect(m.Values())

	if m.Version() != before {
		t.Errorf("Version() = %d after reads, want %d", m.Version(), before)
	}
}

func TestInsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 30) // replacement keeps position

	if got := slices.Collect(m.Keys()); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("Keys() = %v, want [c a b]", got)
	}
	if got := slices.Collect(m.Values()); !slices.Equal(got, []int{30, 1, 2}) {
		t.Errorf("Values() = %v, want [30 1 2]", got)
	}

	m.Delete("a")
	m.Set("a", 4)
	if got := slices.Collect(m.Keys()); !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Errorf("Keys() after re-insert = %v, want [c b a]", got)
	}
}

func TestSetDefault(t *testing.T) {
	m := New[string, int]()

	v, inserted := m.SetDefault("a", 1)
	if !inserted || v != 1 {
		t.Errorf("SetDefault(a, 1) = %d, %v, want 1, true", v, inserted)
	}
	if m.Version() != 1 {
		t.Errorf("Version() = %d after insert, want 1", m.Version())
	}

	v, inserted = m.SetDefault("a", 2)
	if inserted || v != 1 {
		t.Errorf("SetDefault(a, 2) = %d, %v, want 1, false", v, inserted)
	}
	if m.Version() != 1 {
		t.Errorf("Version() = %d after no-op, want 1", m.Version())
	}
}

func TestDeleteAndPop(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	tests := []struct {
		name    string
		op      func() bool
		want    bool
		version uint64
	}{
		{"delete present", func() bool { return m.Delete("a") }, true, 3},
		{"delete absent", func() bool { return m.Delete("a") }, false, 3},
		{"pop present", func() bool { v, ok := m.Pop("b"); return ok && v == 2 }, true, 4},
		{"pop absent", func() bool { _, ok := m.Pop("b"); return ok }, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if m.Version() != tt.version {
				t.Errorf("Version() = %d, want %d", m.Version(), tt.version)
			}
		})
	}
}

func TestPopItem(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	k, v, ok := m.PopItem(true)
	if !ok || k != "c" || v != 3 {
		t.Errorf("PopItem(true) = %s, %d, %v, want c, 3, true", k, v, ok)
	}
	k, v, ok = m.PopItem(false)
	if !ok || k != "a" || v != 1 {
		t.Errorf("PopItem(false) = %s, %d, %v, want a, 1, true", k, v, ok)
	}
	m.PopItem(false)

	before := m.Version()
	if _, _, ok := m.PopItem(true); ok {
		t.Error("PopItem on empty map should report false")
	}
	if m.Version() != before {
		t.Error("PopItem on empty map should not count")
	}
}

func TestClearAndUpdate(t *testing.T) {
	m := New[string, int]()
	m.Update(maps.All(map[string]int{"a": 1, "b": 2, "c": 3}))
	if m.Version() != 1 {
		t.Errorf("Version() after Update = %d, want 1", m.Version())
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", m.Len())
	}
	if m.Version() != 2 {
		t.Errorf("Version() after Clear = %d, want 2", m.Version())
	}
	if _, ok := m.Get("a"); ok {
		t.Error("Get after Clear should miss")
	}

	// Cleared map is still usable.
	m.Set("z", 26)
	if got := slices.Collect(m.Keys()); !slices.Equal(got, []string{"z"}) {
		t.Errorf("Keys() = %v, want [z]", got)
	}
}

func TestAllStopsEarly(t *testing.T) {
	m := New[int, int]()
	for i := range 5 {
		m.Set(i, i*i)
	}
	var seen []int
	for k := range m.All() {
		if k == 2 {
			break
		}
		seen = append(seen, k)
	}
	if !slices.Equal(seen, []int{0, 1}) {
		t.Errorf("seen = %v, want [0 1]", seen)
	}
}
