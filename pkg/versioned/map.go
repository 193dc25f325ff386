// Package versioned provides an insertion-ordered map that counts its own
// mutations.
//
// # Overview
//
// [Map] behaves like an ordered dictionary with one addition: an integer
// version that grows by exactly one on every mutation. Owners of derived
// state (caches, indices) record the version when they compute something and
// compare it later to find out cheaply whether the map changed underneath them.
//
// # Counter Rules
//
//   - [Map.Set] always counts, even when it replaces a value with itself.
//   - [Map.SetDefault] counts only when it actually inserts.
//   - [Map.Delete], [Map.Pop] and [Map.PopItem] count only when something is removed.
//   - [Map.Clear] and [Map.Update] count once per call.
//   - Reads never count.
//
// # Concurrency
//
// Map is not safe for concurrent use. The owning object guards it with its
// own lock, as the multimethod dispatch tables do.
package versioned

import "iter"

type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// Map is an insertion-ordered key-value mapping with a mutation counter.
//
// The zero value is not usable - use New to create a Map.
type Map[K comparable, V any] struct {
	index   map[K]*entry[K, V]
	head    *entry[K, V]
	tail    *entry[K, V]
	version uint64
}

// New creates an empty Map with version 0.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]*entry[K, V])}
}

// Version returns the number of mutations applied so far.
func (m *Map[K, V]) Version() uint64 { return m.version }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.index) }

// Get returns the value stored under key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if e, ok := m.index[key]; ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Set stores value under key. A new key is appended at the end of the
// iteration order; an existing key keeps its position.
func (m *Map[K, V]) Set(key K, value V) {
	m.set(key, value)
	m.version++
}

func (m *Map[K, V]) set(key K, value V) {
	if e, ok := m.index[key]; ok {
		e.value = value
		return
	}
	e := &entry[K, V]{key: key, value: value, prev: m.tail}
	if m.tail != nil {
		m.tail.next = e
	} else {
		m.head = e
	}
	m.tail = e
	m.index[key] = e
}

// SetDefault returns the value stored under key if present. Otherwise it
// inserts value and returns it. The second result reports whether an
// insertion happened.
func (m *Map[K, V]) SetDefault(key K, value V) (V, bool) {
	if e, ok := m.index[key]; ok {
		return e.value, false
	}
	m.Set(key, value)
	return value, true
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	_, ok := m.Pop(key)
	return ok
}

// Pop removes key and returns its value.
func (m *Map[K, V]) Pop(key K) (V, bool) {
	e, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	m.unlink(e)
	m.version++
	return e.value, true
}

// PopItem removes and returns the last entry if last is true, otherwise the
// first one. The final result is false when the map is empty.
func (m *Map[K, V]) PopItem(last bool) (K, V, bool) {
	e := m.head
	if last {
		e = m.tail
	}
	if e == nil {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	m.unlink(e)
	m.version++
	return e.key, e.value, true
}

func (m *Map[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.tail = e.prev
	}
	e.prev, e.next = nil, nil
	delete(m.index, e.key)
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	clear(m.index)
	m.head, m.tail = nil, nil
	m.version++
}

// Update stores every pair yielded by seq as a single mutation.
func (m *Map[K, V]) Update(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.set(k, v)
	}
	m.version++
}

// All iterates over entries in insertion order.
// The map must not be mutated during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := m.head; e != nil; e = e.next {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys iterates over keys in insertion order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := m.head; e != nil; e = e.next {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Values iterates over values in insertion order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := m.head; e != nil; e = e.next {
			if !yield(e.value) {
				return
			}
		}
	}
}
