package hierarchy

import (
	"fmt"
	"reflect"
	"strings"
)

// Value is a dispatch value: either an atom wrapping a single node, or a
// tuple of values compared position by position.
//
// The zero Value is the atom nil. Atoms must hold comparable values; using a
// non-comparable atom as a dispatch value panics, like using it as a map key.
type Value struct {
	atom  any
	elems []Value
	key   Key
	tuple bool
}

// Key is the comparable identity of a [Value], suitable as a map key.
// Two values have equal keys exactly when they have the same shape and equal
// components.
type Key struct {
	v     any
	tuple bool
}

var keyType = reflect.TypeFor[Key]()

// Atom wraps a single node. Wrapping a Value returns it unchanged.
func Atom(v any) Value {
	if val, ok := v.(Value); ok {
		return val
	}
	return Value{atom: v, key: Key{v: v}}
}

// Tuple builds a tuple from its components.
func Tuple(elems ...Value) Value {
	elems = append([]Value(nil), elems...)
	arr := reflect.New(reflect.ArrayOf(len(elems), keyType)).Elem()
	for i, e := range elems {
		arr.Index(i).Set(reflect.ValueOf(e.key))
	}
	return Value{elems: elems, tuple: true, key: Key{v: arr.Interface(), tuple: true}}
}

// TupleOf builds a tuple from raw components, converting each with [Of].
func TupleOf(vs ...any) Value {
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Of(v)
	}
	return Tuple(elems...)
}

// Of normalizes v into a Value. Values are returned unchanged; []Value,
// []any and []string become tuples; anything else becomes an atom. A slice
// and the equivalent Tuple therefore produce the same [Key].
func Of(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case []Value:
		return Tuple(x...)
	case []any:
		return TupleOf(x...)
	case []string:
		elems := make([]Value, len(x))
		for i, s := range x {
			elems[i] = Atom(s)
		}
		return Tuple(elems...)
	default:
		return Atom(v)
	}
}

// IsTuple reports whether v is a tuple.
func (v Value) IsTuple() bool { return v.tuple }

// Node returns the wrapped node of an atom, or nil for a tuple.
func (v Value) Node() any {
	if v.tuple {
		return nil
	}
	return v.atom
}

// Elems returns a copy of the components of a tuple, or nil for an atom.
func (v Value) Elems() []Value {
	if !v.tuple {
		return nil
	}
	return append([]Value(nil), v.elems...)
}

// Len returns the number of components of a tuple, or 1 for an atom.
func (v Value) Len() int {
	if v.tuple {
		return len(v.elems)
	}
	return 1
}

// Key returns the comparable identity of v.
func (v Value) Key() Key { return v.key }

// Equal reports whether v and o have the same shape and equal components.
func (v Value) Equal(o Value) bool { return v.Key() == o.Key() }

// String formats atoms with fmt.Sprint and tuples as "(a, b)".
func (v Value) String() string {
	if !v.tuple {
		return fmt.Sprint(v.atom)
	}
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
