package hierarchy

import "reflect"

// Oracle is a secondary is-a relation consulted for atoms the recorded
// closure does not relate. It lets a hierarchy interoperate with an ambient
// type system without registering every type explicitly.
//
// An Oracle is called with the hierarchy's read lock held and must not call
// back into the hierarchy.
type Oracle interface {
	IsA(child, parent any) bool
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(child, parent any) bool

// IsA calls f(child, parent).
func (f OracleFunc) IsA(child, parent any) bool { return f(child, parent) }

// ReflectOracle relates Go types.
//
// The parent must be a [reflect.Type]. A child that is itself a
// reflect.Type is treated as a type; any other child stands for its dynamic
// type (instance-of). A type is-a parent when the two are identical or the
// parent is an interface the type implements.
type ReflectOracle struct{}

// IsA implements Oracle.
func (ReflectOracle) IsA(child, parent any) bool {
	pt, ok := parent.(reflect.Type)
	if !ok || pt == nil || child == nil {
		return false
	}
	ct, ok := child.(reflect.Type)
	if !ok {
		ct = reflect.TypeOf(child)
	}
	if ct == nil {
		return false
	}
	if ct == pt {
		return true
	}
	return pt.Kind() == reflect.Interface && ct.Implements(pt)
}
