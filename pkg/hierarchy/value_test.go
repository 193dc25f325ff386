package hierarchy

import (
	"testing"
)

func TestValueKeys(t *testing.T) {
	tests := []struct {
		name  string
		x, y  Value
		equal bool
	}{
		{"same atom", Atom("rect"), Atom("rect"), true},
		{"different atoms", Atom("rect"), Atom("shape"), false},
		{"atom types differ", Atom(1), Atom("1"), false},
		{"slice and tuple", Of([]string{"rect", "shape"}), TupleOf("rect", "shape"), true},
		{"any slice and tuple", Of([]any{"rect", 2}), Tuple(Atom("rect"), Atom(2)), true},
		{"value slice and tuple", Of([]Value{Atom("a")}), TupleOf("a"), true},
		{"order matters", TupleOf("rect", "shape"), TupleOf("shape", "rect"), false},
		{"length matters", TupleOf("rect"), TupleOf("rect", "rect"), false},
		{"atom is not 1-tuple", Atom("rect"), TupleOf("rect"), false},
		{"nested tuples", TupleOf("a", []string{"b", "c"}), Tuple(Atom("a"), TupleOf("b", "c")), true},
		{"nested differs from flat", TupleOf("a", []string{"b", "c"}), TupleOf("a", "b", "c"), false},
		{"empty tuples", Tuple(), Of([]string{}), true},
		{"zero value is nil atom", Value{}, Atom(nil), true},
		{"atom of value", Atom(Atom("x")), Atom("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.x.Equal(tt.y); got != tt.equal {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.x, tt.y, got, tt.equal)
			}
			if got := tt.x.Key() == tt.y.Key(); got != tt.equal {
				t.Errorf("keys equal = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestValueAsMapKey(t *testing.T) {
	m := map[Key]string{
		TupleOf("rect", "shape").Key(): "rect-shape",
		Atom("rect").Key():             "rect",
	}
	if got := m[Of([]string{"rect", "shape"}).Key()]; got != "rect-shape" {
		t.Errorf("lookup by slice = %q, want rect-shape", got)
	}
	if got := m[Of("rect").Key()]; got != "rect" {
		t.Errorf("lookup by atom = %q, want rect", got)
	}
}

func TestValueAccessors(t *testing.T) {
	atom := Atom("rect")
	if atom.IsTuple() || atom.Node() != "rect" || atom.Len() != 1 || atom.Elems() != nil {
		t.Errorf("unexpected atom accessors: %v", atom)
	}

	tup := TupleOf("rect", "shape")
	if !tup.IsTuple() || tup.Node() != nil || tup.Len() != 2 {
		t.Errorf("unexpected tuple accessors: %v", tup)
	}

	elems := tup.Elems()
	elems[0] = Atom("changed")
	if !tup.Equal(TupleOf("rect", "shape")) {
		t.Error("Elems should return a copy")
	}
}

func TestTupleCopiesInput(t *testing.T) {
	elems := []Value{Atom("a"), Atom("b")}
	tup := Tuple(elems...)
	elems[0] = Atom("z")
	if tup.String() != "(a, b)" {
		t.Errorf("Tuple should not alias its argument, got %v", tup)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Atom("button"), "button"},
		{Atom(42), "42"},
		{TupleOf("rect", "shape"), "(rect, shape)"},
		{TupleOf("a", []string{"b", "c"}), "(a, (b, c))"},
		{Tuple(), "()"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
