package hierarchy_test

import (
	"fmt"

	"github.com/matzehuels/hierarchy/pkg/hierarchy"
)

func ExampleHierarchy_basic() {
	h := hierarchy.New()
	_ = h.Derive("button", "widget")
	_ = h.Derive("toggle_button", "button")
	_ = h.Derive("window", "widget")

	fmt.Println(h.IsA(hierarchy.Atom("toggle_button"), hierarchy.Atom("widget")))
	fmt.Println(h.IsA(hierarchy.Atom("window"), hierarchy.Atom("button")))
	fmt.Println("Ancestors:", h.Ancestors("toggle_button"))
	// Output:
	// true
	// false
	// Ancestors: [button widget toggle_button]
}

func ExampleHierarchy_AddRoot() {
	h := hierarchy.New()
	_ = h.Derive("rect", "shape")
	_ = h.Derive("dog", "animal")

	_ = h.AddRoot("thing")

	fmt.Println("Roots:", h.Roots())
	fmt.Println(h.IsA(hierarchy.Atom("rect"), hierarchy.Atom("thing")))
	// Output:
	// Roots: [thing]
	// true
}

func ExampleHierarchy_DeriveTree() {
	h := hierarchy.New()
	_ = h.DeriveTree(hierarchy.Tree{
		hierarchy.Sub("mammal",
			hierarchy.Sub("primate", hierarchy.Sub("human"))),
		hierarchy.Sub("cephalopod", hierarchy.Sub("octopus")),
	})

	// A common ancestor can be added after the fact.
	_ = h.Derive("mammal", "animal")
	_ = h.Derive("cephalopod", "animal")

	fmt.Println(h.IsA(hierarchy.Atom("human"), hierarchy.Atom("animal")))
	fmt.Println(h.IsA(hierarchy.Atom("octopus"), hierarchy.Atom("animal")))
	// Output:
	// true
	// true
}

func ExampleHierarchy_IsA_tuple() {
	h := hierarchy.New()
	_ = h.Derive("rect", "shape")
	_ = h.Derive("square", "rect")

	child := hierarchy.TupleOf("square", "rect")
	fmt.Println(h.IsA(child, hierarchy.TupleOf("rect", "shape")))
	fmt.Println(h.IsA(child, hierarchy.TupleOf("shape", "square")))
	fmt.Println(h.IsA(child, hierarchy.TupleOf("shape")))
	// Output:
	// true
	// false
	// false
}
