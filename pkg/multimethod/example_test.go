package multimethod_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/hierarchy/pkg/hierarchy"
	"github.com/matzehuels/hierarchy/pkg/multimethod"
)

type Widget struct {
	Type string
	Text string
}

func ExampleMultiMethod() {
	gui := hierarchy.New()
	_ = gui.Derive("button", "widget")
	_ = gui.Derive("toggle_button", "button")
	_ = gui.Derive("window", "widget")

	toString := multimethod.New("to_string", gui, func(args ...any) any {
		return args[0].(Widget).Type
	})
	toString.AddMethod("button", func(args ...any) (any, error) {
		return fmt.Sprintf("I am a button with text '%s'", args[0].(Widget).Text), nil
	})
	toString.AddMethod("widget", func(args ...any) (any, error) {
		return fmt.Sprintf("I am a widget of type %s", args[0].(Widget).Type), nil
	})

	for _, w := range []Widget{
		{Type: "button", Text: "Hello, world"},
		{Type: "toggle_button", Text: "On or off?"},
		{Type: "window"},
	} {
		s, _ := toString.Call(w)
		fmt.Println(s)
	}
	// Output:
	// I am a button with text 'Hello, world'
	// I am a button with text 'On or off?'
	// I am a widget of type window
}

func ExampleMultiMethod_PreferMethod() {
	shapes := hierarchy.New()
	_ = shapes.Derive("rect", "shape")
	_ = shapes.Derive("square", "rect")

	bar := multimethod.New("bar", shapes, multimethod.Args).
		AddMethod([]string{"rect", "shape"}, func(...any) (any, error) { return "rect-shape", nil }).
		AddMethod([]string{"shape", "rect"}, func(...any) (any, error) { return "shape-rect", nil })

	_, err := bar.Call("rect", "rect")
	fmt.Println(errors.Is(err, multimethod.ErrArgumentConflict))

	_ = bar.PreferMethod([]string{"rect", "shape"}, []string{"shape", "rect"})
	s, _ := bar.Call("square", "square")
	fmt.Println(s)
	// Output:
	// true
	// rect-shape
}

func ExampleWithDefaultMethod() {
	describe := multimethod.New("describe", nil, nil,
		multimethod.WithDefaultMethod(func(args ...any) (any, error) {
			return fmt.Sprintf("%v is unknown", args[0]), nil
		}))

	s, _ := describe.Call("unicorn")
	fmt.Println(s)
	// Output:
	// unicorn is unknown
}
