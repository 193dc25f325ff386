package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/hierarchy/pkg/hierarchy"
)

func shapes(t *testing.T) *hierarchy.Hierarchy {
	t.Helper()
	h := hierarchy.New()
	if err := h.Derive("rect", "shape"); err != nil {
		t.Fatal(err)
	}
	if err := h.Derive("square", "rect"); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(shapes(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=BT;",
		`"rect" [label="rect"];`,
		`"shape" [label="shape", penwidth=3];`,
		`"rect" -> "shape";`,
		`"square" -> "rect";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"square" -> "shape"`) {
		t.Error("DOT should contain direct edges only")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(shapes(t), Options{Detailed: true, Highlight: []any{"rect"}})

	if !strings.Contains(dot, `label="rect\nancestors: 1\ndescendants: 1"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `fillcolor="#FFD866"`) {
		t.Errorf("highlight missing:\n%s", dot)
	}
	if strings.Count(dot, "#FFD866") != 1 {
		t.Errorf("only rect should be highlighted:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
