package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hierarchy/pkg/hierarchy"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the number of ancestors and descendants to node labels.
	// When false, only the node name is shown.
	Detailed bool

	// Highlight lists nodes drawn with a filled accent color, such as the
	// ancestors of a queried node.
	Highlight []any
}

// ToDOT converts a hierarchy to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Edges point from child to parent and parents are laid out above their
// children. Root nodes are drawn with a bold outline.
func ToDOT(h *hierarchy.Hierarchy, opts Options) string {
	highlight := make(map[any]bool, len(opts.Highlight))
	for _, n := range opts.Highlight {
		highlight[n] = true
	}
	roots := make(map[any]bool)
	for _, r := range h.Roots() {
		roots[r] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range h.Nodes() {
		label := fmtLabel(h, n, opts.Detailed)
		attrs := fmtAttrs(label, roots[n], highlight[n])
		fmt.Fprintf(&buf, "  %q [%s];\n", fmt.Sprint(n), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range h.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", fmt.Sprint(e.Child), fmt.Sprint(e.Parent))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(h *hierarchy.Hierarchy, n any, detailed bool) string {
	name := fmt.Sprint(n)
	if !detailed {
		return name
	}
	// Both closures are reflexive.
	return fmt.Sprintf("%s\nancestors: %d\ndescendants: %d",
		name, len(h.Ancestors(n))-1, len(h.Descendants(n))-1)
}

func fmtAttrs(label string, root, highlight bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if root {
		attrs = append(attrs, "penwidth=3")
	}
	if highlight {
		attrs = append(attrs, "fillcolor=\"#FFD866\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element so the drawing scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
