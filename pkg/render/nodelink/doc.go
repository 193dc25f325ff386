// Package nodelink renders hierarchies as node-link diagrams.
//
// # Usage
//
// Convert a hierarchy to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(h, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The generated DOT uses bottom-to-top layout (rankdir=BT) so that parents
// sit above their children, with rounded box nodes. Roots get a bold
// outline; nodes listed in [Options.Highlight] are filled.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No Graphviz installation is required.
package nodelink
