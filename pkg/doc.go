// Package pkg provides the libraries behind hierarchy-based generic function
// dispatch.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Core: [hierarchy] (is-a relationships with an incremental ancestor
//     closure), [multimethod] (most-specific dispatch with a resolution
//     cache) and [versioned] (insertion-ordered map with a change counter)
//  2. Tooling: [io] (JSON and TOML formats) and [render/nodelink] (DOT and SVG
//     diagrams)
//  3. Ambient: [errors] (coded errors) and [observability] (event hooks)
//
// # Architecture
//
// The typical data flow:
//
//	hierarchy.Derive / io.LoadDefinition
//	         ↓
//	    [hierarchy] (closure + version)
//	         ↓
//	    [multimethod] (scan, conflict check, cache stamped with the version)
//	         ↓
//	    implementation selected for a dispatch value
//
// A multimethod never copies the hierarchy. It compares the hierarchy
// version with the one its cache was built against and rescans when they
// differ, so relationships added after methods were registered, including
// new common ancestors, are honored on the next call.
//
// # Quick Start
//
//	h := hierarchy.New()
//	_ = h.Derive("rect", "shape")
//	_ = h.Derive("square", "rect")
//
//	area := multimethod.New("area", h, nil)
//	area.AddMethod("shape", func(args ...any) (any, error) { return "generic", nil })
//	area.AddMethod("rect", func(args ...any) (any, error) { return "width * height", nil })
//
//	area.Call("square") // "width * height", nil
//
// # Concurrency
//
// [hierarchy.Hierarchy] and [multimethod.MultiMethod] are safe for concurrent
// use. A multimethod takes its own lock before the hierarchy's read lock and
// the hierarchy never calls back into a multimethod. [versioned.Map] is not
// synchronized; its owners lock around it.
//
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/hierarchy
// [multimethod]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/multimethod
// [versioned]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/versioned
// [io]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/observability
// [hierarchy.Hierarchy]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/hierarchy#Hierarchy
// [multimethod.MultiMethod]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/multimethod#MultiMethod
// [versioned.Map]: https://pkg.go.dev/github.com/matzehuels/hierarchy/pkg/versioned#Map
package pkg
