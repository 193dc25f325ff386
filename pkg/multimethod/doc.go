// Package multimethod implements generic functions that dispatch on values
// ranked by a [hierarchy.Hierarchy].
//
// # Overview
//
// A [MultiMethod] has a dispatch function that turns call arguments into a
// dispatch value, and a table of implementations keyed by dispatch value.
// A call selects the implementation registered under the most specific
// dispatch value the computed one is-a:
//
//	h := hierarchy.New()
//	_ = h.Derive("button", "widget")
//	_ = h.Derive("toggle_button", "button")
//
//	describe := multimethod.New("describe", h, func(args ...any) any {
//	    return args[0].(Widget).Type
//	})
//	describe.AddMethod("button", func(args ...any) (any, error) { return "a button", nil })
//	describe.AddMethod("widget", func(args ...any) (any, error) { return "a widget", nil })
//
//	describe.Call(Widget{Type: "toggle_button"}) // "a button", nil
//
// Multi-argument dispatch uses tuples. [Args] dispatches on the tuple of all
// arguments; slices passed to [MultiMethod.AddMethod] are normalized to
// tuples.
//
// # Ambiguity
//
// When two matching dispatch values are unrelated, resolution fails with an
// [*ArgumentConflictError]. [MultiMethod.PreferMethod] breaks the tie:
//
//	_ = area.PreferMethod([]string{"rect", "shape"}, []string{"shape", "rect"})
//
// # Defaults
//
// A value matching nothing falls back to the implementation registered under
// [Default], or under the value given to [WithDefault]. Without one,
// resolution fails with [ErrNoMethod].
//
// # Caching
//
// Resolved implementations are cached per dispatch value. The cache is
// stamped with the hierarchy version it was built against and is reset by
// every method, preference or hierarchy change. Lookups read the cache
// without locking; a resolution computed while something changed is thrown
// away and retried, so a stale implementation is never returned after the
// mutation that obsoleted it has completed.
//
// # Observability
//
// Cache hits, misses, retries, resolutions and invalidations are reported to
// [observability.DispatchHooks].
package multimethod
