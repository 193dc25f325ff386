package multimethod

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	errs "github.com/matzehuels/hierarchy/pkg/errors"
	"github.com/matzehuels/hierarchy/pkg/hierarchy"
	"github.com/matzehuels/hierarchy/pkg/observability"
	"github.com/matzehuels/hierarchy/pkg/versioned"
)

var (
	// ErrArgumentConflict is matched by [*ArgumentConflictError], returned when
	// two registered dispatch values match and neither dominates the other.
	ErrArgumentConflict = errors.New("argument conflict")

	// ErrPreferenceConflict is returned by [MultiMethod.PreferMethod] when the
	// opposite preference is already recorded.
	ErrPreferenceConflict = errors.New("preference conflict")

	// ErrNoMethod is returned when no registered dispatch value matches and
	// no default implementation exists.
	ErrNoMethod = errors.New("no applicable method")

	// ErrUnknownDispatchValue is returned when removing a method or a
	// preference that is not registered.
	ErrUnknownDispatchValue = errors.New("unknown dispatch value")
)

// Method is one implementation of a multimethod. It receives the original
// call arguments.
type Method func(args ...any) (any, error)

// DispatchFunc reduces call arguments to a dispatch value. The result is
// normalized with [hierarchy.Of]. It must be deterministic.
type DispatchFunc func(args ...any) any

// Identity dispatches on the first argument.
func Identity(args ...any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// Args dispatches on the tuple of all arguments.
func Args(args ...any) any {
	return hierarchy.TupleOf(args...)
}

type defaultDispatch struct{}

func (defaultDispatch) String() string { return ":default" }

// Default is the dispatch value the default implementation is registered
// under unless [WithDefault] picks another one.
var Default = hierarchy.Atom(defaultDispatch{})

// ArgumentConflictError reports an ambiguous dispatch.
type ArgumentConflictError struct {
	Method string          // Multimethod name
	Value  hierarchy.Value // Dispatch value being resolved
	First  hierarchy.Value // Best match found so far
	Second hierarchy.Value // Competing match
}

// Error implements the error interface.
func (e *ArgumentConflictError) Error() string {
	return fmt.Sprintf("multiple methods in multimethod %q match dispatch value %v -> %v and %v, and neither is preferred",
		e.Method, e.Value, e.Second, e.First)
}

// Unwrap returns ErrArgumentConflict.
func (e *ArgumentConflictError) Unwrap() error { return ErrArgumentConflict }

// Code returns the error code for this error type.
func (e *ArgumentConflictError) Code() errs.Code { return errs.ErrCodeArgumentConflict }

type entry struct {
	val hierarchy.Value
	fn  Method
}

type preference struct {
	val  hierarchy.Value
	over *versioned.Map[hierarchy.Key, hierarchy.Value]
}

// cacheState is replaced wholesale on invalidation, so lock-free readers
// holding an old state never see entries of a newer one.
type cacheState struct {
	hierarchyVersion uint64
	methods          sync.Map // hierarchy.Key -> Method
}

// Option configures a MultiMethod at construction.
type Option func(*config)

type config struct {
	defaultVal hierarchy.Value
	defaultFn  Method
}

// WithDefault sets the dispatch value that acts as the fallback.
func WithDefault(v any) Option {
	return func(c *config) { c.defaultVal = hierarchy.Of(v) }
}

// WithDefaultMethod registers fn under the default dispatch value. A nil fn
// registers nothing.
func WithDefaultMethod(fn Method) Option {
	return func(c *config) { c.defaultFn = fn }
}

// MultiMethod is a generic function whose implementation is chosen by the
// most specific registered dispatch value.
//
// The zero value is not usable - use New to create a MultiMethod.
// MultiMethod is safe for concurrent use.
type MultiMethod struct {
	name       string
	h          *hierarchy.Hierarchy
	dispatch   DispatchFunc
	defaultVal hierarchy.Value

	mu      sync.RWMutex
	methods *versioned.Map[hierarchy.Key, entry]
	prefers *versioned.Map[hierarchy.Key, preference]
	cache   atomic.Pointer[cacheState]
}

// New creates a multimethod bound to h for its whole lifetime. A nil h
// gets a private empty hierarchy; a nil dispatch uses [Identity].
func New(name string, h *hierarchy.Hierarchy, dispatch DispatchFunc, opts ...Option) *MultiMethod {
	cfg := config{defaultVal: Default}
	for _, opt := range opts {
		opt(&cfg)
	}
	if h == nil {
		h = hierarchy.New()
	}
	if dispatch == nil {
		dispatch = Identity
	}

	m := &MultiMethod{
		name:       name,
		h:          h,
		dispatch:   dispatch,
		defaultVal: cfg.defaultVal,
		methods:    versioned.New[hierarchy.Key, entry](),
		prefers:    versioned.New[hierarchy.Key, preference](),
	}
	if cfg.defaultFn != nil {
		m.methods.Set(m.defaultVal.Key(), entry{val: m.defaultVal, fn: cfg.defaultFn})
	}
	m.cache.Store(&cacheState{hierarchyVersion: h.Version()})
	return m
}

// Name returns the diagnostic name.
func (m *MultiMethod) Name() string { return m.name }

// Hierarchy returns the hierarchy m dispatches against.
func (m *MultiMethod) Hierarchy() *hierarchy.Hierarchy { return m.h }

// DefaultDispatchValue returns the dispatch value of the fallback
// implementation.
func (m *MultiMethod) DefaultDispatchValue() hierarchy.Value { return m.defaultVal }

// mutate runs fn under the write lock and the hierarchy read lock, and
// resets the cache if fn succeeds.
func (m *MultiMethod) mutate(reason string, fn func() error) error {
	var err error
	m.mu.Lock()
	m.h.Read(func(r hierarchy.Reader) {
		if err = fn(); err == nil {
			m.resetCache(r.Version())
		}
	})
	m.mu.Unlock()
	if err == nil {
		observability.Dispatch().OnInvalidate(m.name, reason)
	}
	return err
}

func (m *MultiMethod) resetCache(hierarchyVersion uint64) {
	m.cache.Store(&cacheState{hierarchyVersion: hierarchyVersion})
}

// AddMethod registers fn under the dispatch value v, replacing any previous
// implementation for v. Slices are normalized to tuples with [hierarchy.Of].
// A nil fn is ignored. It returns m for chaining.
func (m *MultiMethod) AddMethod(v any, fn Method) *MultiMethod {
	if fn == nil {
		return m
	}
	val := hierarchy.Of(v)
	_ = m.mutate("method added", func() error {
		m.methods.Set(val.Key(), entry{val: val, fn: fn})
		return nil
	})
	return m
}

// RemoveMethod unregisters the implementation for v.
// Returns ErrUnknownDispatchValue if none is registered.
func (m *MultiMethod) RemoveMethod(v any) error {
	val := hierarchy.Of(v)
	return m.mutate("method removed", func() error {
		if !m.methods.Delete(val.Key()) {
			return errs.Wrap(errs.ErrCodeUnknownDispatchValue, ErrUnknownDispatchValue,
				"no method for %v in multimethod %q", val, m.name)
		}
		return nil
	})
}

// PreferMethod records that x dominates y when both match a dispatch value.
// Returns ErrPreferenceConflict if y is already preferred over x. Longer
// preference cycles are not detected.
func (m *MultiMethod) PreferMethod(x, y any) error {
	xv, yv := hierarchy.Of(x), hierarchy.Of(y)
	return m.mutate("preference added", func() error {
		if m.isPreferred(yv, xv) {
			return errs.Wrap(errs.ErrCodePreferenceConflict, ErrPreferenceConflict,
				"in multimethod %q: %v is already preferred over %v", m.name, yv, xv)
		}
		p, ok := m.prefers.Get(xv.Key())
		if !ok {
			p = preference{val: xv, over: versioned.New[hierarchy.Key, hierarchy.Value]()}
		}
		p.over.Set(yv.Key(), yv)
		m.prefers.Set(xv.Key(), p)
		return nil
	})
}

// RemovePreference drops a preference recorded by PreferMethod.
// Returns ErrUnknownDispatchValue if x is not preferred over y.
func (m *MultiMethod) RemovePreference(x, y any) error {
	xv, yv := hierarchy.Of(x), hierarchy.Of(y)
	return m.mutate("preference removed", func() error {
		p, ok := m.prefers.Get(xv.Key())
		if !ok || !p.over.Delete(yv.Key()) {
			return errs.Wrap(errs.ErrCodeUnknownDispatchValue, ErrUnknownDispatchValue,
				"in multimethod %q: %v is not preferred over %v", m.name, xv, yv)
		}
		if p.over.Len() == 0 {
			m.prefers.Delete(xv.Key())
		} else {
			m.prefers.Set(xv.Key(), p)
		}
		return nil
	})
}

// Prefers reports whether x is explicitly preferred over y.
func (m *MultiMethod) Prefers(x, y any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isPreferred(hierarchy.Of(x), hierarchy.Of(y))
}

// Methods returns the registered dispatch values in registration order.
func (m *MultiMethod) Methods() []hierarchy.Value {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]hierarchy.Value, 0, m.methods.Len())
	for e := range m.methods.Values() {
		out = append(out, e.val)
	}
	return out
}

// Call dispatches args and invokes the selected implementation with them.
// Errors returned by the implementation are passed through unchanged.
func (m *MultiMethod) Call(args ...any) (any, error) {
	fn, err := m.GetMethod(m.dispatch(args...))
	if err != nil {
		return nil, err
	}
	return fn(args...)
}

// GetMethod resolves v to the implementation registered under the most
// specific matching dispatch value.
//
// A candidate matches when v equals or is-a its dispatch value, component by
// component for tuples, so values the hierarchy has never seen still match
// themselves (see [hierarchy.Hierarchy.Matches]). A candidate replaces the
// current best when it dominates it, that is when it matches the best or is
// explicitly preferred over it. If a matching candidate and the best do not
// dominate each other, an [*ArgumentConflictError] is returned. Without any
// match the default implementation is used; without one, ErrNoMethod.
//
// Successful non-default resolutions are cached until the method table, the
// preference table or the hierarchy changes.
func (m *MultiMethod) GetMethod(v any) (Method, error) {
	val := hierarchy.Of(v)
	key := val.Key()
	hooks := observability.Dispatch()

	for {
		st := m.cache.Load()
		if st.hierarchyVersion != m.h.Version() {
			_ = m.mutate("hierarchy changed", func() error { return nil })
			st = m.cache.Load()
		}
		if fn, ok := st.methods.Load(key); ok {
			hooks.OnCacheHit(m.name, val)
			return fn.(Method), nil
		}

		hooks.OnCacheMiss(m.name, val)
		fn, retry, err := m.findAndCacheBestMethod(val)
		if retry {
			hooks.OnCacheRetry(m.name, val)
			continue
		}
		return fn, err
	}
}

// findAndCacheBestMethod scans the method table under read locks and commits
// the winner under the write lock if no version moved in between. retry is
// true when the result was discarded.
func (m *MultiMethod) findAndCacheBestMethod(val hierarchy.Value) (fn Method, retry bool, err error) {
	start := time.Now()
	defer func() {
		if !retry {
			observability.Dispatch().OnResolve(m.name, val, time.Since(start), err)
		}
	}()

	var (
		best                   entry
		found                  bool
		methodsV, prefersV, hV uint64
	)
	m.mu.RLock()
	m.h.Read(func(r hierarchy.Reader) {
		methodsV, prefersV, hV = m.methods.Version(), m.prefers.Version(), r.Version()
		best, found, err = m.scan(r, val)
	})
	if err == nil && !found {
		def, ok := m.methods.Get(m.defaultVal.Key())
		m.mu.RUnlock()
		if ok {
			return def.fn, false, nil
		}
		return nil, false, errs.Wrap(errs.ErrCodeNoMethod, ErrNoMethod,
			"no method in multimethod %q for dispatch value %v", m.name, val)
	}
	m.mu.RUnlock()
	if err != nil {
		return nil, false, err
	}

	committed := false
	m.mu.Lock()
	m.h.Read(func(r hierarchy.Reader) {
		st := m.cache.Load()
		if m.methods.Version() == methodsV && m.prefers.Version() == prefersV &&
			r.Version() == hV && st.hierarchyVersion == hV {
			st.methods.Store(val.Key(), best.fn)
			committed = true
			return
		}
		m.resetCache(r.Version())
	})
	m.mu.Unlock()

	if !committed {
		return nil, true, nil
	}
	return best.fn, false, nil
}

// scan walks the method table in registration order. The caller holds the
// read lock and the hierarchy read lock.
func (m *MultiMethod) scan(r hierarchy.Reader, val hierarchy.Value) (entry, bool, error) {
	var (
		best  entry
		found bool
	)
	for _, e := range m.methods.All() {
		if !r.Matches(val, e.val) {
			continue
		}
		if !found || m.dominates(r, e.val, best.val) {
			best, found = e, true
		}
		if !m.dominates(r, best.val, e.val) {
			return entry{}, false, &ArgumentConflictError{
				Method: m.name,
				Value:  val,
				First:  best.val,
				Second: e.val,
			}
		}
	}
	return best, found, nil
}

func (m *MultiMethod) dominates(r hierarchy.Reader, x, y hierarchy.Value) bool {
	return r.Matches(x, y) || m.isPreferred(x, y)
}

// isPreferred requires at least the read lock.
func (m *MultiMethod) isPreferred(x, y hierarchy.Value) bool {
	p, ok := m.prefers.Get(x.Key())
	return ok && p.over.Has(y.Key())
}
