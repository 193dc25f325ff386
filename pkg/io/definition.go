package io

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/hierarchy/pkg/errors"
	"github.com/matzehuels/hierarchy/pkg/hierarchy"
	"github.com/matzehuels/hierarchy/pkg/multimethod"
)

// Definition is the decoded form of a TOML definition file.
type Definition struct {
	Root    string      `toml:"root"`
	Edges   []EdgeDef   `toml:"edge"`
	Methods []MethodDef `toml:"method"`
}

// EdgeDef declares that Child is-a Parent.
type EdgeDef struct {
	Child  string `toml:"child"`
	Parent string `toml:"parent"`
}

// MethodDef declares a multimethod whose implementations return labels.
type MethodDef struct {
	Name    string      `toml:"name"`
	Default string      `toml:"default"` // label of the default implementation, if any
	Impls   []ImplDef   `toml:"impl"`
	Prefers []PreferDef `toml:"prefer"`
}

// ImplDef registers Label under a dispatch value. A single-element Dispatch
// is an atom, a longer one a tuple.
type ImplDef struct {
	Dispatch []string `toml:"dispatch"`
	Label    string   `toml:"label"`
}

// PreferDef prefers Dispatch over each value in Over.
type PreferDef struct {
	Dispatch []string   `toml:"dispatch"`
	Over     [][]string `toml:"over"`
}

// Model is a hierarchy built from a [Definition] together with its
// multimethods.
type Model struct {
	Hierarchy *hierarchy.Hierarchy
	methods   map[string]*multimethod.MultiMethod
	names     []string
}

// ReadTOML decodes a definition from r and validates it. Keys the
// definition format does not know are rejected with code INVALID_FORMAT.
func ReadTOML(r io.Reader) (*Definition, error) {
	var def Definition
	md, err := toml.NewDecoder(r).Decode(&def)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinition reads and validates the TOML definition file at path.
func LoadDefinition(path string) (*Definition, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTOML(f)
}

// Validate checks node names, method names and dispatch values.
func (d *Definition) Validate() error {
	if d.Root != "" {
		if err := errs.ValidateNodeName(d.Root); err != nil {
			return err
		}
	}
	for _, e := range d.Edges {
		if err := errs.ValidateNodeName(e.Child); err != nil {
			return err
		}
		if err := errs.ValidateNodeName(e.Parent); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(d.Methods))
	for _, m := range d.Methods {
		if err := errs.ValidateMethodName(m.Name); err != nil {
			return err
		}
		if seen[m.Name] {
			return errs.New(errs.ErrCodeInvalidInput, "method %q declared twice", m.Name)
		}
		seen[m.Name] = true

		for _, impl := range m.Impls {
			if _, err := DispatchValue(impl.Dispatch); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidInput, err, "method %s", m.Name)
			}
		}
		for _, p := range m.Prefers {
			if _, err := DispatchValue(p.Dispatch); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidInput, err, "method %s: prefer", m.Name)
			}
			for _, o := range p.Over {
				if _, err := DispatchValue(o); err != nil {
					return errs.Wrap(errs.ErrCodeInvalidInput, err, "method %s: prefer over", m.Name)
				}
			}
		}
	}
	return nil
}

// Build creates the hierarchy and multimethods a definition describes.
//
// Edges are derived in file order. When Root is set, every remaining root
// is then derived from it, so the hierarchy has a single top. Each
// implementation returns its label.
func (d *Definition) Build() (*Model, error) {
	var opts []hierarchy.Option
	if d.Root != "" {
		opts = append(opts, hierarchy.WithRoot(d.Root))
	}
	h := hierarchy.New(opts...)

	for _, e := range d.Edges {
		if err := h.Derive(e.Child, e.Parent); err != nil {
			return nil, err
		}
	}
	if d.Root != "" {
		for _, r := range h.Roots() {
			if r == d.Root {
				continue
			}
			if err := h.Derive(r, d.Root); err != nil {
				return nil, err
			}
		}
	}

	m := &Model{
		Hierarchy: h,
		methods:   make(map[string]*multimethod.MultiMethod, len(d.Methods)),
	}
	for _, def := range d.Methods {
		mm, err := def.build(h)
		if err != nil {
			return nil, err
		}
		m.methods[def.Name] = mm
		m.names = append(m.names, def.Name)
	}
	return m, nil
}

func (d MethodDef) build(h *hierarchy.Hierarchy) (*multimethod.MultiMethod, error) {
	var opts []multimethod.Option
	if d.Default != "" {
		opts = append(opts, multimethod.WithDefaultMethod(label(d.Default)))
	}
	mm := multimethod.New(d.Name, h, multimethod.Identity, opts...)

	for _, impl := range d.Impls {
		v, err := DispatchValue(impl.Dispatch)
		if err != nil {
			return nil, err
		}
		mm.AddMethod(v, label(impl.Label))
	}
	for _, p := range d.Prefers {
		x, err := DispatchValue(p.Dispatch)
		if err != nil {
			return nil, err
		}
		for _, o := range p.Over {
			y, err := DispatchValue(o)
			if err != nil {
				return nil, err
			}
			if err := mm.PreferMethod(x, y); err != nil {
				return nil, err
			}
		}
	}
	return mm, nil
}

func label(s string) multimethod.Method {
	return func(...any) (any, error) { return s, nil }
}

// Method returns the multimethod declared under name.
func (m *Model) Method(name string) (*multimethod.MultiMethod, bool) {
	mm, ok := m.methods[name]
	return mm, ok
}

// MethodNames returns the declared multimethod names in file order.
func (m *Model) MethodNames() []string {
	return append([]string(nil), m.names...)
}

// Resolve dispatches v on the named multimethod and returns the label of
// the winning implementation.
func (m *Model) Resolve(method string, v hierarchy.Value) (string, error) {
	mm, ok := m.methods[method]
	if !ok {
		return "", errs.New(errs.ErrCodeNotFound, "no multimethod named %q", method)
	}
	fn, err := mm.GetMethod(v)
	if err != nil {
		return "", err
	}
	out, err := fn()
	if err != nil {
		return "", err
	}
	s, _ := out.(string)
	return s, nil
}

// DispatchValue converts a dispatch list from a definition file into a
// value: one element is an atom, more a tuple.
func DispatchValue(parts []string) (hierarchy.Value, error) {
	if len(parts) == 0 {
		return hierarchy.Value{}, errs.New(errs.ErrCodeInvalidInput, "empty dispatch value")
	}
	for _, p := range parts {
		if err := errs.ValidateNodeName(p); err != nil {
			return hierarchy.Value{}, err
		}
	}
	if len(parts) == 1 {
		return hierarchy.Atom(parts[0]), nil
	}
	return hierarchy.TupleOf(toAny(parts)...), nil
}

// ParseValue parses the command-line form of a dispatch value, where tuple
// components are separated by commas: "rect,shape".
func ParseValue(s string) (hierarchy.Value, error) {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return DispatchValue(parts)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
