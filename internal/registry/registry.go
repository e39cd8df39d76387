// Package registry holds the canonical set of extractable fields and the
// matching rule for each. A Registry is immutable once built; extraction
// order follows registration order.
package registry

import (
	"fmt"
	"regexp"

	"github.com/EliasGomez98/PDF-Scrapping/constants"
	"github.com/EliasGomez98/PDF-Scrapping/internal/common"
)

// Definition declares one field by name and its rule source. The rule must
// be a valid regular expression with exactly one capture group.
type Definition struct {
	Name    string
	Pattern string
}

// UnknownFieldError reports a lookup for a field that is not registered.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// Registry is an ordered, read-only mapping from field name to matching rule.
type Registry struct {
	order []string
	rules map[string]*regexp.Regexp
}

// New compiles a registry from explicit definitions. It rejects empty sets,
// duplicate names, invalid patterns, and patterns whose capture-group count
// is not exactly one.
func New(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, common.NewAppError("REGISTRY_EMPTY", "at least one field definition is required", common.ErrInvalidInput)
	}
	r := &Registry{
		order: make([]string, 0, len(defs)),
		rules: make(map[string]*regexp.Regexp, len(defs)),
	}
	for _, d := range defs {
		if d.Name == "" {
			return nil, common.NewAppError("REGISTRY_FIELD", "field name must not be empty", common.ErrInvalidInput)
		}
		if _, dup := r.rules[d.Name]; dup {
			return nil, common.NewAppError("REGISTRY_FIELD", fmt.Sprintf("duplicate field %q", d.Name), common.ErrInvalidInput)
		}
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return nil, common.NewAppError("REGISTRY_PATTERN", fmt.Sprintf("field %q", d.Name), err)
		}
		if re.NumSubexp() != 1 {
			return nil, common.NewAppError("REGISTRY_PATTERN",
				fmt.Sprintf("field %q: pattern must have exactly one capture group, has %d", d.Name, re.NumSubexp()),
				common.ErrInvalidInput)
		}
		r.order = append(r.order, d.Name)
		r.rules[d.Name] = re
	}
	return r, nil
}

// Default returns the full policy-schedule registry, in schema order.
func Default() *Registry {
	defs := make([]Definition, 0, len(constants.FieldNames))
	for _, name := range constants.FieldNames {
		defs = append(defs, Definition{Name: name, Pattern: defaultPatterns[name]})
	}
	r, err := New(defs)
	if err != nil {
		// Built-in patterns are fixed at compile time; a failure here is a
		// programming error.
		panic(err)
	}
	return r
}

// Fields returns the registered field names in extraction order.
func (r *Registry) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.order)
}

// Rule returns the matching rule for name, or *UnknownFieldError if name is
// not registered.
func (r *Registry) Rule(name string) (*regexp.Regexp, error) {
	re, ok := r.rules[name]
	if !ok {
		return nil, &UnknownFieldError{Name: name}
	}
	return re, nil
}

// Subset derives a registry restricted to the given names, in the order
// given. Reduced schemas are a configuration choice, not a code path.
func (r *Registry) Subset(names ...string) (*Registry, error) {
	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		re, ok := r.rules[name]
		if !ok {
			return nil, &UnknownFieldError{Name: name}
		}
		defs = append(defs, Definition{Name: name, Pattern: re.String()})
	}
	return New(defs)
}

// FromConfig builds the registry selected by configuration: the full schema
// or a subset, with optional per-field pattern overrides. Overriding or
// selecting a name outside the schema fails with *UnknownFieldError.
func FromConfig(cfg common.RegistryConfig) (*Registry, error) {
	patterns := make(map[string]string, len(defaultPatterns))
	for name, p := range defaultPatterns {
		patterns[name] = p
	}
	for name, p := range cfg.Patterns {
		if _, ok := patterns[name]; !ok {
			return nil, &UnknownFieldError{Name: name}
		}
		patterns[name] = p
	}

	names := cfg.Fields
	if len(names) == 0 {
		names = constants.FieldNames
	}
	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		p, ok := patterns[name]
		if !ok {
			return nil, &UnknownFieldError{Name: name}
		}
		defs = append(defs, Definition{Name: name, Pattern: p})
	}
	return New(defs)
}
