// Package schema validates JSON-like documents against dot-path rules.
//
// # Schema
//
// A schema is an ordered list of entries, each mapping a path to a rule
// descriptor:
//
//	name_en:                   [required, latin]
//	name_ar:                   [required, arabic]
//	pricing.variants.$.price:  [required, number, positive]
//	pricing.variants.$.sale:   {rules: [number], optional: true}
//
// A "$" segment expands over every element of the array at that position, so
// the last two entries produce one concrete path per variant, such as
// "pricing.variants.2.price".
//
// # Evaluation
//
// Format checks run whenever a value is non-empty. The required check only
// runs when requested: always for ValidateForm, and for single fields once
// the form has been submitted (see Form). Paths the schema does not declare
// are required by default; Options.RequireUndeclared turns that off.
//
// Validation never fails with a Go error. Missing objects and arrays read as
// empty, and a wildcard over a missing array validates nothing.
package schema

import (
	"github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/paths"
	"github.com/Ramsey-B/bramble/pkg/rules"
)

// RuleSpec is the raw descriptor form: a list of rule names plus the optional
// marker and a custom required message.
type RuleSpec struct {
	Rules    []string `json:"rules" yaml:"rules"`
	Optional bool     `json:"optional" yaml:"optional"`
	Message  string   `json:"message" yaml:"message"`
}

// Entry is one schema line.
type Entry struct {
	Path string
	RuleSpec
}

// Field builds an entry from a path and rule names.
func Field(path string, ruleNames ...string) Entry {
	return Entry{Path: path, RuleSpec: RuleSpec{Rules: ruleNames}}
}

// OptionalField builds an entry carrying the optional marker.
func OptionalField(path string, ruleNames ...string) Entry {
	return Entry{Path: path, RuleSpec: RuleSpec{Rules: ruleNames, Optional: true}}
}

// Descriptor is a compiled rule set.
type Descriptor struct {
	Rules    []rules.Rule
	Optional bool
	Message  string
}

// IsRequired reports whether an empty value is a violation.
func (d Descriptor) IsRequired() bool {
	if d.Optional {
		return false
	}
	for _, r := range d.Rules {
		if r.Name == rules.Required {
			return true
		}
	}
	return false
}

// IsOptional is the inverse of IsRequired.
func (d Descriptor) IsOptional() bool {
	return !d.IsRequired()
}

type Options struct {
	// RequireUndeclared treats paths with no schema entry as required.
	RequireUndeclared bool
}

func DefaultOptions() Options {
	return Options{RequireUndeclared: true}
}

type entry struct {
	raw  string
	path paths.Path
	desc Descriptor
}

// Schema is a compiled, ordered set of entries. It is immutable once built.
type Schema struct {
	entries   []entry
	exact     map[string]int
	wildcards []int
	opts      Options
}

// New compiles entries with default options.
func New(entries ...Entry) (*Schema, error) {
	return NewWithOptions(DefaultOptions(), entries...)
}

// MustNew is New for schemas known at compile time.
func MustNew(entries ...Entry) *Schema {
	s, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithOptions compiles entries, keeping declaration order.
func NewWithOptions(opts Options, entries ...Entry) (*Schema, error) {
	s := &Schema{
		entries: make([]entry, 0, len(entries)),
		exact:   make(map[string]int, len(entries)),
		opts:    opts,
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		compiled, err := compile(e)
		if err != nil {
			return nil, err
		}

		if _, ok := seen[e.Path]; ok {
			return nil, errors.NewCatalogError("duplicate schema path").AddPath(e.Path)
		}
		seen[e.Path] = struct{}{}

		i := len(s.entries)
		s.entries = append(s.entries, compiled)
		if compiled.path.HasWildcard() {
			s.wildcards = append(s.wildcards, i)
		} else {
			s.exact[e.Path] = i
		}
	}

	return s, nil
}

func compile(e Entry) (entry, error) {
	if e.Path == "" {
		return entry{}, errors.NewCatalogError("schema path must not be empty")
	}

	path := paths.Parse(e.Path)
	for _, seg := range path {
		if seg.Kind == paths.Literal && seg.Name == "" {
			return entry{}, errors.NewCatalogError("schema path has an empty segment").AddPath(e.Path)
		}
	}

	desc := Descriptor{
		Rules:    make([]rules.Rule, 0, len(e.Rules)),
		Optional: e.Optional,
		Message:  e.Message,
	}
	for _, raw := range e.Rules {
		rule, err := rules.Parse(raw)
		if err != nil {
			return entry{}, errors.WrapCatalogError(err).AddPath(e.Path)
		}
		if rule.Name == rules.Optional {
			desc.Optional = true
		}
		desc.Rules = append(desc.Rules, rule)
	}

	return entry{raw: e.Path, path: path, desc: desc}, nil
}

// Options returns the schema's evaluation options.
func (s *Schema) Options() Options {
	return s.opts
}

// WithOptions returns a copy of the schema with different options.
func (s *Schema) WithOptions(opts Options) *Schema {
	clone := *s
	clone.opts = opts
	return &clone
}

// Len returns the number of entries.
func (s *Schema) Len() int {
	return len(s.entries)
}

// Paths returns the declared paths in declaration order.
func (s *Schema) Paths() []string {
	result := make([]string, len(s.entries))
	for i, e := range s.entries {
		result[i] = e.raw
	}
	return result
}

// Lookup finds the descriptor for a concrete path: an exact declaration
// first, then the first wildcard entry whose "$" segments match numeric
// indexes.
func (s *Schema) Lookup(path string) (Descriptor, bool) {
	if i, ok := s.exact[path]; ok {
		return s.entries[i].desc, true
	}

	concrete := paths.Parse(path)
	for _, i := range s.wildcards {
		if s.entries[i].path.Matches(concrete) {
			return s.entries[i].desc, true
		}
	}

	return Descriptor{}, false
}

// check applies a descriptor to a node. declared is false for paths with no
// schema entry.
func (s *Schema) check(desc Descriptor, declared bool, node paths.Node, checkRequired bool) *FieldError {
	if !node.IsEmpty() {
		value := node.Value()
		for _, r := range desc.Rules {
			if msg, ok := r.Check(value); !ok {
				return &FieldError{Message: msg}
			}
		}
		return nil
	}

	if !checkRequired {
		return nil
	}

	required := desc.IsRequired()
	if !declared {
		required = s.opts.RequireUndeclared
	}
	if !required {
		return nil
	}

	return &FieldError{Message: desc.Message}
}
