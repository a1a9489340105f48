package schema

import (
	"github.com/Ramsey-B/bramble/pkg/paths"
)

// ValidateForm validates every schema entry against data with the required
// check enabled. Plain entries are visited in declaration order, then
// wildcard entries expand in array order; the first failure is reported as
// FirstError.
func ValidateForm(s *Schema, data any) Result {
	return s.validate(data, true)
}

func (s *Schema) validate(data any, checkRequired bool) Result {
	errs := Errors{}
	first := ""

	record := func(path string, fe *FieldError) {
		if fe == nil {
			return
		}
		errs[path] = *fe
		if first == "" {
			first = path
		}
	}

	for _, e := range s.entries {
		if e.path.HasWildcard() {
			continue
		}
		record(e.raw, s.check(e.desc, true, paths.Lookup(data, e.path), checkRequired))
	}

	for _, i := range s.wildcards {
		e := s.entries[i]
		for _, concrete := range paths.Expand(data, e.path) {
			key := concrete.String()
			// An exact declaration for the same concrete path takes precedence.
			if _, ok := s.exact[key]; ok {
				continue
			}
			record(key, s.check(e.desc, true, paths.Lookup(data, concrete), checkRequired))
		}
	}

	return Result{
		Valid:      len(errs) == 0,
		Errors:     errs,
		FirstError: first,
	}
}

// ValidateField validates a single value at a concrete path. It returns nil
// when the value passes.
func ValidateField(s *Schema, path string, value any, checkRequired bool) *FieldError {
	desc, declared := s.Lookup(path)
	return s.check(desc, declared, paths.NodeOf(value), checkRequired)
}

// ValidateChange re-validates a changed path against the current data and,
// when the schema declares children under it, every such child. Wildcards in
// child paths expand against data. The patch has an entry for every path it
// visited; nil means the path is now valid.
func ValidateChange(s *Schema, path string, data any, checkRequired bool) Patch {
	changed := paths.Parse(path)
	patch := Patch{}

	patch[path] = ValidateField(s, path, paths.Lookup(data, changed).Value(), checkRequired)

	for _, e := range s.entries {
		if len(e.path) <= len(changed) || !e.path.HasPrefix(changed) {
			continue
		}

		bound := e.path.Bind(changed)
		for _, concrete := range paths.Expand(data, bound) {
			key := concrete.String()
			if _, done := patch[key]; done {
				continue
			}
			desc, _ := s.Lookup(key)
			patch[key] = s.check(desc, true, paths.Lookup(data, concrete), checkRequired)
		}
	}

	return patch
}
