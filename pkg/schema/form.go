package schema

import (
	"sync"

	"github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/paths"
)

// Form owns one document, its schema and the current error map. Every
// mutation builds new data and error maps and swaps them in, so values
// returned by Data and Errors are never modified afterwards.
//
// Until Submit is called, field changes only run format checks; empty
// required fields stay silent. After the first Submit, every change also
// checks required.
type Form struct {
	mu        sync.RWMutex
	schema    *Schema
	data      map[string]any
	errors    Errors
	first     string
	submitted bool
}

// NewForm creates a form over a copy of data.
func NewForm(s *Schema, data map[string]any) *Form {
	doc, _ := paths.Clone(data).(map[string]any)
	if doc == nil {
		doc = map[string]any{}
	}
	return &Form{
		schema: s,
		data:   doc,
		errors: Errors{},
	}
}

// SetField writes value at a concrete path and re-validates that path and
// any declared children. Errors left on paths under the changed one that no
// longer exist are dropped. It returns the error now recorded for path.
func (f *Form) SetField(path string, value any) (*FieldError, error) {
	p := paths.Parse(path)
	if len(p) == 0 {
		return nil, errors.NewCatalogError("field path must not be empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, _ := paths.Clone(f.data).(map[string]any)
	doc, err := paths.Assign(doc, p, paths.Clone(value))
	if err != nil {
		return nil, errors.WrapCatalogError(err).AddPath(path)
	}

	patch := ValidateChange(f.schema, path, doc, f.submitted)
	for existing := range f.errors {
		if _, ok := patch[existing]; ok {
			continue
		}
		if paths.Parse(existing).HasPrefix(p) {
			patch[existing] = nil
		}
	}

	f.data = doc
	f.errors = f.errors.Apply(patch)
	f.first = f.firstError()

	if fe, ok := f.errors[path]; ok {
		return &fe, nil
	}
	return nil, nil
}

// ValidateField checks a candidate value without storing it, using the
// form's submission state to decide whether required applies.
func (f *Form) ValidateField(path string, value any) *FieldError {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return ValidateField(f.schema, path, value, f.submitted)
}

// Submit marks the form as submitted and replaces the error map with a full
// validation.
func (f *Form) Submit() Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitted = true
	result := ValidateForm(f.schema, f.data)
	f.errors = result.Errors
	f.first = result.FirstError

	result.Errors = result.Errors.Clone()
	return result
}

// SetSchema swaps the schema and re-validates the whole document.
func (f *Form) SetSchema(s *Schema) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.schema = s
	f.revalidate()
}

// SetData replaces the document and re-validates it.
func (f *Form) SetData(data map[string]any) {
	doc, _ := paths.Clone(data).(map[string]any)
	if doc == nil {
		doc = map[string]any{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.data = doc
	f.revalidate()
}

// Replace swaps schema and document together.
func (f *Form) Replace(s *Schema, data map[string]any) {
	doc, _ := paths.Clone(data).(map[string]any)
	if doc == nil {
		doc = map[string]any{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.schema = s
	f.data = doc
	f.revalidate()
}

func (f *Form) revalidate() {
	result := f.schema.validate(f.data, f.submitted)
	f.errors = result.Errors
	f.first = result.FirstError
}

// firstError keeps the current first error while it still fails, otherwise
// takes the earliest failing path in schema order.
func (f *Form) firstError() string {
	if f.first != "" && f.errors.Has(f.first) {
		return f.first
	}
	if len(f.errors) == 0 {
		return ""
	}

	for _, e := range f.schema.entries {
		if e.path.HasWildcard() {
			continue
		}
		if f.errors.Has(e.raw) {
			return e.raw
		}
	}
	for _, i := range f.schema.wildcards {
		e := f.schema.entries[i]
		for _, concrete := range paths.Expand(f.data, e.path) {
			if key := concrete.String(); f.errors.Has(key) {
				return key
			}
		}
	}

	// Only undeclared paths remain.
	return f.errors.Paths()[0]
}

func (f *Form) Schema() *Schema {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.schema
}

// Data returns a copy of the current document.
func (f *Form) Data() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	doc, _ := paths.Clone(f.data).(map[string]any)
	return doc
}

// Errors returns a copy of the current error map.
func (f *Form) Errors() Errors {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.errors.Clone()
}

func (f *Form) FirstError() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.first
}

func (f *Form) Submitted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitted
}

func (f *Form) Valid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.errors) == 0
}
