package schema

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// FieldError marks a path as currently invalid. An empty Message is the bare
// required sentinel, encoded as `true`; otherwise Message is display text.
type FieldError struct {
	Message string
}

// IsSentinel reports whether the error is a bare required violation.
func (e FieldError) IsSentinel() bool {
	return e.Message == ""
}

func (e FieldError) String() string {
	if e.IsSentinel() {
		return "required"
	}
	return e.Message
}

func (e FieldError) MarshalJSON() ([]byte, error) {
	if e.IsSentinel() {
		return []byte("true"), nil
	}
	return json.Marshal(e.Message)
}

func (e *FieldError) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("true")) {
		e.Message = ""
		return nil
	}
	return json.Unmarshal(b, &e.Message)
}

// Errors maps concrete paths to their current error. A path that is absent
// has no error.
type Errors map[string]FieldError

// Has reports whether the path currently fails.
func (e Errors) Has(path string) bool {
	_, ok := e[path]
	return ok
}

// Paths returns the failing paths in sorted order.
func (e Errors) Paths() []string {
	return slices.Sorted(maps.Keys(e))
}

func (e Errors) Clone() Errors {
	if e == nil {
		return Errors{}
	}
	return maps.Clone(e)
}

// Patch holds re-validation outcomes for a set of paths. A nil entry clears
// the path.
type Patch map[string]*FieldError

// Apply returns a new Errors with the patch applied. The receiver is not
// modified.
func (e Errors) Apply(patch Patch) Errors {
	next := e.Clone()
	for path, fe := range patch {
		if fe == nil {
			delete(next, path)
			continue
		}
		next[path] = *fe
	}
	return next
}

// Result is the outcome of a full-form validation.
type Result struct {
	Valid      bool   `json:"valid"`
	Errors     Errors `json:"errors"`
	FirstError string `json:"firstError,omitempty"`
}
