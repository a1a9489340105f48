package rules

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/spf13/cast"
)

const (
	Required = "required"
	Optional = "optional"

	Latin       = "latin"
	Arabic      = "arabic"
	Number      = "number"
	Integer     = "integer"
	Positive    = "positive"
	NonNegative = "non_negative"
	Min         = "min"
	Max         = "max"
	MinLength   = "min_length"
	MaxLength   = "max_length"
	MinItems    = "min_items"
	Email       = "email"
	URL         = "url"

	// ParamSeparator splits a rule name from its parameter, as in "min_length=3".
	ParamSeparator = "="
)

type ParamKind int

const (
	ParamNone ParamKind = iota
	ParamInt
	ParamFloat
)

// CheckFunc reports whether a non-empty value passes the check.
type CheckFunc func(value any, param string) bool

// Definition describes a named format check. Message may reference the
// parameter with %s.
type Definition struct {
	Message string
	Param   ParamKind
	Check   CheckFunc
}

var (
	mu          sync.RWMutex
	definitions = map[string]Definition{
		Latin:       {Message: "Must contain English characters only", Check: stringTag(Latin)},
		Arabic:      {Message: "Must contain Arabic characters only", Check: stringTag(Arabic)},
		Email:       {Message: "Must be a valid email address", Check: stringTag("email")},
		URL:         {Message: "Must be a valid URL", Check: stringTag("url")},
		Number:      {Message: "Must be a valid number", Check: isNumber},
		Integer:     {Message: "Must be a whole number", Check: isInteger},
		Positive:    {Message: "Must be greater than zero", Check: numberTag("gt=0")},
		NonNegative: {Message: "Must be zero or greater", Check: numberTag("gte=0")},
		Min:         {Message: "Must be at least %s", Param: ParamFloat, Check: numberParamTag("gte")},
		Max:         {Message: "Must be at most %s", Param: ParamFloat, Check: numberParamTag("lte")},
		MinLength:   {Message: "Must be at least %s characters", Param: ParamInt, Check: stringParamTag("min")},
		MaxLength:   {Message: "Must be at most %s characters", Param: ParamInt, Check: stringParamTag("max")},
		MinItems:    {Message: "Must contain at least %s items", Param: ParamInt, Check: minItems},
	}
)

// Register adds or replaces a named check.
func Register(name string, def Definition) {
	mu.Lock()
	defer mu.Unlock()
	definitions[name] = def
}

func lookup(name string) (Definition, bool) {
	mu.RLock()
	defer mu.RUnlock()
	def, ok := definitions[name]
	return def, ok
}

// Rule is a parsed named check such as "required" or "max_length=50".
type Rule struct {
	Name  string
	Param string
	def   Definition
}

// Parse resolves a rule string against the registry.
func Parse(raw string) (Rule, error) {
	name, param, _ := strings.Cut(strings.TrimSpace(raw), ParamSeparator)
	rule := Rule{Name: name, Param: param}

	if rule.IsMarker() {
		if param != "" {
			return Rule{}, errors.NewCatalogErrorf("rule '%s' takes no parameter", name)
		}
		return rule, nil
	}

	def, ok := lookup(name)
	if !ok {
		return Rule{}, errors.NewCatalogErrorf("unknown rule '%s'", name)
	}

	switch def.Param {
	case ParamNone:
		if param != "" {
			return Rule{}, errors.NewCatalogErrorf("rule '%s' takes no parameter", name)
		}
	case ParamInt:
		if _, err := strconv.Atoi(param); err != nil {
			return Rule{}, errors.NewCatalogErrorf("rule '%s' needs an integer parameter, got '%s'", name, param)
		}
	case ParamFloat:
		if _, err := strconv.ParseFloat(param, 64); err != nil {
			return Rule{}, errors.NewCatalogErrorf("rule '%s' needs a numeric parameter, got '%s'", name, param)
		}
	}

	rule.def = def
	return rule, nil
}

// MustParse is Parse for rule literals known at compile time.
func MustParse(raw string) Rule {
	rule, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return rule
}

// IsMarker reports whether the rule only affects requiredness.
func (r Rule) IsMarker() bool {
	return r.Name == Required || r.Name == Optional
}

func (r Rule) String() string {
	if r.Param == "" {
		return r.Name
	}
	return r.Name + ParamSeparator + r.Param
}

// Check runs the format check against a non-empty value, returning the
// display message on failure. Markers always pass.
func (r Rule) Check(value any) (string, bool) {
	if r.IsMarker() || r.def.Check == nil {
		return "", true
	}
	if r.def.Check(value, r.Param) {
		return "", true
	}
	if strings.Contains(r.def.Message, "%s") {
		return fmt.Sprintf(r.def.Message, r.Param), false
	}
	return r.def.Message, false
}

func stringTag(tag string) CheckFunc {
	return func(value any, _ string) bool {
		s, ok := asString(value)
		if !ok {
			return true
		}
		return validate.Var(s, tag) == nil
	}
}

func stringParamTag(tag string) CheckFunc {
	return func(value any, param string) bool {
		s, ok := asString(value)
		if !ok {
			return true
		}
		return validate.Var(s, tag+ParamSeparator+param) == nil
	}
}

func numberTag(tag string) CheckFunc {
	return func(value any, _ string) bool {
		f, ok := asNumber(value)
		if !ok {
			return true
		}
		return validate.Var(f, tag) == nil
	}
}

func numberParamTag(tag string) CheckFunc {
	return func(value any, param string) bool {
		f, ok := asNumber(value)
		if !ok {
			return true
		}
		return validate.Var(f, tag+ParamSeparator+param) == nil
	}
}

func isNumber(value any, _ string) bool {
	_, ok := asNumber(value)
	return ok
}

func isInteger(value any, _ string) bool {
	f, ok := asNumber(value)
	if !ok {
		return true
	}
	return f == math.Trunc(f)
}

func minItems(value any, param string) bool {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return true
	}
	return validate.Var(value, "min"+ParamSeparator+param) == nil
}

// asString accepts strings and scalar values that have a string form. Objects
// and arrays are left to other checks.
func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case map[string]any, []any:
		return "", false
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", false
	}
	return s, true
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case bool, nil:
		return 0, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}

	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, false
	}
	return f, true
}
