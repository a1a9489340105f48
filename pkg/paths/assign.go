package paths

import (
	"encoding"
	"encoding/json"
	"errors"
	"reflect"
)

var ErrWildcardAssign = errors.New("cannot assign through a wildcard segment")

// Assign writes value at p inside doc, creating intermediate objects as
// needed. Numeric segments index into existing arrays, growing them with nils.
// Typed containers on the way are converted to []any and map[string]any so
// their other entries survive the write.
func Assign(doc map[string]any, p Path, value any) (map[string]any, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	if len(p) == 0 {
		return doc, nil
	}
	if p.HasWildcard() {
		return doc, ErrWildcardAssign
	}

	result, _ := assign(doc, p, value).(map[string]any)
	return result, nil
}

func assign(container any, p Path, value any) any {
	if len(p) == 0 {
		return value
	}

	switch container.(type) {
	case nil, map[string]any, []any:
	default:
		container = Clone(container)
	}

	s := p[0]
	if i, ok := s.Index(); ok {
		if arr, ok := container.([]any); ok {
			for len(arr) <= i {
				arr = append(arr, nil)
			}
			arr[i] = assign(arr[i], p[1:], value)
			return arr
		}
	}

	obj, ok := container.(map[string]any)
	if !ok {
		obj = map[string]any{}
	}
	obj[s.Name] = assign(obj[s.Name], p[1:], value)
	return obj
}

// Clone deep-copies a JSON-like document into plain containers: slices and
// arrays become []any, string-keyed maps and structs become map[string]any.
// Struct fields are keyed by their json name, or the Go name when untagged.
// Leaf values, including types that marshal themselves, are shared.
func Clone(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Clone(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Clone(child)
		}
		return out
	}
	return clone(reflect.ValueOf(v))
}

var (
	jsonMarshaler = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshaler = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func isLeaf(t reflect.Type) bool {
	return t.Implements(jsonMarshaler) || t.Implements(textMarshaler)
}

func clone(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	if isLeaf(v.Type()) {
		return v.Interface()
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return v.Interface()
		}
		switch v.Elem().Kind() {
		case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
			return clone(v.Elem())
		}
		return v.Interface()
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return v.Interface()
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Clone(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		// Bytes stay as they are.
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		out := make([]any, v.Len())
		for i := range out {
			out[i] = Clone(v.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get("json") == "-" {
				continue
			}
			name, ok := jsonName(f)
			if !ok {
				name = f.Name
			}
			out[name] = Clone(v.Field(i).Interface())
		}
		return out
	}
	return v.Interface()
}
