package paths

import (
	"reflect"
	"strings"
)

type NodeKind int

const (
	NodeMissing NodeKind = iota
	NodeScalar
	NodeObject
	NodeArray
)

// Node is a read-only view of a value found while walking a path.
type Node struct {
	Kind  NodeKind
	value reflect.Value
}

var missing = Node{Kind: NodeMissing}

// NodeOf classifies a value. Nil pointers and interfaces are scalar nils.
func NodeOf(v any) Node {
	return nodeOf(reflect.ValueOf(v))
}

func nodeOf(v reflect.Value) Node {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return Node{Kind: NodeScalar}
		}
		v = v.Elem()
	}

	if !v.IsValid() {
		return Node{Kind: NodeScalar}
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return Node{Kind: NodeArray, value: v}
	case reflect.Map, reflect.Struct:
		return Node{Kind: NodeObject, value: v}
	}
	return Node{Kind: NodeScalar, value: v}
}

// Value returns the underlying value, or nil when the node is missing or nil.
func (n Node) Value() any {
	if !n.value.IsValid() || !n.value.CanInterface() {
		return nil
	}
	return n.value.Interface()
}

// Len returns the number of elements of an array node.
func (n Node) Len() int {
	if n.Kind != NodeArray {
		return 0
	}
	return n.value.Len()
}

// IsEmpty reports whether the node holds no usable value: missing, nil, the
// empty string or an empty array.
func (n Node) IsEmpty() bool {
	switch n.Kind {
	case NodeMissing:
		return true
	case NodeArray:
		return n.value.Len() == 0
	case NodeScalar:
		if !n.value.IsValid() {
			return true
		}
		return n.value.Kind() == reflect.String && n.value.Len() == 0
	}
	return false
}

// Child steps into a single segment. Wildcards cannot be walked directly and
// yield a missing node; use Expand for those.
func (n Node) Child(s Segment) Node {
	if s.Kind == Wildcard {
		return missing
	}

	switch n.Kind {
	case NodeArray:
		i, ok := s.Index()
		if !ok || i >= n.value.Len() {
			return missing
		}
		return nodeOf(n.value.Index(i))
	case NodeObject:
		return n.field(s.Name)
	}
	return missing
}

func (n Node) field(key string) Node {
	v := n.value
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return missing
		}
		value := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !value.IsValid() {
			return missing
		}
		return nodeOf(value)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if name, ok := jsonName(f); ok && name == key {
				return nodeOf(v.Field(i))
			}
		}
		// Fall back to a case-insensitive Go field name.
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.IsExported() && strings.EqualFold(f.Name, key) {
				return nodeOf(v.Field(i))
			}
		}
	}
	return missing
}

func jsonName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}

// Lookup walks data along a path made of literal segments.
func Lookup(data any, p Path) Node {
	node := NodeOf(data)
	for _, s := range p {
		node = node.Child(s)
		if node.Kind == NodeMissing {
			return missing
		}
	}
	return node
}

// Expand resolves every wildcard in p against data, returning one concrete
// path per addressed element in array order. Paths without wildcards are
// returned as is. A wildcard over a missing or non-array value expands to
// nothing.
func Expand(data any, p Path) []Path {
	result := []Path{}
	expand(NodeOf(data), p, 0, make(Path, 0, len(p)), &result)
	return result
}

func expand(node Node, p Path, depth int, concrete Path, result *[]Path) {
	if depth == len(p) {
		*result = append(*result, concrete.Append())
		return
	}

	s := p[depth]
	if s.Kind != Wildcard {
		expand(node.Child(s), p, depth+1, append(concrete, s), result)
		return
	}

	if node.Kind != NodeArray {
		return
	}
	for i := 0; i < node.Len(); i++ {
		expand(node.Child(Index(i)), p, depth+1, append(concrete, Index(i)), result)
	}
}
