// Package paths parses dot-separated field paths and walks them through
// arbitrarily shaped data.
//
// # Syntax
//
// Segments are separated by ".". A segment made only of "$" is a wildcard and
// stands for every element of the array found at that position. A literal
// segment made only of digits addresses an array element when the value at
// that position is an array.
//
//	name_en                  literal
//	pricing.variants.$.cost  wildcard over variants
//	pricing.variants.3.cost  concrete element
//
// Paths are parsed once into a Path value; matching a concrete path against a
// wildcard path compares segments and never builds patterns at runtime.
package paths

import (
	"strconv"
	"strings"
)

const (
	Separator     = "."
	WildcardToken = "$"
)

type SegmentKind int

const (
	Literal SegmentKind = iota
	Wildcard
)

// Segment is one step of a Path.
type Segment struct {
	Kind SegmentKind
	Name string
}

// Index reports the array index a literal segment addresses.
func (s Segment) Index() (int, bool) {
	if s.Kind != Literal || !isIndex(s.Name) {
		return 0, false
	}

	i, err := strconv.Atoi(s.Name)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (s Segment) String() string {
	if s.Kind == Wildcard {
		return WildcardToken
	}
	return s.Name
}

// Key builds a literal segment.
func Key(name string) Segment {
	return Segment{Kind: Literal, Name: name}
}

// Index builds a literal segment addressing an array element.
func Index(i int) Segment {
	return Segment{Kind: Literal, Name: strconv.Itoa(i)}
}

// Path is a parsed field path. The zero value addresses the root.
type Path []Segment

// Parse splits a dot path into segments. The empty string is the root path.
func Parse(s string) Path {
	if s == "" {
		return Path{}
	}

	parts := strings.Split(s, Separator)
	path := make(Path, len(parts))
	for i, part := range parts {
		if part == WildcardToken {
			path[i] = Segment{Kind: Wildcard}
			continue
		}
		path[i] = Key(part)
	}
	return path
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, Separator)
}

// HasWildcard reports whether any segment is a wildcard.
func (p Path) HasWildcard() bool {
	for _, s := range p {
		if s.Kind == Wildcard {
			return true
		}
	}
	return false
}

// Matches reports whether the concrete path is addressed by p. A wildcard
// segment matches any literal segment that is a canonical array index.
func (p Path) Matches(concrete Path) bool {
	if len(p) != len(concrete) {
		return false
	}

	for i, s := range p {
		c := concrete[i]
		if s.Kind == Wildcard {
			if c.Kind != Literal || !isIndex(c.Name) {
				return false
			}
			continue
		}
		if c.Kind != Literal || c.Name != s.Name {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p starts with prefix, segment by segment. A
// wildcard in p accepts a numeric segment in prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Matches(prefix) || p[:len(prefix)].Equal(prefix)
}

// Equal compares two paths segment by segment.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Append returns a new path with the segments added.
func (p Path) Append(segments ...Segment) Path {
	path := make(Path, 0, len(p)+len(segments))
	path = append(path, p...)
	return append(path, segments...)
}

// Bind replaces the leading segments of p with the concrete prefix. It is used
// to carry indexes from a concrete path into a wildcard child path.
func (p Path) Bind(prefix Path) Path {
	if len(prefix) > len(p) {
		return p
	}
	bound := make(Path, len(p))
	copy(bound, p)
	copy(bound, prefix)
	return bound
}

// isIndex accepts canonical array indexes only: "0" or digits without a
// leading zero, so each element has exactly one path.
func isIndex(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
