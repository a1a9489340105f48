package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Ramsey-B/bramble/pkg/errors"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a single rule name, a list of rule names, or the full
// {rules, optional, message} mapping.
func (r *RuleSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			*r = RuleSpec{}
			return nil
		}
		*r = RuleSpec{Rules: []string{value.Value}}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		*r = RuleSpec{Rules: names}
		return nil
	case yaml.MappingNode:
		type plain RuleSpec
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*r = RuleSpec(p)
		return nil
	default:
		return fmt.Errorf("line %d: unsupported rule descriptor", value.Line)
	}
}

// UnmarshalJSON accepts the same shapes as UnmarshalYAML.
func (r *RuleSpec) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = RuleSpec{}
		return nil
	}

	switch b[0] {
	case '"':
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*r = RuleSpec{Rules: []string{name}}
		return nil
	case '[':
		var names []string
		if err := json.Unmarshal(b, &names); err != nil {
			return err
		}
		*r = RuleSpec{Rules: names}
		return nil
	default:
		type plain RuleSpec
		var p plain
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*r = RuleSpec(p)
		return nil
	}
}

// LoadYAML compiles a schema from a YAML mapping of path to descriptor. Key
// order in the document is the declaration order.
func LoadYAML(b []byte, opts Options) (*Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, errors.WrapCatalogError(err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return NewWithOptions(opts)
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, errors.NewCatalogErrorf("schema must be a mapping of path to rules, line %d", doc.Line)
	}

	entries := make([]Entry, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		var spec RuleSpec
		if err := doc.Content[i+1].Decode(&spec); err != nil {
			return nil, errors.WrapCatalogError(err).AddPath(key)
		}
		entries = append(entries, Entry{Path: key, RuleSpec: spec})
	}

	return NewWithOptions(opts, entries...)
}

// LoadJSON compiles a schema from a JSON object of path to descriptor. Key
// order in the document is the declaration order.
func LoadJSON(b []byte, opts Options) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err == io.EOF {
		return NewWithOptions(opts)
	}
	if err != nil {
		return nil, errors.WrapCatalogError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.NewCatalogError("schema must be an object of path to rules")
	}

	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.WrapCatalogError(err)
		}
		key, _ := tok.(string)

		var spec RuleSpec
		if err := dec.Decode(&spec); err != nil {
			return nil, errors.WrapCatalogError(err).AddPath(key)
		}
		entries = append(entries, Entry{Path: key, RuleSpec: spec})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.WrapCatalogError(err)
	}

	return NewWithOptions(opts, entries...)
}
