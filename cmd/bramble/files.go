package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/schema"
	"gopkg.in/yaml.v3"
)

// decodeFile reads a YAML or JSON file into target. The document goes through
// JSON so json tags and custom JSON decoders apply to both formats.
func decodeFile(path string, target any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	jb, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}
	if err := json.Unmarshal(jb, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// readAttributes accepts either a bare attribute list or an object with an
// attributes key. Entries without an id get a minted one.
func readAttributes(path string) (models.Attributes, error) {
	var raw any
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}

	var attrs models.Attributes
	if _, ok := raw.([]any); ok {
		if err := decodeFile(path, &attrs); err != nil {
			return nil, err
		}
		return attrs.WithIDs(), nil
	}

	var catalog struct {
		Attributes models.Attributes `json:"attributes"`
	}
	if err := decodeFile(path, &catalog); err != nil {
		return nil, err
	}
	return catalog.Attributes.WithIDs(), nil
}

// readSchema compiles a schema file, keeping the file's key order.
func readSchema(path string, opts schema.Options) (*schema.Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return schema.LoadJSON(b, opts)
	}
	return schema.LoadYAML(b, opts)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
