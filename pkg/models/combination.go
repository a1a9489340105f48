package models

import "maps"

const (
	// KeySeparator joins value ids into a combination key. Attribute and value
	// ids must never contain it.
	KeySeparator = "_"
	// LabelSeparator joins "Attribute: Value" pairs into a combination label.
	LabelSeparator = " / "
	// SingleKey is the sentinel record key used when no attribute controls a facet.
	SingleKey = "single"
)

// Combination is one cartesian-product tuple of controlling-attribute values.
// Combinations are regenerated on every read and never persisted; identity is
// the AttributeValues content.
type Combination struct {
	Key             string            `json:"key" yaml:"key"`
	Label           string            `json:"label" yaml:"label"`
	AttributeValues map[string]string `json:"attributeValues" yaml:"attributeValues"`
}

func (c Combination) GetKey() string {
	return c.Key
}

func (c Combination) GetAttributeValues() map[string]string {
	return c.AttributeValues
}

// Equal compares combinations by attribute value content.
func (c Combination) Equal(other Combination) bool {
	return maps.Equal(c.AttributeValues, other.AttributeValues)
}

// Keyed is anything addressable by a combination key and attribute values.
type Keyed interface {
	GetKey() string
	GetAttributeValues() map[string]string
}
