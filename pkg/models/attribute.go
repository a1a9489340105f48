package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Gobusters/ectolinq"
	"github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Facet is an independently variant-able aspect of an item.
type Facet string

const (
	FacetPricing    Facet = "pricing"
	FacetDimensions Facet = "dimensions"
	FacetMedia      Facet = "media"
	FacetStock      Facet = "stock"
)

// Facets lists every facet in the order editors present them.
var Facets = []Facet{FacetPricing, FacetDimensions, FacetMedia, FacetStock}

// ParseFacet converts a facet name into a Facet.
func ParseFacet(name string) (Facet, error) {
	facet := Facet(strings.ToLower(strings.TrimSpace(name)))
	if !ectolinq.Contains(Facets, facet) {
		return "", errors.NewCatalogErrorf("unknown facet %q", name).AddFacet(name)
	}
	return facet, nil
}

// AttributeValue is a leaf value of an attribute. ID is opaque and stable so
// renaming or reordering a value never changes combination keys.
type AttributeValue struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Value string `json:"value" yaml:"value" validate:"required"`
	Order int    `json:"order" yaml:"order"`
}

// NewAttributeValue creates a value with a freshly minted id.
func NewAttributeValue(value string, order int) AttributeValue {
	return AttributeValue{
		ID:    newID(),
		Value: value,
		Order: order,
	}
}

func newID() string {
	return uuid.New().String()
}

// Attribute is a named dimension of an item with an ordered list of values and
// the facets it controls.
type Attribute struct {
	ID                       string           `json:"id" yaml:"id" validate:"required"`
	Name                     string           `json:"name" yaml:"name" validate:"required"`
	Values                   []AttributeValue `json:"values" yaml:"values" validate:"dive"`
	Order                    int              `json:"order" yaml:"order"`
	ControlsPricing          bool             `json:"controlsPricing" yaml:"controlsPricing"`
	ControlsWeightDimensions bool             `json:"controlsWeightDimensions" yaml:"controlsWeightDimensions"`
	ControlsMedia            bool             `json:"controlsMedia" yaml:"controlsMedia"`
}

// Controls reports whether the attribute determines per-combination records for
// the facet. Stock is tracked per full combination, so every attribute controls it.
func (a Attribute) Controls(facet Facet) bool {
	switch facet {
	case FacetPricing:
		return a.ControlsPricing
	case FacetDimensions:
		return a.ControlsWeightDimensions
	case FacetMedia:
		return a.ControlsMedia
	case FacetStock:
		return true
	}
	return false
}

// Value returns the attribute value with the given id.
func (a Attribute) Value(valueID string) (AttributeValue, bool) {
	value := ectolinq.Find(a.Values, func(v AttributeValue) bool {
		return v.ID == valueID
	})
	return value, value.ID != ""
}

// Validate checks the attribute's own constraints.
func (a Attribute) Validate() error {
	if err := validate.Struct(a); err != nil {
		return validationError(err).AddAttribute(a.ID)
	}

	if strings.Contains(a.ID, KeySeparator) {
		return errors.NewCatalogErrorf("id must not contain '%s'", KeySeparator).AddAttribute(a.ID)
	}

	seen := make(map[string]struct{}, len(a.Values))
	for _, v := range a.Values {
		if strings.Contains(v.ID, KeySeparator) {
			return errors.NewCatalogErrorf("id must not contain '%s'", KeySeparator).AddAttribute(a.ID).AddValue(v.ID)
		}
		if _, ok := seen[v.ID]; ok {
			return errors.NewCatalogError("duplicate value id").AddAttribute(a.ID).AddValue(v.ID)
		}
		seen[v.ID] = struct{}{}
	}

	return nil
}

// Attributes is an ordered attribute catalog.
type Attributes []Attribute

// Validate checks every attribute and that attribute ids are unique.
func (attrs Attributes) Validate() error {
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, ok := seen[a.ID]; ok {
			return errors.NewCatalogError("duplicate attribute id").AddAttribute(a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}

// Sorted returns a copy ordered by Order, with every attribute's values also
// ordered by Order. Both sorts are stable.
func (attrs Attributes) Sorted() Attributes {
	sorted := make(Attributes, len(attrs))
	for i, a := range attrs {
		values := make([]AttributeValue, len(a.Values))
		copy(values, a.Values)
		sort.SliceStable(values, func(i, j int) bool {
			return values[i].Order < values[j].Order
		})
		a.Values = values
		sorted[i] = a
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	return sorted
}

// Controlling returns the attributes that control the facet and carry at
// least one value, preserving order.
func (attrs Attributes) Controlling(facet Facet) Attributes {
	return ectolinq.Filter(attrs, func(a Attribute) bool {
		return a.Controls(facet) && len(a.Values) > 0
	})
}

// WithIDs returns a copy in which attributes and values entered without an id
// get a freshly minted one. Existing ids are kept.
func (attrs Attributes) WithIDs() Attributes {
	out := make(Attributes, len(attrs))
	for i, a := range attrs {
		if a.ID == "" {
			a.ID = newID()
		}
		values := make([]AttributeValue, len(a.Values))
		for j, v := range a.Values {
			if v.ID == "" {
				v = NewAttributeValue(v.Value, v.Order)
			}
			values[j] = v
		}
		a.Values = values
		out[i] = a
	}
	return out
}

// Describe renders "Name: Value" pairs for a record's attribute values, in
// attribute order. Attributes or values no longer in the catalog are shown by
// id after the known ones.
func (attrs Attributes) Describe(attributeValues map[string]string) string {
	ids := make([]string, 0, len(attributeValues))
	for id := range attributeValues {
		ids = append(ids, id)
	}
	position := func(id string) int {
		for i, a := range attrs {
			if a.ID == id {
				return i
			}
		}
		return len(attrs)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := position(ids[i]), position(ids[j])
		if pi != pj {
			return pi < pj
		}
		return ids[i] < ids[j]
	})

	labels := make([]string, len(ids))
	for i, id := range ids {
		valueID := attributeValues[id]
		attr, ok := attrs.Get(id)
		if !ok {
			labels[i] = id + ": " + valueID
			continue
		}
		label := valueID
		if value, ok := attr.Value(valueID); ok {
			label = value.Value
		}
		labels[i] = attr.Name + ": " + label
	}
	return strings.Join(labels, LabelSeparator)
}

// Get returns the attribute with the given id.
func (attrs Attributes) Get(id string) (Attribute, bool) {
	attr := ectolinq.Find(attrs, func(a Attribute) bool {
		return a.ID == id
	})
	return attr, attr.ID != ""
}

func validationError(err error) *errors.CatalogError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.WrapCatalogError(err)
	}

	fe := verrs[0]
	return errors.NewCatalogError(fmt.Sprintf("field '%s' failed rule '%s'", fe.Namespace(), fe.Tag()))
}
