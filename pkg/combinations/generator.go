// Package combinations expands controlling attributes into the cartesian
// product of their values.
//
// Generation is depth-first, attribute-order-major and value-order-minor:
//
//	Generate([Color(red, blue), Size(s, m)])
//	  red_s   "Color: Red / Size: S"
//	  red_m   "Color: Red / Size: M"
//	  blue_s  "Color: Blue / Size: S"
//	  blue_m  "Color: Blue / Size: M"
//
// The same attribute and value ordering always yields the same ordered list,
// which keeps UI diffing and key matching stable. The output size is the
// product of the value counts; use GenerateBounded to cap it.
package combinations

import (
	"math"
	"net/http"
	"strings"

	"github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/models"
)

// Generate returns every combination of the given attributes' values. Callers
// pass only attributes that control the facet and have at least one value.
func Generate(attributes []models.Attribute) []models.Combination {
	if len(attributes) == 0 {
		return []models.Combination{}
	}

	result := make([]models.Combination, 0, min(Count(attributes), maxPrealloc))
	chosen := make([]models.AttributeValue, 0, len(attributes))
	generate(attributes, chosen, &result)

	return result
}

// maxPrealloc caps the capacity reserved up front; larger outputs grow by
// append.
const maxPrealloc = 1024

func generate(attributes []models.Attribute, chosen []models.AttributeValue, result *[]models.Combination) {
	depth := len(chosen)
	if depth == len(attributes) {
		*result = append(*result, build(attributes, chosen))
		return
	}

	for _, value := range attributes[depth].Values {
		generate(attributes, append(chosen, value), result)
	}
}

func build(attributes []models.Attribute, chosen []models.AttributeValue) models.Combination {
	ids := make([]string, len(chosen))
	labels := make([]string, len(chosen))
	attributeValues := make(map[string]string, len(chosen))

	for i, value := range chosen {
		ids[i] = value.ID
		labels[i] = attributes[i].Name + ": " + value.Value
		attributeValues[attributes[i].ID] = value.ID
	}

	return models.Combination{
		Key:             strings.Join(ids, models.KeySeparator),
		Label:           strings.Join(labels, models.LabelSeparator),
		AttributeValues: attributeValues,
	}
}

// Count returns how many combinations Generate would produce. The product
// saturates at math.MaxInt instead of overflowing.
func Count(attributes []models.Attribute) int {
	if len(attributes) == 0 {
		return 0
	}
	for _, a := range attributes {
		if len(a.Values) == 0 {
			return 0
		}
	}

	total := 1
	for _, a := range attributes {
		n := len(a.Values)
		if total > math.MaxInt/n {
			return math.MaxInt
		}
		total *= n
	}
	return total
}

// GenerateBounded is Generate with an upper bound on the output size. A max of
// zero or less disables the bound.
func GenerateBounded(attributes []models.Attribute, max int) ([]models.Combination, error) {
	if count := Count(attributes); max > 0 && count > max {
		if count == math.MaxInt {
			return nil, errors.NewCatalogErrorf("combinations exceed the limit of %d", max).
				WithStatus(http.StatusUnprocessableEntity)
		}
		return nil, errors.NewCatalogErrorf("%d combinations exceed the limit of %d", count, max).
			WithStatus(http.StatusUnprocessableEntity)
	}

	return Generate(attributes), nil
}
