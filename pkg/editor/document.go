package editor

import (
	"encoding/json"
	"fmt"

	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/paths"
	"github.com/spf13/cast"
)

// Document keys.
const (
	AttributesField      = "attributes"
	SingleField          = "single"
	VariantsField        = "variants"
	KeyField             = "key"
	AttributeValuesField = "attributeValues"
	LabelField           = "label"
)

// FacetState is the live record collection of one facet. Single is set when
// no attribute controls the facet, Variants otherwise.
type FacetState[T any] struct {
	Single   *models.VariantRecord[T]  `json:"single,omitempty"`
	Variants []models.VariantRecord[T] `json:"variants,omitempty"`
}

// Draft is an item being edited.
type Draft struct {
	NameEN        string            `json:"name_en"`
	NameAR        string            `json:"name_ar"`
	DescriptionEN string            `json:"description_en"`
	DescriptionAR string            `json:"description_ar"`
	CategoryID    string            `json:"category_id"`
	Attributes    models.Attributes `json:"attributes"`

	Pricing    FacetState[models.PricingFields]   `json:"pricing"`
	Dimensions FacetState[models.DimensionFields] `json:"dimensions"`
	Media      FacetState[models.MediaFields]     `json:"media"`
	Stock      FacetState[models.StockFields]     `json:"stock"`
}

// Document converts the draft into the JSON-like map the validation engine
// walks.
func Document(draft Draft) (map[string]any, error) {
	doc, err := toDocument(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}
	return doc, nil
}

func toDocument(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func toValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// payload is the untyped facet field set of a record as stored in the
// document. Values are whatever the user entered.
type payload = map[string]any

type record = models.VariantRecord[payload]

// recordsOf reads the facet's current records out of a document, single
// record first.
func recordsOf(doc map[string]any, facet models.Facet) []record {
	state, _ := doc[string(facet)].(map[string]any)
	if state == nil {
		return nil
	}

	var records []record
	if single, ok := state[SingleField].(map[string]any); ok {
		records = append(records, recordFrom(single))
	}
	rows, _ := state[VariantsField].([]any)
	for _, row := range rows {
		if m, ok := row.(map[string]any); ok {
			records = append(records, recordFrom(m))
		}
	}
	return records
}

func recordFrom(m map[string]any) record {
	fields := payload{}
	for k, v := range m {
		switch k {
		case KeyField, AttributeValuesField, LabelField:
			continue
		}
		fields[k] = v
	}

	return record{
		Key:             cast.ToString(m[KeyField]),
		AttributeValues: cast.ToStringMapString(m[AttributeValuesField]),
		Fields:          fields,
	}
}

// rowDocument lays a record out for the document. Fields are deep-copied so
// rows resolved from the same prior record stay independent.
func rowDocument(combination models.Combination, fields payload) map[string]any {
	row, _ := paths.Clone(fields).(map[string]any)
	if row == nil {
		row = map[string]any{}
	}

	attributeValues := make(map[string]any, len(combination.AttributeValues))
	for k, v := range combination.AttributeValues {
		attributeValues[k] = v
	}

	row[KeyField] = combination.Key
	row[AttributeValuesField] = attributeValues
	if combination.Label != "" {
		row[LabelField] = combination.Label
	}
	return row
}

// defaultPayload returns the empty field set of a facet, shaped like its
// typed fields.
func defaultPayload(facet models.Facet) payload {
	var fields any
	switch facet {
	case models.FacetPricing:
		fields = models.PricingFields{}
	case models.FacetDimensions:
		fields = models.DimensionFields{}
	case models.FacetMedia:
		fields = models.MediaFields{}
	case models.FacetStock:
		fields = models.StockFields{}
	default:
		return payload{}
	}

	doc, err := toDocument(fields)
	if err != nil {
		return payload{}
	}
	return doc
}
