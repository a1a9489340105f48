package editor

import (
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/schema"
)

var productFields = []schema.Entry{
	schema.Field("name_en", "required", "latin", "max_length=200"),
	schema.Field("name_ar", "required", "arabic", "max_length=200"),
	schema.OptionalField("description_en", "latin"),
	schema.OptionalField("description_ar", "arabic"),
	{Path: "category_id", RuleSpec: schema.RuleSpec{
		Rules:   []string{"required"},
		Message: "Select a category",
	}},
}

// facetFields are relative to a single record.
var facetFields = map[models.Facet][]schema.Entry{
	models.FacetPricing: {
		schema.Field("cost", "number", "non_negative"),
		schema.Field("price", "required", "number", "positive"),
		schema.Field("salePrice", "number", "positive"),
	},
	models.FacetDimensions: {
		schema.Field("weight", "required", "number", "positive"),
		schema.Field("length", "number", "positive"),
		schema.Field("width", "number", "positive"),
		schema.Field("height", "number", "positive"),
	},
	models.FacetMedia: {
		schema.Field("images", "required", "min_items=1"),
		schema.Field("images.$.url", "required", "url"),
		schema.Field("images.$.altEn", "latin"),
		schema.Field("images.$.altAr", "arabic"),
	},
	models.FacetStock: {
		schema.Field("quantity", "required", "integer", "non_negative"),
		schema.Field("sku", "max_length=64"),
	},
}

// BuildSchema derives the validation schema for an item with the given
// attributes. Each facet validates either its single record or every
// variant row, depending on whether any attribute controls it.
func BuildSchema(attrs models.Attributes, opts schema.Options) (*schema.Schema, error) {
	entries := make([]schema.Entry, 0, len(productFields)+16)
	entries = append(entries, productFields...)

	for _, facet := range models.Facets {
		prefix := FacetPrefix(facet, len(attrs.Controlling(facet)) > 0)
		for _, field := range facetFields[facet] {
			field.Path = prefix + field.Path
			entries = append(entries, field)
		}
	}

	return schema.NewWithOptions(opts, entries...)
}

// FacetPrefix is the schema path prefix of a facet's record fields.
func FacetPrefix(facet models.Facet, controlled bool) string {
	if controlled {
		return string(facet) + "." + VariantsField + ".$."
	}
	return string(facet) + "." + SingleField + "."
}
