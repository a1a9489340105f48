package models

import (
	"encoding/json"
	"fmt"
)

// VariantRecord holds facet fields for one combination. Its AttributeValues is a
// view of some historical combination and may reference attributes that no
// longer exist.
type VariantRecord[T any] struct {
	Key             string
	AttributeValues map[string]string
	Fields          T
}

func (r VariantRecord[T]) GetKey() string {
	return r.Key
}

func (r VariantRecord[T]) GetAttributeValues() map[string]string {
	return r.AttributeValues
}

type recordHeader struct {
	Key             string            `json:"key"`
	AttributeValues map[string]string `json:"attributeValues"`
}

// MarshalJSON flattens the facet fields next to key and attributeValues.
func (r VariantRecord[T]) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(r.Fields)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("facet fields must encode as an object: %w", err)
	}

	attributeValues := r.AttributeValues
	if attributeValues == nil {
		attributeValues = map[string]string{}
	}
	doc["key"] = r.Key
	doc["attributeValues"] = attributeValues

	return json.Marshal(doc)
}

func (r *VariantRecord[T]) UnmarshalJSON(b []byte) error {
	var header recordHeader
	if err := json.Unmarshal(b, &header); err != nil {
		return err
	}

	var fields T
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	r.Key = header.Key
	r.AttributeValues = header.AttributeValues
	r.Fields = fields
	return nil
}

// PricingFields are the per-variant pricing inputs.
type PricingFields struct {
	Cost      *float64 `json:"cost"`
	Price     *float64 `json:"price"`
	SalePrice *float64 `json:"salePrice"`
}

// DimensionFields are the per-variant weight and package dimensions.
type DimensionFields struct {
	Weight *float64 `json:"weight"`
	Length *float64 `json:"length"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

type MediaAsset struct {
	URL       string `json:"url"`
	AltEN     string `json:"altEn"`
	AltAR     string `json:"altAr"`
	IsPrimary bool   `json:"isPrimary"`
}

// MediaFields are the per-variant media assets.
type MediaFields struct {
	Images []MediaAsset `json:"images"`
}

// StockFields are the per-variant inventory inputs.
type StockFields struct {
	Quantity *int   `json:"quantity"`
	SKU      string `json:"sku"`
}
