package schema

import (
	"sync"
	"testing"

	"github.com/Ramsey-B/bramble/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm(t *testing.T) {
	t.Run("should stay silent on empty required fields before submit", func(t *testing.T) {
		form := NewForm(productSchema(t), map[string]any{})

		fe, err := form.SetField("name_en", "")
		require.NoError(t, err)
		assert.Nil(t, fe)
		assert.Nil(t, form.ValidateField("name_ar", ""))
		assert.True(t, form.Valid())
	})

	t.Run("should still run format checks before submit", func(t *testing.T) {
		form := NewForm(productSchema(t), map[string]any{})

		fe, err := form.SetField("name_en", "قميص")
		require.NoError(t, err)
		require.NotNil(t, fe)
		assert.Equal(t, "Must contain English characters only", fe.Message)
		assert.Equal(t, "name_en", form.FirstError())

		fe, err = form.SetField("name_en", "Shirt")
		require.NoError(t, err)
		assert.Nil(t, fe)
		assert.Empty(t, form.FirstError())
	})

	t.Run("should check required on untouched fields after submit", func(t *testing.T) {
		form := NewForm(productSchema(t), map[string]any{})

		result := form.Submit()
		assert.False(t, result.Valid)
		assert.Equal(t, "name_en", result.FirstError)
		assert.True(t, form.Submitted())

		fe := form.ValidateField("name_ar", "")
		require.NotNil(t, fe)
		assert.True(t, fe.IsSentinel())

		fe, err := form.SetField("name_en", "")
		require.NoError(t, err)
		require.NotNil(t, fe)
		assert.True(t, fe.IsSentinel())
	})

	t.Run("should move the first error as fields are fixed", func(t *testing.T) {
		form := NewForm(productSchema(t), map[string]any{})
		form.Submit()

		_, err := form.SetField("name_en", "Shirt")
		require.NoError(t, err)
		assert.Equal(t, "name_ar", form.FirstError())

		_, err = form.SetField("name_ar", "قميص")
		require.NoError(t, err)
		assert.Empty(t, form.FirstError())
		assert.True(t, form.Valid())
	})

	t.Run("should not mutate returned snapshots", func(t *testing.T) {
		form := NewForm(productSchema(t), map[string]any{"name_en": "Shirt"})

		data := form.Data()
		errs := form.Errors()

		_, err := form.SetField("name_en", "قميص")
		require.NoError(t, err)

		assert.Equal(t, "Shirt", data["name_en"])
		assert.Empty(t, errs)
		assert.Equal(t, "قميص", form.Data()["name_en"])
	})

	t.Run("should not alias the caller's document", func(t *testing.T) {
		input := map[string]any{"name_en": "Shirt"}
		form := NewForm(productSchema(t), input)

		_, err := form.SetField("name_en", "Coat")
		require.NoError(t, err)
		assert.Equal(t, "Shirt", input["name_en"])
	})

	t.Run("should create nested containers when setting deep paths", func(t *testing.T) {
		form := NewForm(productSchema(t), productData())

		fe, err := form.SetField("pricing.variants.1.price", "-3")
		require.NoError(t, err)
		require.NotNil(t, fe)
		assert.Equal(t, "Must be greater than zero", fe.Message)

		_, err = form.SetField("media.images", []any{})
		require.NoError(t, err)
		_, ok := form.Data()["media"].(map[string]any)
		assert.True(t, ok)
	})

	t.Run("should keep typed containers intact when writing into them", func(t *testing.T) {
		type dimensions struct {
			Weight float64 `json:"weight"`
			Unit   string
		}
		s := MustNew(
			Field("rows.$.cost", "required", "number"),
			Field("meta.color", "required"),
			Field("meta.size", "required"),
			Field("dimensions.weight", "required", "positive"),
		)
		form := NewForm(s, map[string]any{
			"rows": []map[string]any{
				{"name": "first"},
				{"name": "second", "cost": 2},
			},
			"meta":       map[string]string{"color": "red", "size": "m"},
			"dimensions": &dimensions{Weight: 1, Unit: "kg"},
		})

		_, err := form.SetField("rows.1.cost", 9)
		require.NoError(t, err)
		_, err = form.SetField("meta.color", "blue")
		require.NoError(t, err)
		_, err = form.SetField("dimensions.weight", 3)
		require.NoError(t, err)

		data := form.Data()
		assert.Equal(t, []any{
			map[string]any{"name": "first"},
			map[string]any{"name": "second", "cost": 9},
		}, data["rows"])
		assert.Equal(t, map[string]any{"color": "blue", "size": "m"}, data["meta"])
		assert.Equal(t, map[string]any{"weight": 3, "Unit": "kg"}, data["dimensions"])

		result := form.Submit()
		assert.False(t, result.Valid)
		assert.Equal(t, Errors{"rows.0.cost": {}}, result.Errors)
	})

	t.Run("should not alias typed values written through SetField", func(t *testing.T) {
		s := MustNew(Field("rows.$.cost", "number"))
		form := NewForm(s, nil)

		rows := []map[string]any{{"cost": 1}}
		_, err := form.SetField("rows", rows)
		require.NoError(t, err)
		rows[0]["cost"] = "x"

		_, err = form.SetField("rows.1.cost", 2)
		require.NoError(t, err)
		assert.Equal(t, 1, paths.Lookup(form.Data(), paths.Parse("rows.0.cost")).Value())
		assert.Equal(t, 2, paths.Lookup(form.Data(), paths.Parse("rows")).Len())
	})

	t.Run("should reject wildcard and empty paths", func(t *testing.T) {
		form := NewForm(productSchema(t), nil)

		_, err := form.SetField("pricing.variants.$.price", 1)
		assert.Error(t, err)

		_, err = form.SetField("", 1)
		assert.Error(t, err)
	})

	t.Run("should drop errors for elements that no longer exist", func(t *testing.T) {
		form := NewForm(productSchema(t), productData())
		form.Submit()
		require.True(t, form.Errors().Has("pricing.variants.2.price"))

		_, err := form.SetField("pricing.variants", []any{
			map[string]any{"key": "a_b", "price": 10.0},
		})
		require.NoError(t, err)

		assert.False(t, form.Errors().Has("pricing.variants.1.price"))
		assert.False(t, form.Errors().Has("pricing.variants.2.price"))
	})

	t.Run("should re-validate on schema swap", func(t *testing.T) {
		form := NewForm(productSchema(t), map[string]any{"name_en": "Shirt", "name_ar": "قميص"})
		form.Submit()
		require.True(t, form.Valid())

		form.SetSchema(MustNew(
			Field("name_en", "required", "latin"),
			Field("category_id", "required"),
		))
		assert.Equal(t, Errors{"category_id": {}}, form.Errors())
		assert.Equal(t, "category_id", form.FirstError())
	})

	t.Run("should keep required silent on schema swap before submit", func(t *testing.T) {
		form := NewForm(productSchema(t), map[string]any{})
		form.SetSchema(MustNew(Field("category_id", "required")))
		assert.True(t, form.Valid())
	})

	t.Run("should be safe for concurrent use", func(t *testing.T) {
		form := NewForm(productSchema(t), productData())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = form.SetField("name_en", "Shirt")
				_ = form.Errors()
				_ = form.Data()
			}()
		}
		wg.Wait()

		assert.Equal(t, "Shirt", form.Data()["name_en"])
	})
}
