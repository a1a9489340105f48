package combinations

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attribute(id, name string, values ...string) models.Attribute {
	attr := models.Attribute{ID: id, Name: name}
	for i, v := range values {
		attr.Values = append(attr.Values, models.AttributeValue{ID: v, Value: v, Order: i})
	}
	return attr
}

func TestGenerate(t *testing.T) {
	t.Run("should return the cartesian product in attribute-major order", func(t *testing.T) {
		a := attribute("A", "Color", "a1", "a2")
		b := attribute("B", "Size", "b1", "b2", "b3")

		combos := Generate([]models.Attribute{a, b})
		require.Len(t, combos, 6, spew.Sdump(combos))

		expected := [][2]string{
			{"a1", "b1"}, {"a1", "b2"}, {"a1", "b3"},
			{"a2", "b1"}, {"a2", "b2"}, {"a2", "b3"},
		}
		keys := map[string]struct{}{}
		for i, combo := range combos {
			assert.Equal(t, map[string]string{"A": expected[i][0], "B": expected[i][1]}, combo.AttributeValues)
			assert.Equal(t, expected[i][0]+models.KeySeparator+expected[i][1], combo.Key)
			keys[combo.Key] = struct{}{}
		}
		assert.Len(t, keys, 6)
	})

	t.Run("should return an empty list for no attributes", func(t *testing.T) {
		combos := Generate([]models.Attribute{})
		assert.NotNil(t, combos)
		assert.Empty(t, combos)
	})

	t.Run("should build labels from attribute names and values", func(t *testing.T) {
		color := models.Attribute{ID: "c", Name: "Color", Values: []models.AttributeValue{{ID: "r", Value: "Red"}}}
		size := models.Attribute{ID: "s", Name: "Size", Values: []models.AttributeValue{{ID: "m", Value: "M"}}}

		combos := Generate([]models.Attribute{color, size})
		require.Len(t, combos, 1)
		assert.Equal(t, "Color: Red / Size: M", combos[0].Label)
		assert.Equal(t, "r_m", combos[0].Key)
	})

	t.Run("should be deterministic for identical input", func(t *testing.T) {
		attrs := []models.Attribute{
			attribute("A", "A", "1", "2", "3"),
			attribute("B", "B", "x", "y"),
			attribute("C", "C", "p", "q"),
		}
		assert.Equal(t, Generate(attrs), Generate(attrs))
	})

	t.Run("should preserve input attribute order in keys", func(t *testing.T) {
		a := attribute("A", "A", "a1")
		b := attribute("B", "B", "b1")

		assert.Equal(t, "a1_b1", Generate([]models.Attribute{a, b})[0].Key)
		assert.Equal(t, "b1_a1", Generate([]models.Attribute{b, a})[0].Key)
	})
}

// wide builds n attributes with k values each.
func wide(n, k int) []models.Attribute {
	attrs := make([]models.Attribute, n)
	for i := range attrs {
		values := make([]string, k)
		for j := range values {
			values[j] = fmt.Sprintf("v%d%d", i, j)
		}
		attrs[i] = attribute(fmt.Sprintf("a%d", i), fmt.Sprintf("A%d", i), values...)
	}
	return attrs
}

func TestCount(t *testing.T) {
	t.Run("should multiply value counts", func(t *testing.T) {
		assert.Equal(t, 0, Count(nil))
		assert.Equal(t, 6, Count([]models.Attribute{attribute("A", "A", "1", "2"), attribute("B", "B", "1", "2", "3")}))
	})

	t.Run("should saturate instead of wrapping", func(t *testing.T) {
		assert.Equal(t, math.MaxInt, Count(wide(16, 16)))
		last := wide(1, 15)[0]
		last.ID = "z"
		assert.Equal(t, math.MaxInt, Count(append(wide(15, 16), last)))
	})

	t.Run("should return zero when any attribute has no values", func(t *testing.T) {
		attrs := append(wide(16, 16), models.Attribute{ID: "empty", Name: "Empty"})
		assert.Equal(t, 0, Count(attrs))
	})
}

func TestGenerateBounded(t *testing.T) {
	attrs := []models.Attribute{attribute("A", "A", "1", "2"), attribute("B", "B", "1", "2", "3")}

	t.Run("should reject products above the limit", func(t *testing.T) {
		_, err := GenerateBounded(attrs, 5)
		require.Error(t, err)
		assert.True(t, errors.IsCatalogError(err))
		assert.Equal(t, http.StatusUnprocessableEntity, errors.WrapCatalogError(err).StatusCode())
	})

	t.Run("should generate when within the limit", func(t *testing.T) {
		combos, err := GenerateBounded(attrs, 6)
		require.NoError(t, err)
		assert.Len(t, combos, 6)
	})

	t.Run("should reject products that overflow int", func(t *testing.T) {
		for _, attrs := range [][]models.Attribute{wide(16, 16), wide(20, 15)} {
			var combos []models.Combination
			var err error
			require.NotPanics(t, func() {
				combos, err = GenerateBounded(attrs, 500)
			})
			require.Error(t, err)
			assert.Nil(t, combos)
			assert.Equal(t, http.StatusUnprocessableEntity, errors.WrapCatalogError(err).StatusCode())
			assert.Contains(t, err.Error(), "limit of 500")
		}
	})

	t.Run("should ignore a non-positive limit", func(t *testing.T) {
		combos, err := GenerateBounded(attrs, 0)
		require.NoError(t, err)
		assert.Len(t, combos, 6)
	})
}
