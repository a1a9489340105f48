package rules

import (
	"testing"

	"github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("should parse markers", func(t *testing.T) {
		rule, err := Parse("required")
		require.NoError(t, err)
		assert.True(t, rule.IsMarker())

		rule, err = Parse(" optional ")
		require.NoError(t, err)
		assert.Equal(t, Optional, rule.Name)
	})

	t.Run("should parse parameters", func(t *testing.T) {
		rule, err := Parse("max_length=5")
		require.NoError(t, err)
		assert.Equal(t, MaxLength, rule.Name)
		assert.Equal(t, "5", rule.Param)
		assert.Equal(t, "max_length=5", rule.String())
	})

	t.Run("should reject unknown rules", func(t *testing.T) {
		_, err := Parse("shiny")
		require.Error(t, err)
		assert.True(t, errors.IsCatalogError(err))
	})

	t.Run("should reject bad parameters", func(t *testing.T) {
		_, err := Parse("min_length=abc")
		assert.Error(t, err)

		_, err = Parse("latin=1")
		assert.Error(t, err)

		_, err = Parse("required=true")
		assert.Error(t, err)
	})
}

func TestScripts(t *testing.T) {
	t.Run("should accept latin text with digits and punctuation", func(t *testing.T) {
		assert.True(t, IsLatin("Cotton T-Shirt, size 42!"))
		assert.True(t, IsLatin("Café crème"))
		assert.False(t, IsLatin("قميص"))
		assert.False(t, IsLatin("Shirt قميص"))
	})

	t.Run("should accept arabic text with digits and punctuation", func(t *testing.T) {
		assert.True(t, IsArabic("قميص قطني ٤٢"))
		assert.True(t, IsArabic("قميص - 42"))
		assert.True(t, IsArabic("مَرحَبًا"))
		assert.False(t, IsArabic("Shirt"))
		assert.False(t, IsArabic("قميص shirt"))
	})
}

func TestCheck(t *testing.T) {
	cases := []struct {
		rule  string
		value any
		ok    bool
	}{
		{"latin", "Shirt", true},
		{"latin", "قميص", false},
		{"arabic", "قميص", true},
		{"arabic", "Shirt", false},
		{"number", "12.5", true},
		{"number", 12, true},
		{"number", "abc", false},
		{"number", true, false},
		{"integer", 3.0, true},
		{"integer", "3.2", false},
		{"positive", 0, false},
		{"positive", "0.01", true},
		{"non_negative", -1, false},
		{"non_negative", 0, true},
		{"min=10", 9.5, false},
		{"max=10", 10, true},
		{"min_length=3", "ab", false},
		{"min_length=3", "قطن", true},
		{"max_length=3", "abcd", false},
		{"min_items=1", []any{}, false},
		{"min_items=1", []any{"a"}, true},
		{"email", "someone@example.com", true},
		{"email", "nope", false},
		{"url", "https://cdn.example.com/a.png", true},
		{"url", "not a url", false},
	}

	for _, tc := range cases {
		t.Run(tc.rule, func(t *testing.T) {
			rule := MustParse(tc.rule)
			msg, ok := rule.Check(tc.value)
			assert.Equal(t, tc.ok, ok, "value %v", tc.value)
			if !ok {
				assert.NotEmpty(t, msg)
			}
		})
	}

	t.Run("should format parameter into the message", func(t *testing.T) {
		msg, ok := MustParse("max_length=3").Check("abcd")
		assert.False(t, ok)
		assert.Equal(t, "Must be at most 3 characters", msg)
	})

	t.Run("should leave objects to other checks", func(t *testing.T) {
		_, ok := MustParse("latin").Check(map[string]any{"a": "قميص"})
		assert.True(t, ok)
	})
}

func TestRegister(t *testing.T) {
	Register("sku", Definition{
		Message: "Must be an uppercase SKU",
		Check: func(value any, _ string) bool {
			s, _ := value.(string)
			return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
		},
	})

	rule, err := Parse("sku")
	require.NoError(t, err)

	_, ok := rule.Check("ABC-1")
	assert.True(t, ok)

	msg, ok := rule.Check("abc")
	assert.False(t, ok)
	assert.Equal(t, "Must be an uppercase SKU", msg)
}
