package rules

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(Latin, func(fl validator.FieldLevel) bool {
		return IsLatin(fl.Field().String())
	})
	_ = v.RegisterValidation(Arabic, func(fl validator.FieldLevel) bool {
		return IsArabic(fl.Field().String())
	})

	return v
}

// IsLatin reports whether every letter in s is Latin script. Digits, spaces,
// punctuation and symbols are allowed.
func IsLatin(s string) bool {
	return lettersIn(s, unicode.Latin)
}

// IsArabic reports whether every letter in s is Arabic script. Digits, spaces,
// punctuation and symbols are allowed.
func IsArabic(s string) bool {
	return lettersIn(s, unicode.Arabic)
}

func lettersIn(s string, script *unicode.RangeTable) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(script, r) {
			return false
		}
	}
	return true
}
