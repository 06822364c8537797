package openapi

import (
	"strings"
	"unicode"
)

// Labeler derives a row title from a property name.
type Labeler func(name string) string

// DefaultLabeler splits name on underscores, dashes, spaces and camelCase
// boundaries and title-cases each word: "confirm_password" and
// "confirmPassword" both become "Confirm Password".
func DefaultLabeler(name string) string {
	var words []string
	for _, chunk := range strings.FieldsFunc(name, isSeparator) {
		words = append(words, splitCamel(chunk)...)
	}
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

func splitCamel(chunk string) []string {
	runes := []rune(chunk)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}
