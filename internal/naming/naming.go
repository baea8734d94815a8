// Package naming converts catalog identifiers into identifiers for generated code.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// acronyms are kept fully upper-cased by Pascal and Camel.
var acronyms = map[string]bool{
	"api":  true,
	"db":   true,
	"html": true,
	"http": true,
	"id":   true,
	"ip":   true,
	"json": true,
	"sql":  true,
	"uri":  true,
	"url":  true,
	"uuid": true,
	"xml":  true,
}

// Words splits an identifier at separators, lower-to-upper transitions and
// acronym boundaries: "getHTTPResponse" -> [get HTTP Response].
// Digits stay attached to the word they follow.
func Words(s string) []string {
	var words []string
	runes := []rune(s)
	start := -1
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}
	return words
}

// Snake returns the lower_snake_case form of s.
func Snake(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// UpperSnake returns the UPPER_SNAKE_CASE form of s.
func UpperSnake(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, "_")
}

// Pascal returns the PascalCase form of s with common acronyms upper-cased.
func Pascal(s string) string {
	var b strings.Builder
	caser := cases.Title(language.English)
	for _, w := range Words(s) {
		lower := strings.ToLower(w)
		if acronyms[lower] {
			b.WriteString(strings.ToUpper(w))
			continue
		}
		b.WriteString(caser.String(lower))
	}
	return b.String()
}

// Camel returns the camelCase form of s.
func Camel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0]) + Pascal(strings.Join(words[1:], "_"))
}
