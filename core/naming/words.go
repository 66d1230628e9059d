package naming

import (
	"strings"
	"unicode"
)

// Words splits s into words the way lodash's words() does for ASCII input:
// on any non-alphanumeric character, at lower-to-upper transitions, before
// the last capital of an acronym that starts a new word ("XMLHttp" -> "XML",
// "Http"), and between letters and digits.
func Words(s string) []string {
	var words []string

	chunks := strings.FieldsFunc(s, func(r rune) bool {
		return !isAlnum(r)
	})

	for _, chunk := range chunks {
		runes := []rune(chunk)
		start := 0
		for i := 1; i < len(runes); i++ {
			if isBoundary(runes, i) {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
		words = append(words, string(runes[start:]))
	}

	return words
}

// isBoundary reports whether a new word starts at runes[i].
func isBoundary(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]

	if unicode.IsDigit(prev) != unicode.IsDigit(cur) {
		return true
	}
	if unicode.IsLower(prev) && unicode.IsUpper(cur) {
		return true
	}
	if unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}

func isAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// CamelCase converts s to camelCase ("trainer-profiles" -> "trainerProfiles").
func CamelCase(s string) string {
	var sb strings.Builder
	for i, w := range Words(s) {
		w = strings.ToLower(w)
		if i > 0 {
			w = UpperFirst(w)
		}
		sb.WriteString(w)
	}
	return sb.String()
}

// StartCase converts s to space separated words with upper-cased first
// letters ("firstName" -> "First Name"). The rest of each word is kept.
func StartCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = UpperFirst(w)
	}
	return strings.Join(words, " ")
}

// UpperFirst upper-cases the first character of s.
func UpperFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
