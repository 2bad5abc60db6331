package location

import (
	"strings"
	"unicode"
)

// DeriveCode produces the short display code for a location name: the initial
// of each of the first three words, or the first three letters when the name
// is a single word. Always uppercase, never longer than three letters.
func DeriveCode(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}

	if len(words) == 1 {
		runes := []rune(words[0])
		if len(runes) > 3 {
			runes = runes[:3]
		}
		return strings.ToUpper(string(runes))
	}

	var b strings.Builder
	for i, w := range words {
		if i == 3 {
			break
		}
		b.WriteRune([]rune(w)[0])
	}
	return strings.ToUpper(b.String())
}
