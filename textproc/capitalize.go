package textproc

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// CapitalizeEdges upper-cases the first and last character of every
// alphanumeric word in s. Words are split on single spaces, so consecutive
// spaces produce empty words, which are kept as-is.
func CapitalizeEdges(s string) string {
	words := strings.Split(s, " ")
	words = lo.Map(words, func(w string, _ int) string {
		return capitalizeWord(w)
	})
	return strings.Join(words, " ")
}

// capitalizeWord upper-cases the edges of w if it is alphanumeric.
// A one-character word is upper-cased once.
func capitalizeWord(w string) string {
	if !isAlnum(w) {
		return w
	}
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	last := len(runes) - 1
	runes[last] = unicode.ToUpper(runes[last])
	return string(runes)
}

// isAlnum reports whether w is non-empty and made only of letters and digits.
func isAlnum(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
