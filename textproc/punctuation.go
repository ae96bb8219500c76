package textproc

import "strings"

// Punctuation is the set of characters StripPunctuation replaces.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// IsPunct reports whether r is in Punctuation.
func IsPunct(r rune) bool {
	return r < 0x80 && strings.ContainsRune(Punctuation, r)
}

// StripPunctuation replaces every punctuation character in s with a single
// space. Other characters are kept, so the character count is unchanged.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if IsPunct(r) {
			return ' '
		}
		return r
	}, s)
}
