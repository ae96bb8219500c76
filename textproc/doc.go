// Package textproc provides text post-processing decorators.
//
// StripPunctuation replaces each ASCII punctuation character with a space,
// character for character. CapitalizeEdges upper-cases the first and last
// character of every alphanumeric word.
//
// The two do not commute: CapitalizeEdges skips words that still contain
// punctuation, so stripping first capitalizes more words. Steps are applied
// to the wrapped function's result in exactly the order they are listed:
//
//	p, _ := textproc.Pipeline(textproc.StripPunctuationStep, textproc.CapitalizeEdgesStep)
//	processText := p.Wrap(base) // strip, then capitalize
package textproc
