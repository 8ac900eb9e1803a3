package persona

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// Tokenize lowercases text, turns punctuation into separators and drops
// stop words and tokens of two characters or fewer. Tokens keep their
// surface form.
func Tokenize(text string) []string {
	text = nonAlnumRe.ReplaceAllString(strings.ToLower(text), " ")
	var out []string
	for _, tok := range strings.Fields(text) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Stem reduces a lowercase token to its English stem.
func Stem(token string) string {
	return english.Stem(token, false)
}

// Stems tokenizes text and stems every token, preserving order and
// duplicates.
func Stems(text string) []string {
	toks := Tokenize(text)
	for i, t := range toks {
		toks[i] = Stem(t)
	}
	return toks
}
