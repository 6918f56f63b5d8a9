package ingestion

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases text and splits it into word tokens.
// '+', '#' and inner '.' stay part of a word so "c++", "c#" and "node.js" survive.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := strings.Trim(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// TokenText joins tokens with single spaces and pads both ends so that
// strings.Contains(TokenText(x), " "+phrase+" ") is a whole-word match.
func TokenText(tokens []string) string {
	return " " + strings.Join(tokens, " ") + " "
}
