package search

import "strings"

// Tokenize splits a raw query into normalized keyword tokens.
// Tokens are lowercased; anything of length 2 or less is dropped, which
// suppresses noise from short words ("in", "at", "is") without a stop-word
// lookup.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) > 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
