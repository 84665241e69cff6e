package openai

import "strings"

// scrubQuery strips punctuation noise from a raw user query before it is
// handed to the model. Letters, digits and whitespace pass through.
func scrubQuery(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:\"'()[]{}", r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// isIdentRune reports whether the rune may appear in a bare JSON key.
func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
