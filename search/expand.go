package search

// Expand widens a token set using the synonym map. The result always contains
// every input token, deduplicated.
//
// Expansion is one hop deep in each direction, a firewall against chain
// reactions:
//
//	forward:  a token equal to a primary key pulls in that key's whole synonym
//	          list; the user explicitly asked for the broad concept.
//	reverse:  a token found inside a synonym list adds the owning key itself,
//	          and stops there. The key's own list is never re-expanded.
//
// Without the firewall a generic term sitting in two unrelated lists acts as a
// portal: 'food' -> 'drinks' -> 'nightlife' -> 'disco' would make a food query
// match "Silent Disco in the Park". Parent keys reached by reverse lookup are
// collected separately and unioned in at the end, precisely so they cannot
// trigger a second round of forward expansion.
func (r *Registry) Expand(tokens []string) map[string]bool {
	expanded := make(map[string]bool, len(tokens))
	parentKeysOnly := make(map[string]bool)

	for _, token := range tokens {
		expanded[token] = true

		for key, synonyms := range r.Synonyms {
			if token == key {
				for _, syn := range synonyms {
					expanded[syn] = true
				}
				continue
			}
			for _, syn := range synonyms {
				if token == syn {
					parentKeysOnly[key] = true
					break
				}
			}
		}
	}

	for key := range parentKeysOnly {
		expanded[key] = true
	}

	return expanded
}
