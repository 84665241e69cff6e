package search

import (
	"math"
	"strings"
	"time"

	"github.com/spontanique/eventscout/core"
)

// Scoring weights, hand-tuned against the fixture catalog. The absolute values
// matter less than the ordering: each tier is sized so no realistic number of
// hits from a lower tier can outrank a single hit from a higher one.
const (
	phraseTitleBonus = 150 // full query string appears verbatim in the title

	intentBoost = 300 // activity keyword implies the event's own category

	directTitleExact   = 500 // original token, exact word in title
	directTitlePartial = 150 // original token, morphological variant in title

	synonymTitleExact   = 200 // expanded-only token, exact word in title
	synonymTitlePartial = 80  // expanded-only token, morphological variant

	browseCategoryBonus  = 200 // primary-category browse, clears the threshold alone
	recallCategoryBonus  = 45  // narrow concepts that need help surviving the threshold
	searchCategoryBonus  = 30
	synonymCategoryBonus = 15

	descriptionBonus        = 20
	synonymDescriptionBonus = 10

	venueMentionWeight = 400 // event's own venue named in the query
	cityWeight         = 200

	nativeSourceBonus = 2
	maxTicketBonus    = 5
	soonBonus         = 10 // event within the next 7 days
	upcomingBonus     = 5  // event 8-14 days out

	// Minimum length for partial title matching, on both the token and the
	// title word. Keeps "in" from matching "dining" and "is" from "disco".
	partialMatchMinLen = 4
)

// recallConcepts are specific search terms that deserve a category boost above
// the plain searching-mode bonus without qualifying for full browsing mode.
var recallConcepts = map[string]bool{"game": true, "games": true, "quiz": true}

// VenueScore returns the tiered location score for one event against the raw
// query. Tiers are mutually exclusive and the first match wins:
//
//	1. query names a registered venue alias     -> that entity's weight
//	2. query contains the event's own venue     -> same top-tier weight
//	3. query contains the event's city          -> mid-tier weight
//	4. otherwise                                -> 0
//
// An explicit venue mention is a hard requirement, not a soft preference, so
// tier 1/2 must dominate all topical text scoring. A city mention is only a
// locality preference.
func (r *Registry) VenueScore(event *core.Event, query string) float64 {
	lowerQuery := strings.ToLower(query)

	for _, entity := range r.Venues {
		for _, alias := range entity.Aliases {
			if strings.Contains(lowerQuery, alias) {
				return entity.Weight
			}
		}
	}

	// Venues outside the curated registry still count when named explicitly.
	if venue := strings.ToLower(event.Venue); venue != "" && strings.Contains(lowerQuery, venue) {
		return venueMentionWeight
	}

	if city := strings.ToLower(event.City); city != "" && strings.Contains(lowerQuery, city) {
		return cityWeight
	}

	return 0
}

// Score computes the relevance record for one event. originalTokens is the
// tokenized query, expanded the firewall-expanded term set, query the raw
// query text. now anchors the date-proximity bonus.
//
// Stop words are skipped in every token-driven rule: the preference parsers
// and hard filters already consume them, and rewarding an event for merely
// mentioning "cheap" would double-count the constraint.
func (r *Registry) Score(event *core.Event, originalTokens []string, expanded map[string]bool, query string, now time.Time) core.Relevance {
	var rel core.Relevance

	lowerTitle := strings.ToLower(event.Title)
	lowerDescription := strings.ToLower(event.Description)
	lowerCategory := strings.ToLower(event.Category)
	lowerQuery := strings.ToLower(query)

	titleWords := strings.Fields(lowerTitle)

	original := make(map[string]bool, len(originalTokens))
	for _, token := range originalTokens {
		original[token] = true
	}

	// Full-phrase title match.
	if lowerQuery != "" && strings.Contains(lowerTitle, lowerQuery) {
		rel.Score += phraseTitleBonus
		rel.DirectMatches++
		rel.HasTitleMatch = true
	}

	// Intent boost: a specific activity term naming the event's own category
	// outweighs any incidental text overlap.
	for _, token := range originalTokens {
		if intentCategory, ok := r.ActivityCategories[token]; ok && intentCategory == lowerCategory {
			rel.Score += intentBoost
			rel.DirectMatches++
		}
	}

	// Direct title token matches.
	for _, token := range originalTokens {
		if r.StopWords[token] {
			continue
		}
		switch {
		case anyWordMatchesExact(titleWords, token):
			rel.Score += directTitleExact
			rel.DirectMatches++
			rel.HasTitleMatch = true
		case anyWordMatchesPartial(titleWords, token):
			rel.Score += directTitlePartial
			rel.DirectMatches++
			rel.HasTitleMatch = true
		}
	}

	// Synonym title matches: same structure, applied to expanded-only terms at
	// a weight low enough that no number of synonym hits outranks a direct hit.
	for token := range expanded {
		if original[token] || r.StopWords[token] {
			continue
		}
		switch {
		case anyWordMatchesExact(titleWords, token):
			rel.Score += synonymTitleExact
			rel.SynonymMatches++
			rel.HasTitleMatch = true
		case anyWordMatchesPartial(titleWords, token):
			rel.Score += synonymTitlePartial
			rel.SynonymMatches++
			rel.HasTitleMatch = true
		}
	}

	// Venue/location score. Counts as a direct match when present.
	if venueScore := r.VenueScore(event, query); venueScore > 0 {
		rel.Score += venueScore
		rel.DirectMatches++
	}

	// Category matches, with browsing-mode detection.
	for _, token := range originalTokens {
		if r.StopWords[token] {
			continue
		}
		if lowerCategory != token && !strings.Contains(lowerCategory, token) {
			continue
		}
		switch {
		case r.PrimaryCategories[token] && lowerCategory == token:
			// Browsing mode: the user wants the whole category visible, so the
			// bonus alone clears the result threshold.
			rel.Score += browseCategoryBonus
		case recallConcepts[token]:
			rel.Score += recallCategoryBonus
		default:
			rel.Score += searchCategoryBonus
		}
		rel.DirectMatches++
	}

	for token := range expanded {
		if original[token] || r.StopWords[token] {
			continue
		}
		if lowerCategory == token || strings.Contains(lowerCategory, token) {
			rel.Score += synonymCategoryBonus
			rel.SynonymMatches++
		}
	}

	// Description matches, kept small: verbose text is a false-positive magnet.
	for _, token := range originalTokens {
		if r.StopWords[token] {
			continue
		}
		if strings.Contains(lowerDescription, token) {
			rel.Score += descriptionBonus
			rel.DirectMatches++
		}
	}

	for token := range expanded {
		if original[token] || r.StopWords[token] {
			continue
		}
		if strings.Contains(lowerDescription, token) {
			rel.Score += synonymDescriptionBonus
			rel.SynonymMatches++
		}
	}

	// Tie-shaping bonuses.
	if event.Source == core.SourceTypeNative {
		rel.Score += nativeSourceBonus
	}

	if event.TicketsLeft > 0 {
		rel.Score += math.Min(float64(event.TicketsLeft)/10, maxTicketBonus)
	}

	daysUntil := int(math.Floor(event.EventDate.Sub(now).Hours() / 24))
	switch {
	case daysUntil >= 0 && daysUntil <= 7:
		rel.Score += soonBonus
	case daysUntil > 7 && daysUntil <= 14:
		rel.Score += upcomingBonus
	}

	return rel
}

// anyWordMatchesExact reports whether token matches any title word exactly.
// A hyphenated title word matches on the whole compound or on its first
// segment only: the prefix determines the compound's sense, so "sports" must
// not match "e-sports" by crossing the hyphen.
func anyWordMatchesExact(titleWords []string, token string) bool {
	for _, word := range titleWords {
		if word == token {
			return true
		}
		if i := strings.IndexByte(word, '-'); i >= 0 && word[:i] == token {
			return true
		}
	}
	return false
}

// anyWordMatchesPartial reports whether token matches any title word as a
// morphological variant: one contains the other, both at least
// partialMatchMinLen long. Hyphenated words expose only their first segment
// to containment, under the same length rule.
func anyWordMatchesPartial(titleWords []string, token string) bool {
	if len(token) < partialMatchMinLen {
		return false
	}
	for _, word := range titleWords {
		if len(word) < partialMatchMinLen {
			continue
		}
		if i := strings.IndexByte(word, '-'); i >= 0 {
			first := word[:i]
			if len(first) >= partialMatchMinLen &&
				(strings.Contains(first, token) || strings.Contains(token, first)) {
				return true
			}
			continue
		}
		if strings.Contains(word, token) || strings.Contains(token, word) {
			return true
		}
	}
	return false
}
