package search

import (
	"strings"
	"time"
)

// TimeWindow bounds a search to [Start, End]. A zero bound is open.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, checking only the
// bounds that are present.
func (w TimeWindow) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// PriceWindow bounds event prices to [Min, Max].
// An unbounded side uses -Inf/+Inf, so the free tier is the closed
// window [0, 0].
type PriceWindow struct {
	Min float64
	Max float64
}

// Contains reports whether price falls inside the window.
func (w PriceWindow) Contains(price float64) bool {
	return price >= w.Min && price <= w.Max
}

// Price tiers, calibrated against the Copenhagen catalog (prices in DKK).
const (
	cheapCeiling   = 200
	expensiveFloor = 300
	expensiveCap   = 10000
)

// ParseTimeWindow infers a time window from free text. Phrase checks run in
// order and the first match wins; phrases are never combined. Returns
// ok=false when no recognized phrase is present.
func ParseTimeWindow(query string, now time.Time) (TimeWindow, bool) {
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "tonight") || strings.Contains(lower, "today"):
		return TimeWindow{Start: now, End: endOfDay(now)}, true

	case strings.Contains(lower, "tomorrow"):
		tomorrow := startOfDay(now.AddDate(0, 0, 1))
		return TimeWindow{Start: tomorrow, End: endOfDay(tomorrow)}, true

	case strings.Contains(lower, "weekend") || strings.Contains(lower, "saturday") || strings.Contains(lower, "sunday"):
		// Upcoming Saturday 00:00 through Sunday end of day. On a Sunday the
		// window moves to next weekend, matching how "this weekend" reads once
		// the weekend is nearly over.
		day := int(now.Weekday())
		daysUntilSaturday := 6 - day
		if day == 0 {
			daysUntilSaturday = 6
		}
		saturday := startOfDay(now.AddDate(0, 0, daysUntilSaturday))
		return TimeWindow{Start: saturday, End: endOfDay(saturday.AddDate(0, 0, 1))}, true

	case strings.Contains(lower, "week"):
		return TimeWindow{Start: now, End: now.AddDate(0, 0, 7)}, true
	}

	return TimeWindow{}, false
}

// ParsePriceWindow infers a price range from free text. First match wins.
// Returns ok=false when no recognized phrase is present.
func ParsePriceWindow(query string) (PriceWindow, bool) {
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "free"):
		return PriceWindow{Min: 0, Max: 0}, true

	case strings.Contains(lower, "cheap") || strings.Contains(lower, "affordable") || strings.Contains(lower, "budget"):
		return PriceWindow{Min: 0, Max: cheapCeiling}, true

	case strings.Contains(lower, "expensive") || strings.Contains(lower, "premium") || strings.Contains(lower, "luxury"):
		return PriceWindow{Min: expensiveFloor, Max: expensiveCap}, true
	}

	return PriceWindow{}, false
}

// TimeWindowForPreference converts an intent-extraction time_preference value
// ("tonight", "tomorrow", "weekend", "week") into a concrete window.
// "anytime" and unrecognized values yield ok=false.
func TimeWindowForPreference(preference string, now time.Time) (TimeWindow, bool) {
	preference = strings.TrimSpace(strings.ToLower(preference))
	if preference == "" || preference == "anytime" {
		return TimeWindow{}, false
	}
	return ParseTimeWindow(preference, now)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
