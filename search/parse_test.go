package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday noon, an arbitrary fixed anchor.
var parseNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func TestParseTimeWindow_Tonight(t *testing.T) {
	for _, query := range []string{"jazz tonight", "events today", "TONIGHT"} {
		w, ok := ParseTimeWindow(query, parseNow)
		require.True(t, ok, query)
		assert.Equal(t, parseNow, w.Start)
		assert.Equal(t, time.Date(2025, 6, 2, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
	}
}

func TestParseTimeWindow_Tomorrow(t *testing.T) {
	w, ok := ParseTimeWindow("concerts tomorrow", parseNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 6, 3, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
}

func TestParseTimeWindow_Weekend(t *testing.T) {
	tests := []struct {
		name         string
		now          time.Time
		wantSaturday time.Time
	}{
		{"from monday", parseNow, time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)},
		{"from friday", time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC), time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)},
		{"on saturday stays put", time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC), time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)},
		{"on sunday rolls to next weekend", time.Date(2025, 6, 8, 9, 0, 0, 0, time.UTC), time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := ParseTimeWindow("parties this weekend", tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.wantSaturday, w.Start)
			sunday := tt.wantSaturday.AddDate(0, 0, 1)
			assert.Equal(t, time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
		})
	}
}

func TestParseTimeWindow_Week(t *testing.T) {
	w, ok := ParseTimeWindow("events this week", parseNow)
	require.True(t, ok)
	assert.Equal(t, parseNow, w.Start)
	assert.Equal(t, parseNow.AddDate(0, 0, 7), w.End)
}

func TestParseTimeWindow_FirstMatchWins(t *testing.T) {
	// "tonight" is checked before "weekend"; phrases never combine.
	w, ok := ParseTimeWindow("tonight or this weekend", parseNow)
	require.True(t, ok)
	assert.Equal(t, parseNow, w.Start)
	assert.Equal(t, time.Date(2025, 6, 2, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
}

func TestParseTimeWindow_NoPhrase(t *testing.T) {
	_, ok := ParseTimeWindow("jazz concerts", parseNow)
	assert.False(t, ok)
}

func TestParsePriceWindow(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  PriceWindow
		ok    bool
	}{
		{"free", "free yoga", PriceWindow{Min: 0, Max: 0}, true},
		{"cheap", "cheap concerts", PriceWindow{Min: 0, Max: 200}, true},
		{"affordable", "affordable dinner", PriceWindow{Min: 0, Max: 200}, true},
		{"budget", "budget friendly", PriceWindow{Min: 0, Max: 200}, true},
		{"expensive", "expensive dining", PriceWindow{Min: 300, Max: 10000}, true},
		{"premium", "premium experience", PriceWindow{Min: 300, Max: 10000}, true},
		{"luxury", "luxury tasting", PriceWindow{Min: 300, Max: 10000}, true},
		{"free wins over cheap", "free or cheap", PriceWindow{Min: 0, Max: 0}, true},
		{"no phrase", "jazz concerts", PriceWindow{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePriceWindow(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeWindowContains(t *testing.T) {
	w := TimeWindow{Start: parseNow, End: parseNow.Add(24 * time.Hour)}
	assert.True(t, w.Contains(parseNow))
	assert.True(t, w.Contains(parseNow.Add(12*time.Hour)))
	assert.False(t, w.Contains(parseNow.Add(-time.Minute)))
	assert.False(t, w.Contains(parseNow.Add(25*time.Hour)))

	// Zero bounds are open
	open := TimeWindow{Start: parseNow}
	assert.True(t, open.Contains(parseNow.AddDate(10, 0, 0)))
	assert.False(t, open.Contains(parseNow.Add(-time.Minute)))
}

func TestPriceWindowContains(t *testing.T) {
	free := PriceWindow{Min: 0, Max: 0}
	assert.True(t, free.Contains(0))
	assert.False(t, free.Contains(0.5))

	cheap := PriceWindow{Min: 0, Max: 200}
	assert.True(t, cheap.Contains(200))
	assert.False(t, cheap.Contains(200.01))
}

func TestTimeWindowForPreference(t *testing.T) {
	w, ok := TimeWindowForPreference("weekend", parseNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), w.Start)

	_, ok = TimeWindowForPreference("anytime", parseNow)
	assert.False(t, ok)

	_, ok = TimeWindowForPreference("", parseNow)
	assert.False(t, ok)

	_, ok = TimeWindowForPreference("whenever", parseNow)
	assert.False(t, ok)
}
