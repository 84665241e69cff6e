package search

import (
	"github.com/spontanique/eventscout/core"
)

// SearchMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate stages during a search;
// results passed to hooks are for display and debugging only.
type SearchMonitor interface {
	Start(query string)
	AfterTokenize(tokens []string)
	AfterExpansion(terms []string)
	AfterPreferenceParsing(timeWindow *TimeWindow, priceWindow *PriceWindow)
	AfterHardFilter(remaining int)
	EventScored(event *core.Event, relevance core.Relevance)
	BelowThreshold(event *core.Event, relevance core.Relevance)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                       {}
func (n *noopMonitor) AfterTokenize(_ []string)                             {}
func (n *noopMonitor) AfterExpansion(_ []string)                            {}
func (n *noopMonitor) AfterPreferenceParsing(_ *TimeWindow, _ *PriceWindow) {}
func (n *noopMonitor) AfterHardFilter(_ int)                                {}
func (n *noopMonitor) EventScored(_ *core.Event, _ core.Relevance)          {}
func (n *noopMonitor) BelowThreshold(_ *core.Event, _ core.Relevance)       {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                        {}
