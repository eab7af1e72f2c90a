// Package suggest scores and ranks trie hits for a typed prefix.
//
// Matching is stateless: every call pulls candidates from the corpus trie,
// scores them, and returns a fresh slice. Nothing is cached here. A single
// Match over a 10k-entry corpus has to fit inside one animation frame
// (16ms), it runs synchronously on every qualifying keystroke.
package suggest

import (
	"sort"
	"strings"

	"github.com/hawklogic/ccserve/pkg/corpus"
)

// DefaultLimit is the suggestion cap when callers pass limit <= 0.
const DefaultLimit = 10

// Score tiers. Exact beats prefix beats containment, always.
const (
	scoreExact    = 100
	scorePrefix   = 90
	scoreContains = 70
)

// Suggestion is one ranked completion. Transient, produced per call.
type Suggestion struct {
	Text        string
	Type        corpus.EntryType
	Description string
	Score       int
}

// Match returns up to limit suggestions for prefix, best first. An empty
// prefix yields nothing; that is a no-op, not an error.
func Match(prefix string, c *corpus.Corpus, limit int) []Suggestion {
	if prefix == "" || c == nil || c.Trie == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	// Over-fetch so re-ranking happens before truncation, not after.
	candidates := c.Trie.FindByPrefix(prefix, limit*2)
	if len(candidates) == 0 {
		return nil
	}

	lower := strings.ToLower(prefix)
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, e := range candidates {
		suggestions = append(suggestions, Suggestion{
			Text:        e.Text,
			Type:        e.Type,
			Description: e.Description,
			Score:       score(e.Text, lower),
		})
	}

	// Stable: equal scores keep trie traversal order.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// score rates one candidate against the lower-cased prefix. The shorter-
// completion bonus (10 minus length, floored at 0) is an empirical
// tie-breaker among equal-tier matches.
func score(text, lowerPrefix string) int {
	lower := strings.ToLower(text)

	base := 0
	switch {
	case lower == lowerPrefix:
		base = scoreExact
	case strings.HasPrefix(lower, lowerPrefix):
		base = scorePrefix
	case strings.Contains(lower, lowerPrefix):
		base = scoreContains
	}

	bonus := 10 - len(text)
	if bonus < 0 {
		bonus = 0
	}
	return base + bonus
}
