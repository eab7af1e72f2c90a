// Package corpus loads and caches per-language completion dictionaries.
//
// A Corpus is built once from an external dictionary document and is
// read-only afterwards. The Manager owns the cache; corpora live for the
// process lifetime, there is no eviction.
package corpus

import (
	"github.com/hawklogic/ccserve/pkg/trie"
)

// EntryType classifies a dictionary entry.
type EntryType string

const (
	Keyword  EntryType = "keyword"
	Function EntryType = "function"
	Type     EntryType = "type"
	Constant EntryType = "constant"
	Variable EntryType = "variable"
)

// Entry is one completable item. Immutable once loaded.
type Entry struct {
	Text        string    `json:"text" msgpack:"text"`
	Type        EntryType `json:"type" msgpack:"type"`
	Description string    `json:"description,omitempty" msgpack:"description,omitempty"`
}

// Document is the on-the-wire dictionary format, one per language.
type Document struct {
	Language string  `json:"language" msgpack:"language"`
	Entries  []Entry `json:"entries" msgpack:"entries"`
}

// Corpus is the indexed dictionary for one language.
type Corpus struct {
	Language string
	Entries  []Entry
	Trie     *trie.Node[Entry]
}

// Rough per-item costs for the advisory memory estimate.
const (
	entryBytes = 48
	nodeBytes  = 40
)

// Build indexes entries into a fresh corpus.
func Build(language string, entries []Entry) *Corpus {
	return &Corpus{
		Language: language,
		Entries:  entries,
		Trie:     trie.Build(entries, func(e Entry) string { return e.Text }),
	}
}

// MemoryUsage is a rough size estimate in bytes. Advisory only.
func (c *Corpus) MemoryUsage() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)*entryBytes + c.Trie.NodeCount()*nodeBytes
}
