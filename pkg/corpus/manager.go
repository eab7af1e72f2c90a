package corpus

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hawklogic/ccserve/internal/logger"
)

var mlog = logger.New("corpus")

// Manager maps language ids to corpora, loading each dictionary exactly
// once. Overlapping Load calls for the same language share one in-flight
// fetch instead of issuing a second one.
type Manager struct {
	source Source

	mu    sync.RWMutex
	cache map[string]*Corpus
	group singleflight.Group
}

// canonical corpus returned for languages that were never loaded
var emptyCorpus = Build("", nil)

func NewManager(source Source) *Manager {
	return &Manager{
		source: source,
		cache:  make(map[string]*Corpus),
	}
}

// Load returns the corpus for language, fetching its dictionary on first
// request. After Load returns, the language is always marked loaded: fetch
// failures degrade to an intentionally-empty corpus and are logged, never
// returned. Callers observe populated or empty, never missing.
func (m *Manager) Load(ctx context.Context, language string) *Corpus {
	m.mu.RLock()
	c, ok := m.cache[language]
	m.mu.RUnlock()
	if ok {
		return c
	}

	v, _, _ := m.group.Do(language, func() (any, error) {
		// Re-check under the group: a concurrent winner may have
		// populated the cache between our RLock and Do.
		m.mu.RLock()
		c, ok := m.cache[language]
		m.mu.RUnlock()
		if ok {
			return c, nil
		}

		c = m.fetch(ctx, language)
		m.mu.Lock()
		m.cache[language] = c
		m.mu.Unlock()
		return c, nil
	})
	return v.(*Corpus)
}

func (m *Manager) fetch(ctx context.Context, language string) *Corpus {
	doc, err := m.source.Fetch(ctx, language)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			mlog.Warnf("No dictionary for language %q: %v", language, err)
		} else {
			mlog.Errorf("Loading dictionary for %q: %v", language, err)
		}
		return Build(language, nil)
	}
	mlog.Debugf("Loaded %d entries for language %q", len(doc.Entries), language)
	return Build(language, doc.Entries)
}

// Get returns the cached corpus, or the canonical empty corpus if the
// language was never loaded. Pure and side-effect-free, safe to call
// speculatively.
func (m *Manager) Get(language string) *Corpus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.cache[language]; ok {
		return c
	}
	return emptyCorpus
}

// IsLoaded reports whether a corpus for language is cached.
func (m *Manager) IsLoaded(language string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cache[language]
	return ok
}

// Languages returns the ids of all loaded corpora.
func (m *Manager) Languages() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	langs := make([]string, 0, len(m.cache))
	for l := range m.cache {
		langs = append(langs, l)
	}
	return langs
}

// MemoryUsage estimates the total bytes held by all cached corpora.
func (m *Manager) MemoryUsage() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, c := range m.cache {
		total += c.MemoryUsage()
	}
	return total
}
