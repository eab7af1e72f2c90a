package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingSource records how many fetches actually happen and can simulate
// slow or failing dictionaries.
type countingSource struct {
	fetches atomic.Int32
	delay   time.Duration
	err     error
	entries []Entry
}

func (s *countingSource) Fetch(_ context.Context, language string) (*Document, error) {
	s.fetches.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &Document{Language: language, Entries: s.entries}, nil
}

func TestLazyLoadAndCache(t *testing.T) {
	src := &countingSource{entries: []Entry{{Text: "for", Type: Keyword}}}
	m := NewManager(src)

	if m.IsLoaded("c") {
		t.Fatal("corpus reported loaded before first request")
	}

	first := m.Load(context.Background(), "c")
	if !m.IsLoaded("c") {
		t.Fatal("corpus not loaded after Load")
	}
	if len(first.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(first.Entries))
	}

	// repeated Get calls hand back the identical cached object
	if m.Get("c") != first || m.Get("c") != first {
		t.Error("Get returned a different corpus object than Load")
	}
	if m.Load(context.Background(), "c") != first {
		t.Error("second Load returned a different corpus object")
	}
	if n := src.fetches.Load(); n != 1 {
		t.Errorf("expected exactly 1 fetch, got %d", n)
	}
}

// overlapping loads for the same language must share one in-flight fetch
func TestConcurrentLoadsDeduplicated(t *testing.T) {
	src := &countingSource{
		delay:   50 * time.Millisecond,
		entries: []Entry{{Text: "while", Type: Keyword}},
	}
	m := NewManager(src)

	const callers = 16
	results := make([]*Corpus, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.Load(context.Background(), "c")
		}(i)
	}
	wg.Wait()

	if n := src.fetches.Load(); n != 1 {
		t.Errorf("%d concurrent loads issued %d fetches, want 1", callers, n)
	}
	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent callers observed different corpus objects")
		}
	}
}

func TestAbsentDictionaryDegradesToEmpty(t *testing.T) {
	src := &countingSource{err: fmt.Errorf("c.json: %w", ErrNotFound)}
	m := NewManager(src)

	c := m.Load(context.Background(), "c")
	if !m.IsLoaded("c") {
		t.Error("language must be marked loaded even when the dictionary is absent")
	}
	if len(c.Entries) != 0 {
		t.Errorf("absent dictionary produced %d entries, want 0", len(c.Entries))
	}
	// empty corpora still answer prefix queries, with nothing
	if got := c.Trie.FindByPrefix("fo", 0); len(got) != 0 {
		t.Errorf("empty corpus trie returned %v", got)
	}
}

func TestTransportErrorDegradesToEmpty(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	m := NewManager(src)

	c := m.Load(context.Background(), "python")
	if !m.IsLoaded("python") || len(c.Entries) != 0 {
		t.Error("transport failure must degrade to a loaded, empty corpus")
	}
}

func TestGetUnloadedReturnsCanonicalEmpty(t *testing.T) {
	m := NewManager(&countingSource{})

	a := m.Get("nope")
	b := m.Get("also-nope")
	if a != b {
		t.Error("unloaded languages should share the canonical empty corpus")
	}
	if len(a.Entries) != 0 {
		t.Error("canonical empty corpus has entries")
	}
	if n := m.Get("nope"); n != a {
		t.Error("Get must be side-effect-free for unloaded languages")
	}
	if m.IsLoaded("nope") {
		t.Error("speculative Get marked a language loaded")
	}
}

func TestMemoryUsage(t *testing.T) {
	src := &countingSource{entries: []Entry{
		{Text: "for", Type: Keyword},
		{Text: "format", Type: Function},
	}}
	m := NewManager(src)

	if m.MemoryUsage() != 0 {
		t.Error("empty manager reports nonzero memory")
	}
	m.Load(context.Background(), "c")
	if m.MemoryUsage() <= 0 {
		t.Error("loaded manager reports zero memory")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	doc := `{"language":"c","entries":[{"text":"for","type":"keyword"},{"text":"printf","type":"function","description":"formatted output"}]}`
	if err := os.WriteFile(filepath.Join(dir, "c.json"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "asm.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	src := FileSource{Dir: dir}

	got, err := src.Fetch(context.Background(), "c")
	if err != nil {
		t.Fatalf("Fetch(c) failed: %v", err)
	}
	if len(got.Entries) != 2 || got.Entries[1].Text != "printf" {
		t.Errorf("unexpected document: %+v", got)
	}

	if _, err := src.Fetch(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file should yield ErrNotFound, got %v", err)
	}

	if _, err := src.Fetch(context.Background(), "asm"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("malformed payload should be a parse error, got %v", err)
	}
}
