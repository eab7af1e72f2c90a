package suggest

import (
	"fmt"
	"testing"
	"time"

	"github.com/hawklogic/ccserve/pkg/corpus"
)

func buildCorpus(words ...string) *corpus.Corpus {
	entries := make([]corpus.Entry, len(words))
	for i, w := range words {
		entries[i] = corpus.Entry{Text: w, Type: corpus.Keyword}
	}
	return corpus.Build("test", entries)
}

// the classic scenario: exact match must beat its own extensions
func TestExactMatchRanksFirst(t *testing.T) {
	c := buildCorpus("for", "forEach", "format")

	got := Match("for", c, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	if got[0].Text != "for" {
		t.Errorf("first result = %q, want exact match \"for\"", got[0].Text)
	}
	for _, s := range got[1:] {
		if s.Score >= got[0].Score {
			t.Errorf("%q scored %d, not strictly below exact match %d", s.Text, s.Score, got[0].Score)
		}
	}
}

func TestEmptyPrefixYieldsNothing(t *testing.T) {
	c := buildCorpus("for", "while", "if")
	if got := Match("", c, 10); len(got) != 0 {
		t.Errorf("empty prefix returned %d suggestions, want 0", len(got))
	}
}

func TestNilCorpus(t *testing.T) {
	if got := Match("fo", nil, 10); got != nil {
		t.Errorf("nil corpus returned %v", got)
	}
}

// results must come back sorted by score, descending
func TestRankingOrder(t *testing.T) {
	c := buildCorpus("int", "int8_t", "int16_t", "interrupt", "integer")

	got := Match("int", c, 10)
	if got[0].Text != "int" {
		t.Fatalf("exact match not first: %q", got[0].Text)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("results not sorted: %q (%d) after %q (%d)",
				got[i].Text, got[i].Score, got[i-1].Text, got[i-1].Score)
		}
	}
}

// shorter completions edge out longer ones within the same tier
func TestShorterCompletionBonus(t *testing.T) {
	c := buildCorpus("forEachIndexed", "form")

	got := Match("fo", c, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Text != "form" {
		t.Errorf("short completion should rank first, got %q", got[0].Text)
	}
}

func TestCaseInsensitiveSameResults(t *testing.T) {
	c := buildCorpus("HAL_GPIO_Init", "HAL_GPIO_Write", "HAL_UART_Init")

	base := Match("hal_gpio", c, 10)
	for _, prefix := range []string{"HAL_GPIO", "Hal_Gpio", "hAL_gPIO"} {
		got := Match(prefix, c, 10)
		if len(got) != len(base) {
			t.Fatalf("Match(%q) returned %d results, want %d", prefix, len(got), len(base))
		}
		for i := range got {
			if got[i].Text != base[i].Text {
				t.Errorf("Match(%q)[%d] = %q, want %q", prefix, i, got[i].Text, base[i].Text)
			}
		}
	}
}

func TestBoundedResults(t *testing.T) {
	words := make([]string, 200)
	for i := range words {
		words[i] = fmt.Sprintf("prefix_%03d", i)
	}
	c := buildCorpus(words...)

	if got := Match("prefix", c, 10); len(got) > 10 {
		t.Errorf("limit 10 returned %d results", len(got))
	}
	if got := Match("prefix", c, 0); len(got) > DefaultLimit {
		t.Errorf("default limit returned %d results", len(got))
	}
	if got := Match("prefix", c, 3); len(got) != 3 {
		t.Errorf("limit 3 returned %d results", len(got))
	}
}

// one frame of budget over a 10k-entry corpus
func TestMatchWithinFrameBudget(t *testing.T) {
	entries := make([]corpus.Entry, 10000)
	for i := range entries {
		entries[i] = corpus.Entry{
			Text: fmt.Sprintf("symbol_%c%c_%04d", 'a'+i%26, 'a'+(i/26)%26, i),
			Type: corpus.Function,
		}
	}
	c := corpus.Build("bench", entries)

	start := time.Now()
	Match("symbol_a", c, 10)
	elapsed := time.Since(start)

	if elapsed > 16*time.Millisecond {
		t.Errorf("Match took %v, budget is 16ms", elapsed)
	}
}

func BenchmarkMatch10k(b *testing.B) {
	entries := make([]corpus.Entry, 10000)
	for i := range entries {
		entries[i] = corpus.Entry{Text: fmt.Sprintf("sym_%05d", i), Type: corpus.Function}
	}
	c := corpus.Build("bench", entries)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Match("sym_1", c, 10)
	}
}
