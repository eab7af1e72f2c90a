// Package cli is an interactive prompt for exercising the matcher without
// an editor host. For testing and debugging only.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hawklogic/ccserve/internal/utils"
	"github.com/hawklogic/ccserve/pkg/corpus"
	"github.com/hawklogic/ccserve/pkg/suggest"
)

var (
	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#9ccfd8"})
	kindStyle = lipgloss.NewStyle().Faint(true)
)

// InputHandler reads "language prefix" lines from stdin and prints ranked
// suggestions.
type InputHandler struct {
	manager      *corpus.Manager
	language     string
	suggestLimit int
	maxPrefix    int
}

// NewInputHandler sets up the prompt loop with a starting language.
func NewInputHandler(manager *corpus.Manager, language string, limit, maxPrefix int) *InputHandler {
	return &InputHandler{
		manager:      manager,
		language:     language,
		suggestLimit: limit,
		maxPrefix:    maxPrefix,
	}
}

// Start runs the prompt loop until stdin closes. A line is either a
// prefix to complete in the current language, or ":lang <id>" to switch.
func (h *InputHandler) Start() error {
	log.Printf("ccserve CLI -- language: %s", h.language)
	log.Print("type a prefix and press Enter, \":lang <id>\" to switch (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, ":lang "); ok {
			h.language = strings.TrimSpace(rest)
			log.Printf("language set to %s", h.language)
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(prefix string) {
	if len(prefix) > h.maxPrefix {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}
	if !utils.IsIdentifier(prefix) {
		log.Warnf("Not an identifier prefix: %q", prefix)
		return
	}

	start := time.Now()
	c := h.manager.Load(context.Background(), h.language)
	suggestions := suggest.Match(prefix, c, h.suggestLimit)
	elapsed := time.Since(start)

	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d suggestions for '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		kind := kindStyle.Render(fmt.Sprintf("%-9s", s.Type))
		log.Printf("%2d. %-40s %s (score: %3d)", i+1, wordStyle.Render(s.Text), kind, s.Score)
	}
}
