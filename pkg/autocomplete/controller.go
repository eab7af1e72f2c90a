// Package autocomplete drives suggestion display, keyboard navigation, and
// text insertion against a host editor surface.
//
// The Controller owns the only mutable state in the engine. It is either
// hidden (no suggestions) or visible (non-empty suggestions with an active
// index in range); the phase enum keeps illegal combinations such as
// "visible with zero suggestions" out of the state space. Rapid keystrokes
// are debounced so at most one match pass runs per quiet period.
package autocomplete

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hawklogic/ccserve/pkg/config"
	"github.com/hawklogic/ccserve/pkg/corpus"
	"github.com/hawklogic/ccserve/pkg/cursor"
	"github.com/hawklogic/ccserve/pkg/lang"
	"github.com/hawklogic/ccserve/pkg/suggest"
)

// Options tune the controller. Zero values fall back to defaults.
type Options struct {
	Debounce    time.Duration // quiet period before matching, default 150ms
	MaxResults  int           // suggestion cap, default suggest.DefaultLimit
	MinPrefix   int           // shortest prefix that opens suggestions, default 1
	PanelWidth  float64       // suggestion panel size used for viewport clamping
	PanelHeight float64
	Metrics     Metrics // optional; nil leaves the anchor at the zero Position
}

const (
	defaultDebounce    = 150 * time.Millisecond
	defaultPanelWidth  = 280
	defaultPanelHeight = 200
)

// OptionsFromConfig maps the engine and panel config tables onto
// controller options, for hosts that embed the engine in-process
// instead of talking to it over IPC.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Debounce:    time.Duration(cfg.Engine.DebounceMs) * time.Millisecond,
		MaxResults:  cfg.Engine.MaxResults,
		MinPrefix:   cfg.Engine.MinPrefix,
		PanelWidth:  cfg.Panel.Width,
		PanelHeight: cfg.Panel.Height,
	}
}

type phase int

const (
	phaseHidden phase = iota
	phaseVisible
)

// State is a host-facing snapshot of the controller.
type State struct {
	Visible     bool
	Suggestions []suggest.Suggestion
	ActiveIndex int
	Prefix      string
	Position    Position
	Language    string
}

// Controller orchestrates the engine: it classifies keystrokes, debounces
// matching, manages the selection, and splices accepted suggestions into
// the buffer. All mutation happens inside Controller methods.
type Controller struct {
	surface Surface
	manager *corpus.Manager
	opts    Options

	// inserting suppresses the synthetic input event fired by our own
	// splice so it cannot re-trigger matching. Checked before the lock:
	// NotifyInput may call back into HandleInput synchronously.
	inserting atomic.Bool

	mu          sync.Mutex
	phase       phase
	suggestions []suggest.Suggestion
	active      int
	prefix      string
	position    Position
	language    string
	caseStyle   CaseStyle
	timer       *time.Timer
	destroyed   bool
	matchPasses int // completed update passes, for tests and stats
}

// New wires a controller to its corpus manager and host surface.
func New(manager *corpus.Manager, surface Surface, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = suggest.DefaultLimit
	}
	if opts.MinPrefix <= 0 {
		opts.MinPrefix = 1
	}
	if opts.PanelWidth <= 0 {
		opts.PanelWidth = defaultPanelWidth
	}
	if opts.PanelHeight <= 0 {
		opts.PanelHeight = defaultPanelHeight
	}
	return &Controller{
		surface:   surface,
		manager:   manager,
		opts:      opts,
		caseStyle: CaseUpper,
	}
}

// SetLanguage switches the active language, hides any open suggestions,
// and warms the corpus cache in the background. Switching to an assembly
// dialect samples the buffer for its dominant instruction case.
func (c *Controller) SetLanguage(id string) {
	style := CaseUpper
	assembly := lang.IsAssembly(id)
	if assembly {
		// Text is a host callback; keep it outside the lock.
		style = DetectCaseStyle(c.surface.Text())
		log.Debugf("Assembly case style for %q: %s", id, style)
	}

	c.mu.Lock()
	c.language = id
	if assembly {
		c.caseStyle = style
	}
	c.hideLocked()
	c.mu.Unlock()

	if id != "" {
		go c.manager.Load(context.Background(), id)
	}
}

// HandleKey processes one keystroke. It returns true when the controller
// consumed the key and the host should not apply its default behavior.
func (c *Controller) HandleKey(key string, mods cursor.Modifiers) bool {
	if c.inserting.Load() {
		return false
	}
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return false
	}

	if c.phase == phaseVisible {
		switch key {
		case "ArrowDown":
			c.active = (c.active + 1) % len(c.suggestions)
			c.mu.Unlock()
			return true
		case "ArrowUp":
			c.active = (c.active - 1 + len(c.suggestions)) % len(c.suggestions)
			c.mu.Unlock()
			return true
		case "Tab":
			s := c.suggestions[c.active]
			c.hideLocked()
			c.mu.Unlock()
			c.insert(s)
			return true
		case "Enter":
			// Enter never auto-completes; the newline goes through.
			c.hideLocked()
			c.mu.Unlock()
			return false
		case "Escape":
			c.hideLocked()
			c.mu.Unlock()
			return true
		}
	}

	if cursor.ShouldTrigger(key, mods, c.language) {
		c.scheduleLocked()
	}
	c.mu.Unlock()
	return false
}

// HandleInput reacts to a buffer change (typing, paste, programmatic
// edits) by scheduling a debounced suggestion update.
func (c *Controller) HandleInput() {
	if c.inserting.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.scheduleLocked()
}

// HandleBlur hides suggestions unconditionally when the editor loses
// focus, and drops any pending update.
func (c *Controller) HandleBlur() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.hideLocked()
}

// State returns a copy of the current UI-visible state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Visible:     c.phase == phaseVisible,
		Suggestions: append([]suggest.Suggestion(nil), c.suggestions...),
		ActiveIndex: c.active,
		Prefix:      c.prefix,
		Position:    c.position,
		Language:    c.language,
	}
}

// Destroy tears the controller down. The pending debounce timer is
// cleared so no stray callback fires against a disposed editor.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed = true
	c.stopTimerLocked()
	c.hideLocked()
}

// scheduleLocked replaces the pending update timer. Each qualifying
// keystroke cancels the previous one, so one match pass fires per quiet
// period no matter how fast the typing.
func (c *Controller) scheduleLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.opts.Debounce, c.update)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// update runs after the debounce quiet period: it re-reads the live
// buffer, matches the current prefix, and transitions the state machine.
func (c *Controller) update() {
	if c.inserting.Load() {
		return
	}
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	language := c.language
	style := c.caseStyle
	c.mu.Unlock()

	text := c.surface.Text()
	offset := c.surface.Cursor()
	prefix := cursor.ExtractPrefix(text, offset)

	var matches []suggest.Suggestion
	if language != "" && len(prefix) >= c.opts.MinPrefix {
		co := c.manager.Load(context.Background(), language)
		matches = suggest.Match(prefix, co, c.opts.MaxResults)
		if lang.IsAssembly(language) {
			for i := range matches {
				matches[i].Text = style.Apply(matches[i].Text)
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.matchPasses++
	if len(matches) == 0 {
		c.hideLocked()
		return
	}
	c.phase = phaseVisible
	c.suggestions = matches
	c.active = 0
	c.prefix = prefix
	ctx := cursor.ExtractContext(text, offset, language)
	c.position = computeAnchor(ctx, c.opts.Metrics, c.opts.PanelWidth, c.opts.PanelHeight)
}

// insert splices the accepted suggestion over the prefix span. It runs
// without the lock held: Replace, SetCursor, and NotifyInput are host
// callbacks free to call back into any controller method, State
// included; the inserting flag suppresses the synthetic input echo.
// The prefix is re-derived from the live buffer at the moment of
// insertion; the stored one can be stale when fast typing races the
// debounce window.
func (c *Controller) insert(s suggest.Suggestion) {
	c.inserting.Store(true)
	defer c.inserting.Store(false)

	text := c.surface.Text()
	offset := c.surface.Cursor()
	live := cursor.ExtractPrefix(text, offset)
	start := offset - len(live)

	c.surface.Replace(start, offset, s.Text)
	c.surface.SetCursor(start + len(s.Text))
	c.surface.NotifyInput()
}

// hideLocked resets the state to its initial hidden shape.
func (c *Controller) hideLocked() {
	c.phase = phaseHidden
	c.suggestions = nil
	c.active = 0
	c.prefix = ""
	c.position = Position{}
}
