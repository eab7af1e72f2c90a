// Package lang is the registry of editor languages the engine knows about:
// which dictionary to load, which characters beyond identifiers should
// (re)open the suggestion list, and whether the language is an assembly
// dialect with case-style matching.
package lang

import "sync"

// Language describes one supported editor language.
type Language struct {
	ID       string
	Name     string
	Triggers []rune // non-identifier characters that open suggestions
	Assembly bool   // instruction case-style matching applies
}

var (
	mu       sync.RWMutex
	registry = map[string]Language{}
)

func init() {
	for _, l := range []Language{
		{ID: "c", Name: "C", Triggers: []rune{'.', '>'}},
		{ID: "cpp", Name: "C++", Triggers: []rune{'.', ':', '>'}},
		{ID: "rust", Name: "Rust", Triggers: []rune{'.', ':'}},
		{ID: "go", Name: "Go", Triggers: []rune{'.'}},
		{ID: "python", Name: "Python", Triggers: []rune{'.'}},
		{ID: "javascript", Name: "JavaScript", Triggers: []rune{'.'}},
		{ID: "typescript", Name: "TypeScript", Triggers: []rune{'.', ':'}},
		{ID: "asm", Name: "ARM Assembly", Triggers: []rune{'.'}, Assembly: true},
	} {
		registry[l.ID] = l
	}
}

// Register adds or replaces a language. Hosts can extend the builtin set.
func Register(l Language) {
	mu.Lock()
	defer mu.Unlock()
	registry[l.ID] = l
}

// Lookup returns the language for id.
func Lookup(id string) (Language, bool) {
	mu.RLock()
	defer mu.RUnlock()
	l, ok := registry[id]
	return l, ok
}

// IsTrigger reports whether r is a registered trigger character for id.
// Unknown languages have no trigger characters.
func IsTrigger(id string, r rune) bool {
	l, ok := Lookup(id)
	if !ok {
		return false
	}
	for _, t := range l.Triggers {
		if t == r {
			return true
		}
	}
	return false
}

// IsAssembly reports whether id names an assembly dialect.
func IsAssembly(id string) bool {
	l, ok := Lookup(id)
	return ok && l.Assembly
}
