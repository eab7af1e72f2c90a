// Package cursor holds the pure functions that classify keystrokes and
// derive the identifier prefix and surrounding context from raw editor
// state. Everything here is a snapshot computation over (text, offset);
// nothing keeps state between calls.
package cursor

import (
	"strings"

	"github.com/hawklogic/ccserve/pkg/lang"
)

// Modifiers are the modifier keys held during a keystroke.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Meta  bool
	Shift bool
}

// Context is a point-in-time snapshot of the editor around the cursor.
type Context struct {
	Line       int    // zero-based
	Column     int    // byte offset within the line
	LineText   string // full current line, without the newline
	Prefix     string // identifier being typed, scanned back from the cursor
	Language   string
	CharBefore string // "" at the start of the buffer
	CharAfter  string // "" at the end of the buffer
}

// control keys that never open or refresh the suggestion list
var controlKeys = map[string]bool{
	"Enter":      true,
	"Escape":     true,
	"Tab":        true,
	"Backspace":  true,
	"Delete":     true,
	"ArrowUp":    true,
	"ArrowDown":  true,
	"ArrowLeft":  true,
	"ArrowRight": true,
}

// ShouldTrigger reports whether a keystroke qualifies to open or refresh
// suggestions: identifier characters and language trigger characters do,
// modifier combinations and navigation/control keys never do.
func ShouldTrigger(key string, mods Modifiers, language string) bool {
	if mods.Ctrl || mods.Alt || mods.Meta {
		return false
	}
	if controlKeys[key] {
		return false
	}
	runes := []rune(key)
	if len(runes) != 1 {
		return false
	}
	r := runes[0]
	if isWordChar(r) {
		return true
	}
	return lang.IsTrigger(language, r)
}

// ExtractPrefix scans backward from offset while characters match
// [A-Za-z0-9_] and returns the span up to the cursor. Offset 0 yields "".
func ExtractPrefix(text string, offset int) string {
	if offset < 0 {
		return ""
	}
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 && isWordChar(rune(text[start-1])) {
		start--
	}
	return text[start:offset]
}

// ExtractContext derives the full cursor snapshot at offset.
func ExtractContext(text string, offset int, language string) Context {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	line := strings.Count(text[:offset], "\n")
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += offset
	}

	before := ""
	if offset > 0 {
		before = text[offset-1 : offset]
	}
	after := ""
	if offset < len(text) {
		after = text[offset : offset+1]
	}

	return Context{
		Line:       line,
		Column:     offset - lineStart,
		LineText:   text[lineStart:lineEnd],
		Prefix:     ExtractPrefix(text, offset),
		Language:   language,
		CharBefore: before,
		CharAfter:  after,
	}
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
