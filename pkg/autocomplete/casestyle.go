package autocomplete

import "strings"

// CaseStyle is the dominant instruction case of an assembly buffer.
// Suggestions are transformed to match it before display and insertion.
type CaseStyle int

const (
	CaseUpper CaseStyle = iota
	CaseLower
	CaseMixed
)

const (
	minCaseSamples = 3
	caseDominance  = 0.8
)

// DetectCaseStyle samples instruction-like tokens from buffer and returns
// the dominant case: uppercase, lowercase, or mixed (CamelCase mnemonics,
// left untransformed). Fewer than three samples, or no style reaching 80%
// dominance, defaults to uppercase.
func DetectCaseStyle(buffer string) CaseStyle {
	upper, lower, mixed := 0, 0, 0
	for _, line := range strings.Split(buffer, "\n") {
		tok, ok := instructionToken(line)
		if !ok {
			continue
		}
		switch {
		case tok == strings.ToUpper(tok):
			upper++
		case tok == strings.ToLower(tok):
			lower++
		default:
			mixed++
		}
	}

	total := upper + lower + mixed
	if total < minCaseSamples {
		return CaseUpper
	}
	switch {
	case float64(lower)/float64(total) >= caseDominance:
		return CaseLower
	case float64(mixed)/float64(total) >= caseDominance:
		return CaseMixed
	}
	return CaseUpper
}

// Apply transforms text to the detected style.
func (s CaseStyle) Apply(text string) string {
	switch s {
	case CaseLower:
		return strings.ToLower(text)
	case CaseMixed:
		return text
	default:
		return strings.ToUpper(text)
	}
}

func (s CaseStyle) String() string {
	switch s {
	case CaseLower:
		return "lower"
	case CaseMixed:
		return "mixed"
	default:
		return "upper"
	}
}

// instructionToken pulls the leading mnemonic-like token from one source
// line, skipping labels, directives, and comments.
func instructionToken(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	tok := fields[0]
	if strings.HasSuffix(tok, ":") || strings.HasPrefix(tok, ".") {
		return "", false
	}
	if strings.HasPrefix(tok, ";") || strings.HasPrefix(tok, "@") ||
		strings.HasPrefix(tok, "#") || strings.HasPrefix(tok, "//") {
		return "", false
	}
	if len(tok) < 2 {
		return "", false
	}
	for _, r := range tok {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "", false
		}
	}
	return tok, true
}
