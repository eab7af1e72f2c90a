package utils

// IsIdentifier reports whether s looks like a (partial) identifier:
// non-empty and made of [A-Za-z0-9_] only. Used to filter junk prefixes
// before they reach the matcher.
func IsIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !IsWordChar(r) {
			return false
		}
	}
	return true
}

// IsWordChar reports whether r belongs to an identifier.
func IsWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
