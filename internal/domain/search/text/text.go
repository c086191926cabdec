// Package text normalizes free text for catalog matching.
package text

import "strings"

// Normalize lowercases s, turns every character outside [a-z0-9] into a
// space, collapses whitespace runs and trims. The result contains only
// [a-z0-9] and single spaces, so Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lower))

	pendingSpace := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// Tokenize returns the space separated tokens of the normalized text.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// Join normalizes the concatenation of parts separated by spaces. Empty parts
// contribute nothing.
func Join(parts ...string) string {
	return Normalize(strings.Join(parts, " "))
}
