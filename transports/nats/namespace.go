package nats

import (
	"strings"
	"unicode"
)

// namespace joins prefix and the formatted non-empty values into a NATS
// subject.
func namespace(prefix string, values ...string) string {
	parts := make([]string, 0, len(values)+1)
	parts = append(parts, prefix)
	for _, v := range values {
		if v == "" {
			continue
		}
		parts = append(parts, formatForNamespace(v))
	}
	return strings.Join(parts, ".")
}

// formatForNamespace converts camelCase boundaries and underscores to dashes
// and drops any character that is not valid in a subject token. Dots and
// wildcards are kept.
func formatForNamespace(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 4)

	var prev rune
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			if unicode.IsLower(prev) {
				b.WriteByte('-')
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(r)
			}
		case unicode.IsLower(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '_' || r == '-':
			b.WriteByte('-')
		case r == '.' || r == '*' || r == '>':
			b.WriteRune(r)
		default:
			continue
		}
		prev = r
	}
	return b.String()
}
