package css

import (
	"strings"
)

// EscapeIdent escapes class name for use in selector: "md:w-1/2" becomes
// "md\:w-1\/2", leading digit is written as code point ("2xl" - "\32 xl").
func EscapeIdent(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 8)
	for i, r := range name {
		switch {
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteString(`\3`)
				b.WriteRune(r)
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(r)
		case r == '-' && i == 0 && len(name) == 1:
			b.WriteString(`\-`)
		case r == '-' || r == '_' || r >= 0x80 ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeDoubleQuoted escapes a string for use inside CSS double quotes.
func escapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Quote returns CSS string literal.
func Quote(s string) string {
	return `"` + escapeDoubleQuoted(s) + `"`
}
