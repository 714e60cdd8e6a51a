package extractor

import "strings"

// JSONSanitizer repairs the most common ways stored page JSON gets corrupted:
// raw control characters, invalid escape sequences and broken UTF-8.
type JSONSanitizer struct{}

// NewJSONSanitizer creates a new JSON sanitizer
func NewJSONSanitizer() *JSONSanitizer {
	return &JSONSanitizer{}
}

// Sanitize returns a copy of raw that encoding/json is more likely to accept.
// Inside string literals, newlines and tabs become escapes, other control
// characters are dropped and a backslash that does not start a valid escape
// is doubled. Outside literals only JSON whitespace control characters survive.
func (s *JSONSanitizer) Sanitize(raw string) string {
	raw = strings.ToValidUTF8(raw, "")

	var b strings.Builder
	b.Grow(len(raw))

	inString := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if !inString {
			if c == '"' {
				inString = true
				b.WriteByte(c)
				continue
			}
			if isControl(c) && c != '\n' && c != '\r' && c != '\t' {
				continue
			}
			b.WriteByte(c)
			continue
		}

		switch {
		case c == '"':
			inString = false
			b.WriteByte(c)
		case c == '\\':
			n := validEscapeLen(raw[i:])
			if n == 0 {
				b.WriteString(`\\`)
				continue
			}
			b.WriteString(raw[i : i+n])
			i += n - 1
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case isControl(c):
			// dropped
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// StripControl removes control characters other than newline, carriage
// return and tab from plain text.
func StripControl(text string) string {
	text = strings.ToValidUTF8(text, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
}

// validEscapeLen returns the byte length of the escape sequence starting at
// s[0] == '\\', or 0 if it is not a valid JSON escape.
func validEscapeLen(s string) int {
	if len(s) < 2 {
		return 0
	}
	switch s[1] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return 2
	case 'u':
		if len(s) < 6 {
			return 0
		}
		for _, h := range s[2:6] {
			if !isHex(h) {
				return 0
			}
		}
		return 6
	default:
		return 0
	}
}

func isControl(c byte) bool {
	return c < 0x20 || c == 0x7f
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
