package logging

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxValueLen caps logged candidate values.
const MaxValueLen = 2048

// SafeValue prepares an untrusted value for a log line: control characters
// are escaped, invalid UTF-8 is replaced and long values are truncated.
// Candidate URLs come straight from web pages and must not be able to forge
// log lines or emit terminal escapes.
func SafeValue(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return "<nil>"
	case string:
		s = t
	case *string:
		if t == nil {
			return "<nil>"
		}
		s = *t
	default:
		s = fmt.Sprintf("%T(%v)", v, v)
	}

	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}

	truncated := false
	if len(s) > MaxValueLen {
		s = s[:MaxValueLen]
		// Drop a rune split by the cut.
		for !utf8.ValidString(s) {
			s = s[:len(s)-1]
		}
		truncated = true
	}

	clean := true
	for _, r := range s {
		if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
			clean = false
			break
		}
	}
	if !clean {
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
				fmt.Fprintf(&b, "\\u%04x", r)
				continue
			}
			b.WriteRune(r)
		}
		s = b.String()
	}

	if truncated {
		s += "…"
	}
	return s
}
