package admission

import (
	"regexp"
	"strings"

	"github.com/aretw0/opennormal/pkg/domain"
)

// lineChar matches one character that is not a line terminator.
const lineChar = `[^\n\r\x{2028}\x{2029}]`

// Scheme names fold ASCII letters only. (?i) would also apply Unicode
// simple folding and let "httpſ://" (U+017F) through as "https://".
var (
	allowPattern = regexp.MustCompile(`^(?:` + asciiFold("http") + `[sS]?|` + asciiFold("file") + `)://` + lineChar)
	denyPattern  = regexp.MustCompile(`^(?:` + asciiFold("javascript") + `|` + asciiFold("data") + `|` + asciiFold("vbscript") + `):`)
)

// asciiFold turns a lowercase ASCII word into a pattern matching it in any
// ASCII case, e.g. "http" -> "[hH][tT][tT][pP]".
func asciiFold(word string) string {
	var b strings.Builder
	for _, c := range word {
		b.WriteByte('[')
		b.WriteRune(c)
		b.WriteRune(c - 'a' + 'A')
		b.WriteByte(']')
	}
	return b.String()
}

// Allowed reports whether s uses an http, https or file scheme followed by
// "://" and at least one more character. It is a syntactic check only.
func Allowed(s string) bool {
	return allowPattern.MatchString(s)
}

// Dangerous reports whether s starts with a javascript:, data: or vbscript:
// scheme, regardless of ASCII case.
func Dangerous(s string) bool {
	return denyPattern.MatchString(s)
}

// AcceptedURL is a candidate that passed the gate.
// The zero value is not an accepted URL.
type AcceptedURL struct {
	raw string
}

// String returns the URL exactly as it was validated.
func (u AcceptedURL) String() string {
	return u.raw
}

// IsZero reports whether u was not produced by the gate.
func (u AcceptedURL) IsZero() bool {
	return u.raw == ""
}

type gate struct {
	allow func(string) bool
	deny  func(string) bool
}

var defaultGate = gate{allow: Allowed, deny: Dangerous}

// Admit runs the validation pipeline on candidate.
//
// Checks run in order and stop at the first failure: presence (nil, empty or
// non-string values), allow-list, deny-list. The returned error is a
// *domain.Rejection. The deny-list is always evaluated for non-empty strings,
// so a refused javascript: URL still matches domain.ErrDangerousScheme.
func Admit(candidate any) (AcceptedURL, error) {
	return defaultGate.admit(candidate)
}

// AdmitString is Admit for callers that already hold a string.
func AdmitString(s string) (AcceptedURL, error) {
	return defaultGate.admit(s)
}

func (g gate) admit(candidate any) (AcceptedURL, error) {
	s, ok := asString(candidate)
	if !ok || s == "" {
		return AcceptedURL{}, domain.NewRejection(domain.ReasonMissing)
	}
	if !g.allow(s) {
		return AcceptedURL{}, &domain.Rejection{
			Reason:    domain.ReasonSchemeNotAllowed,
			Dangerous: g.deny(s),
		}
	}
	if g.deny(s) {
		return AcceptedURL{}, &domain.Rejection{Reason: domain.ReasonDangerousScheme, Dangerous: true}
	}
	return AcceptedURL{raw: s}, nil
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	}
	return "", false
}
