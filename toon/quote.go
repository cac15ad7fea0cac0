package toon

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// quoteContext is one of the three contexts the string quoter (§4.3) is asked
// to decide quoting need for.
type quoteContext int

const (
	ctxObjectKey quoteContext = iota
	ctxObjectValue
	ctxArrayElement
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// foldSafeRe is the stricter subset used by key-folding: a segment that itself
// contains a dot cannot be safely folded, since re-joining with "." would be
// ambiguous with a segment boundary.
var foldSafeRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// needsQuoting implements §4.3's "must quote" rule set.
func needsQuoting(s string, ctx quoteContext, delim byte) bool {
	if s == "" {
		return true
	}
	if s == "true" || s == "false" || s == "null" {
		return true
	}
	if numberLikeRe.MatchString(s) {
		return true
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	if first <= 0x20 || last <= 0x20 {
		return true
	}
	if strings.ContainsAny(s, "\"\\\n\r\t:[]{}") {
		return true
	}
	if strings.HasPrefix(s, "-") {
		return true
	}
	if (ctx == ctxObjectValue || ctx == ctxArrayElement) && strings.IndexByte(s, delim) >= 0 {
		return true
	}
	if ctx == ctxObjectKey && !identifierRe.MatchString(s) {
		return true
	}
	if hasControlRune(s) {
		return true
	}
	return false
}

// hasControlRune walks s at Unicode normalization-boundary granularity (rather
// than raw byte indexing) before checking each segment's leading rune, so a
// combining sequence anchored on a control code point is still caught.
func hasControlRune(s string) bool {
	var it norm.Iter
	it.InitString(norm.NFC, s)
	for !it.Done() {
		seg := it.Next()
		r, _ := utf8.DecodeRune(seg)
		if r < 0x20 {
			return true
		}
	}
	return false
}

// quoteString wraps s in quotes, emitting exactly the five defined escapes.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// encodeStringText renders s for the given context, quoting it when required.
func encodeStringText(s string, ctx quoteContext, delim byte) string {
	if needsQuoting(s, ctx, delim) {
		return quoteString(s)
	}
	return s
}

// encodeKeyText renders an object/tabular-header field name.
func encodeKeyText(name string, delim byte) string {
	return encodeStringText(name, ctxObjectKey, delim)
}

func unescapeByte(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// unquoteString processes escapes inside an already-unwrapped quoted string body.
func unquoteString(s string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' {
			if i+1 >= len(s) {
				return "", &ParsingError{Msg: "unterminated escape sequence"}
			}
			uc, ok := unescapeByte(s[i+1])
			if !ok {
				return "", &ParsingError{Msg: "invalid escape sequence \\" + string(s[i+1])}
			}
			b.WriteByte(uc)
			i += 2
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String(), nil
}
