package toon

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberLikeRe matches the encode-time "looks like a number" grammar of §4.3,
// which includes scientific notation (it governs when a *string* must be quoted
// so it isn't mistaken for a bare number on decode).
var numberLikeRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// numberGrammarRe is the decode-time number grammar from the EBNF in §6, which
// has no exponent form.
var numberGrammarRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// canonicalNumberFromFloat implements the number canonicalizer (§4.2): strip
// trailing fractional zeros, drop a bare trailing decimal point, never use
// scientific notation, and map -0/-0.0 to "0". ok is false for NaN/±Inf, whose
// caller substitutes the Null value.
func canonicalNumberFromFloat(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	if f == 0 {
		return "0", true
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s, true
}

// canonicalizeParsedNumber validates and canonicalizes a decoded number token
// against the EBNF grammar, rejecting leading zeros, and folding -0 to "0".
func canonicalizeParsedNumber(s string) (string, error) {
	if !numberGrammarRe.MatchString(s) {
		return "", fmt.Errorf("invalid number: %q", s)
	}
	neg := strings.HasPrefix(s, "-")
	digits := s
	if neg {
		digits = s[1:]
	}
	intPart := digits
	fracPart := ""
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		intPart = digits[:i]
		fracPart = digits[i+1:]
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return "", fmt.Errorf("invalid number %q: leading zero", s)
	}
	fracPart = strings.TrimRight(fracPart, "0")
	allZero := intPart == "0" && fracPart == ""
	var b strings.Builder
	if neg && !allZero {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String(), nil
}
