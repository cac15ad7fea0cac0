package toon

import "fmt"

// ParsingError signals a lexical/grammar problem: unexpected token, unterminated
// string, invalid escape, invalid number, unexpected EOF.
type ParsingError struct {
	Line, Column int
	Msg          string
}

func (e *ParsingError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("toon: parse error: %s", e.Msg)
	}
	return fmt.Sprintf("toon: parse error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// ValidationError signals a strict-mode violation: array length mismatch, tabular
// row-width mismatch, invalid indentation, duplicate key, blank line in array,
// expansion conflict.
type ValidationError struct {
	Line, Column int
	Msg          string
}

func (e *ValidationError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("toon: validation error: %s", e.Msg)
	}
	return fmt.Sprintf("toon: validation error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// EncodingError signals an unsupported value shape or a circular reference
// discovered while normalizing a Go value into a Value tree, or a value the
// encoder cannot render (such as an empty nested object).
type EncodingError struct {
	Path string
	Msg  string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("toon: encoding error at %s: %s", e.Path, e.Msg)
}

// DecodingError signals a type mismatch against a target Go shape, or a missing
// required field, while assigning a decoded Value tree into a Go value.
type DecodingError struct {
	Path string
	Msg  string
}

func (e *DecodingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("toon: decoding error: %s", e.Msg)
	}
	return fmt.Sprintf("toon: decoding error at %s: %s", e.Path, e.Msg)
}
