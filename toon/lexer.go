package toon

import (
	"fmt"
	"strings"
)

// line is one logical line of input as the scanner sees it: its indent level
// (in indentSize-wide units), its content past the indent, and whether it is
// blank (§4.8).
type line struct {
	number int // 1-based
	indent int
	content string
	blank   bool
}

// scanLines splits input on "\n" and records the indent level, content and
// blank flag of each line. A tab in the indentation prefix is an error, and
// non-blank indentation must be a multiple of indentSize; both are reported as
// a ValidationError.
func scanLines(input string, indentSize int) ([]line, error) {
	raw := strings.Split(input, "\n")
	lines := make([]line, 0, len(raw))
	for i, text := range raw {
		if i == len(raw)-1 && text == "" {
			continue // no content after a final trailing newline
		}
		n := i + 1
		indent := 0
		for indent < len(text) && text[indent] == ' ' {
			indent++
		}
		if indent < len(text) && text[indent] == '\t' {
			return nil, &ValidationError{Line: n, Column: indent + 1, Msg: "tab character in indentation"}
		}
		content := text[indent:]
		blank := strings.TrimSpace(text) == ""
		if !blank && indent%indentSize != 0 {
			return nil, &ValidationError{Line: n, Column: 1, Msg: fmt.Sprintf("indentation must be a multiple of %d spaces", indentSize)}
		}
		lines = append(lines, line{number: n, indent: indent / indentSize, content: content, blank: blank})
	}
	return lines, nil
}
