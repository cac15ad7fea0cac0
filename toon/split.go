package toon

import (
	"errors"
	"fmt"
	"strings"
)

// fieldTok is one field produced by splitDelimited: its unescaped text, and
// whether the source token was quoted (which forces String interpretation on
// decode regardless of what the text looks like, e.g. "true").
type fieldTok struct {
	text   string
	quoted bool
}

// splitDelimited implements the delimited-value splitter (§4.10): split s on
// delim honoring quoted segments, trimming surrounding whitespace around each
// field (spaces and tabs for COMMA/PIPE, spaces only for TAB).
func splitDelimited(s string, delim Delimiter) ([]fieldTok, error) {
	d := byte(delim)
	var fields []fieldTok
	i, n := 0, len(s)
	for {
		text, quoted, next, err := scanField(s, i, d)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fieldTok{text: text, quoted: quoted})
		i = next
		if i >= n {
			break
		}
		if s[i] != d {
			return nil, fmt.Errorf("expected delimiter %q at position %d", string(d), i)
		}
		i++
		if i >= n {
			fields = append(fields, fieldTok{text: ""})
			break
		}
	}
	return fields, nil
}

func trimField(s string, delim byte) string {
	cutset := " \t"
	if delim == '\t' {
		cutset = " "
	}
	return strings.Trim(s, cutset)
}

// scanField reads one field starting at start, returning its text, whether it
// was quoted, and the index just past the field (at the delimiter or at n).
func scanField(s string, start int, delim byte) (string, bool, int, error) {
	i, n := start, len(s)
	j := i
	for j < n && (s[j] == ' ' || (delim != '\t' && s[j] == '\t')) {
		j++
	}
	if j < n && s[j] == '"' {
		var b strings.Builder
		k := j + 1
		closed := false
		for k < n {
			c := s[k]
			if c == '\\' {
				if k+1 >= n {
					return "", false, 0, errors.New("unterminated quoted string: trailing escape")
				}
				uc, ok := unescapeByte(s[k+1])
				if !ok {
					return "", false, 0, fmt.Errorf("invalid escape sequence \\%c", s[k+1])
				}
				b.WriteByte(uc)
				k += 2
				continue
			}
			if c == '"' {
				closed = true
				k++
				break
			}
			b.WriteByte(c)
			k++
		}
		if !closed {
			return "", false, 0, errors.New("unterminated quoted string")
		}
		for k < n && (s[k] == ' ' || (delim != '\t' && s[k] == '\t')) {
			k++
		}
		return b.String(), true, k, nil
	}
	end := i
	for end < n && s[end] != delim {
		end++
	}
	return trimField(s[i:end], delim), false, end, nil
}
