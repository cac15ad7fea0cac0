package toon

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	identifierPattern = `[A-Za-z_][A-Za-z0-9_.]*`
	quotedPattern      = `"(?:[^"\\]|\\.)*"`
)

// tabularFieldsPattern matches the {field,field,...} group of a tabular array
// header. It treats quoted field names as opaque so a quoted name containing
// "}" (emitted by encodeKeyText for such a name) doesn't end the group early.
const tabularFieldsPattern = `\{(?:` + quotedPattern + `|[^{}])*\}`

var arrayHeaderRe = regexp.MustCompile(`^(` + identifierPattern + `|` + quotedPattern + `)?\[([0-9]+)(?:([,\t|]))?\](` + tabularFieldsPattern + `)?:(.*)$`)
var objectKeyLineRe = regexp.MustCompile(`^(` + identifierPattern + `|` + quotedPattern + `)\s*:(.*)$`)

// parser is a recursive-descent parser over the indented line stream produced
// by the lexer (§4.9).
type parser struct {
	lines []line
	pos   int
	cfg   *Config
}

// parseDocument implements the value parser's root dispatch and, when
// pathExpansion is enabled, the decode-time inverse of key folding (§4.7).
func parseDocument(text string, cfg *Config) (*Value, error) {
	lines, err := scanLines(text, cfg.IndentSize)
	if err != nil {
		return nil, err
	}
	p := &parser{lines: lines, cfg: cfg}
	p.skipBlankRun()
	if p.pos >= len(p.lines) {
		return ObjectValue(NewObject()), nil
	}
	v, err := p.parseValueAt(0)
	if err != nil {
		return nil, err
	}
	p.skipBlankRun()
	if p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		return nil, &ParsingError{Line: ln.number, Column: 1, Msg: "unexpected trailing content"}
	}
	if cfg.PathExpansion {
		return expandPaths(v, cfg.Strict)
	}
	return v, nil
}

func (p *parser) skipBlankRun() {
	for p.pos < len(p.lines) && p.lines[p.pos].blank {
		p.pos++
	}
}

// skipBlankInsideArray applies §4.8's array-body blank-line policy: error in
// strict mode, silently skip otherwise.
func (p *parser) skipBlankInsideArray() error {
	for p.pos < len(p.lines) && p.lines[p.pos].blank {
		if p.cfg.Strict {
			return &ValidationError{Line: p.lines[p.pos].number, Msg: "blank line inside array body"}
		}
		p.pos++
	}
	return nil
}

// parseValueAt implements the root/value dispatch of §4.9 at a given indent
// level: array header, key line (object), or a single primitive token.
func (p *parser) parseValueAt(indent int) (*Value, error) {
	if p.pos >= len(p.lines) {
		return nil, &ParsingError{Msg: "unexpected end of input"}
	}
	ln := p.lines[p.pos]
	if ln.indent != indent {
		return nil, &ParsingError{Line: ln.number, Column: 1, Msg: "unexpected indentation"}
	}
	if m := arrayHeaderRe.FindStringSubmatch(ln.content); m != nil && m[1] == "" {
		p.pos++
		return p.parseArrayBody(indent, ln, m)
	}
	if objectKeyLineRe.MatchString(ln.content) || arrayHeaderRe.MatchString(ln.content) {
		return p.parseObjectAt(indent)
	}
	v, err := parsePrimitiveToken(strings.TrimSpace(ln.content))
	if err != nil {
		return nil, &ParsingError{Line: ln.number, Column: 1, Msg: err.Error()}
	}
	p.pos++
	return v, nil
}

// parseFieldAt attempts to consume one "key: value" (or "key[n]...:") field
// line at indent. ok is false if the current line isn't a field at that indent,
// in which case the caller should stop consuming fields.
func (p *parser) parseFieldAt(indent int) (name string, quoted bool, val *Value, ok bool, err error) {
	if p.pos >= len(p.lines) {
		return "", false, nil, false, nil
	}
	ln := p.lines[p.pos]
	if ln.indent != indent {
		return "", false, nil, false, nil
	}
	if am := arrayHeaderRe.FindStringSubmatch(ln.content); am != nil && am[1] != "" {
		name, quoted, err = unquoteKeyToken(am[1])
		if err != nil {
			return "", false, nil, false, &ParsingError{Line: ln.number, Msg: err.Error()}
		}
		p.pos++
		val, err = p.parseArrayBody(indent, ln, am)
		return name, quoted, val, true, err
	}
	if km := objectKeyLineRe.FindStringSubmatch(ln.content); km != nil {
		name, quoted, err = unquoteKeyToken(km[1])
		if err != nil {
			return "", false, nil, false, &ParsingError{Line: ln.number, Msg: err.Error()}
		}
		rest := strings.TrimSpace(km[2])
		p.pos++
		if rest != "" {
			val, err = parsePrimitiveToken(rest)
			if err != nil {
				err = &ParsingError{Line: ln.number, Msg: err.Error()}
			}
		} else {
			val, err = p.parseValueAt(indent + 1)
		}
		return name, quoted, val, true, err
	}
	return "", false, nil, false, nil
}

func (p *parser) parseObjectAt(indent int) (*Value, error) {
	obj := NewObject()
	for {
		p.skipBlankRun()
		name, quoted, val, ok, err := p.parseFieldAt(indent)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if setErr := setField(obj, name, quoted, val); setErr != nil {
			if p.cfg.Strict {
				return nil, &ValidationError{Msg: setErr.Error()}
			}
			obj.Overwrite(name, val)
		}
	}
	return ObjectValue(obj), nil
}

func setField(obj *Object, name string, quoted bool, val *Value) error {
	if quoted {
		return obj.SetQuoted(name, val)
	}
	return obj.Set(name, val)
}

func unquoteKeyToken(raw string) (string, bool, error) {
	if strings.HasPrefix(raw, "\"") {
		inner := raw[1 : len(raw)-1]
		s, err := unquoteString(inner)
		if err != nil {
			return "", true, err
		}
		return s, true, nil
	}
	return raw, false, nil
}

// parseArrayBody parses the body that follows an already-matched, already-
// consumed array header line (m is arrayHeaderRe's submatch groups).
func (p *parser) parseArrayBody(indent int, ln line, m []string) (*Value, error) {
	delim := Comma
	if m[3] != "" {
		delim = Delimiter(m[3][0])
	}
	n, convErr := strconv.Atoi(m[2])
	if convErr != nil {
		return nil, &ParsingError{Line: ln.number, Msg: "invalid array length"}
	}
	fieldsGroup := m[4]
	rest := strings.TrimSpace(m[5])
	if fieldsGroup != "" {
		return p.parseTabularBody(indent, ln, n, delim, fieldsGroup)
	}
	if rest != "" {
		return p.parseInlineBody(ln, n, delim, rest)
	}
	return p.parseExpandedBody(indent, ln, n)
}

func (p *parser) parseInlineBody(ln line, n int, delim Delimiter, rest string) (*Value, error) {
	raw, err := splitDelimited(rest, delim)
	if err != nil {
		return nil, &ParsingError{Line: ln.number, Msg: err.Error()}
	}
	if len(raw) != n && p.cfg.Strict {
		return nil, lengthMismatch(ln, n, len(raw))
	}
	elems := make([]*Value, 0, len(raw))
	for _, tok := range raw {
		v, err := decodeFieldToken(tok)
		if err != nil {
			return nil, &ParsingError{Line: ln.number, Msg: err.Error()}
		}
		elems = append(elems, v)
	}
	return ArrayValue(elems...), nil
}

func (p *parser) parseTabularBody(indent int, ln line, n int, delim Delimiter, fieldsGroup string) (*Value, error) {
	inner := fieldsGroup[1 : len(fieldsGroup)-1]
	rawFields, err := splitDelimited(inner, delim)
	if err != nil {
		return nil, &ParsingError{Line: ln.number, Msg: err.Error()}
	}
	fields := make([]string, len(rawFields))
	for i, f := range rawFields {
		fields[i] = f.text
	}
	rows := make([]*Value, 0, n)
	count := 0
	for {
		if err := p.skipBlankInsideArray(); err != nil {
			return nil, err
		}
		if p.pos >= len(p.lines) {
			break
		}
		rl := p.lines[p.pos]
		if rl.indent != indent+1 {
			break
		}
		raw, err := splitDelimited(rl.content, delim)
		if err != nil {
			return nil, &ParsingError{Line: rl.number, Msg: err.Error()}
		}
		if len(raw) != len(fields) {
			return nil, &ValidationError{Line: rl.number, Msg: "tabular row field count does not match header"}
		}
		obj := NewObject()
		for i, name := range fields {
			v, err := decodeFieldToken(raw[i])
			if err != nil {
				return nil, &ParsingError{Line: rl.number, Msg: err.Error()}
			}
			obj.Set(name, v)
		}
		rows = append(rows, ObjectValue(obj))
		p.pos++
		count++
		if count == n && p.cfg.Strict {
			break
		}
	}
	if count != n && p.cfg.Strict {
		return nil, lengthMismatch(ln, n, count)
	}
	return ArrayValue(rows...), nil
}

func (p *parser) parseExpandedBody(indent int, ln line, n int) (*Value, error) {
	elems := make([]*Value, 0, n)
	count := 0
	for {
		if err := p.skipBlankInsideArray(); err != nil {
			return nil, err
		}
		if p.pos >= len(p.lines) {
			break
		}
		rl := p.lines[p.pos]
		if rl.indent != indent+1 {
			break
		}
		var rest string
		switch {
		case rl.content == "-":
			rest = ""
		case strings.HasPrefix(rl.content, "- "):
			rest = rl.content[2:]
		default:
			return nil, &ParsingError{Line: rl.number, Msg: "expected an array element starting with -"}
		}
		p.pos++
		el, err := p.parseExpandedElement(indent+1, rl, rest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
		count++
		if count == n && p.cfg.Strict {
			break
		}
	}
	if count != n && p.cfg.Strict {
		return nil, lengthMismatch(ln, n, count)
	}
	return ArrayValue(elems...), nil
}

func (p *parser) parseExpandedElement(dashIndent int, dashLine line, rest string) (*Value, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return p.parseValueAt(dashIndent + 1)
	}
	if am := arrayHeaderRe.FindStringSubmatch(rest); am != nil {
		if am[1] == "" {
			return p.parseArrayBody(dashIndent, dashLine, am)
		}
		return p.parseStructureElementFirstArray(dashIndent, dashLine, am)
	}
	if km := objectKeyLineRe.FindStringSubmatch(rest); km != nil {
		return p.parseStructureElement(dashIndent, dashLine, km)
	}
	v, err := parsePrimitiveToken(rest)
	if err != nil {
		return nil, &ParsingError{Line: dashLine.number, Msg: err.Error()}
	}
	return v, nil
}

func (p *parser) parseStructureElement(dashIndent int, dashLine line, m []string) (*Value, error) {
	obj := NewObject()
	name, quoted, err := unquoteKeyToken(m[1])
	if err != nil {
		return nil, &ParsingError{Line: dashLine.number, Msg: err.Error()}
	}
	rest := strings.TrimSpace(m[2])
	var val *Value
	if rest != "" {
		val, err = parsePrimitiveToken(rest)
		if err != nil {
			return nil, &ParsingError{Line: dashLine.number, Msg: err.Error()}
		}
	} else {
		// The first field shares the dash's own line, but the encoder nests its
		// body one level deeper than the dash (renderExpandedElementObject renders
		// every field, including the first, at dashIndent+1; only the leading
		// "- " itself sits at dashIndent), so the body is at dashIndent+2 just
		// like a subsequent field's body.
		val, err = p.parseValueAt(dashIndent + 2)
		if err != nil {
			return nil, err
		}
	}
	if err := setFieldStrict(p.cfg, obj, name, quoted, val, dashLine.number); err != nil {
		return nil, err
	}
	if err := p.parseRemainingFields(obj, dashIndent+1); err != nil {
		return nil, err
	}
	return ObjectValue(obj), nil
}

func (p *parser) parseStructureElementFirstArray(dashIndent int, dashLine line, am []string) (*Value, error) {
	obj := NewObject()
	name, quoted, err := unquoteKeyToken(am[1])
	if err != nil {
		return nil, &ParsingError{Line: dashLine.number, Msg: err.Error()}
	}
	// Same reasoning as above: the array's own body rows nest one level deeper
	// than the dash, matching how a subsequent field's array body would nest.
	val, err := p.parseArrayBody(dashIndent+1, dashLine, am)
	if err != nil {
		return nil, err
	}
	if err := setFieldStrict(p.cfg, obj, name, quoted, val, dashLine.number); err != nil {
		return nil, err
	}
	if err := p.parseRemainingFields(obj, dashIndent+1); err != nil {
		return nil, err
	}
	return ObjectValue(obj), nil
}

// parseRemainingFields consumes the fields that follow an expanded element's
// first field, at indent, adding them to obj. parseStructureElement and
// parseStructureElementFirstArray both call it after placing the first field,
// then wrap obj into the *Value they return.
func (p *parser) parseRemainingFields(obj *Object, indent int) error {
	for {
		p.skipBlankRun()
		name, quoted, val, ok, err := p.parseFieldAt(indent)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := setFieldStrict(p.cfg, obj, name, quoted, val, 0); err != nil {
			return err
		}
	}
}

func setFieldStrict(cfg *Config, obj *Object, name string, quoted bool, val *Value, line int) error {
	if err := setField(obj, name, quoted, val); err != nil {
		if cfg.Strict {
			return &ValidationError{Line: line, Msg: err.Error()}
		}
		obj.Overwrite(name, val)
	}
	return nil
}

func lengthMismatch(ln line, want, got int) error {
	return &ValidationError{Line: ln.number, Msg: "array length mismatch"}
}

// parsePrimitiveToken parses a single unquoted-or-quoted primitive token per
// the primitive grammar of §6.
func parsePrimitiveToken(s string) (*Value, error) {
	if strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") && len(s) >= 2 {
		inner := s[1 : len(s)-1]
		str, err := unquoteString(inner)
		if err != nil {
			return nil, err
		}
		return StringValue(str), nil
	}
	switch s {
	case "null":
		return NullValue(), nil
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	case "":
		return StringValue(""), nil
	}
	if numberGrammarRe.MatchString(s) {
		canon, err := canonicalizeParsedNumber(s)
		if err != nil {
			return nil, err
		}
		return NumberFromString(canon), nil
	}
	return StringValue(s), nil
}

func decodeFieldToken(tok fieldTok) (*Value, error) {
	if tok.quoted {
		return StringValue(tok.text), nil
	}
	return parsePrimitiveToken(tok.text)
}
