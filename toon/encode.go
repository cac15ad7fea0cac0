package toon

import (
	"fmt"
	"strings"
)

// encoder renders a Value tree to TOON text (§4.5, §4.6).
type encoder struct {
	cfg *Config
	w   *writer
}

func newEncoder(cfg *Config) *encoder {
	return &encoder{cfg: cfg, w: newWriter(cfg.IndentSize)}
}

func headerDelimSuffix(d Delimiter) string {
	if d == Comma {
		return ""
	}
	return string(byte(d))
}

// renderDocument renders the whole document: an object's fields at depth 0
// (no leading newline before the first field), a root array, or a single
// root primitive.
func (e *encoder) renderDocument(v *Value) (string, error) {
	switch v.Kind {
	case KindObject:
		for i, name := range v.objVal.Keys() {
			val, _ := v.objVal.Get(name)
			keyText := encodeKeyText(name, byte(e.cfg.Delimiter))
			if i > 0 {
				e.w.writeNewline()
				e.w.writeIndent(0)
			}
			if err := e.renderFieldBody(keyText, val, 0, e.cfg.Delimiter); err != nil {
				return "", err
			}
		}
	case KindArray:
		if err := e.renderArray("", v, 0, e.cfg.Delimiter); err != nil {
			return "", err
		}
	default:
		text, err := e.renderPrimitiveText(v, ctxObjectValue, byte(e.cfg.Delimiter))
		if err != nil {
			return "", err
		}
		e.w.writeRaw(text)
	}
	return e.w.String(), nil
}

// renderObjectBody renders every field of a nested object, each on its own
// line at indent, per §4.6, with delim active for the fields' arrays.
func (e *encoder) renderObjectBody(o *Object, indent int, delim Delimiter) error {
	for _, name := range o.Keys() {
		v, _ := o.Get(name)
		keyText := encodeKeyText(name, byte(delim))
		e.w.writeNewline()
		e.w.writeIndent(indent)
		if err := e.renderFieldBody(keyText, v, indent, delim); err != nil {
			return err
		}
	}
	return nil
}

// renderFieldBody writes "keyText" followed by its value; it assumes the
// caller already wrote the correct leading indentation (or dash prefix).
func (e *encoder) renderFieldBody(keyText string, v *Value, indent int, delim Delimiter) error {
	switch v.Kind {
	case KindArray:
		return e.renderArray(keyText, v, indent, delim)
	case KindObject:
		if v.objVal.Len() == 0 {
			return &EncodingError{Path: keyText, Msg: "empty nested object has no TOON surface (§6 has no production for it)"}
		}
		e.w.writeKey(keyText)
		return e.renderObjectBody(v.objVal, indent+1, delim)
	default:
		text, err := e.renderPrimitiveText(v, ctxObjectValue, byte(delim))
		if err != nil {
			return err
		}
		e.w.writeKeyValue(keyText, text)
		return nil
	}
}

func (e *encoder) renderPrimitiveText(v *Value, ctx quoteContext, delim byte) (string, error) {
	switch v.Kind {
	case KindNull:
		return "null", nil
	case KindBool:
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	case KindNumber:
		return v.Number(), nil
	case KindString:
		return encodeStringText(v.Str(), ctx, delim), nil
	default:
		return "", &EncodingError{Msg: "expected a primitive value"}
	}
}

// renderArray dispatches to the format selected by the array-format selector.
// key is the already-computed field-name text, or "" when the array has no
// key (document root, or an element directly under a dash).
func (e *encoder) renderArray(key string, arr *Value, indent int, delim Delimiter) error {
	elems := arr.Elements()
	switch selectArrayFormat(elems) {
	case formatInline:
		return e.renderInlineArray(key, elems, delim)
	case formatTabular:
		return e.renderTabularArray(key, elems, indent, delim)
	default:
		return e.renderExpandedArray(key, elems, indent)
	}
}

func (e *encoder) renderInlineArray(key string, elems []*Value, delim Delimiter) error {
	header := fmt.Sprintf("%s[%d%s]:", key, len(elems), headerDelimSuffix(delim))
	e.w.writeRaw(header)
	if len(elems) == 0 {
		return nil
	}
	e.w.writeRaw(" ")
	for i, el := range elems {
		if i > 0 {
			e.w.writeDelimiter(byte(delim))
		}
		text, err := e.renderPrimitiveText(el, ctxArrayElement, byte(delim))
		if err != nil {
			return err
		}
		e.w.writeRaw(text)
	}
	return nil
}

func (e *encoder) renderTabularArray(key string, elems []*Value, indent int, delim Delimiter) error {
	fields := elems[0].objVal.Keys()
	rendered := make([]string, len(fields))
	for i, f := range fields {
		rendered[i] = encodeKeyText(f, byte(delim))
	}
	header := fmt.Sprintf("%s[%d%s]{%s}:", key, len(elems), headerDelimSuffix(delim), strings.Join(rendered, string(byte(delim))))
	e.w.writeRaw(header)
	for _, el := range elems {
		e.w.writeNewline()
		e.w.writeIndent(indent + 1)
		for i, f := range fields {
			if i > 0 {
				e.w.writeDelimiter(byte(delim))
			}
			fv, _ := el.objVal.Get(f)
			text, err := e.renderPrimitiveText(fv, ctxObjectValue, byte(delim))
			if err != nil {
				return err
			}
			e.w.writeRaw(text)
		}
	}
	return nil
}

func (e *encoder) renderExpandedArray(key string, elems []*Value, indent int) error {
	header := fmt.Sprintf("%s[%d]:", key, len(elems))
	e.w.writeRaw(header)
	for _, el := range elems {
		e.w.writeNewline()
		e.w.writeIndent(indent + 1)
		e.w.writeRaw("- ")
		switch el.Kind {
		case KindArray:
			// nested-array delimiter reset (§4.5): always COMMA inside a dash element.
			if err := e.renderArray("", el, indent+1, Comma); err != nil {
				return err
			}
		case KindObject:
			if err := e.renderExpandedElementObject(el.objVal, indent+1); err != nil {
				return err
			}
		default:
			text, err := e.renderPrimitiveText(el, ctxArrayElement, byte(Comma))
			if err != nil {
				return err
			}
			e.w.writeRaw(text)
		}
	}
	return nil
}

// renderExpandedElementObject writes the first field on the dash line and any
// remaining fields one level deeper, per §4.5's structured-element rule.
func (e *encoder) renderExpandedElementObject(o *Object, dashIndent int) error {
	for i, name := range o.Keys() {
		v, _ := o.Get(name)
		keyText := encodeKeyText(name, byte(Comma))
		if i > 0 {
			e.w.writeNewline()
			e.w.writeIndent(dashIndent + 1)
		}
		if err := e.renderFieldBody(keyText, v, dashIndent+1, Comma); err != nil {
			return err
		}
	}
	return nil
}

// foldValue applies encoder-side key folding (§4.7) to a whole tree.
func foldValue(v *Value, maxDepth int) *Value {
	switch v.Kind {
	case KindObject:
		return &Value{Kind: KindObject, objVal: foldObject(v.objVal, maxDepth)}
	case KindArray:
		elems := make([]*Value, len(v.arrVal))
		for i, e := range v.arrVal {
			elems[i] = foldValue(e, maxDepth)
		}
		return &Value{Kind: KindArray, arrVal: elems}
	default:
		return v
	}
}

func foldObject(o *Object, maxDepth int) *Object {
	result := NewObject()
	for _, name := range o.Keys() {
		v, _ := o.Get(name)
		key, leaf := foldChain(name, v, maxDepth)
		// A collision after collapsing two different chains into the same
		// dotted key is a bug in the input tree, not something to hide.
		if err := result.Set(key, leaf); err != nil {
			result.Overwrite(key, leaf)
		}
	}
	return result
}

// foldChain walks the single-field-object chain starting at value v (whose
// first segment name is prefix), stopping at maxDepth segments (0 = unbounded)
// or the first segment that fails the fold-safe grammar, then recursively
// folds whatever object remains at the leaf.
func foldChain(prefix string, v *Value, maxDepth int) (string, *Value) {
	if !foldSafeRe.MatchString(prefix) {
		return prefix, foldValue(v, maxDepth)
	}
	depth := 1
	for v.Kind == KindObject && v.objVal.Len() == 1 && (maxDepth <= 0 || depth < maxDepth) {
		onlyName := v.objVal.Keys()[0]
		if !foldSafeRe.MatchString(onlyName) {
			break
		}
		child, _ := v.objVal.Get(onlyName)
		prefix = prefix + "." + onlyName
		v = child
		depth++
	}
	return prefix, foldValue(v, maxDepth)
}
