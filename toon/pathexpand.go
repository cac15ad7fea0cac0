package toon

import "strings"

// expandPaths implements the decoder-side inverse of key folding (§4.7):
// object keys containing an unquoted "." are split into a chain of nested
// single-field objects and merged into the surrounding object. Quoted keys
// are left untouched even if they contain dots.
func expandPaths(v *Value, strict bool) (*Value, error) {
	switch v.Kind {
	case KindObject:
		return expandObject(v.objVal, strict)
	case KindArray:
		elems := make([]*Value, len(v.arrVal))
		for i, e := range v.arrVal {
			ev, err := expandPaths(e, strict)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return ArrayValue(elems...), nil
	default:
		return v, nil
	}
}

func expandObject(o *Object, strict bool) (*Value, error) {
	result := NewObject()
	for _, name := range o.Keys() {
		v, _ := o.Get(name)
		expanded, err := expandPaths(v, strict)
		if err != nil {
			return nil, err
		}
		if o.IsQuoted(name) || !strings.Contains(name, ".") {
			if err := mergeInto(result, name, false, expanded, strict); err != nil {
				return nil, err
			}
			continue
		}
		segments := strings.Split(name, ".")
		if err := mergePath(result, segments, expanded, strict); err != nil {
			return nil, err
		}
	}
	return ObjectValue(result), nil
}

// mergePath merges expanded at the end of the dotted-key chain segments into
// dest, creating intermediate objects as needed.
func mergePath(dest *Object, segments []string, leaf *Value, strict bool) error {
	head := segments[0]
	if len(segments) == 1 {
		return mergeInto(dest, head, false, leaf, strict)
	}
	existing, ok := dest.Get(head)
	if !ok {
		child := NewObject()
		if err := mergePath(child, segments[1:], leaf, strict); err != nil {
			return err
		}
		return mergeInto(dest, head, false, ObjectValue(child), strict)
	}
	if existing.Kind != KindObject {
		if strict {
			return &ValidationError{Msg: "path expansion conflict at key " + head}
		}
		child := NewObject()
		if err := mergePath(child, segments[1:], leaf, strict); err != nil {
			return err
		}
		dest.Overwrite(head, ObjectValue(child))
		return nil
	}
	return mergePath(existing.objVal, segments[1:], leaf, strict)
}

// mergeInto sets name to v in dest, applying strict-mode duplicate-key
// rejection or non-strict last-writer-wins, with a recursive object-merge
// when both the existing and incoming values are objects.
func mergeInto(dest *Object, name string, quoted bool, v *Value, strict bool) error {
	existing, ok := dest.Get(name)
	if !ok {
		if quoted {
			return dest.SetQuoted(name, v)
		}
		return dest.Set(name, v)
	}
	if existing.Kind == KindObject && v.Kind == KindObject {
		for _, sub := range v.objVal.Keys() {
			sv, _ := v.objVal.Get(sub)
			if err := mergeInto(existing.objVal, sub, v.objVal.IsQuoted(sub), sv, strict); err != nil {
				return err
			}
		}
		return nil
	}
	if strict {
		return &ValidationError{Msg: "duplicate key after path expansion: " + name}
	}
	dest.Overwrite(name, v)
	return nil
}
