package toon

import (
	"encoding/json"
	"reflect"
	"sort"
)

// ToValue normalizes an arbitrary Go value into a Value tree (§3's data model).
// Structs are read via "toon" struct tags, falling back to "json" tags, with
// "omitempty" support; maps are sorted by key for determinism since Go maps
// carry no order of their own. A cycle in the pointer graph is reported as an
// EncodingError rather than recursing forever.
func ToValue(v interface{}) (*Value, error) {
	seen := make(map[uintptr]bool)
	return normalize(reflect.ValueOf(v), seen, "$")
}

func normalize(rv reflect.Value, seen map[uintptr]bool, path string) (*Value, error) {
	if !rv.IsValid() {
		return NullValue(), nil
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return NullValue(), nil
		}
		if rv.Kind() == reflect.Ptr {
			ptr := rv.Pointer()
			if seen[ptr] {
				return nil, &EncodingError{Path: path, Msg: "circular reference"}
			}
			seen[ptr] = true
			defer delete(seen, ptr)
		}
		return normalize(rv.Elem(), seen, path)
	case reflect.Bool:
		return BoolValue(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberFromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NumberFromInt(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return NumberFromFloat(rv.Float()), nil
	case reflect.String:
		return StringValue(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ArrayValue(), nil
		}
		elems := make([]*Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := normalize(rv.Index(i), seen, path)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return ArrayValue(elems...), nil
	case reflect.Map:
		return normalizeMap(rv, seen, path)
	case reflect.Struct:
		return normalizeStruct(rv, seen, path)
	default:
		return normalizeFallback(rv, path)
	}
}

func normalizeMap(rv reflect.Value, seen map[uintptr]bool, path string) (*Value, error) {
	keys := rv.MapKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = keyString(k)
	}
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })

	obj := NewObject()
	for _, i := range order {
		val, err := normalize(rv.MapIndex(keys[i]), seen, path+"."+names[i])
		if err != nil {
			return nil, err
		}
		obj.Overwrite(names[i], val)
	}
	return ObjectValue(obj), nil
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	b, err := json.Marshal(k.Interface())
	if err != nil {
		return ""
	}
	return string(b)
}

func normalizeStruct(rv reflect.Value, seen map[uintptr]bool, path string) (*Value, error) {
	t := rv.Type()
	obj := NewObject()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name, omitempty, skip := fieldTag(f)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitempty && isEmptyValue(fv) {
			continue
		}
		val, err := normalize(fv, seen, path+"."+name)
		if err != nil {
			return nil, err
		}
		obj.Overwrite(name, val)
	}
	return ObjectValue(obj), nil
}

func fieldTag(f reflect.StructField) (name string, omitempty bool, skip bool) {
	tag := f.Tag.Get("toon")
	if tag == "" {
		tag = f.Tag.Get("json")
	}
	if tag == "-" {
		return "", false, true
	}
	name = f.Name
	if tag != "" {
		parts := splitTag(tag)
		if parts[0] != "" {
			name = parts[0]
		}
		for _, opt := range parts[1:] {
			if opt == "omitempty" {
				omitempty = true
			}
		}
	}
	return name, omitempty, false
}

func splitTag(tag string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			parts = append(parts, tag[start:i])
			start = i + 1
		}
	}
	parts = append(parts, tag[start:])
	return parts
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

// normalizeFallback handles the remaining Kinds via a JSON round trip, so it
// accepts exactly what encoding/json accepts (e.g. uintptr); Kinds that
// encoding/json rejects (complex numbers, chan, func) yield an EncodingError.
func normalizeFallback(rv reflect.Value, path string) (*Value, error) {
	b, err := json.Marshal(rv.Interface())
	if err != nil {
		return nil, &EncodingError{Path: path, Msg: err.Error()}
	}
	var generic interface{}
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, &EncodingError{Path: path, Msg: err.Error()}
	}
	return normalize(reflect.ValueOf(generic), map[uintptr]bool{}, path)
}
