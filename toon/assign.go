package toon

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// AssignTo assigns a decoded Value tree into target, which must be a non-nil
// pointer. Struct fields are matched by "toon"/"json" tag first, then by a
// case-insensitive name match, mirroring the reflect-dispatch-by-Kind approach
// used across the corpus's other decoders.
func AssignTo(v *Value, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &DecodingError{Msg: "target must be a non-nil pointer"}
	}
	return assign(v, rv.Elem(), "$")
}

func assign(v *Value, dst reflect.Value, path string) error {
	if dst.Kind() == reflect.Ptr {
		if v.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(v, dst.Elem(), path)
	}
	if dst.Kind() == reflect.Interface && dst.NumMethod() == 0 {
		generic, err := toGeneric(v)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(generic))
		return nil
	}

	switch v.Kind {
	case KindNull:
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	case KindBool:
		if dst.Kind() != reflect.Bool {
			return typeMismatch(path, "bool", dst)
		}
		dst.SetBool(v.Bool())
		return nil
	case KindNumber:
		return assignNumber(v, dst, path)
	case KindString:
		if dst.Kind() != reflect.String {
			return typeMismatch(path, "string", dst)
		}
		dst.SetString(v.Str())
		return nil
	case KindArray:
		return assignArray(v, dst, path)
	case KindObject:
		return assignObject(v, dst, path)
	}
	return &DecodingError{Path: path, Msg: "unrecognized value kind"}
}

func assignNumber(v *Value, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		f, err := v.Float64()
		if err != nil {
			return &DecodingError{Path: path, Msg: err.Error()}
		}
		dst.SetFloat(f)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := v.Int64()
		if err != nil {
			return &DecodingError{Path: path, Msg: "expected an integer, got " + v.Number()}
		}
		dst.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := v.Int64()
		if err != nil || i < 0 {
			return &DecodingError{Path: path, Msg: "expected an unsigned integer, got " + v.Number()}
		}
		dst.SetUint(uint64(i))
		return nil
	default:
		return typeMismatch(path, "number", dst)
	}
}

func assignArray(v *Value, dst reflect.Value, path string) error {
	elems := v.Elements()
	switch dst.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
		for i, e := range elems {
			if err := assign(e, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Array:
		if dst.Len() != len(elems) {
			return &DecodingError{Path: path, Msg: "array length mismatch"}
		}
		for i, e := range elems {
			if err := assign(e, dst.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return typeMismatch(path, "array", dst)
	}
}

func assignObject(v *Value, dst reflect.Value, path string) error {
	obj := v.Object()
	switch dst.Kind() {
	case reflect.Struct:
		fields := structFieldIndex(dst.Type())
		var assignErr error
		obj.Range(func(name string, _ bool, fv *Value) bool {
			idx, ok := fields[strings.ToLower(name)]
			if !ok {
				return true // unknown field, ignored
			}
			assignErr = assign(fv, dst.Field(idx), path+"."+name)
			return assignErr == nil
		})
		return assignErr
	case reflect.Map:
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(dst.Type()))
		}
		elemType := dst.Type().Elem()
		var assignErr error
		obj.Range(func(name string, _ bool, fv *Value) bool {
			elem := reflect.New(elemType).Elem()
			if err := assign(fv, elem, path+"."+name); err != nil {
				assignErr = err
				return false
			}
			dst.SetMapIndex(reflect.ValueOf(name).Convert(dst.Type().Key()), elem)
			return true
		})
		return assignErr
	default:
		return typeMismatch(path, "object", dst)
	}
}

func structFieldIndex(t reflect.Type) map[string]int {
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, _, skip := fieldTag(f)
		if skip {
			continue
		}
		m[strings.ToLower(name)] = i
	}
	return m
}

func typeMismatch(path, from string, dst reflect.Value) error {
	return &DecodingError{Path: path, Msg: fmt.Sprintf("cannot assign %s into %s", from, dst.Type())}
}

// ToGeneric converts a Value tree into plain interface{} building blocks
// (map[string]interface{}, []interface{}, string, float64, bool, nil),
// following encoding/json's own convention for untyped decode targets.
func ToGeneric(v *Value) (interface{}, error) {
	return toGeneric(v)
}

func toGeneric(v *Value) (interface{}, error) {
	switch v.Kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.Bool(), nil
	case KindNumber:
		var f float64
		if err := json.Unmarshal([]byte(v.Number()), &f); err != nil {
			return nil, &DecodingError{Msg: err.Error()}
		}
		return f, nil
	case KindString:
		return v.Str(), nil
	case KindArray:
		out := make([]interface{}, len(v.Elements()))
		for i, e := range v.Elements() {
			gv, err := toGeneric(e)
			if err != nil {
				return nil, err
			}
			out[i] = gv
		}
		return out, nil
	case KindObject:
		out := make(map[string]interface{}, v.Object().Len())
		var err error
		v.Object().Range(func(name string, _ bool, fv *Value) bool {
			var gv interface{}
			gv, err = toGeneric(fv)
			out[name] = gv
			return err == nil
		})
		return out, err
	}
	return nil, &DecodingError{Msg: "unrecognized value kind"}
}
