package toon

import "testing"

func obj(pairs ...interface{}) *Value {
	o := NewObject()
	for i := 0; i < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(*Value))
	}
	return ObjectValue(o)
}

func TestSelectArrayFormat(t *testing.T) {
	tests := []struct {
		name string
		elems []*Value
		want arrayFormat
	}{
		{"empty", nil, formatInline},
		{"all primitive", []*Value{StringValue("a"), NumberFromInt(1)}, formatInline},
		{"uniform objects", []*Value{
			obj("id", NumberFromInt(1), "name", StringValue("a")),
			obj("id", NumberFromInt(2), "name", StringValue("b")),
		}, formatTabular},
		{"mismatched fields", []*Value{
			obj("id", NumberFromInt(1)),
			obj("name", StringValue("b")),
		}, formatExpanded},
		{"nested object field", []*Value{
			obj("id", NumberFromInt(1), "meta", obj("x", NumberFromInt(1))),
		}, formatExpanded},
		{"mixed primitive and object", []*Value{StringValue("a"), obj("id", NumberFromInt(1))}, formatExpanded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := selectArrayFormat(tc.elems)
			if got != tc.want {
				t.Errorf("selectArrayFormat(%s) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}
