package toon

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
	}{
		{"flat object", map[string]interface{}{"name": "Ada", "age": float64(36)}},
		{"nested object", map[string]interface{}{"user": map[string]interface{}{"name": "Ada", "active": true}}},
		{"inline array", map[string]interface{}{"tags": []interface{}{"a", "b", "c"}}},
		{"tabular array", map[string]interface{}{"users": []interface{}{
			map[string]interface{}{"id": float64(1), "name": "Ada"},
			map[string]interface{}{"id": float64(2), "name": "Grace"},
		}}},
		{"null value", map[string]interface{}{"deleted": nil}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := Encode(tc.v)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode(%q): %v", encoded, err)
			}
			generic, err := ToGeneric(decoded)
			if err != nil {
				t.Fatalf("ToGeneric: %v", err)
			}
			reencoded, err := Encode(generic)
			if err != nil {
				t.Fatalf("re-Encode: %v", err)
			}
			if reencoded != encoded {
				t.Errorf("round trip not fixed-point:\nfirst:  %q\nsecond: %q", encoded, reencoded)
			}
		})
	}
}

func TestEncodeFlatObject(t *testing.T) {
	v := map[string]interface{}{"a": float64(1), "b": "two"}
	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(got, "a: 1") || !strings.Contains(got, "b: two") {
		t.Errorf("unexpected encoding: %q", got)
	}
}

func TestDecodeInlineArray(t *testing.T) {
	v, err := Decode("tags[3]: a,b,c")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	obj := v.Object()
	tags, ok := obj.Get("tags")
	if !ok {
		t.Fatalf("missing tags field")
	}
	if len(tags.Elements()) != 3 {
		t.Fatalf("want 3 elements, got %d", len(tags.Elements()))
	}
	if tags.Elements()[1].Str() != "b" {
		t.Errorf("want %q, got %q", "b", tags.Elements()[1].Str())
	}
}

func TestDecodeStrictLengthMismatch(t *testing.T) {
	_, err := Decode("tags[3]: a,b")
	if err == nil {
		t.Fatal("expected a strict-mode length mismatch error")
	}
}

func TestDecodeNonStrictLengthMismatch(t *testing.T) {
	v, err := Decode("tags[3]: a,b", WithStrict(false))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tags, _ := v.Object().Get("tags")
	if len(tags.Elements()) != 2 {
		t.Errorf("want 2 elements, got %d", len(tags.Elements()))
	}
}

func TestDecodeQuotedValueStaysString(t *testing.T) {
	v, err := Decode(`flag: "true"`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	fv, _ := v.Object().Get("flag")
	if fv.Kind != KindString || fv.Str() != "true" {
		t.Errorf("want quoted string \"true\", got kind=%v val=%v", fv.Kind, fv.Str())
	}
}

func TestDecodeIntoStruct(t *testing.T) {
	type user struct {
		Name   string `toon:"name"`
		Age    int    `toon:"age"`
		Active bool   `toon:"active"`
	}
	var u user
	if err := DecodeInto("name: Ada\nage: 36\nactive: true", &u); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	if u.Name != "Ada" || u.Age != 36 || !u.Active {
		t.Errorf("unexpected struct: %+v", u)
	}
}

func TestEncodeStruct(t *testing.T) {
	type user struct {
		Name string `toon:"name"`
		Age  int    `toon:"age,omitempty"`
	}
	got, err := Encode(user{Name: "Ada"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(got, "age") {
		t.Errorf("expected age to be omitted: %q", got)
	}
	if !strings.Contains(got, "name: Ada") {
		t.Errorf("missing name field: %q", got)
	}
}

func TestKeyFoldingRoundTrip(t *testing.T) {
	v := map[string]interface{}{"a": map[string]interface{}{"b": map[string]interface{}{"c": float64(1)}}}
	encoded, err := Encode(v, WithKeyFolding(KeyFoldingSafe))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(encoded, "a.b.c: 1") {
		t.Errorf("expected folded key a.b.c, got %q", encoded)
	}
	decoded, err := Decode(encoded, WithPathExpansion(true))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a, _ := decoded.Object().Get("a")
	b, _ := a.Object().Get("b")
	c, _ := b.Object().Get("c")
	if c.Number() != "1" {
		t.Errorf("want expanded path a.b.c == 1, got %v", c)
	}
}

func TestFlattenDepthLimitsFolding(t *testing.T) {
	v := map[string]interface{}{"a": map[string]interface{}{"b": map[string]interface{}{"c": float64(1)}}}
	encoded, err := Encode(v, WithKeyFolding(KeyFoldingSafe), WithFlattenDepth(2))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(encoded, "a.b:") {
		t.Errorf("expected folding capped at depth 2, got %q", encoded)
	}
	if strings.Contains(encoded, "a.b.c") {
		t.Errorf("folding exceeded flattenDepth: %q", encoded)
	}
}
