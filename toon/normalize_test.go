package toon

import "testing"

func TestToValueMapSortsKeys(t *testing.T) {
	v, err := ToValue(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	keys := v.Object().Keys()
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestToValueStructOmitempty(t *testing.T) {
	type s struct {
		Name string `toon:"name"`
		Age  int    `toon:"age,omitempty"`
	}
	v, err := ToValue(s{Name: "Ada"})
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	if _, ok := v.Object().Get("age"); ok {
		t.Error("expected age to be omitted")
	}
	name, ok := v.Object().Get("name")
	if !ok || name.Str() != "Ada" {
		t.Errorf("unexpected name field: %v", name)
	}
}

func TestToValueCircularReference(t *testing.T) {
	type node struct {
		Next *node
	}
	n := &node{}
	n.Next = n
	if _, err := ToValue(n); err == nil {
		t.Error("expected a circular-reference error")
	}
}

func TestToValueNilSliceEncodesEmptyArray(t *testing.T) {
	type s struct {
		Items []string `toon:"items"`
	}
	v, err := ToValue(s{})
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	items, _ := v.Object().Get("items")
	if items.Kind != KindArray || len(items.Elements()) != 0 {
		t.Errorf("expected an empty array, got %v", items)
	}
}
