package toon

import (
	"strings"
	"testing"
)

func TestRenderTabularArray(t *testing.T) {
	v := ArrayValue(
		obj("id", NumberFromInt(1), "name", StringValue("Ada")),
		obj("id", NumberFromInt(2), "name", StringValue("Grace")),
	)
	root := NewObject()
	root.Set("users", v)
	cfg, _ := NewConfig()
	got, err := EncodeValue(ObjectValue(root), cfg)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if !strings.Contains(got, "users[2]{id,name}:") {
		t.Errorf("missing tabular header: %q", got)
	}
	if !strings.Contains(got, "1,Ada") || !strings.Contains(got, "2,Grace") {
		t.Errorf("missing rows: %q", got)
	}
}

func TestRenderExpandedArrayForMismatchedFields(t *testing.T) {
	v := ArrayValue(
		obj("id", NumberFromInt(1)),
		obj("name", StringValue("b")),
	)
	root := NewObject()
	root.Set("items", v)
	cfg, _ := NewConfig()
	got, err := EncodeValue(ObjectValue(root), cfg)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if !strings.Contains(got, "items[2]:") || !strings.Contains(got, "- id: 1") {
		t.Errorf("unexpected expanded rendering: %q", got)
	}
}

func TestRenderInlineArrayCustomDelimiter(t *testing.T) {
	root := NewObject()
	root.Set("tags", ArrayValue(StringValue("a"), StringValue("b")))
	cfg, _ := NewConfig(WithDelimiter(Pipe))
	got, err := EncodeValue(ObjectValue(root), cfg)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if !strings.Contains(got, "tags[2|]: a|b") {
		t.Errorf("unexpected pipe-delimited rendering: %q", got)
	}
}

func TestEncodeEmptyNestedObjectRejected(t *testing.T) {
	root := NewObject()
	root.Set("a", ObjectValue(NewObject()))
	root.Set("b", NumberFromInt(1))
	cfg, _ := NewConfig()
	if _, err := EncodeValue(ObjectValue(root), cfg); err == nil {
		t.Error("expected an EncodingError for a nested empty object")
	} else if _, ok := err.(*EncodingError); !ok {
		t.Errorf("want *EncodingError, got %T: %v", err, err)
	}
}

func TestEncodeRootEmptyObjectRoundTrips(t *testing.T) {
	cfg, _ := NewConfig()
	got, err := EncodeValue(ObjectValue(NewObject()), cfg)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if got != "" {
		t.Errorf("want empty string for a root empty object, got %q", got)
	}
	decoded, err := DecodeValue(got, cfg)
	if err != nil {
		t.Fatalf("DecodeValue(%q): %v", got, err)
	}
	if decoded.Kind != KindObject || decoded.Object().Len() != 0 {
		t.Errorf("want an empty object back from %q, got %v", got, decoded)
	}
}

func TestFoldChainLeavesUnsafeHeadUnfolded(t *testing.T) {
	inner := NewObject()
	inner.Set("c", NumberFromInt(1))
	root := NewObject()
	root.SetQuoted("a b", ObjectValue(inner))
	cfg, _ := NewConfig(WithKeyFolding(KeyFoldingSafe))
	got, err := EncodeValue(ObjectValue(root), cfg)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if strings.Contains(got, "a b.c") {
		t.Errorf("unsafe head segment should not be folded into a dotted key: %q", got)
	}
	decoded, err := DecodeValue(got, cfg)
	if err != nil {
		t.Fatalf("DecodeValue(%q): %v", got, err)
	}
	a, ok := decoded.Object().Get("a b")
	if !ok {
		t.Fatalf("round trip lost key %q: %v -> %v", got, root, decoded)
	}
	c, ok := a.Object().Get("c")
	if !ok || c.Number() != "1" {
		t.Errorf("round trip lost nested field: %q -> %v", got, a)
	}
}

func TestRenderNestedArrayResetsDelimiterToComma(t *testing.T) {
	root := NewObject()
	root.Set("matrix", ArrayValue(ArrayValue(NumberFromInt(1), NumberFromInt(2))))
	cfg, _ := NewConfig(WithDelimiter(Pipe))
	got, err := EncodeValue(ObjectValue(root), cfg)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if !strings.Contains(got, "- [2]: 1,2") {
		t.Errorf("expected nested array to reset to comma delimiter: %q", got)
	}
}
