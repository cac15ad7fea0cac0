package toon

import "testing"

func TestSplitDelimitedBasic(t *testing.T) {
	toks, err := splitDelimited("a,b,c", Comma)
	if err != nil {
		t.Fatalf("splitDelimited: %v", err)
	}
	if len(toks) != 3 || toks[0].text != "a" || toks[2].text != "c" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestSplitDelimitedQuotedFieldWithDelimiter(t *testing.T) {
	toks, err := splitDelimited(`"a,b",c`, Comma)
	if err != nil {
		t.Fatalf("splitDelimited: %v", err)
	}
	if len(toks) != 2 || !toks[0].quoted || toks[0].text != "a,b" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestSplitDelimitedTrimsWhitespace(t *testing.T) {
	toks, err := splitDelimited("a , b", Comma)
	if err != nil {
		t.Fatalf("splitDelimited: %v", err)
	}
	if toks[0].text != "a" || toks[1].text != "b" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestSplitDelimitedTabDelimiterKeepsSpaces(t *testing.T) {
	toks, err := splitDelimited("a b\tc d", Tab)
	if err != nil {
		t.Fatalf("splitDelimited: %v", err)
	}
	if toks[0].text != "a b" || toks[1].text != "c d" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestSplitDelimitedUnterminatedQuote(t *testing.T) {
	_, err := splitDelimited(`"a,b`, Comma)
	if err == nil {
		t.Error("expected an error for an unterminated quoted field")
	}
}

func TestSplitDelimitedTrailingDelimiterYieldsEmptyField(t *testing.T) {
	toks, err := splitDelimited("a,b,", Comma)
	if err != nil {
		t.Fatalf("splitDelimited: %v", err)
	}
	if len(toks) != 3 || toks[2].text != "" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}
