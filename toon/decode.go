package toon

// decodeDocument is the decoder's entry point: line-scan, then recursive-descent
// parse, then optional path-expansion. See lexer.go, parser.go, split.go for the
// three components this composes (§4.8, §4.9, §4.10).
func decodeDocument(text string, cfg *Config) (*Value, error) {
	return parseDocument(text, cfg)
}
