package toon

import "fmt"

// Delimiter is the active field separator for inline arrays and tabular rows.
type Delimiter byte

const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
	Pipe  Delimiter = '|'
)

// KeyFolding controls encoder-side collapsing of single-field object chains
// into dotted keys (§4.7).
type KeyFolding int

const (
	KeyFoldingOff KeyFolding = iota
	KeyFoldingSafe
)

// Config is the codec's enumerated options table (§3).
type Config struct {
	Strict        bool
	Delimiter     Delimiter
	IndentSize    int
	KeyFolding    KeyFolding
	FlattenDepth  int // 0 means unbounded
	PathExpansion bool
}

// Option mutates a Config being built by NewConfig.
type Option func(*Config)

func WithStrict(v bool) Option             { return func(c *Config) { c.Strict = v } }
func WithDelimiter(d Delimiter) Option     { return func(c *Config) { c.Delimiter = d } }
func WithIndentSize(n int) Option          { return func(c *Config) { c.IndentSize = n } }
func WithKeyFolding(k KeyFolding) Option   { return func(c *Config) { c.KeyFolding = k } }
func WithFlattenDepth(n int) Option        { return func(c *Config) { c.FlattenDepth = n } }
func WithPathExpansion(v bool) Option      { return func(c *Config) { c.PathExpansion = v } }

// NewConfig builds a validated Config from defaults (strict=true, delimiter=COMMA,
// indentSize=2, keyFolding=OFF, flattenDepth=unbounded, pathExpansion=false)
// overridden by opts, in order.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Strict:     true,
		Delimiter:  Comma,
		IndentSize: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.IndentSize < 1 || c.IndentSize > 16 {
		return nil, fmt.Errorf("toon: indentSize must be between 1 and 16, got %d", c.IndentSize)
	}
	switch c.Delimiter {
	case Comma, Tab, Pipe:
	default:
		return nil, fmt.Errorf("toon: invalid delimiter %q", byte(c.Delimiter))
	}
	if c.FlattenDepth < 0 {
		return nil, fmt.Errorf("toon: flattenDepth must be >= 0, got %d", c.FlattenDepth)
	}
	return c, nil
}
