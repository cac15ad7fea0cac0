// Package toon implements the TOON (Token-Oriented Object Notation) format.
// TOON is a line-oriented, indentation-based text format that encodes the JSON data model
// with explicit structure and minimal quoting.
package toon

// Encode normalizes v into a Value tree and renders it as TOON text.
func Encode(v interface{}, opts ...Option) (string, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return "", err
	}
	val, err := ToValue(v)
	if err != nil {
		return "", err
	}
	return EncodeValue(val, cfg)
}

// EncodeValue renders an already-built Value tree as TOON text, applying
// key folding first when cfg.KeyFolding is KeyFoldingSafe.
func EncodeValue(v *Value, cfg *Config) (string, error) {
	if cfg == nil {
		var err error
		cfg, err = NewConfig()
		if err != nil {
			return "", err
		}
	}
	if cfg.KeyFolding == KeyFoldingSafe {
		v = foldValue(v, cfg.FlattenDepth)
	}
	return newEncoder(cfg).renderDocument(v)
}

// Decode parses TOON text into a Value tree.
func Decode(data string, opts ...Option) (*Value, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return DecodeValue(data, cfg)
}

// DecodeValue parses TOON text into a Value tree using an explicit Config.
func DecodeValue(data string, cfg *Config) (*Value, error) {
	if cfg == nil {
		var err error
		cfg, err = NewConfig()
		if err != nil {
			return nil, err
		}
	}
	return decodeDocument(data, cfg)
}

// DecodeInto parses TOON text and assigns the result into target, which must
// be a non-nil pointer.
func DecodeInto(data string, target interface{}, opts ...Option) error {
	v, err := Decode(data, opts...)
	if err != nil {
		return err
	}
	return AssignTo(v, target)
}
