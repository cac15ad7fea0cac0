// Command toon converts between JSON and TOON on the command line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/paularlott/toon/toon"
)

func main() {
	var (
		decode     = flag.Bool("d", false, "decode TOON to JSON instead of encoding JSON to TOON")
		strict     = flag.Bool("strict", true, "enable strict-mode validation on decode")
		delimiter  = flag.String("delimiter", ",", "field delimiter: , (comma), tab (the word or a literal tab character), or | (pipe)")
		indent     = flag.Int("indent", 2, "spaces per indentation level")
		keyFold    = flag.Bool("fold", false, "fold single-field object chains into dotted keys on encode")
		expandKeys = flag.Bool("expand", false, "expand dotted keys into nested objects on decode")
	)
	flag.Parse()

	delim, err := parseDelimiter(*delimiter)
	if err != nil {
		log.Fatalf("toon[%s]: %v", correlationID(), err)
	}

	opts := []toon.Option{
		toon.WithStrict(*strict),
		toon.WithDelimiter(delim),
		toon.WithIndentSize(*indent),
		toon.WithPathExpansion(*expandKeys),
	}
	if *keyFold {
		opts = append(opts, toon.WithKeyFolding(toon.KeyFoldingSafe))
	}

	files := flag.Args()
	if len(files) == 0 {
		if err := convertOne(correlationID(), "<stdin>", os.Stdin, os.Stdout, *decode, opts...); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Batch mode: one file per argument, each conversion tagged with its own
	// correlation id so a failure in one document's log line can be matched
	// back to the file that produced it.
	failed := false
	for _, path := range files {
		id := correlationID()
		f, err := os.Open(path)
		if err != nil {
			log.Printf("toon[%s]: %s: %v", id, path, err)
			failed = true
			continue
		}
		err = convertOne(id, path, f, os.Stdout, *decode, opts...)
		f.Close()
		if err != nil {
			log.Print(err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// correlationID mints a UUIDv7 for a single conversion's log lines, mirroring
// ai/openai/response_manager.go's use of uuid.NewV7() to correlate streamed
// response chunks under one identifier.
func correlationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

func convertOne(id, path string, r io.Reader, w io.Writer, decode bool, opts ...toon.Option) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("toon[%s]: %s: reading input: %w", id, path, err)
	}
	var output string
	if decode {
		output, err = decodeToJSON(string(input), opts...)
	} else {
		output, err = encodeFromJSON(input, opts...)
	}
	if err != nil {
		return fmt.Errorf("toon[%s]: %s: %w", id, path, err)
	}
	fmt.Fprintln(w, output)
	return nil
}

func parseDelimiter(s string) (toon.Delimiter, error) {
	switch s {
	case ",":
		return toon.Comma, nil
	case "\t", "tab":
		return toon.Tab, nil
	case "|":
		return toon.Pipe, nil
	default:
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
}

func encodeFromJSON(input []byte, opts ...toon.Option) (string, error) {
	var generic interface{}
	if err := json.Unmarshal(input, &generic); err != nil {
		return "", fmt.Errorf("parsing JSON: %w", err)
	}
	return toon.Encode(generic, opts...)
}

func decodeToJSON(input string, opts ...toon.Option) (string, error) {
	v, err := toon.Decode(input, opts...)
	if err != nil {
		return "", fmt.Errorf("parsing TOON: %w", err)
	}
	generic, err := toon.ToGeneric(v)
	if err != nil {
		return "", fmt.Errorf("converting decoded value: %w", err)
	}
	b, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering JSON: %w", err)
	}
	return string(b), nil
}
