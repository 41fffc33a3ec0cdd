package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrNoConfig is returned by Load when no configuration file existed.
// A default file has been written in its place for the user to edit.
var ErrNoConfig = errors.New("no config file yet; defaults written")

// SchemaError reports a configuration file that exists but does not match
// the expected shape: bad JSON, unknown keys, wrong value types.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("config file %s does not match the expected schema: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Load reads the configuration at path. If the file does not exist a default
// file is written there and ErrNoConfig is returned instead of a record.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := WriteDefaults(path, false); err != nil {
			return nil, err
		}
		return nil, ErrNoConfig
	}
	return Read(path)
}

// Read reads the configuration at path without creating anything.
// Keys missing from the file keep their default values.
func Read(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, &SchemaError{Path: path, Err: err}
	}
	return New(doc)
}

// Decode strictly parses raw JSON on top of DefaultDocument.
// Unknown keys, mistyped values and trailing data are all rejected.
func Decode(raw []byte) (Document, error) {
	doc := DefaultDocument()

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Document{}, errors.New("unexpected data after the top-level object")
	}

	if doc.CloneMethod != CloneHTTPS && doc.CloneMethod != CloneSSH {
		return Document{}, fmt.Errorf("clone_method must be %q or %q, got %q", CloneHTTPS, CloneSSH, doc.CloneMethod)
	}
	return doc, nil
}
