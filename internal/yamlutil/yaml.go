// Package yamlutil decodes and encodes the labelsheet configuration format.
// Callers never import the YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize caps a configuration document (64KB). Label configs are a
// handful of keys; anything bigger is a wrong file.
var MaxDocumentSize = 64 << 10

var (
	ErrEmptyDocument    = errors.New("yamlutil: empty document")
	ErrNilTarget        = errors.New("yamlutil: nil target")
	ErrDocumentTooLarge = errors.New("yamlutil: document too large")
)

func checkDocument(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(data), MaxDocumentSize)
	}
	if v == nil {
		return ErrNilTarget
	}
	return nil
}

// Decode parses data into v, rejecting keys that v does not declare.
// Fields already set on v are kept when the document omits them, so v can be
// pre-filled with defaults.
func Decode(data []byte, v any) error {
	if err := checkDocument(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, true))
	}
	return nil
}

// Encode renders v as YAML, used to print the effective configuration.
func Encode(v any) ([]byte, error) {
	if v == nil {
		return nil, ErrNilTarget
	}
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
