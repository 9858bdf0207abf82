package frame

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads, validates and decodes a frames document.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames file: %w", err)
	}
	return ParseFile(path, data)
}

// ParseFile validates data against the frame schema and decodes it strictly.
// Unknown fields are rejected. Schema violations are joined; use errors.As
// with *ValidationError to inspect them.
func ParseFile(filename string, data []byte) (*File, error) {
	if errs := ValidateYAML(filename, data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid frames document: %w", errors.Join(errs...))
	}

	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &file, nil
}
