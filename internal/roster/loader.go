// ABOUTME: YAML roster loader
// ABOUTME: Replaces the built-in roster with characters from a file
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk roster layout
type File struct {
	Script     string      `yaml:"script"`
	Characters []Character `yaml:"characters"`
}

// Load reads a roster from a YAML file. An empty path returns the built-in
// roster.
func Load(path string) (*Roster, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML roster document
func Parse(data []byte) (*Roster, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse YAML: %v", ErrInvalid, err)
	}
	return New(f.Characters, f.Script)
}
