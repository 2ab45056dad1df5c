package catalogues

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
)

// File is the YAML layout of a catalogue file
type File struct {
	System  string                 `yaml:"system"`
	Effects []catalogue.Definition `yaml:"effects"`
}

// LoadFile reads a YAML catalogue file. Definitions without an id are rejected;
// malformed durations decode as immediate.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalogue %s: %w", path, err)
	}

	for i, def := range file.Effects {
		if def.ID == "" {
			return nil, fmt.Errorf("catalogue %s: effect %d has no id", path, i)
		}
	}

	return &file, nil
}
