package particle

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/sparkle/pkg/embedded"
)

// ErrNoPresets is returned for a presets document without entries.
var ErrNoPresets = errors.New("no presets defined")

// ParsePresetYAML parses a presets document.
//
// Every preset must be named and names must be unique. Field values are not
// interpreted here; see ParseRange.
func ParsePresetYAML(data []byte) (*PresetFile, error) {
	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets YAML: %w", err)
	}

	if len(file.Presets) == 0 {
		return nil, ErrNoPresets
	}

	seen := make(map[string]bool, len(file.Presets))
	for i, p := range file.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset name %q", p.Name)
		}
		seen[p.Name] = true
	}

	return &file, nil
}

// LoadPresetFile reads and parses a presets document from the embedded data.
//
// Example usage:
//
//	file, err := LoadPresetFile("data/presets.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Loaded %d presets\n", len(file.Presets))
func LoadPresetFile(path string) (*PresetFile, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file %s: %w", path, err)
	}

	file, err := ParsePresetYAML(data)
	if err != nil {
		return nil, fmt.Errorf("presets file %s: %w", path, err)
	}
	return file, nil
}

// MarshalPresetYAML encodes presets as a presets document.
func MarshalPresetYAML(presets []Preset) ([]byte, error) {
	data, err := yaml.Marshal(PresetFile{Presets: presets})
	if err != nil {
		return nil, fmt.Errorf("failed to encode presets YAML: %w", err)
	}
	return data, nil
}
