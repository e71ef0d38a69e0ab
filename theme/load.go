package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML theme file and overlays it on Default. Keys missing from
// the file keep their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse overlays YAML data on Default.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("theme: parse: %w", err)
	}
	return s, nil
}
