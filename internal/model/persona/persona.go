package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Descriptor captures the persona attributes loaded once at startup.
// It is read-only after Load.
type Descriptor struct {
	Description  string `yaml:"description"`
	Personality  string `yaml:"personality"`
	Instructions string `yaml:"instructions"`
}

// Load reads and parses the persona descriptor file. Callers treat any
// failure as fatal; the gateway must not accept traffic without it.
func Load(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("reading persona file: %w", err)
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("parsing persona file %s: %w", path, err)
	}

	if d.Description == "" && d.Personality == "" && d.Instructions == "" {
		return Descriptor{}, fmt.Errorf("persona file %s contains no usable fields", path)
	}

	return d, nil
}
