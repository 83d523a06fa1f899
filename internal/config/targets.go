package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Targets selects which collections render to which outputs. Keys absent from
// the file keep their defaults, so a targets file only needs to name what it
// changes.
type Targets struct {
	Stylesheets []string `yaml:"stylesheets"`
	Combined    []string `yaml:"combined"`
	Typed       bool     `yaml:"typed"`
}

// DefaultTargets renders every output collection everywhere.
func DefaultTargets() Targets {
	all := []string{"Colour", "Component themes", "Foundations", "Layout", "Typography"}
	return Targets{
		Stylesheets: all,
		Combined:    all,
		Typed:       true,
	}
}

type targetsFile struct {
	Stylesheets *[]string `yaml:"stylesheets"`
	Combined    *[]string `yaml:"combined"`
	Typed       *bool     `yaml:"typed"`
}

// LoadTargets reads a YAML targets file, falling back to the defaults for an
// empty path.
func LoadTargets(path string) (Targets, error) {
	t := DefaultTargets()
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Targets{}, fmt.Errorf("config: read targets: %w", err)
	}
	var f targetsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Targets{}, fmt.Errorf("config: parse targets: %w", err)
	}
	if f.Stylesheets != nil {
		t.Stylesheets = *f.Stylesheets
	}
	if f.Combined != nil {
		t.Combined = *f.Combined
	}
	if f.Typed != nil {
		t.Typed = *f.Typed
	}
	return t, nil
}
