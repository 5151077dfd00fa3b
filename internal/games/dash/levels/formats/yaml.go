// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Size        *YAMLSize `yaml:"size,omitempty"`
	Lives       int       `yaml:"lives,omitempty"`
	Map         string    `yaml:"map"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Level represents a parsed level ready for validation.
// Width and Height are zero when the file does not set a size.
type Level struct {
	ID          string
	Name        string
	Description string
	Width       int
	Height      int
	Lives       int
	Map         string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if strings.TrimSpace(yl.ID) == "" {
		return Level{}, fmt.Errorf("missing level id")
	}
	if strings.TrimSpace(yl.Map) == "" {
		return Level{}, fmt.Errorf("level %s: missing map", yl.ID)
	}

	level := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Lives:       yl.Lives,
		Map:         yl.Map,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}
	if yl.Size != nil {
		level.Width = yl.Size.W
		level.Height = yl.Size.H
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
