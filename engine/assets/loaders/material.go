package loaders

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/ember/engine/core"
)

var ErrInvalidMaterial = errors.New("invalid material")

// Material is a material descriptor. Files are TOML documents:
//
//	name = "wall"
//	shader = "Builtin.MaterialShader"
//	diffuse_colour = [1.0, 1.0, 1.0, 1.0]
//	diffuse_map_name = "wall_diffuse"
type Material struct {
	Name            string     `toml:"name"`
	ShaderName      string     `toml:"shader"`
	DiffuseColour   [4]float32 `toml:"diffuse_colour"`
	Shininess       float32    `toml:"shininess"`
	DiffuseMapName  string     `toml:"diffuse_map_name"`
	SpecularMapName string     `toml:"specular_map_name"`
	NormalMapName   string     `toml:"normal_map_name"`
	AutoRelease     bool       `toml:"autorelease"`
}

type MaterialLoader struct{}

func (ml *MaterialLoader) Load(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseMaterial(b)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", path, err)
	}
	return m, nil
}

func (ml *MaterialLoader) Unload(any) error {
	return nil
}

// ParseMaterial decodes and validates a material document. Unknown keys
// are logged and skipped.
func ParseMaterial(data []byte) (*Material, error) {
	m := &Material{
		DiffuseColour: [4]float32{1, 1, 1, 1},
		Shininess:     32,
	}
	err := toml.Unmarshal(data, m)
	if err != nil {
		return nil, err
	}

	var extra map[string]any
	if err := toml.Unmarshal(data, &extra); err == nil {
		for key := range extra {
			if !knownMaterialKey(key) {
				core.LogWarn("unknown material key '%s', skipping", key)
			}
		}
	}

	if err := validateMaterial(m); err != nil {
		return nil, err
	}
	return m, nil
}

func knownMaterialKey(key string) bool {
	switch key {
	case "name", "shader", "diffuse_colour", "shininess",
		"diffuse_map_name", "specular_map_name", "normal_map_name", "autorelease":
		return true
	}
	return false
}

func validateMaterial(m *Material) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMaterial)
	}
	if m.ShaderName == "" {
		return fmt.Errorf("%w: shader name is required", ErrInvalidMaterial)
	}
	for _, c := range m.DiffuseColour {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: diffuse_colour values must be between 0.0 and 1.0", ErrInvalidMaterial)
		}
	}
	if m.Shininess < 0 {
		return fmt.Errorf("%w: shininess must be non-negative", ErrInvalidMaterial)
	}
	return nil
}
