package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseMaterial(t *testing.T) {
	m, err := ParseMaterial([]byte(`
name = "wall"
shader = "Builtin.MaterialShader"
diffuse_colour = [0.5, 0.25, 1.0, 1.0]
diffuse_map_name = "wall_diffuse"
autorelease = true
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Name != "wall" || m.ShaderName != "Builtin.MaterialShader" || !m.AutoRelease {
		t.Fatalf("material = %+v", m)
	}
	if m.DiffuseColour != ([4]float32{0.5, 0.25, 1, 1}) {
		t.Fatalf("colour = %v", m.DiffuseColour)
	}
	if m.Shininess != 32 {
		t.Fatalf("default shininess lost: %f", m.Shininess)
	}
}

func TestParseMaterialValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing name", doc: `shader = "s"`},
		{name: "missing shader", doc: `name = "m"`},
		{name: "colour out of range", doc: "name = \"m\"\nshader = \"s\"\ndiffuse_colour = [2.0, 0.0, 0.0, 1.0]"},
		{name: "negative shininess", doc: "name = \"m\"\nshader = \"s\"\nshininess = -1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMaterial([]byte(tt.doc)); !errors.Is(err, ErrInvalidMaterial) {
				t.Fatalf("err = %v", err)
			}
		})
	}

	if _, err := ParseMaterial([]byte("name = ")); err == nil || errors.Is(err, ErrInvalidMaterial) {
		t.Fatalf("syntax errors are not validation errors: %v", err)
	}
}

func TestMaterialLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.mat")
	doc := "name = \"default\"\nshader = \"Builtin.MaterialShader\"\nglossiness = 3\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := (&MaterialLoader{}).Load(path)
	if err != nil {
		t.Fatalf("unknown keys should be skipped: %v", err)
	}
	if data.(*Material).Name != "default" {
		t.Fatalf("material = %+v", data)
	}
}
