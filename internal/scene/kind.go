package scene

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind is the semantic type of an element, as written in exports
type Kind string

const (
	KindHelix Kind = "alpha-helix"
	KindSheet Kind = "beta-sheet"
)

// Shape selects the primitive a kind is drawn with
type Shape string

const (
	ShapeCylinder Shape = "cylinder"
	ShapeBox      Shape = "box"
)

// KindDef is the YAML definition of an element kind
type KindDef struct {
	Name          Kind    `yaml:"name"`
	Label         string  `yaml:"label"`
	Shape         Shape   `yaml:"shape"`
	Color         Color   `yaml:"color"`
	Radius        float64 `yaml:"radius,omitempty"`
	Segments      int     `yaml:"segments,omitempty"`
	Thickness     float64 `yaml:"thickness,omitempty"`
	DefaultLength float64 `yaml:"default_length"`
	DefaultWidth  float64 `yaml:"default_width,omitempty"`
}

// Catalog holds the known element kinds in file order
type Catalog struct {
	Kinds []KindDef `yaml:"kinds"`
}

//go:embed kinds.yaml
var defaultKinds []byte

// DefaultCatalog returns the built-in helix and sheet definitions
func DefaultCatalog() Catalog {
	cat, err := ParseCatalog(defaultKinds)
	if err != nil {
		panic(fmt.Sprintf("embedded kinds.yaml: %v", err))
	}
	return cat
}

// LoadCatalog reads a kind catalogue from a YAML file
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML kind catalogue
func ParseCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	seen := make(map[Kind]bool)
	for i, def := range cat.Kinds {
		if def.Name == "" {
			return Catalog{}, fmt.Errorf("kind %d: missing name", i)
		}
		if seen[def.Name] {
			return Catalog{}, fmt.Errorf("kind %s: defined twice", def.Name)
		}
		seen[def.Name] = true
		switch def.Shape {
		case ShapeCylinder:
			if def.Radius <= 0 {
				return Catalog{}, fmt.Errorf("kind %s: cylinder needs a positive radius", def.Name)
			}
		case ShapeBox:
			if def.Thickness <= 0 {
				return Catalog{}, fmt.Errorf("kind %s: box needs a positive thickness", def.Name)
			}
		default:
			return Catalog{}, fmt.Errorf("kind %s: unknown shape %q", def.Name, def.Shape)
		}
	}
	return cat, nil
}

// Lookup returns the definition of kind
func (c Catalog) Lookup(kind Kind) (KindDef, bool) {
	for _, def := range c.Kinds {
		if def.Name == kind {
			return def, true
		}
	}
	return KindDef{}, false
}
