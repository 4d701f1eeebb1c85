// Package catalog holds the built-in services and projects shown on the
// marketing site whenever the store has none.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"flux-web/internal/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Catalog is the marketing content of the site.
type Catalog struct {
	Services []domain.Service `yaml:"services"`
	Projects []domain.Project `yaml:"projects"`
}

// Parse decodes a catalog document.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: decode: %w", err)
	}
	for i, s := range c.Services {
		if s.ID == "" || s.Title == "" {
			return Catalog{}, fmt.Errorf("catalog: service %d: id and title are required", i)
		}
	}
	for i, p := range c.Projects {
		if p.ID == "" || p.Title == "" {
			return Catalog{}, fmt.Errorf("catalog: project %d: id and title are required", i)
		}
	}
	return c, nil
}

// Default returns a fresh copy of the built-in catalog.
func Default() Catalog {
	c, err := Parse(defaultsYAML)
	if err != nil {
		panic(err)
	}
	return c
}
