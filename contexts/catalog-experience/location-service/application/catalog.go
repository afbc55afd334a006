package application

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
)

//go:embed countries.yaml
var countriesYAML []byte

// LoadCatalog parses the embedded country catalog. Order matters: lookups by
// code return the first entry, and the file intentionally keeps the upstream
// duplicate-code rows.
func LoadCatalog() (ports.Catalog, error) {
	var doc struct {
		Countries []ports.Country `yaml:"countries"`
	}
	if err := yaml.Unmarshal(countriesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse embedded country catalog: %w", err)
	}
	if len(doc.Countries) == 0 {
		return nil, fmt.Errorf("embedded country catalog is empty")
	}
	return ports.Catalog(doc.Countries), nil
}
