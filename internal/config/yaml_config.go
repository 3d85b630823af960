package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultNamespace is the blob prefix used for products without a catalog entry.
const DefaultNamespace = "weekly"

// Catalog represents the structure of the catalog.yaml file.
// Maps purchasable product keys to the blob namespace their reports live in.
type Catalog struct {
	Products         []ProductConfig `yaml:"products"`
	DefaultNamespace string          `yaml:"default_namespace"`
}

// ProductConfig defines a gated product in the YAML catalog.
type ProductConfig struct {
	Key       string `yaml:"key"`
	Name      string `yaml:"name,omitempty"`
	Namespace string `yaml:"namespace"` // e.g. "weekly" for reports under weekly/
}

// DefaultCatalog is used when no catalog file exists.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Products: []ProductConfig{
			{Key: "weekly-report", Name: "Weekly trend report", Namespace: DefaultNamespace},
		},
		DefaultNamespace: DefaultNamespace,
	}
}

// LoadCatalog loads the product catalog from path.
// Returns DefaultCatalog without error if the file doesn't exist.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalog(), nil
		}
		return nil, err
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, err
	}

	if cat.DefaultNamespace == "" {
		cat.DefaultNamespace = DefaultNamespace
	}

	return &cat, nil
}

// GetProductByKey finds a product by its key.
func (c *Catalog) GetProductByKey(key string) *ProductConfig {
	if c == nil {
		return nil
	}
	for i := range c.Products {
		if c.Products[i].Key == key {
			return &c.Products[i]
		}
	}
	return nil
}

// NamespaceFor returns the blob namespace holding reports for a product.
func (c *Catalog) NamespaceFor(key string) string {
	if p := c.GetProductByKey(key); p != nil && p.Namespace != "" {
		return p.Namespace
	}
	if c == nil || c.DefaultNamespace == "" {
		return DefaultNamespace
	}
	return c.DefaultNamespace
}
