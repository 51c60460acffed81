package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Tags []Definition `yaml:"tags"`
}

// Load reads a taxonomy table from a YAML file of the form
//
//	tags:
//	  - canonical: E-commerce
//	    category: Domain
//	    aliases: [ecommerce, online store]
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	return Parse(data)
}

// Parse builds a taxonomy from YAML bytes. Category names are accepted in
// any casing.
func Parse(data []byte) (*Taxonomy, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}
	for i := range f.Tags {
		cat, err := ParseCategory(string(f.Tags[i].Category))
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", f.Tags[i].Canonical, err)
		}
		f.Tags[i].Category = cat
	}
	return New(f.Tags)
}
