package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/setanarut/hotspot"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk catalog shape. JSON documents parse too.
//
//	items:
//	  - key: lamp
//	    title: Lamp
//	    message: An oil lamp.
//	    anchors: [[0.25, 0.4], [0.3, 0.42]]
type catalogFile struct {
	Items []struct {
		Key     string       `yaml:"key"`
		Title   string       `yaml:"title"`
		Message string       `yaml:"message"`
		Anchors [][2]float64 `yaml:"anchors"`
	} `yaml:"items"`
}

// ParseCatalog decodes and validates a YAML or JSON catalog.
func ParseCatalog(r io.Reader) (hotspot.Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	cat := make(hotspot.Catalog, 0, len(f.Items))
	for _, it := range f.Items {
		anchors := make([]hotspot.Anchor, len(it.Anchors))
		for i, a := range it.Anchors {
			anchors[i] = hotspot.Anchor{X: a[0], Y: a[1]}
		}
		cat = append(cat, hotspot.Item{
			Key:     it.Key,
			Title:   it.Title,
			Message: it.Message,
			Anchors: anchors,
		})
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func LoadCatalog(path string) (hotspot.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer f.Close()
	cat, err := ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}
