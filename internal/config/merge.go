package config

import (
	"fmt"
	"slices"
)

// Merge combines models in order. Packages are de-duplicated, layers with the
// same name are joined in first-seen order and metamodels keep their
// declaration order. All models naming a structure must agree on its name.
func Merge(models ...*Model) (*Model, error) {
	out := &Model{Structure: &Structure{}}
	layers := make(map[string]*Layer)

	for _, m := range models {
		if m == nil {
			continue
		}
		for _, p := range m.Packages {
			if !slices.Contains(out.Packages, p) {
				out.Packages = append(out.Packages, p)
			}
		}
		if m.Structure == nil {
			continue
		}
		switch {
		case out.Structure.Name == "":
			out.Structure.Name = m.Structure.Name
		case m.Structure.Name != "" && m.Structure.Name != out.Structure.Name:
			return nil, fmt.Errorf("conflicting structure names %q and %q", out.Structure.Name, m.Structure.Name)
		}
		for _, l := range m.Structure.Layers {
			merged, ok := layers[l.Name]
			if !ok {
				merged = &Layer{Name: l.Name}
				layers[l.Name] = merged
				out.Structure.Layers = append(out.Structure.Layers, merged)
			}
			merged.Metamodels = append(merged.Metamodels, l.Metamodels...)
		}
	}
	return out, nil
}
