package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/ctxlog"
	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/mrs"
)

// registerMetamodels appends the described layers to s and registers every
// metamodel into its layer. It returns the registered metamodels by name.
func registerMetamodels(ctx context.Context, s *mrs.Structure, catalog *epackage.Catalog, desc *config.Structure) (map[string]*mrs.Metamodel, error) {
	logger := ctxlog.FromContext(ctx)
	byName := make(map[string]*mrs.Metamodel)

	for _, ld := range desc.Layers {
		layer := s.AppendLayer(ld.Name)
		logger.Debug("Layer appended.", "layer", ld.Name, "index", layer.Index())

		for _, mm := range ld.Metamodels {
			if mm.Name == "" {
				return nil, fmt.Errorf("layer %q: metamodel without a name", ld.Name)
			}
			if _, exists := byName[mm.Name]; exists {
				return nil, fmt.Errorf("%s: %w", describe(mm), ErrDuplicateName)
			}

			pkg, err := catalog.Define(mm.PackageName())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", describe(mm), err)
			}
			m, err := s.Register(pkg, layer, mm.Name)
			if err != nil {
				return nil, fmt.Errorf("%s in layer %q: %w", describe(mm), ld.Name, err)
			}
			if mm.Location != "" {
				if err := s.SetLocation(m, mm.Location); err != nil {
					return nil, fmt.Errorf("%s: %w", describe(mm), err)
				}
			}

			byName[mm.Name] = m
			logger.Debug("Metamodel registered.", "metamodel", mm.Name, "package", epackage.QualifiedName(m.Package()), "layer", ld.Name)
		}
	}
	return byName, nil
}
