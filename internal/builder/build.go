package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/ctxlog"
	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/mrs"
)

// ErrDuplicateName is returned when two described metamodels share a name,
// which would make references by name ambiguous.
var ErrDuplicateName = errors.New("duplicate metamodel name")

// Result is a built structure together with the catalog its packages live in.
type Result struct {
	Structure *mrs.Structure
	Catalog   *epackage.Catalog
}

// Build constructs a structure from the description.
func Build(ctx context.Context, model *config.Model) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Structure build started.")

	if model == nil || model.Structure == nil {
		return nil, errors.New("description has no structure")
	}

	catalog := epackage.NewCatalog()
	for _, q := range model.Packages {
		if _, err := catalog.Define(q); err != nil {
			return nil, fmt.Errorf("declaring package: %w", err)
		}
	}
	logger.Debug("Declared packages materialized.", "count", catalog.Len())

	s := mrs.New(model.Structure.Name)
	byName, err := registerMetamodels(ctx, s, catalog, model.Structure)
	if err != nil {
		return nil, err
	}
	logger.Debug("Metamodels registered.", "layers", len(s.Layers()), "metamodels", s.Len())

	edges, err := linkReferences(ctx, s, model.Structure, byName)
	if err != nil {
		return nil, err
	}

	logger.Info("Structure built.", "structure", s.Name(), "layers", len(s.Layers()), "metamodels", s.Len(), "references", edges)
	return &Result{Structure: s, Catalog: catalog}, nil
}

// describe names a described metamodel for error messages.
func describe(mm *config.Metamodel) string {
	if mm.Origin == "" {
		return fmt.Sprintf("metamodel %q", mm.Name)
	}
	return fmt.Sprintf("metamodel %q (%s)", mm.Name, mm.Origin)
}
