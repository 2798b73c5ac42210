package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/ctxlog"
	"github.com/specialistvlad/mrsgo/internal/mrs"
	"github.com/specialistvlad/mrsgo/internal/mrserr"
)

// linkReferences adds every described reference to s. It returns the number
// of references added.
func linkReferences(ctx context.Context, s *mrs.Structure, desc *config.Structure, byName map[string]*mrs.Metamodel) (int, error) {
	logger := ctxlog.FromContext(ctx)
	count := 0

	for _, ld := range desc.Layers {
		for _, mm := range ld.Metamodels {
			source := byName[mm.Name]
			for _, ref := range mm.References {
				target, ok := byName[ref.Target]
				if !ok {
					return count, fmt.Errorf("%s: %w: reference target %q is not described", describe(mm), mrserr.ErrUnknownEntity, ref.Target)
				}
				if _, err := s.AddReference(source, target, ref.Classification); err != nil {
					return count, fmt.Errorf("%s: reference to %q: %w", describe(mm), ref.Target, err)
				}
				count++
				logger.Debug("Reference linked.", "source", mm.Name, "target", ref.Target, "classification", ref.Classification)
			}
		}
	}
	return count, nil
}
