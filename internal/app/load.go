package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/mrsgo/internal/builder"
	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/ctxlog"
	"github.com/specialistvlad/mrsgo/internal/fsutil"
)

// Load discovers the configured description files, loads them with the
// matching loaders and builds the structure they describe.
func (a *App) Load(ctx context.Context) (*builder.Result, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovering descriptions...", "paths", a.config.Paths, "patterns", a.config.Patterns)

	files, err := fsutil.FindFiles(a.config.Paths, a.config.Patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover descriptions: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no structure descriptions found in %v matching %v", a.config.Paths, a.config.Patterns)
	}
	logger.Debug("Descriptions discovered.", "count", len(files))

	groups := make([][]string, len(a.loaders))
	for _, file := range files {
		i := a.loaderFor(file)
		if i < 0 {
			return nil, fmt.Errorf("no loader for file %s", file)
		}
		groups[i] = append(groups[i], file)
	}

	models := make([]*config.Model, 0, len(a.loaders))
	for i, loader := range a.loaders {
		if len(groups[i]) == 0 {
			continue
		}
		model, err := loader.Load(ctx, groups[i]...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		models = append(models, model)
	}

	model, err := config.Merge(models...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	res, err := builder.Build(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("failed to build structure: %w", err)
	}
	return res, nil
}

// loaderFor returns the index of the first loader accepting file, or -1.
func (a *App) loaderFor(file string) int {
	for i, loader := range a.loaders {
		for _, ext := range loader.Extensions() {
			if strings.HasSuffix(file, ext) {
				return i
			}
		}
	}
	return -1
}
