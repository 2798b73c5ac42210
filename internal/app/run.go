package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mrsgo/internal/ctxlog"
	"github.com/specialistvlad/mrsgo/internal/export"
	"github.com/specialistvlad/mrsgo/internal/validate"
	"github.com/specialistvlad/mrsgo/internal/watch"
)

// Validate loads the structure, audits it and prints the report. It returns
// an error wrapping ErrViolations when violations were found and the
// configuration fails on them.
func (a *App) Validate(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	res, err := a.Load(ctx)
	if err != nil {
		return err
	}

	report := validate.Structure(res.Structure)
	if err := writeReport(a.outW, a.config.Output, res.Structure, report); err != nil {
		return err
	}

	if report.OK() {
		logger.Info("Structure is well-formed.", "structure", res.Structure.Name())
		return nil
	}
	logger.Warn("Structure has violations.", "structure", res.Structure.Name(), "count", len(report.Violations))
	if a.config.FailOnViolation {
		return fmt.Errorf("%w: %d found", ErrViolations, len(report.Violations))
	}
	return nil
}

// List prints the layers, metamodels and references of the structure.
func (a *App) List(ctx context.Context) error {
	res, err := a.Load(ctx)
	if err != nil {
		return err
	}
	return writeList(a.outW, a.config.Output, res.Structure)
}

// Order prints an initialization order following the MANDATORY references.
func (a *App) Order(ctx context.Context) error {
	res, err := a.Load(ctx)
	if err != nil {
		return err
	}
	order, err := validate.InitializationOrder(res.Structure)
	if err != nil {
		return err
	}
	return writeOrder(a.outW, a.config.Output, order)
}

// Export writes the structure as a YAML description to out, or to the
// application's output when out is empty.
func (a *App) Export(ctx context.Context, out string) error {
	ctx = a.withLogger(ctx)
	res, err := a.Load(ctx)
	if err != nil {
		return err
	}

	model := export.Describe(res.Structure, res.Catalog)
	if out == "" {
		return export.WriteYAML(a.outW, model)
	}
	if err := export.WriteFile(out, model); err != nil {
		return fmt.Errorf("failed to export structure: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Structure exported.", "structure", res.Structure.Name(), "file", out)
	return nil
}

// Watch validates once and again after every debounced change until ctx is
// cancelled. Failures of individual runs are logged and do not stop watching.
func (a *App) Watch(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	w, err := watch.New(watch.Config{
		Roots:    a.config.Paths,
		Patterns: a.config.Patterns,
		Debounce: a.config.WatchDebounce,
	})
	if err != nil {
		return err
	}

	rerun := func(ctx context.Context) {
		if err := a.Validate(ctx); err != nil {
			logger.Error("Validation run failed.", "error", err)
		}
	}

	rerun(ctx)
	return w.Run(ctx, func(ctx context.Context, paths []string) {
		logger.Info("Descriptions changed, validating.", "files", paths)
		rerun(ctx)
	})
}
