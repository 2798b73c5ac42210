package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses each file, translates its blocks into the format-agnostic model
// and merges the results in file order.
func (l *Loader) Load(ctx context.Context, files ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "file_count", len(files))

	parser := hclparse.NewParser()
	models := make([]*config.Model, 0, len(files))

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		translated, diags := translateFile(file, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate HCL file %s: %w", file, diags)
		}
		logger.Debug("HCL file translated.", "file", file, "structures", len(root.Structures))
		models = append(models, translated...)
	}

	model, err := config.Merge(models...)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "structure", model.Structure.Name, "layers", len(model.Structure.Layers), "metamodels", model.MetamodelCount())
	return model, nil
}
