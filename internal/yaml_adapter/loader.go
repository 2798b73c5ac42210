// Package yaml_adapter loads structure descriptions written in YAML, the
// interchange form produced by the export package.
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load decodes every document of every file and merges them in order.
// Unknown fields are rejected.
func (l *Loader) Load(ctx context.Context, files ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "file_count", len(files))

	var models []*config.Model
	for _, file := range files {
		docs, err := decodeFile(file)
		if err != nil {
			return nil, err
		}
		logger.Debug("YAML file decoded.", "file", file, "documents", len(docs))
		models = append(models, docs...)
	}

	model, err := config.Merge(models...)
	if err != nil {
		return nil, err
	}
	logger.Debug("YAML loading complete.", "structure", model.Structure.Name, "layers", len(model.Structure.Layers), "metamodels", model.MetamodelCount())
	return model, nil
}

func decodeFile(file string) ([]*config.Model, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening YAML file %s: %w", file, err)
	}
	defer f.Close()

	docs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}
	for _, doc := range docs {
		if doc.Structure == nil {
			continue
		}
		for _, layer := range doc.Structure.Layers {
			for _, mm := range layer.Metamodels {
				mm.Origin = file
			}
		}
	}
	return docs, nil
}

// Decode reads all YAML documents from r.
func Decode(r io.Reader) ([]*config.Model, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var docs []*config.Model
	for {
		var doc config.Model
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
}
