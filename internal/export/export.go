// Package export turns a live structure back into its format-agnostic
// description and writes that description as YAML. Loading the YAML with the
// yaml_adapter package and building it again yields an equivalent structure.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/mrs"
	"gopkg.in/yaml.v3"
)

// Describe returns the description of s. Packages come from catalog when it is
// non-nil, otherwise from the metamodels' packages. References whose ends are
// not registered cannot be named and are left out.
func Describe(s *mrs.Structure, catalog *epackage.Catalog) *config.Model {
	model := &config.Model{Structure: &config.Structure{Name: s.Name()}}

	if catalog != nil {
		for n := range catalog.All() {
			model.Packages = append(model.Packages, n.String())
		}
	}

	for _, l := range s.Layers() {
		ld := &config.Layer{Name: l.Name()}
		for m := range l.Metamodels() {
			ld.Metamodels = append(ld.Metamodels, describeMetamodel(s, m))
			if catalog == nil {
				model.Packages = append(model.Packages, epackage.QualifiedName(m.Package()))
			}
		}
		model.Structure.Layers = append(model.Structure.Layers, ld)
	}
	return model
}

func describeMetamodel(s *mrs.Structure, m *mrs.Metamodel) *config.Metamodel {
	mm := &config.Metamodel{
		Name:     m.Name(),
		Package:  epackage.QualifiedName(m.Package()),
		Location: m.Location(),
	}
	if mm.Package == mm.Name {
		mm.Package = ""
	}
	for e := range s.ReferencesFrom(m) {
		target, ok := s.Metamodel(e.Target)
		if !ok {
			continue
		}
		mm.References = append(mm.References, &config.Reference{Target: target.Name(), Classification: e.Classification})
	}
	return mm
}

// WriteYAML encodes model to w with two-space indentation.
func WriteYAML(w io.Writer, model *config.Model) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(model); err != nil {
		return fmt.Errorf("marshaling description: %w", err)
	}
	return encoder.Close()
}

// WriteFile writes model as YAML to path. The file is replaced atomically.
func WriteFile(path string, model *config.Model) error {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, model); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".mrs-export.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
