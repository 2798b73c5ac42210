package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/export"
	"github.com/specialistvlad/mrsgo/internal/mrs"
	"github.com/specialistvlad/mrsgo/internal/validate"
	"gopkg.in/yaml.v3"
)

// reportDocument is the machine-readable form of a validation run.
type reportDocument struct {
	Structure  string               `json:"structure" yaml:"structure"`
	OK         bool                 `json:"ok" yaml:"ok"`
	Summary    map[string]int       `json:"summary,omitempty" yaml:"summary,omitempty"`
	Violations []validate.Violation `json:"violations" yaml:"violations"`
}

// orderEntry is one step of an initialization order.
type orderEntry struct {
	Name    string `json:"name" yaml:"name"`
	Package string `json:"package" yaml:"package"`
	Layer   string `json:"layer" yaml:"layer"`
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func writeReport(w io.Writer, format string, s *mrs.Structure, report validate.Report) error {
	if format != OutputText {
		doc := reportDocument{Structure: s.Name(), OK: report.OK(), Violations: report.Violations}
		if doc.Violations == nil {
			doc.Violations = []validate.Violation{}
		}
		if !report.OK() {
			doc.Summary = make(map[string]int)
			for kind, n := range report.Summary() {
				doc.Summary[kind.String()] = n
			}
		}
		return encode(w, format, doc)
	}

	fmt.Fprintf(w, "structure %q: %d layers, %d metamodels, %d references\n",
		s.Name(), len(s.Layers()), s.Len(), s.References().Len())
	if report.OK() {
		fmt.Fprintln(w, "OK")
		return nil
	}
	for _, v := range report.Violations {
		fmt.Fprintln(w, v.String())
	}
	var parts []string
	summary := report.Summary()
	for _, kind := range validate.Kinds {
		if n := summary[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", kind, n))
		}
	}
	_, err := fmt.Fprintf(w, "%d violations (%s)\n", len(report.Violations), strings.Join(parts, ", "))
	return err
}

func writeList(w io.Writer, format string, s *mrs.Structure) error {
	if format != OutputText {
		return encode(w, format, export.Describe(s, nil))
	}

	fmt.Fprintf(w, "structure %q\n", s.Name())
	for i, l := range s.Layers() {
		fmt.Fprintf(w, "layer %d %q\n", i, l.Name())
		for m := range l.Metamodels() {
			fmt.Fprintf(w, "  %s [%s]", m.Name(), epackage.QualifiedName(m.Package()))
			if m.Location() != "" {
				fmt.Fprintf(w, " %s", m.Location())
			}
			fmt.Fprintln(w)
			for e := range s.ReferencesFrom(m) {
				target := e.Target.String()
				if t, ok := s.Metamodel(e.Target); ok {
					target = t.Name()
				}
				fmt.Fprintf(w, "    -> %s (%s)\n", target, e.Classification)
			}
		}
	}
	return nil
}

func writeOrder(w io.Writer, format string, order []*mrs.Metamodel) error {
	entries := make([]orderEntry, 0, len(order))
	for _, m := range order {
		entries = append(entries, orderEntry{
			Name:    m.Name(),
			Package: epackage.QualifiedName(m.Package()),
			Layer:   m.Layer().Name(),
		})
	}
	if format != OutputText {
		return encode(w, format, entries)
	}
	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "%d. %s (layer %q)\n", i+1, e.Name, e.Layer); err != nil {
			return err
		}
	}
	return nil
}
