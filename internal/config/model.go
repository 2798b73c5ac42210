package config

import "github.com/specialistvlad/mrsgo/internal/refstore"

// Model is the unified, format-agnostic description of one structure and the
// packages it draws from.
type Model struct {
	// Packages lists dotted qualified package names, e.g. "core.types".
	Packages  []string   `json:"packages,omitempty" yaml:"packages,omitempty"`
	Structure *Structure `json:"structure" yaml:"structure"`
}

// Structure describes the ordered layers of a structure.
type Structure struct {
	Name   string   `json:"name" yaml:"name"`
	Layers []*Layer `json:"layers" yaml:"layers"`
}

// Layer describes one layer. Layers are listed lowest first.
type Layer struct {
	Name       string       `json:"name" yaml:"name"`
	Metamodels []*Metamodel `json:"metamodels,omitempty" yaml:"metamodels,omitempty"`
}

// Metamodel describes a registered metamodel and its outgoing references.
type Metamodel struct {
	Name string `json:"name" yaml:"name"`
	// Package is the qualified name of the metamodel's package. Empty means
	// the package named like the metamodel.
	Package    string       `json:"package,omitempty" yaml:"package,omitempty"`
	Location   string       `json:"location,omitempty" yaml:"location,omitempty"`
	References []*Reference `json:"references,omitempty" yaml:"references,omitempty"`

	// Origin is the file the metamodel was read from, for error messages.
	Origin string `json:"-" yaml:"-"`
}

// Reference describes a dependency edge to the metamodel named Target.
type Reference struct {
	Target         string                  `json:"target" yaml:"target"`
	Classification refstore.Classification `json:"classification" yaml:"classification"`
}

// PackageName returns the qualified package name of m, defaulting to its name.
func (m *Metamodel) PackageName() string {
	if m.Package != "" {
		return m.Package
	}
	return m.Name
}

// MetamodelCount returns the number of described metamodels.
func (m *Model) MetamodelCount() int {
	if m == nil || m.Structure == nil {
		return 0
	}
	n := 0
	for _, l := range m.Structure.Layers {
		n += len(l.Metamodels)
	}
	return n
}
