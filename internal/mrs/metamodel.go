// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package mrs

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/mrsgo/internal/epackage"
)

// Metamodel is a schema package registered within a Structure.
type Metamodel struct {
	id       uuid.UUID
	name     string
	pkg      epackage.Package
	location string
	layer    *Layer
}

// NewMetamodel creates a metamodel that is not yet owned by any structure.
// The package is canonicalized; an empty name defaults to the canonical
// package's name.
func NewMetamodel(pkg epackage.Package, name string) *Metamodel {
	canonical := epackage.Canonicalize(pkg)
	if name == "" && canonical != nil {
		name = canonical.Name()
	}
	return &Metamodel{
		id:   uuid.New(),
		name: name,
		pkg:  canonical,
	}
}

// ID returns the stable identifier used by references.
func (m *Metamodel) ID() uuid.UUID { return m.id }

// Name returns the display name.
func (m *Metamodel) Name() string { return m.name }

// Package returns the canonical top-level package the metamodel wraps.
func (m *Metamodel) Package() epackage.Package { return m.pkg }

// Location returns the external location marker (for example a plug-in URI),
// or "" when the package is locally resident.
func (m *Metamodel) Location() string { return m.location }

// Layer returns the owning layer, or nil for a detached metamodel.
func (m *Metamodel) Layer() *Layer { return m.layer }

// String renders the metamodel for logs and reports.
func (m *Metamodel) String() string {
	if m == nil {
		return "<nil>"
	}
	return m.name + " (" + epackage.QualifiedName(m.pkg) + ")"
}
