// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package mrs

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/mrserr"
)

// Register creates a metamodel for pkg inside layer. An empty name defaults to
// the canonical package's name.
//
// Registration fails with mrserr.ErrDuplicateMetamodel when any metamodel of the
// structure already wraps the same canonical package, and with
// mrserr.ErrUnknownEntity when layer belongs to another structure. A failed
// registration leaves the structure unchanged.
func (s *Structure) Register(pkg epackage.Package, layer *Layer, name string) (*Metamodel, error) {
	if pkg == nil {
		return nil, fmt.Errorf("%w: cannot register a nil package", mrserr.ErrUnknownEntity)
	}
	if _, err := s.LayerIndex(layer); err != nil {
		return nil, err
	}

	canonical := epackage.Canonicalize(pkg)
	if existing, ok := s.byPackage[canonical]; ok {
		return nil, fmt.Errorf("%w: package %q is already registered as %s",
			mrserr.ErrDuplicateMetamodel, epackage.QualifiedName(pkg), existing)
	}

	m := NewMetamodel(canonical, name)
	s.byID[m.id] = m
	s.byPackage[canonical] = m
	layer.add(m)
	return m, nil
}

// FindByPackage returns the metamodel wrapping the canonical package of pkg.
func (s *Structure) FindByPackage(pkg epackage.Package) (*Metamodel, bool) {
	canonical := epackage.Canonicalize(pkg)
	if canonical == nil {
		return nil, false
	}
	m, ok := s.byPackage[canonical]
	return m, ok
}

// Metamodel returns the registered metamodel with the given ID.
func (s *Structure) Metamodel(id uuid.UUID) (*Metamodel, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// MetamodelByName returns the first metamodel, in structure order, with the
// given display name.
func (s *Structure) MetamodelByName(name string) (*Metamodel, bool) {
	for m := range s.AllMetamodels() {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

// Len returns the number of registered metamodels.
func (s *Structure) Len() int {
	return len(s.byID)
}

// Remove unregisters m and deletes every reference incident to it.
func (s *Structure) Remove(m *Metamodel) error {
	if !s.Owns(m) {
		return s.unknownMetamodel(m)
	}
	m.layer.remove(m)
	delete(s.byID, m.id)
	if s.byPackage[m.pkg] == m {
		delete(s.byPackage, m.pkg)
	}
	s.refs.RemoveIncident(m.id)
	return nil
}

// Rename changes the display name of m. Names carry no uniqueness constraint.
func (s *Structure) Rename(m *Metamodel, name string) error {
	if !s.Owns(m) {
		return s.unknownMetamodel(m)
	}
	m.name = name
	return nil
}

// SetLocation records the external location marker of m (for example a
// plug-in URI). The value is stored verbatim; "" clears it.
func (s *Structure) SetLocation(m *Metamodel, location string) error {
	if !s.Owns(m) {
		return s.unknownMetamodel(m)
	}
	m.location = location
	return nil
}
