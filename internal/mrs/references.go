// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package mrs

import (
	"iter"

	"github.com/specialistvlad/mrsgo/internal/refstore"
)

// AddReference records a classified reference from source to target. Both
// metamodels must be registered in the structure. Layer direction is not
// checked here; see package validate.
func (s *Structure) AddReference(source, target *Metamodel, c refstore.Classification) (refstore.Edge, error) {
	if !s.Owns(source) {
		return refstore.Edge{}, s.unknownMetamodel(source)
	}
	if !s.Owns(target) {
		return refstore.Edge{}, s.unknownMetamodel(target)
	}
	return s.refs.Add(source.id, target.id, c)
}

// RemoveReference deletes the reference from source to target, if any.
func (s *Structure) RemoveReference(source, target *Metamodel) {
	if source == nil || target == nil {
		return
	}
	s.refs.Remove(source.id, target.id)
}

// SetClassification reclassifies the existing reference from source to target.
func (s *Structure) SetClassification(source, target *Metamodel, c refstore.Classification) error {
	if !s.Owns(source) {
		return s.unknownMetamodel(source)
	}
	if !s.Owns(target) {
		return s.unknownMetamodel(target)
	}
	return s.refs.SetClassification(source.id, target.id, c)
}

// Reference returns the reference from source to target, if any.
func (s *Structure) Reference(source, target *Metamodel) (refstore.Edge, bool) {
	if source == nil || target == nil {
		return refstore.Edge{}, false
	}
	return s.refs.Get(source.id, target.id)
}

// ReferencesFrom yields the references whose source is m.
func (s *Structure) ReferencesFrom(m *Metamodel) iter.Seq[refstore.Edge] {
	if m == nil {
		return func(func(refstore.Edge) bool) {}
	}
	return s.refs.From(m.id)
}

// ReferencesTo yields the references whose target is m.
func (s *Structure) ReferencesTo(m *Metamodel) iter.Seq[refstore.Edge] {
	if m == nil {
		return func(func(refstore.Edge) bool) {}
	}
	return s.refs.To(m.id)
}

// References exposes the underlying reference store for serializers and
// audits. Edges added directly to it bypass the ownership checks above.
func (s *Structure) References() refstore.Store {
	return s.refs
}
