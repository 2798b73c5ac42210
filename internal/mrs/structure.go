// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package mrs

import (
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/inmemoryrefs"
	"github.com/specialistvlad/mrsgo/internal/mrserr"
	"github.com/specialistvlad/mrsgo/internal/refstore"
)

// Structure is the root aggregate of a Modular Reference Structure.
type Structure struct {
	name      string
	layers    []*Layer
	byID      map[uuid.UUID]*Metamodel
	byPackage map[epackage.Package]*Metamodel // Key: canonical package
	refs      refstore.Store
}

// New creates an empty structure backed by an in-memory reference store.
func New(name string) *Structure {
	return NewWithStore(name, inmemoryrefs.New())
}

// NewWithStore creates an empty structure that records references in refs.
func NewWithStore(name string, refs refstore.Store) *Structure {
	return &Structure{
		name:      name,
		byID:      make(map[uuid.UUID]*Metamodel),
		byPackage: make(map[epackage.Package]*Metamodel),
		refs:      refs,
	}
}

// Name returns the structure's name.
func (s *Structure) Name() string { return s.name }

// AppendLayer adds a new layer on top of the existing ones.
func (s *Structure) AppendLayer(name string) *Layer {
	l := newLayer(s, name)
	s.layers = append(s.layers, l)
	return l
}

// Layers returns the layers in order, lowest first.
func (s *Structure) Layers() []*Layer {
	return slices.Clone(s.layers)
}

// LayerByName returns the first layer with the given name.
func (s *Structure) LayerByName(name string) (*Layer, bool) {
	for _, l := range s.layers {
		if l.name == name {
			return l, true
		}
	}
	return nil, false
}

// LayerIndex returns the position of layer in the structure.
func (s *Structure) LayerIndex(layer *Layer) (int, error) {
	if layer == nil || layer.structure != s {
		return -1, fmt.Errorf("%w: layer is not part of structure %q", mrserr.ErrUnknownEntity, s.name)
	}
	i := slices.Index(s.layers, layer)
	if i < 0 {
		return -1, fmt.Errorf("%w: layer %q is not part of structure %q", mrserr.ErrUnknownEntity, layer.name, s.name)
	}
	return i, nil
}

// MoveMetamodel moves m into target. The metamodel leaves its current layer
// and joins target in one step; moving into the current layer is a no-op.
func (s *Structure) MoveMetamodel(m *Metamodel, target *Layer) error {
	if !s.Owns(m) {
		return s.unknownMetamodel(m)
	}
	if _, err := s.LayerIndex(target); err != nil {
		return err
	}
	if m.layer == target {
		return nil
	}
	m.layer.remove(m)
	target.add(m)
	return nil
}

// AllMetamodels yields every metamodel in layer order, then insertion order
// within a layer. The sequence is recomputed on every call.
func (s *Structure) AllMetamodels() iter.Seq[*Metamodel] {
	return func(yield func(*Metamodel) bool) {
		for _, l := range slices.Clone(s.layers) {
			for m := range l.Metamodels() {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// Owns reports whether m is registered in the structure.
func (s *Structure) Owns(m *Metamodel) bool {
	if m == nil {
		return false
	}
	registered, ok := s.byID[m.id]
	return ok && registered == m
}

func (s *Structure) unknownMetamodel(m *Metamodel) error {
	return fmt.Errorf("%w: metamodel %s is not registered in structure %q", mrserr.ErrUnknownEntity, m, s.name)
}
