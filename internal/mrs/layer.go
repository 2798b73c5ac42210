// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package mrs

import (
	"iter"
	"slices"

	"github.com/google/uuid"
)

// Layer is an ordered grouping of metamodels inside a Structure.
type Layer struct {
	name      string
	structure *Structure
	members   map[uuid.UUID]*Metamodel
	order     []uuid.UUID
}

func newLayer(s *Structure, name string) *Layer {
	return &Layer{
		name:      name,
		structure: s,
		members:   make(map[uuid.UUID]*Metamodel),
	}
}

// Name returns the display name of the layer.
func (l *Layer) Name() string { return l.name }

// Structure returns the owning structure.
func (l *Layer) Structure() *Structure { return l.structure }

// Index returns the position of the layer in its structure.
func (l *Layer) Index() int {
	return slices.Index(l.structure.layers, l)
}

// Len returns the number of metamodels in the layer.
func (l *Layer) Len() int { return len(l.order) }

// Contains reports whether m is currently a member of the layer.
func (l *Layer) Contains(m *Metamodel) bool {
	if m == nil {
		return false
	}
	member, ok := l.members[m.id]
	return ok && member == m
}

// Metamodels yields the members of the layer in insertion order. The sequence
// is recomputed on every call.
func (l *Layer) Metamodels() iter.Seq[*Metamodel] {
	return func(yield func(*Metamodel) bool) {
		for _, id := range slices.Clone(l.order) {
			m, ok := l.members[id]
			if !ok {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}

func (l *Layer) add(m *Metamodel) {
	l.members[m.id] = m
	l.order = append(l.order, m.id)
	m.layer = l
}

func (l *Layer) remove(m *Metamodel) {
	delete(l.members, m.id)
	if i := slices.Index(l.order, m.id); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
	m.layer = nil
}
