// Package inmemoryrefs provides a map-backed implementation of the
// refstore.Store interface.
package inmemoryrefs

import (
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/mrsgo/internal/mrserr"
	"github.com/specialistvlad/mrsgo/internal/refstore"
)

type edgeKey struct {
	source uuid.UUID
	target uuid.UUID
}

type entry struct {
	edge refstore.Edge
	seq  uint64
}

// Store implements refstore.Store with a primary map keyed by (source, target)
// and two adjacency indexes. It holds no lock.
type Store struct {
	edges    map[edgeKey]*entry
	outgoing map[uuid.UUID]map[uuid.UUID]*entry // Key: source, Value: target -> entry
	incoming map[uuid.UUID]map[uuid.UUID]*entry // Key: target, Value: source -> entry
	nextSeq  uint64
}

// New creates a new, empty reference store.
func New() refstore.Store {
	return &Store{
		edges:    make(map[edgeKey]*entry),
		outgoing: make(map[uuid.UUID]map[uuid.UUID]*entry),
		incoming: make(map[uuid.UUID]map[uuid.UUID]*entry),
	}
}

// Add records a new reference from source to target.
func (s *Store) Add(source, target uuid.UUID, c refstore.Classification) (refstore.Edge, error) {
	if source == target {
		return refstore.Edge{}, fmt.Errorf("%w: metamodel %s cannot reference itself", mrserr.ErrSelfReference, source)
	}
	if !c.Valid() {
		return refstore.Edge{}, fmt.Errorf("invalid classification %d for reference %s -> %s", int(c), source, target)
	}
	key := edgeKey{source: source, target: target}
	if _, exists := s.edges[key]; exists {
		return refstore.Edge{}, fmt.Errorf("%w: %s -> %s already exists, use SetClassification to change it", mrserr.ErrDuplicateReference, source, target)
	}

	e := &entry{
		edge: refstore.Edge{Source: source, Target: target, Classification: c},
		seq:  s.nextSeq,
	}
	s.nextSeq++

	s.edges[key] = e
	if s.outgoing[source] == nil {
		s.outgoing[source] = make(map[uuid.UUID]*entry)
	}
	s.outgoing[source][target] = e
	if s.incoming[target] == nil {
		s.incoming[target] = make(map[uuid.UUID]*entry)
	}
	s.incoming[target][source] = e

	return e.edge, nil
}

// Remove deletes the reference for the pair if present.
func (s *Store) Remove(source, target uuid.UUID) {
	key := edgeKey{source: source, target: target}
	if _, exists := s.edges[key]; !exists {
		return
	}
	delete(s.edges, key)

	delete(s.outgoing[source], target)
	if len(s.outgoing[source]) == 0 {
		delete(s.outgoing, source)
	}
	delete(s.incoming[target], source)
	if len(s.incoming[target]) == 0 {
		delete(s.incoming, target)
	}
}

// SetClassification reclassifies an existing reference.
func (s *Store) SetClassification(source, target uuid.UUID, c refstore.Classification) error {
	if !c.Valid() {
		return fmt.Errorf("invalid classification %d for reference %s -> %s", int(c), source, target)
	}
	e, exists := s.edges[edgeKey{source: source, target: target}]
	if !exists {
		return fmt.Errorf("%w: no reference %s -> %s", mrserr.ErrUnknownEntity, source, target)
	}
	e.edge.Classification = c
	return nil
}

// Get returns the reference for the pair.
func (s *Store) Get(source, target uuid.UUID) (refstore.Edge, bool) {
	e, ok := s.edges[edgeKey{source: source, target: target}]
	if !ok {
		return refstore.Edge{}, false
	}
	return e.edge, true
}

// From yields the references leaving id.
func (s *Store) From(id uuid.UUID) iter.Seq[refstore.Edge] {
	return func(yield func(refstore.Edge) bool) {
		for _, e := range sorted(s.outgoing[id]) {
			if !yield(e.edge) {
				return
			}
		}
	}
}

// To yields the references entering id.
func (s *Store) To(id uuid.UUID) iter.Seq[refstore.Edge] {
	return func(yield func(refstore.Edge) bool) {
		for _, e := range sorted(s.incoming[id]) {
			if !yield(e.edge) {
				return
			}
		}
	}
}

// All yields every reference.
func (s *Store) All() iter.Seq[refstore.Edge] {
	return func(yield func(refstore.Edge) bool) {
		for _, e := range sorted(s.edges) {
			if !yield(e.edge) {
				return
			}
		}
	}
}

// RemoveIncident deletes every reference touching id.
func (s *Store) RemoveIncident(id uuid.UUID) int {
	var doomed []edgeKey
	for target := range s.outgoing[id] {
		doomed = append(doomed, edgeKey{source: id, target: target})
	}
	for source := range s.incoming[id] {
		doomed = append(doomed, edgeKey{source: source, target: id})
	}
	for _, key := range doomed {
		s.Remove(key.source, key.target)
	}
	return len(doomed)
}

// Len returns the number of references.
func (s *Store) Len() int {
	return len(s.edges)
}

// sorted snapshots a map of entries in insertion order, so iteration stays
// valid even if the caller mutates the store while ranging.
func sorted[K comparable](m map[K]*entry) []*entry {
	entries := make([]*entry, 0, len(m))
	for _, e := range m {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b *entry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return entries
}
