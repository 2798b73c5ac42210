// Package refstore defines the storage contract for classified references
// between metamodels.
//
// # Why a separate store
//
// Edges are keyed by (source, target) metamodel IDs and never hold the
// metamodels themselves. That keeps the edge registry independent of layer
// policy and of metamodel lifetime: the owner of the metamodels cascades
// removals explicitly through RemoveIncident, and the validator audits edges
// whose endpoints have disappeared.
//
// See internal/inmemoryrefs for the in-memory implementation.
package refstore

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
)

// Edge is a directed, classified reference from Source to Target.
type Edge struct {
	Source         uuid.UUID      `json:"source" yaml:"source"`
	Target         uuid.UUID      `json:"target" yaml:"target"`
	Classification Classification `json:"classification" yaml:"classification"`
}

// String renders the edge for logs and reports.
func (e Edge) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", e.Source, e.Classification, e.Target)
}

// Store is the relation registry of classified references.
//
// Implementations are not required to be safe for concurrent mutation; the
// caller supplies the transaction boundary.
type Store interface {
	// Add records a new reference. It fails with mrserr.ErrSelfReference when
	// source == target and with mrserr.ErrDuplicateReference when the pair is
	// already present. Layer direction is not checked here.
	Add(source, target uuid.UUID, c Classification) (Edge, error)

	// Remove deletes the reference for the pair. Removing an absent pair is
	// not an error.
	Remove(source, target uuid.UUID)

	// SetClassification reclassifies an existing reference. It fails with
	// mrserr.ErrUnknownEntity when the pair is absent.
	SetClassification(source, target uuid.UUID, c Classification) error

	// Get returns the reference for the pair, if present.
	Get(source, target uuid.UUID) (Edge, bool)

	// From yields every reference whose source is id, in insertion order.
	From(id uuid.UUID) iter.Seq[Edge]

	// To yields every reference whose target is id, in insertion order.
	To(id uuid.UUID) iter.Seq[Edge]

	// All yields every reference in insertion order.
	All() iter.Seq[Edge]

	// RemoveIncident deletes every reference with id as source or target and
	// returns how many were removed.
	RemoveIncident(id uuid.UUID) int

	// Len returns the number of references.
	Len() int
}
