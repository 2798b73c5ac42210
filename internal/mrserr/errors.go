// Package mrserr holds the error kinds returned by the structure engine.
//
// Operations wrap these sentinels with context, so callers match them with
// errors.Is. Validation findings are never reported through errors; see
// package validate.
package mrserr

import "errors"

var (
	// ErrDuplicateMetamodel is returned when registering a package whose
	// canonical package is already registered in the structure.
	ErrDuplicateMetamodel = errors.New("duplicate metamodel")

	// ErrUnknownEntity is returned when an operation names a metamodel, layer
	// or reference that is not owned by the structure.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrSelfReference is returned when a metamodel would reference itself.
	ErrSelfReference = errors.New("self reference")

	// ErrDuplicateReference is returned when a reference already exists for a
	// (source, target) pair.
	ErrDuplicateReference = errors.New("duplicate reference")
)
