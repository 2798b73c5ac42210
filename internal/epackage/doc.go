// Package epackage defines the boundary between the structure engine and the
// external package source.
//
// The engine never loads or parses a wrapped package. It only needs two facts
// about a package handle: its name and its enclosing (super) package. Those two
// facts are enough to resolve any nested package to the top-level package that
// owns it, which is the identity used to de-duplicate metamodels.
//
// Catalog is a small in-memory package source. Importers and tests use it to
// materialize handles from dotted qualified names such as "core.types".
package epackage
