// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package mrs implements the in-memory Modular Reference Structure: an ordered
// sequence of layers, the metamodels registered into them, and the classified
// references between those metamodels.
//
// # Core Concepts
//
//   - Structure: the root aggregate and the only entry point for traversal. It
//     is always passed explicitly; there is no package-level state.
//
//   - Layer: an ordered grouping of metamodels. Position 0 is the most
//     foundational layer. References are expected to point downward or stay
//     within a layer, which package validate checks.
//
//   - Metamodel: one registered schema package, identified within the
//     structure by its canonical (top-level) package. Two handles onto the same
//     package tree are the same metamodel.
//
//   - Reference: a MANDATORY or OPTIONAL edge from one metamodel to another,
//     stored in a refstore.Store keyed by metamodel IDs.
//
// # Mutation model
//
// Every mutating operation is synchronous, fails fast and leaves the structure
// untouched on error. The structure holds no lock: a caller that shares it
// between goroutines must serialize mutations itself. Read-only queries may run
// concurrently with each other.
package mrs
