// Package validate audits a Modular Reference Structure and reports every
// violation of its structural invariants.
//
// Validation is a read-only traversal: it never mutates the structure and never
// fails. Each check reports independently, so one run yields a complete report
// that the caller can present or block on:
//
//   - Uniqueness: no two metamodels share a canonical package.
//   - Dangling reference: both endpoints of every edge are registered.
//   - Layer direction: an edge never points from a lower layer to a higher one.
//   - Mandatory cycle: MANDATORY edges form no cycle, so an initialization order
//     exists. InitializationOrder computes one.
package validate
