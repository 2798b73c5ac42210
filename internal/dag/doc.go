// Package dag provides a small directed graph with insertion-ordered traversal,
// complete cycle enumeration and dependency ordering.
//
// The validator builds one graph per run from the MANDATORY references of a
// structure, so the graph is not safe for concurrent use and is never shared.
package dag
