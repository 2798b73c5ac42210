package dag

import "errors"

// ErrCycle is wrapped by errors reporting that the graph is not acyclic.
var ErrCycle = errors.New("cycle detected")

// Graph is a collection of nodes and directed edges keyed by K.
type Graph[K comparable] struct {
	// nodes stores all nodes in the graph, keyed by their identifier.
	nodes map[K]*node[K]
	// order records node insertion order so traversals are deterministic.
	order []K
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using keys),
// not by direct struct manipulation.
type node[K comparable] struct {
	id K
	// successors holds the nodes this node has edges to, in insertion order.
	successors []*node[K]
	// predecessors holds the nodes with edges to this node, in insertion order.
	predecessors []*node[K]
}
