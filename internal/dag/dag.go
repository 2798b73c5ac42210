package dag

import (
	"fmt"
	"slices"
)

// New creates and returns an initialized, empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		nodes: make(map[K]*node[K]),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph[K]) AddNode(id K) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node[K]{id: id}
	g.order = append(g.order, id)
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int {
	return len(g.order)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// An error is returned if either node does not exist or if the edge would
// create a self-reference. Adding an existing edge again does nothing.
func (g *Graph[K]) AddEdge(fromID, toID K) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %v -> %v", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %v", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %v", toID)
	}

	if slices.Contains(fromNode.successors, toNode) {
		return nil
	}
	fromNode.successors = append(fromNode.successors, toNode)
	toNode.predecessors = append(toNode.predecessors, fromNode)
	return nil
}

// Successors returns the IDs of the nodes that id has edges to.
func (g *Graph[K]) Successors(id K) ([]K, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %v", id)
	}
	return ids(n.successors), nil
}

// Predecessors returns the IDs of the nodes that have edges to id.
func (g *Graph[K]) Predecessors(id K) ([]K, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %v", id)
	}
	return ids(n.predecessors), nil
}

// Cycles returns every cycle closed by a back edge of a depth-first traversal.
// Each cycle lists its nodes in edge order starting at the node the back edge
// returns to. An acyclic graph yields no cycles.
func (g *Graph[K]) Cycles() [][]K {
	var cycles [][]K
	g.walk(func(n *node[K]) {}, func(path []*node[K], start int) {
		cycles = append(cycles, ids(path[start:]))
	})
	return cycles
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// wrapping ErrCycle naming the first cycle found.
func (g *Graph[K]) DetectCycles() error {
	cycles := g.Cycles()
	if len(cycles) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrCycle, cycles[0])
}

// DependencyOrder returns all nodes ordered so that every node appears after
// all the nodes it has edges to. It fails with ErrCycle if the graph has a cycle.
func (g *Graph[K]) DependencyOrder() ([]K, error) {
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}
	order := make([]K, 0, len(g.order))
	g.walk(func(n *node[K]) { order = append(order, n.id) }, func([]*node[K], int) {})
	return order, nil
}

// walk runs a depth-first traversal over every node in insertion order using
// three colours: unvisited, in progress (on the current path) and done.
// finished is called in post-order; backEdge is called with the current path
// and the index of the in-progress node an edge returns to.
func (g *Graph[K]) walk(finished func(*node[K]), backEdge func(path []*node[K], start int)) {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[*node[K]]int, len(g.nodes))
	var path []*node[K]

	var visit func(n *node[K])
	visit = func(n *node[K]) {
		state[n] = inProgress
		path = append(path, n)

		for _, next := range n.successors {
			switch state[next] {
			case unvisited:
				visit(next)
			case inProgress:
				backEdge(path, slices.Index(path, next))
			}
		}

		path = path[:len(path)-1]
		state[n] = done
		finished(n)
	}

	for _, id := range g.order {
		if n := g.nodes[id]; state[n] == unvisited {
			visit(n)
		}
	}
}

func ids[K comparable](nodes []*node[K]) []K {
	out := make([]K, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.id)
	}
	return out
}
