package epackage

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// segmentRegex matches a single segment of a qualified package name.
var segmentRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Node is the Package implementation handed out by Catalog.
type Node struct {
	name     string
	super    *Node
	children map[string]*Node
	order    []string
}

// Name returns the simple (unqualified) name of the package.
func (n *Node) Name() string { return n.name }

// SuperPackage returns the enclosing package, or nil for a top-level package.
func (n *Node) SuperPackage() Package {
	if n.super == nil {
		// Returning n.super directly would yield a non-nil interface holding a nil pointer.
		return nil
	}
	return n.super
}

// SubPackages returns the direct sub-packages in definition order.
func (n *Node) SubPackages() []*Node {
	subs := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		subs = append(subs, n.children[name])
	}
	return subs
}

// String returns the qualified name of the package.
func (n *Node) String() string {
	return QualifiedName(n)
}

func (n *Node) child(name string) *Node {
	if c, ok := n.children[name]; ok {
		return c
	}
	c := &Node{name: name, super: n, children: make(map[string]*Node)}
	n.children[name] = c
	n.order = append(n.order, name)
	return c
}

// Catalog is an in-memory package source keyed by qualified name.
// It is not safe for concurrent mutation.
type Catalog struct {
	roots map[string]*Node
	order []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{roots: make(map[string]*Node)}
}

// SplitQualifiedName validates a dotted qualified name and returns its segments.
func SplitQualifiedName(qualified string) ([]string, error) {
	if qualified == "" {
		return nil, fmt.Errorf("package name cannot be empty")
	}
	segments := strings.Split(qualified, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("package name %q contains an empty segment", qualified)
		}
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid package name segment %q in %q", segment, qualified)
		}
	}
	return segments, nil
}

// Define returns the package with the given qualified name, creating it and
// any missing ancestors. Defining an existing package returns the same handle.
func (c *Catalog) Define(qualified string) (*Node, error) {
	segments, err := SplitQualifiedName(qualified)
	if err != nil {
		return nil, err
	}

	root, ok := c.roots[segments[0]]
	if !ok {
		root = &Node{name: segments[0], children: make(map[string]*Node)}
		c.roots[segments[0]] = root
		c.order = append(c.order, segments[0])
	}

	cur := root
	for _, segment := range segments[1:] {
		cur = cur.child(segment)
	}
	return cur, nil
}

// Lookup returns the package with the given qualified name, if defined.
func (c *Catalog) Lookup(qualified string) (*Node, bool) {
	segments, err := SplitQualifiedName(qualified)
	if err != nil {
		return nil, false
	}
	cur, ok := c.roots[segments[0]]
	for _, segment := range segments[1:] {
		if !ok {
			return nil, false
		}
		cur, ok = cur.children[segment]
	}
	return cur, ok
}

// Roots returns the top-level packages in definition order.
func (c *Catalog) Roots() []*Node {
	roots := make([]*Node, 0, len(c.order))
	for _, name := range c.order {
		roots = append(roots, c.roots[name])
	}
	return roots
}

// Len returns the number of top-level packages.
func (c *Catalog) Len() int {
	return len(c.roots)
}

// All yields every package in the catalog depth-first, each package before its
// sub-packages, in definition order.
func (c *Catalog) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var walk func(n *Node) bool
		walk = func(n *Node) bool {
			if !yield(n) {
				return false
			}
			for _, sub := range n.SubPackages() {
				if !walk(sub) {
					return false
				}
			}
			return true
		}
		for _, root := range c.Roots() {
			if !walk(root) {
				return
			}
		}
	}
}
