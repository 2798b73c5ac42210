package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a description file may hold.
type fileRoot struct {
	Packages   []*packageBlock   `hcl:"package,block"`
	Structures []*structureBlock `hcl:"structure,block"`
}

// packageBlock declares a package and, recursively, its sub-packages.
type packageBlock struct {
	Name     string          `hcl:"name,label"`
	Packages []*packageBlock `hcl:"package,block"`
}

type structureBlock struct {
	Name   string        `hcl:"name,label"`
	Layers []*layerBlock `hcl:"layer,block"`
}

type layerBlock struct {
	Name       string            `hcl:"name,label"`
	Metamodels []*metamodelBlock `hcl:"metamodel,block"`
}

type metamodelBlock struct {
	Name       string            `hcl:"name,label"`
	Package    *string           `hcl:"package,optional"`
	Location   hcl.Expression    `hcl:"location,optional"`
	References []*referenceBlock `hcl:"reference,block"`
}

type referenceBlock struct {
	Target         string         `hcl:"target,label"`
	Classification hcl.Expression `hcl:"classification,optional"`
}
