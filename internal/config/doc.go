// Package config defines the format-agnostic description of a Modular
// Reference Structure, along with the Loader interface that format-specific
// packages implement.
//
// The Model is the single input of the builder package. Concrete loaders for
// HCL and YAML live in separate packages.
package config
