package config

import "context"

// Loader is the interface for a format-specific description loader.
type Loader interface {
	// Load reads every given file, translates it into the format-agnostic
	// model and merges the results in file order.
	Load(ctx context.Context, files ...string) (*Model, error)

	// Extensions lists the file suffixes this loader understands, such as ".hcl".
	Extensions() []string
}
