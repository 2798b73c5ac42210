package mrs

import (
	"iter"
	"slices"
	"testing"

	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/refstore"
	"github.com/stretchr/testify/require"
)

// definePackage is a helper that materializes a package handle by qualified name.
func definePackage(t *testing.T, c *epackage.Catalog, qualified string) epackage.Package {
	t.Helper()
	p, err := c.Define(qualified)
	require.NoError(t, err)
	return p
}

// register is a helper that registers a package and fails the test on error.
func register(t *testing.T, s *Structure, c *epackage.Catalog, qualified string, layer *Layer) *Metamodel {
	t.Helper()
	m, err := s.Register(definePackage(t, c, qualified), layer, "")
	require.NoError(t, err)
	return m
}

func names(seq iter.Seq[*Metamodel]) []string {
	var out []string
	for m := range seq {
		out = append(out, m.Name())
	}
	return out
}

func edges(seq iter.Seq[refstore.Edge]) []refstore.Edge {
	return slices.Collect(seq)
}
