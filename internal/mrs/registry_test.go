package mrs

import (
	"errors"
	"testing"

	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/mrserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegister_DefaultsNameToCanonicalPackage(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	l0 := s.AppendLayer("foundation")

	m, err := s.Register(definePackage(t, c, "core.types"), l0, "")
	require.NoError(t, err)

	assert.Equal(t, "core", m.Name())
	assert.Equal(t, "core", epackage.QualifiedName(m.Package()))
	assert.Same(t, l0, m.Layer())
	assert.True(t, l0.Contains(m))
	assert.Equal(t, 1, s.Len())
}

func TestRegister_ExplicitName(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	l0 := s.AppendLayer("foundation")

	m, err := s.Register(definePackage(t, c, "core"), l0, "Core Types")
	require.NoError(t, err)
	assert.Equal(t, "Core Types", m.Name())
}

func TestRegister_DuplicateCanonicalPackage(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	l0 := s.AppendLayer("foundation")
	l1 := s.AppendLayer("domain")

	first := register(t, s, c, "core", l0)

	testCases := []struct {
		name      string
		qualified string
		layer     *Layer
	}{
		{name: "same package, same layer", qualified: "core", layer: l0},
		{name: "same package, other layer", qualified: "core", layer: l1},
		{name: "sub-package of registered package", qualified: "core.types.primitives", layer: l1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(definePackage(t, c, tc.qualified), tc.layer, "")
			require.ErrorIs(t, err, mrserr.ErrDuplicateMetamodel)

			assert.Equal(t, 1, s.Len())
			assert.Equal(t, 0, l1.Len())
			found, ok := s.FindByPackage(definePackage(t, c, "core"))
			require.True(t, ok)
			assert.Same(t, first, found)
		})
	}
}

func TestRegister_Errors(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	other := New("other").AppendLayer("foreign")

	_, err := s.Register(definePackage(t, c, "core"), other, "")
	require.ErrorIs(t, err, mrserr.ErrUnknownEntity)

	_, err = s.Register(nil, s.AppendLayer("l0"), "")
	require.ErrorIs(t, err, mrserr.ErrUnknownEntity)

	_, err = s.Register(definePackage(t, c, "core"), nil, "")
	require.ErrorIs(t, err, mrserr.ErrUnknownEntity)

	assert.Equal(t, 0, s.Len())
}

func TestFindByPackage(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	l0 := s.AppendLayer("foundation")
	l1 := s.AppendLayer("domain")

	core := register(t, s, c, "core", l0)
	orders := register(t, s, c, "orders", l1)

	found, ok := s.FindByPackage(definePackage(t, c, "core.types"))
	require.True(t, ok, "lookup canonicalizes sub-packages")
	assert.Same(t, core, found)

	found, ok = s.FindByPackage(definePackage(t, c, "orders"))
	require.True(t, ok, "lookup spans all layers")
	assert.Same(t, orders, found)

	_, ok = s.FindByPackage(definePackage(t, c, "billing"))
	assert.False(t, ok)
	_, ok = s.FindByPackage(nil)
	assert.False(t, ok)
}

func TestMetamodelLookups(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	l0 := s.AppendLayer("foundation")
	core := register(t, s, c, "core", l0)

	byID, ok := s.Metamodel(core.ID())
	require.True(t, ok)
	assert.Same(t, core, byID)

	byName, ok := s.MetamodelByName("core")
	require.True(t, ok)
	assert.Same(t, core, byName)

	_, ok = s.MetamodelByName("missing")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	l0 := s.AppendLayer("foundation")
	core := register(t, s, c, "core", l0)

	require.NoError(t, s.Remove(core))
	assert.Equal(t, 0, s.Len())
	assert.False(t, l0.Contains(core))
	assert.Nil(t, core.Layer())
	_, ok := s.FindByPackage(definePackage(t, c, "core"))
	assert.False(t, ok)

	err := s.Remove(core)
	require.ErrorIs(t, err, mrserr.ErrUnknownEntity, "removing twice fails")

	again := register(t, s, c, "core", l0)
	assert.NotEqual(t, core.ID(), again.ID(), "package can be registered again after removal")
}

func TestRemove_ForeignMetamodel(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	other := New("other")
	foreign := register(t, other, c, "core", other.AppendLayer("l0"))

	require.ErrorIs(t, s.Remove(foreign), mrserr.ErrUnknownEntity)
	require.ErrorIs(t, s.Remove(nil), mrserr.ErrUnknownEntity)
	require.ErrorIs(t, s.Remove(NewMetamodel(definePackage(t, c, "x"), "")), mrserr.ErrUnknownEntity)
	assert.Equal(t, 1, other.Len())
}

func TestRenameAndLocation(t *testing.T) {
	c := epackage.NewCatalog()
	s := New("demo")
	l0 := s.AppendLayer("foundation")
	a := register(t, s, c, "a", l0)
	b := register(t, s, c, "b", l0)

	require.NoError(t, s.Rename(a, "shared"))
	require.NoError(t, s.Rename(b, "shared"), "names are not unique")
	assert.Equal(t, "shared", a.Name())
	assert.Equal(t, "shared", b.Name())

	require.NoError(t, s.SetLocation(a, "platform:/plugin/org.example.a/model/a.ecore"))
	assert.Equal(t, "platform:/plugin/org.example.a/model/a.ecore", a.Location())
	require.NoError(t, s.SetLocation(a, ""))
	assert.Empty(t, a.Location())

	detached := NewMetamodel(definePackage(t, c, "z"), "")
	require.ErrorIs(t, s.Rename(detached, "x"), mrserr.ErrUnknownEntity)
	require.ErrorIs(t, s.SetLocation(detached, "x"), mrserr.ErrUnknownEntity)
}

// No sequence of registrations ever leaves two live metamodels with the same
// canonical package, and rejected registrations never change the count.
func TestRegister_UniquenessInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := epackage.NewCatalog()
		s := New("prop")
		layers := []*Layer{s.AppendLayer("l0"), s.AppendLayer("l1"), s.AppendLayer("l2")}

		roots := []string{"a", "b", "c", "d"}
		subs := []string{"", ".x", ".x.y", ".z"}
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")

		for range steps {
			qualified := rapid.SampledFrom(roots).Draw(rt, "root") + rapid.SampledFrom(subs).Draw(rt, "sub")
			layer := rapid.SampledFrom(layers).Draw(rt, "layer")
			pkg, err := c.Define(qualified)
			if err != nil {
				rt.Fatalf("define %q: %v", qualified, err)
			}

			_, existed := s.FindByPackage(pkg)
			before := s.Len()
			_, err = s.Register(pkg, layer, "")

			if existed {
				if err == nil || !errors.Is(err, mrserr.ErrDuplicateMetamodel) {
					rt.Fatalf("expected duplicate error for %q, got %v", qualified, err)
				}
				if s.Len() != before {
					rt.Fatalf("count changed on rejected registration: %d -> %d", before, s.Len())
				}
			} else if err != nil {
				rt.Fatalf("unexpected error for %q: %v", qualified, err)
			}

			seen := make(map[epackage.Package]bool)
			for m := range s.AllMetamodels() {
				if seen[m.Package()] {
					rt.Fatalf("two metamodels share package %s", epackage.QualifiedName(m.Package()))
				}
				seen[m.Package()] = true
			}
		}
	})
}
