package validate

import (
	"encoding/json"
	"iter"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/specialistvlad/mrsgo/internal/dag"
	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/inmemoryrefs"
	"github.com/specialistvlad/mrsgo/internal/mrs"
	"github.com/specialistvlad/mrsgo/internal/mrserr"
	"github.com/specialistvlad/mrsgo/internal/refstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t       *testing.T
	catalog *epackage.Catalog
	s       *mrs.Structure
}

func newFixture(t *testing.T, layers ...string) *fixture {
	t.Helper()
	f := &fixture{t: t, catalog: epackage.NewCatalog(), s: mrs.New("test")}
	for _, name := range layers {
		f.s.AppendLayer(name)
	}
	return f
}

func (f *fixture) register(qualified string, layer int) *mrs.Metamodel {
	f.t.Helper()
	p, err := f.catalog.Define(qualified)
	require.NoError(f.t, err)
	m, err := f.s.Register(p, f.s.Layers()[layer], "")
	require.NoError(f.t, err)
	return m
}

func (f *fixture) ref(source, target *mrs.Metamodel, c refstore.Classification) {
	f.t.Helper()
	_, err := f.s.AddReference(source, target, c)
	require.NoError(f.t, err)
}

func TestStructure_EmptyIsValid(t *testing.T) {
	f := newFixture(t)
	report := Structure(f.s)
	assert.True(t, report.OK())
	assert.Empty(t, report.Violations)
}

func TestMandatoryCycle_DetectedOnce(t *testing.T) {
	f := newFixture(t, "l0")
	a := f.register("a", 0)
	b := f.register("b", 0)
	c := f.register("c", 0)
	f.ref(a, b, refstore.Mandatory)
	f.ref(b, c, refstore.Mandatory)
	f.ref(c, a, refstore.Mandatory)

	report := Structure(f.s)
	cycles := report.ByKind(KindMandatoryCycle)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []uuid.UUID{a.ID(), b.ID(), c.ID()}, cycles[0].Metamodels)
	assert.Equal(t, []string{"a", "b", "c"}, cycles[0].Names)
	assert.Contains(t, cycles[0].Message, "a -> b -> c -> a")
	assert.Len(t, report.Violations, 1)

	for _, pair := range [][2]*mrs.Metamodel{{a, b}, {b, c}, {c, a}} {
		t.Run("without "+pair[0].Name()+"->"+pair[1].Name(), func(t *testing.T) {
			f.s.RemoveReference(pair[0], pair[1])
			assert.Zero(t, Structure(f.s).Count(KindMandatoryCycle))

			_, err := f.s.AddReference(pair[0], pair[1], refstore.Mandatory)
			require.NoError(t, err)
			assert.Equal(t, 1, Structure(f.s).Count(KindMandatoryCycle))
		})
	}
}

func TestMandatoryCycle_OptionalEdgesBreakCycles(t *testing.T) {
	f := newFixture(t, "l0")
	a := f.register("a", 0)
	b := f.register("b", 0)
	f.ref(a, b, refstore.Mandatory)
	f.ref(b, a, refstore.Optional)

	assert.True(t, Structure(f.s).OK())

	require.NoError(t, f.s.SetClassification(b, a, refstore.Mandatory))
	assert.Equal(t, 1, Structure(f.s).Count(KindMandatoryCycle))
}

func TestLayerDirection(t *testing.T) {
	f := newFixture(t, "L0", "L1")
	a := f.register("a", 0)
	b := f.register("b", 1)

	f.ref(b, a, refstore.Mandatory)
	assert.True(t, Structure(f.s).OK(), "downward reference is legal")

	f.ref(a, b, refstore.Optional)
	report := Structure(f.s)
	violations := report.ByKind(KindLayerDirection)
	require.Len(t, violations, 1)
	require.NotNil(t, violations[0].Edge)
	assert.Equal(t, a.ID(), violations[0].Edge.Source)
	assert.Equal(t, b.ID(), violations[0].Edge.Target)
	assert.Equal(t, []string{"a", "b"}, violations[0].Names)
}

func TestLayerDirection_SameLayerIsLegal(t *testing.T) {
	f := newFixture(t, "L0")
	a := f.register("a", 0)
	b := f.register("b", 0)
	f.ref(a, b, refstore.Optional)

	assert.Zero(t, Structure(f.s).Count(KindLayerDirection))
}

func TestLayerDirection_FollowsMoves(t *testing.T) {
	f := newFixture(t, "L0", "L1")
	a := f.register("a", 1)
	b := f.register("b", 1)
	f.ref(a, b, refstore.Mandatory)
	assert.True(t, Structure(f.s).OK())

	require.NoError(t, f.s.MoveMetamodel(a, f.s.Layers()[0]))
	assert.Equal(t, 1, Structure(f.s).Count(KindLayerDirection))
}

func TestDanglingReference(t *testing.T) {
	f := newFixture(t, "L0")
	a := f.register("a", 0)
	ghost := uuid.New()

	_, err := f.s.References().Add(a.ID(), ghost, refstore.Mandatory)
	require.NoError(t, err)

	report := Structure(f.s)
	dangling := report.ByKind(KindDanglingReference)
	require.Len(t, dangling, 1)
	assert.Contains(t, dangling[0].Message, "unregistered target")
	assert.Equal(t, []string{"a", ghost.String()}, dangling[0].Names)
	assert.Len(t, report.Violations, 1, "dangling edges are not audited further")
}

// fakeSource lets the audit run over states the registry refuses to create.
type fakeSource struct {
	metamodels []*mrs.Metamodel
	refs       refstore.Store
}

func (f *fakeSource) AllMetamodels() iter.Seq[*mrs.Metamodel] { return slices.Values(f.metamodels) }
func (f *fakeSource) Metamodel(id uuid.UUID) (*mrs.Metamodel, bool) {
	for _, m := range f.metamodels {
		if m.ID() == id {
			return m, true
		}
	}
	return nil, false
}
func (f *fakeSource) LayerIndex(*mrs.Layer) (int, error) { return -1, mrserr.ErrUnknownEntity }
func (f *fakeSource) References() refstore.Store          { return f.refs }

func TestUniqueness_Audit(t *testing.T) {
	c := epackage.NewCatalog()
	root, _ := c.Define("core")
	sub, _ := c.Define("core.types")

	first := mrs.NewMetamodel(root, "")
	second := mrs.NewMetamodel(sub, "core-again")
	third := mrs.NewMetamodel(root, "core-thrice")
	src := &fakeSource{metamodels: []*mrs.Metamodel{first, second, third}, refs: inmemoryrefs.New()}

	report := Structure(src)
	violations := report.ByKind(KindUniqueness)
	require.Len(t, violations, 2)
	assert.Equal(t, []uuid.UUID{first.ID(), second.ID()}, violations[0].Metamodels)
	assert.Equal(t, []uuid.UUID{first.ID(), third.ID()}, violations[1].Metamodels)
}

func TestReport_ChecksDoNotShortCircuit(t *testing.T) {
	f := newFixture(t, "L0", "L1")
	a := f.register("a", 0)
	b := f.register("b", 1)
	f.ref(a, b, refstore.Mandatory) // upward
	f.ref(b, a, refstore.Mandatory) // closes a cycle
	_, err := f.s.References().Add(b.ID(), uuid.New(), refstore.Optional)
	require.NoError(t, err)

	report := Structure(f.s)
	assert.Equal(t, map[Kind]int{
		KindDanglingReference: 1,
		KindLayerDirection:    1,
		KindMandatoryCycle:    1,
	}, report.Summary())

	var kinds []Kind
	for _, v := range report.Violations {
		kinds = append(kinds, v.Kind)
	}
	assert.Equal(t, []Kind{KindDanglingReference, KindLayerDirection, KindMandatoryCycle}, kinds)
}

func TestStructure_DoesNotMutate(t *testing.T) {
	f := newFixture(t, "L0", "L1")
	a := f.register("a", 0)
	b := f.register("b", 1)
	f.ref(a, b, refstore.Mandatory)
	_, _ = f.s.References().Add(a.ID(), uuid.New(), refstore.Optional)

	before := slices.Collect(f.s.References().All())
	Structure(f.s)
	assert.Empty(t, cmp.Diff(before, slices.Collect(f.s.References().All())))
	assert.Equal(t, 2, f.s.Len())
}

func TestEndToEndScenario(t *testing.T) {
	catalog := epackage.NewCatalog()
	s := mrs.New("e2e")
	l0 := s.AppendLayer("L0")
	l1 := s.AppendLayer("L1")
	p1, _ := catalog.Define("p1")
	p2, _ := catalog.Define("p2")

	m1, err := s.Register(p1, l0, "")
	require.NoError(t, err)
	m2, err := s.Register(p2, l1, "")
	require.NoError(t, err)

	_, err = s.AddReference(m2, m1, refstore.Mandatory)
	require.NoError(t, err)
	assert.True(t, Structure(s).OK())

	_, err = s.Register(p1, l1, "")
	require.ErrorIs(t, err, mrserr.ErrDuplicateMetamodel)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Remove(m1))
	assert.Empty(t, slices.Collect(s.ReferencesFrom(m2)))
	assert.Zero(t, Structure(s).Count(KindDanglingReference))
	assert.True(t, Structure(s).OK())
}

func TestInitializationOrder(t *testing.T) {
	f := newFixture(t, "L0", "L1", "L2")
	app := f.register("app", 2)
	orders := f.register("orders", 1)
	core := f.register("core", 0)
	ext := f.register("ext", 1)
	f.ref(app, orders, refstore.Mandatory)
	f.ref(orders, core, refstore.Mandatory)
	f.ref(core, ext, refstore.Optional) // optional edges impose no order

	order, err := InitializationOrder(f.s)
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[uuid.UUID]int)
	for i, m := range order {
		pos[m.ID()] = i
	}
	assert.Less(t, pos[core.ID()], pos[orders.ID()])
	assert.Less(t, pos[orders.ID()], pos[app.ID()])
}

func TestInitializationOrder_Cycle(t *testing.T) {
	f := newFixture(t, "L0")
	a := f.register("a", 0)
	b := f.register("b", 0)
	f.ref(a, b, refstore.Mandatory)
	f.ref(b, a, refstore.Mandatory)

	_, err := InitializationOrder(f.s)
	require.ErrorIs(t, err, dag.ErrCycle)
}

func TestViolation_JSON(t *testing.T) {
	report := Report{Violations: []Violation{{Kind: KindLayerDirection, Message: "upward"}}}
	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"violations":[{"kind":"LayerDirectionViolation","message":"upward"}]}`, string(data))

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report, decoded)
}
