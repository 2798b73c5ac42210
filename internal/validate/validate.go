package validate

import (
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/mrsgo/internal/dag"
	"github.com/specialistvlad/mrsgo/internal/epackage"
	"github.com/specialistvlad/mrsgo/internal/mrs"
	"github.com/specialistvlad/mrsgo/internal/refstore"
)

// Source is the read-only view of a structure the validator audits.
// *mrs.Structure implements it.
type Source interface {
	AllMetamodels() iter.Seq[*mrs.Metamodel]
	Metamodel(id uuid.UUID) (*mrs.Metamodel, bool)
	LayerIndex(layer *mrs.Layer) (int, error)
	References() refstore.Store
}

var _ Source = (*mrs.Structure)(nil)

// Structure runs every check against src and returns the full report.
func Structure(src Source) Report {
	a := newAudit(src)
	a.checkUniqueness()
	a.checkDangling()
	a.checkLayerDirection()
	a.checkMandatoryCycles()
	return Report{Violations: a.violations}
}

// InitializationOrder returns the registered metamodels ordered so that every
// metamodel follows all metamodels it references as MANDATORY. Dangling edges
// are ignored. It fails with an error wrapping dag.ErrCycle when no such order
// exists.
func InitializationOrder(src Source) ([]*mrs.Metamodel, error) {
	a := newAudit(src)
	g := a.mandatoryGraph()
	ids, err := g.DependencyOrder()
	if err != nil {
		return nil, fmt.Errorf("no initialization order: %w", err)
	}
	order := make([]*mrs.Metamodel, 0, len(ids))
	for _, id := range ids {
		if m, ok := src.Metamodel(id); ok {
			order = append(order, m)
		}
	}
	return order, nil
}

type audit struct {
	src        Source
	edges      []refstore.Edge
	dangling   map[refstore.Edge]bool
	violations []Violation
}

func newAudit(src Source) *audit {
	a := &audit{src: src, dangling: make(map[refstore.Edge]bool)}
	for e := range src.References().All() {
		a.edges = append(a.edges, e)
		_, sourceOK := src.Metamodel(e.Source)
		_, targetOK := src.Metamodel(e.Target)
		if !sourceOK || !targetOK {
			a.dangling[e] = true
		}
	}
	return a
}

func (a *audit) report(kind Kind, edge *refstore.Edge, ids []uuid.UUID, format string, args ...any) {
	a.violations = append(a.violations, Violation{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Metamodels: ids,
		Names:      a.names(ids),
		Edge:       edge,
	})
}

func (a *audit) names(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.name(id))
	}
	return out
}

func (a *audit) name(id uuid.UUID) string {
	if m, ok := a.src.Metamodel(id); ok {
		return m.Name()
	}
	return id.String()
}

func (a *audit) checkUniqueness() {
	first := make(map[epackage.Package]*mrs.Metamodel)
	for m := range a.src.AllMetamodels() {
		pkg := epackage.Canonicalize(m.Package())
		owner, seen := first[pkg]
		if !seen {
			first[pkg] = m
			continue
		}
		a.report(KindUniqueness, nil, []uuid.UUID{owner.ID(), m.ID()},
			"metamodels %q and %q share package %q", owner.Name(), m.Name(), epackage.QualifiedName(pkg))
	}
}

func (a *audit) checkDangling() {
	for _, e := range a.edges {
		if !a.dangling[e] {
			continue
		}
		edge := e
		var missing []string
		if _, ok := a.src.Metamodel(e.Source); !ok {
			missing = append(missing, "source "+e.Source.String())
		}
		if _, ok := a.src.Metamodel(e.Target); !ok {
			missing = append(missing, "target "+e.Target.String())
		}
		a.report(KindDanglingReference, &edge, []uuid.UUID{e.Source, e.Target},
			"reference %s -> %s has unregistered %s", a.name(e.Source), a.name(e.Target), strings.Join(missing, " and "))
	}
}

func (a *audit) checkLayerDirection() {
	for _, e := range a.edges {
		if a.dangling[e] {
			continue
		}
		source, _ := a.src.Metamodel(e.Source)
		target, _ := a.src.Metamodel(e.Target)
		sourceIdx, errS := a.src.LayerIndex(source.Layer())
		targetIdx, errT := a.src.LayerIndex(target.Layer())
		if errS != nil || errT != nil {
			continue
		}
		if sourceIdx >= targetIdx {
			continue
		}
		edge := e
		a.report(KindLayerDirection, &edge, []uuid.UUID{e.Source, e.Target},
			"%s reference from %q (layer %d %q) points upward to %q (layer %d %q)",
			e.Classification, source.Name(), sourceIdx, source.Layer().Name(),
			target.Name(), targetIdx, target.Layer().Name())
	}
}

func (a *audit) checkMandatoryCycles() {
	for _, cycle := range a.mandatoryGraph().Cycles() {
		names := a.names(cycle)
		a.report(KindMandatoryCycle, nil, cycle,
			"mandatory references form a cycle: %s -> %s", strings.Join(names, " -> "), names[0])
	}
}

// mandatoryGraph builds the graph of registered metamodels and their
// non-dangling MANDATORY references, in structure order.
func (a *audit) mandatoryGraph() *dag.Graph[uuid.UUID] {
	g := dag.New[uuid.UUID]()
	for m := range a.src.AllMetamodels() {
		g.AddNode(m.ID())
	}
	for _, e := range a.edges {
		if a.dangling[e] || e.Classification != refstore.Mandatory {
			continue
		}
		// Both endpoints are registered; AddEdge only fails for unknown nodes
		// or self edges, which the reference store already rejects.
		_ = g.AddEdge(e.Source, e.Target)
	}
	return g
}
