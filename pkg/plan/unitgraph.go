package plan

import (
	"slices"

	"github.com/mkessler/portplan/pkg/graph"
)

// UnitGraph is the coarsened dependency graph between conversion units.
// A unit A depends on B iff some module in A imports some module in B.
// Cycle absorption during unit formation makes this graph acyclic (the
// wave scheduler re-verifies defensively).
type UnitGraph struct {
	units      []Unit
	byName     map[string]Unit
	membership map[string]string   // module ID -> unit name
	deps       map[string][]string // unit -> sorted distinct dependencies
	dependents map[string][]string // unit -> sorted distinct dependents
}

// BuildUnitGraph derives unit-level dependencies from module-level edges.
// It builds the module->unit membership index in one pass over the units,
// then maps every module edge through it exactly once, so the cost is
// O(modules + edges) rather than anything quadratic in the unit count.
func BuildUnitGraph(units []Unit, s *graph.Store) *UnitGraph {
	ug := &UnitGraph{
		units:      units,
		byName:     make(map[string]Unit, len(units)),
		membership: make(map[string]string),
		deps:       make(map[string][]string, len(units)),
		dependents: make(map[string][]string, len(units)),
	}
	for _, u := range units {
		ug.byName[u.Name] = u
		for _, id := range u.Members {
			ug.membership[id] = u.Name
		}
	}

	depSets := make(map[string]map[string]bool)
	for _, e := range s.Edges() {
		from, to := ug.membership[e.From], ug.membership[e.To]
		if from == "" || to == "" || from == to {
			continue
		}
		set := depSets[from]
		if set == nil {
			set = make(map[string]bool)
			depSets[from] = set
		}
		set[to] = true
	}

	for from, set := range depSets {
		for to := range set {
			ug.deps[from] = append(ug.deps[from], to)
			ug.dependents[to] = append(ug.dependents[to], from)
		}
	}
	for name := range ug.deps {
		slices.Sort(ug.deps[name])
	}
	for name := range ug.dependents {
		slices.Sort(ug.dependents[name])
	}
	return ug
}

// Units returns all units in formation order.
func (ug *UnitGraph) Units() []Unit { return ug.units }

// Unit returns the unit with the given name and true, or a zero Unit and
// false if not found.
func (ug *UnitGraph) Unit(name string) (Unit, bool) {
	u, ok := ug.byName[name]
	return u, ok
}

// UnitOf returns the name of the unit containing the module, or "".
func (ug *UnitGraph) UnitOf(moduleID string) string { return ug.membership[moduleID] }

// Dependencies returns the sorted distinct units that name depends on.
func (ug *UnitGraph) Dependencies(name string) []string { return ug.deps[name] }

// Dependents returns the sorted distinct units depending on name.
func (ug *UnitGraph) Dependents(name string) []string { return ug.dependents[name] }

// FanIn returns the number of distinct units depending on name.
func (ug *UnitGraph) FanIn(name string) int { return len(ug.dependents[name]) }
