package graph

import (
	"slices"
)

// Edge is a directed module-level import: From imports To.
type Edge struct {
	From string
	To   string
}

// Store is the immutable import graph for one planning run. Every module
// in the input set appears in both adjacency maps, possibly with empty
// neighbor lists. Neighbor lists are sorted.
//
// The zero value is not usable - use Build to create a valid Store.
type Store struct {
	ids        []string            // all module IDs, sorted
	importsOf  map[string][]string // module -> modules it imports
	importedBy map[string][]string // module -> modules importing it
	external   map[string]int      // module -> dropped edges to unknown targets
	edges      []Edge              // deduplicated internal edges, sorted
}

// Build constructs a Store from a module ID set and a raw edge list.
// Self-edges are skipped silently. Edges whose target (or source) is not
// in the module set are dropped and tallied as external dependencies of
// the source module. Duplicate edges collapse to one.
func Build(moduleIDs []string, edges []Edge) *Store {
	known := make(map[string]bool, len(moduleIDs))
	for _, id := range moduleIDs {
		known[id] = true
	}

	s := &Store{
		importsOf:  make(map[string][]string, len(moduleIDs)),
		importedBy: make(map[string][]string, len(moduleIDs)),
		external:   make(map[string]int),
	}
	for id := range known {
		s.ids = append(s.ids, id)
		s.importsOf[id] = nil
		s.importedBy[id] = nil
	}
	slices.Sort(s.ids)

	seen := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		if !known[e.From] {
			continue
		}
		if !known[e.To] {
			s.external[e.From]++
			continue
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		s.edges = append(s.edges, e)
		s.importsOf[e.From] = append(s.importsOf[e.From], e.To)
		s.importedBy[e.To] = append(s.importedBy[e.To], e.From)
	}

	for id := range s.importsOf {
		slices.Sort(s.importsOf[id])
	}
	for id := range s.importedBy {
		slices.Sort(s.importedBy[id])
	}
	slices.SortFunc(s.edges, func(a, b Edge) int {
		if a.From != b.From {
			return compare(a.From, b.From)
		}
		return compare(a.To, b.To)
	})

	return s
}

func compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ModuleIDs returns all module IDs in sorted order.
// The returned slice is shared - treat it as read-only.
func (s *Store) ModuleIDs() []string { return s.ids }

// ModuleCount returns the number of modules in the graph.
func (s *Store) ModuleCount() int { return len(s.ids) }

// EdgeCount returns the number of deduplicated internal edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Edges returns all internal edges in sorted order.
// The returned slice is shared - treat it as read-only.
func (s *Store) Edges() []Edge { return s.edges }

// ImportsOf returns the sorted modules that id imports (its dependencies).
// Returns nil for unknown modules or modules with no imports.
func (s *Store) ImportsOf(id string) []string { return s.importsOf[id] }

// ImportedBy returns the sorted modules that import id (its dependents).
// Returns nil for unknown modules or modules with no dependents.
func (s *Store) ImportedBy(id string) []string { return s.importedBy[id] }

// FanOut returns the number of distinct modules that id imports.
func (s *Store) FanOut(id string) int { return len(s.importsOf[id]) }

// FanIn returns the number of distinct modules that import id.
func (s *Store) FanIn(id string) int { return len(s.importedBy[id]) }

// ExternalDeps returns the count of dropped edges from id to modules
// outside the scanned set. These never appear as graph edges.
func (s *Store) ExternalDeps(id string) int { return s.external[id] }

// ExternalTotal returns the total count of dropped external edges.
func (s *Store) ExternalTotal() int {
	total := 0
	for _, n := range s.external {
		total += n
	}
	return total
}

// Contains reports whether id is a module in the graph.
func (s *Store) Contains(id string) bool {
	_, ok := s.importsOf[id]
	return ok
}
