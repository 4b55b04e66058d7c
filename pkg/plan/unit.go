package plan

import (
	"slices"
	"strconv"

	"github.com/mkessler/portplan/pkg/graph"
)

// DefaultMaxUnitSize caps how many modules a single conversion unit may
// hold before it is split.
const DefaultMaxUnitSize = 10

// Unit is the atomic migration work item: either one cyclic import
// cluster or a batch of singleton modules sharing a package. Members are
// sorted. Every module of a planning run belongs to exactly one unit.
type Unit struct {
	Name      string
	Members   []string
	IsCluster bool
}

// ClusterSplit records an oversized cyclic cluster that had to be split
// across units, together with every cyclic edge that now crosses a unit
// boundary. Splitting weakens the convert-atomically guarantee for these
// modules, so callers must surface the warning rather than drop it.
type ClusterSplit struct {
	Members       []string     // the full cluster, sorted
	Parts         []string     // names of the units it was split into
	CrossingEdges []graph.Edge // intra-cluster edges separated by the split
}

// FormUnits partitions the graph's modules into conversion units.
//
// Cyclic clusters up to maxUnitSize become one unit each. Larger clusters
// are split by sub-package into size-capped parts, and each cyclic edge
// separated by the split is reported in a ClusterSplit. Acyclic modules
// batch by immediate parent package, split into fixed-size sorted batches
// when a package exceeds maxUnitSize. Split units carry a -partN suffix.
//
// Unit order is deterministic: clusters in traversal order, then package
// batches in sorted package order.
func FormUnits(s *graph.Store, maxUnitSize int) ([]Unit, []ClusterSplit) {
	if maxUnitSize <= 0 {
		maxUnitSize = DefaultMaxUnitSize
	}

	names := newNamer()
	var units []Unit
	var splits []ClusterSplit
	var singles []string

	for _, comp := range graph.Components(s) {
		if len(comp) == 1 {
			singles = append(singles, comp[0])
			continue
		}
		if len(comp) <= maxUnitSize {
			units = append(units, Unit{
				Name:      names.unique(clusterName(comp)),
				Members:   comp,
				IsCluster: true,
			})
			continue
		}
		parts := splitCluster(comp, maxUnitSize)
		base := clusterName(comp)
		split := ClusterSplit{Members: comp}
		for i, members := range parts {
			name := names.unique(base + "-part" + strconv.Itoa(i+1))
			split.Parts = append(split.Parts, name)
			units = append(units, Unit{Name: name, Members: members, IsCluster: true})
		}
		split.CrossingEdges = crossingEdges(s, parts)
		splits = append(splits, split)
	}

	units = append(units, formPackageUnits(singles, maxUnitSize, names)...)
	return units, splits
}

// splitCluster groups an oversized cluster by sub-package, chunking any
// group that still exceeds the cap. Members stay sorted within parts.
func splitCluster(members []string, maxUnitSize int) [][]string {
	byPkg := make(map[string][]string)
	for _, id := range members {
		pkg := parentPackage(id)
		byPkg[pkg] = append(byPkg[pkg], id)
	}

	var parts [][]string
	for _, pkg := range sortedKeys(byPkg) {
		group := byPkg[pkg]
		slices.Sort(group)
		for _, chunk := range chunked(group, maxUnitSize) {
			parts = append(parts, chunk)
		}
	}
	return parts
}

// crossingEdges finds the cluster's internal edges whose endpoints landed
// in different parts.
func crossingEdges(s *graph.Store, parts [][]string) []graph.Edge {
	partOf := make(map[string]int)
	for i, part := range parts {
		for _, id := range part {
			partOf[id] = i
		}
	}

	var crossing []graph.Edge
	for _, part := range parts {
		for _, id := range part {
			for _, target := range s.ImportsOf(id) {
				tp, inCluster := partOf[target]
				if inCluster && tp != partOf[id] {
					crossing = append(crossing, graph.Edge{From: id, To: target})
				}
			}
		}
	}
	slices.SortFunc(crossing, func(a, b graph.Edge) int {
		if a.From != b.From {
			return strcmp(a.From, b.From)
		}
		return strcmp(a.To, b.To)
	})
	return crossing
}

// formPackageUnits batches acyclic modules by immediate parent package.
// Top-level modules (no package) each form their own batch.
func formPackageUnits(singles []string, maxUnitSize int, names *namer) []Unit {
	byPkg := make(map[string][]string)
	for _, id := range singles {
		key := parentPackage(id)
		if key == "" {
			key = id
		}
		byPkg[key] = append(byPkg[key], id)
	}

	var units []Unit
	for _, pkg := range sortedKeys(byPkg) {
		group := byPkg[pkg]
		slices.Sort(group)
		chunks := chunked(group, maxUnitSize)
		base := packageUnitName(parentPackage(group[0]), group)
		if len(chunks) == 1 {
			units = append(units, Unit{Name: names.unique(base), Members: chunks[0]})
			continue
		}
		for i, chunk := range chunks {
			name := names.unique(base + "-part" + strconv.Itoa(i+1))
			units = append(units, Unit{Name: name, Members: chunk})
		}
	}
	return units
}

func chunked(sorted []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(sorted); start += size {
		end := min(start+size, len(sorted))
		chunks = append(chunks, sorted[start:end])
	}
	return chunks
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func strcmp(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
