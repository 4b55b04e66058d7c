// Package graph builds the module-level import graph that conversion
// planning runs on.
//
// # Overview
//
// A [Store] holds forward and reverse adjacency for a fixed set of module
// identifiers. Construction normalizes the raw edge list:
//
//   - Self-edges are rejected silently
//   - Duplicate edges collapse to one (set semantics)
//   - Edges to modules outside the set are dropped and counted as
//     external dependencies, exposed alongside the graph
//
// All adjacency is kept in sorted order so that every traversal over the
// store is deterministic regardless of input ordering.
//
// # Cycle Detection
//
// [Components] runs Tarjan's strongly-connected-component algorithm over
// the store using an explicit work-stack, so traversal depth is bounded
// by memory rather than the goroutine call stack. Nodes are visited in
// lexicographic order, making cluster membership and cluster order a pure
// function of the graph.
package graph
