// Package plan turns a scanned module inventory into an ordered,
// risk-scored conversion plan.
//
// # Pipeline
//
// Planning is a single deterministic pass over immutable input:
//
//  1. Build the import graph ([graph.Store]) from module and edge records
//  2. Detect cyclic import clusters ([graph.Components])
//  3. Form atomic conversion units ([FormUnits])
//  4. Coarsen to an acyclic unit graph ([BuildUnitGraph])
//  5. Layer units into dependency-respecting waves ([ScheduleWaves])
//  6. Find the longest dependency chain ([FindCriticalPath])
//  7. Aggregate size/risk/fan-in metrics per unit ([ScoreUnit])
//  8. Assemble the serializable [Plan]
//
// [Planner] runs the whole pipeline. Two runs over identical input
// produce byte-identical plans regardless of input ordering: every
// traversal is over sorted identifiers and every tie breaks
// lexicographically.
//
// # Anomalies
//
// Only malformed module records abort planning. Oversized cyclic clusters
// are split with a warning listing every cyclic edge that crosses a unit
// boundary, and a cycle that unexpectedly survives unit formation lands
// in one forced final wave flagged in the output.
package plan
