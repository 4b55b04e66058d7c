package plan

import "slices"

// Wave is one scheduling layer. Every dependency of a unit in wave k is
// scheduled in a wave before k. Units within a wave are sorted by name.
type Wave struct {
	Number int
	Units  []string
	Forced bool
}

// ScheduleWaves layers the unit graph into dependency-respecting waves
// using Kahn-style topological scheduling: wave 1 holds units with no
// dependencies, wave k holds units whose full dependency set lies in
// waves 1..k-1.
//
// The unit graph is acyclic by construction, but if a cycle survives unit
// formation no unit would ever become schedulable. Instead of looping,
// the remaining units are placed in one final wave marked Forced so the
// anomaly stays visible downstream.
func ScheduleWaves(ug *UnitGraph) []Wave {
	remaining := make(map[string]bool, len(ug.Units()))
	for _, u := range ug.Units() {
		remaining[u.Name] = true
	}
	scheduled := make(map[string]bool, len(remaining))

	var waves []Wave
	for len(remaining) > 0 {
		var ready []string
		for name := range remaining {
			if depsSatisfied(ug.Dependencies(name), scheduled) {
				ready = append(ready, name)
			}
		}

		if len(ready) == 0 {
			forced := make([]string, 0, len(remaining))
			for name := range remaining {
				forced = append(forced, name)
			}
			slices.Sort(forced)
			waves = append(waves, Wave{Number: len(waves) + 1, Units: forced, Forced: true})
			break
		}

		slices.Sort(ready)
		waves = append(waves, Wave{Number: len(waves) + 1, Units: ready})
		for _, name := range ready {
			scheduled[name] = true
			delete(remaining, name)
		}
	}
	return waves
}

func depsSatisfied(deps []string, scheduled map[string]bool) bool {
	for _, d := range deps {
		if !scheduled[d] {
			return false
		}
	}
	return true
}

// WaveOf builds a unit name -> wave number lookup.
func WaveOf(waves []Wave) map[string]int {
	idx := make(map[string]int)
	for _, w := range waves {
		for _, name := range w.Units {
			idx[name] = w.Number
		}
	}
	return idx
}
