package plan

// daysPerUnit is the coarse per-unit duration constant used only for the
// critical-path estimate. It is independent of the effort-hour model.
const daysPerUnit = 2

// CriticalPath is the longest chain of mutually dependent units. Its
// length bounds the minimum possible serial completion time.
type CriticalPath struct {
	Length int
	Units  []string
}

// EstimatedDays converts the path length into a duration estimate.
func (cp CriticalPath) EstimatedDays() int { return cp.Length * daysPerUnit }

// LongestChains computes, for every unit, the length of the longest
// dependency chain ending at that unit: 1 for dependency-free units, else
// 1 + the maximum chain over its dependencies.
//
// Units are processed in wave order, so every dependency is computed
// before its dependents. Units in a forced wave may have unresolved
// dependencies (the scheduling-anomaly case); those are skipped rather
// than recursed into, keeping the computation total.
func LongestChains(ug *UnitGraph, waves []Wave) (chains map[string]int, backlinks map[string]string) {
	chains = make(map[string]int, len(ug.Units()))
	backlinks = make(map[string]string)

	for _, w := range waves {
		for _, name := range w.Units {
			best, bestDep := 0, ""
			for _, dep := range ug.Dependencies(name) {
				c, ok := chains[dep]
				if !ok {
					continue
				}
				if c > best || (c == best && bestDep != "" && dep < bestDep) {
					best, bestDep = c, dep
				}
			}
			chains[name] = best + 1
			if bestDep != "" {
				backlinks[name] = bestDep
			}
		}
	}
	return chains, backlinks
}

// FindCriticalPath returns the longest dependency chain in the unit
// graph. The start unit is the argmax of the chain lengths (ties broken
// by name) and the path is reconstructed by following the backlinks
// recorded during the dynamic program down to a dependency-free unit.
func FindCriticalPath(ug *UnitGraph, waves []Wave) CriticalPath {
	chains, backlinks := LongestChains(ug, waves)

	start, best := "", 0
	for name, c := range chains {
		if c > best || (c == best && (start == "" || name < start)) {
			start, best = name, c
		}
	}
	if start == "" {
		return CriticalPath{Units: []string{}}
	}

	path := []string{start}
	for {
		next, ok := backlinks[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, next)
	}
	return CriticalPath{Length: best, Units: path}
}
