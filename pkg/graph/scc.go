package graph

import "slices"

// sccFrame is one suspended visit in the iterative Tarjan traversal.
// next indexes into the node's sorted import list.
type sccFrame struct {
	id   string
	next int
}

// Components returns the strongly connected components of the store.
//
// The traversal is Tarjan's algorithm rewritten with an explicit frame
// stack, so arbitrarily deep import chains cannot overflow the call
// stack. Roots are taken in lexicographic order and neighbors are
// expanded in sorted order, which makes both component membership and
// component order deterministic for a given graph.
//
// Each component is internally sorted. Size-1 components are ordinary
// acyclic modules; size>1 components are cyclic import clusters.
func Components(s *Store) [][]string {
	var (
		counter int
		index   = make(map[string]int, len(s.ids))
		lowlink = make(map[string]int, len(s.ids))
		onStack = make(map[string]bool, len(s.ids))
		stack   []string
		comps   [][]string
	)

	for _, root := range s.ids {
		if _, visited := index[root]; visited {
			continue
		}

		work := []sccFrame{{id: root}}
		for len(work) > 0 {
			f := &work[len(work)-1]

			if f.next == 0 {
				index[f.id] = counter
				lowlink[f.id] = counter
				counter++
				stack = append(stack, f.id)
				onStack[f.id] = true
			}

			descended := false
			imports := s.importsOf[f.id]
			for f.next < len(imports) {
				child := imports[f.next]
				f.next++
				if _, visited := index[child]; !visited {
					work = append(work, sccFrame{id: child})
					descended = true
					break
				}
				if onStack[child] && index[child] < lowlink[f.id] {
					lowlink[f.id] = index[child]
				}
			}
			if descended {
				continue
			}

			// All imports explored: f.id is finished.
			finished := f.id
			if lowlink[finished] == index[finished] {
				var comp []string
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					comp = append(comp, top)
					if top == finished {
						break
					}
				}
				slices.Sort(comp)
				comps = append(comps, comp)
			}

			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := &work[len(work)-1]
				if lowlink[finished] < lowlink[parent.id] {
					lowlink[parent.id] = lowlink[finished]
				}
			}
		}
	}

	return comps
}

// CyclicClusters filters Components down to the components of size > 1,
// i.e. the sets of modules that mutually import one another.
func CyclicClusters(s *Store) [][]string {
	var clusters [][]string
	for _, comp := range Components(s) {
		if len(comp) > 1 {
			clusters = append(clusters, comp)
		}
	}
	return clusters
}
