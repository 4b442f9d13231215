// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Analyze minimizes the diagram and generates the explicit cut sets. The
// generation is destructive: it releases the unicity table, the operation
// caches, and the branches of visited nodes, so the instance must not be
// traversed again afterwards. The result is also available through
// CutSets; every inner slice is sorted ascending and no set exceeds the
// cardinality limit.
func (b *ZBDD) Analyze() [][]int {
	start := time.Now()
	b.gbcIfNeeded()
	b.root = b.minimize(b.root)
	for k := range b.modules {
		b.modules[k] = b.minimize(b.modules[k])
	}
	b.pruneModules()
	if _DEBUG {
		b.testStructure(b.root)
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("minimized ZBDD in %v; %d set nodes, %d cut sets",
			time.Since(start), b.CountSetNodes(), b.CountCutSets())
	}
	// Nothing may outlive the nodes that destructive generation releases.
	b.releaseTables()
	b.countReferences(b.root)
	b.clearMarks(b.root)
	b.cutsets = b.generate(b.root)
	if b.cutsets == nil {
		b.cutsets = [][]int{}
	}
	for _, cs := range b.cutsets {
		sort.Ints(cs)
	}
	sort.Slice(b.cutsets, func(i, j int) bool {
		x, y := b.cutsets[i], b.cutsets[j]
		if len(x) != len(y) {
			return len(x) < len(y)
		}
		for k := range x {
			if x[k] != y[k] {
				return x[k] < y[k]
			}
		}
		return false
	})
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("generated %d cut sets in %v", len(b.cutsets), time.Since(start))
	}
	return b.cutsets
}

// pruneModules drops module entries whose every proxy disappeared during
// minimization, keeping the module map in step with the reachable graph.
func (b *ZBDD) pruneModules() {
	referenced := make(map[int32]bool)
	visited := make(map[int]bool)
	var walk func(v int)
	walk = func(v int) {
		if v < 2 || visited[v] {
			return
		}
		visited[v] = true
		n := b.nodes[v]
		if n.module {
			referenced[n.index] = true
			if sub, ok := b.modules[n.index]; ok {
				walk(sub)
			}
		}
		walk(n.high)
		walk(n.low)
	}
	walk(b.root)
	for k := range b.modules {
		if !referenced[k] {
			delete(b.modules, k)
		}
	}
}

// countReferences stores in every node the number of edges that lead to
// it, counting one edge per module proxy for a module root. Nodes with a
// single reference need no cut-set cache during generation.
func (b *ZBDD) countReferences(v int) {
	if v < 2 {
		return
	}
	n := &b.nodes[v]
	if n.mark {
		n.count++
		return
	}
	n.mark = true
	n.count = 1
	if n.module {
		b.countReferences(b.modules[n.index])
	}
	b.countReferences(n.high)
	b.countReferences(n.low)
}

// generate walks the minimized diagram and emits its cut sets. A module
// proxy contributes the cross product of its high branch with the module's
// own cut sets, filtered by the cardinality limit; a literal node appends
// its index. Visited branches are cut to release memory.
func (b *ZBDD) generate(v int) [][]int {
	if v == baseset {
		return [][]int{{}}
	}
	if v == emptyset {
		return nil
	}
	if b.nodes[v].mark {
		return b.nodes[v].sets
	}
	b.nodes[v].mark = true
	n := b.nodes[v]
	low := b.generate(n.low)
	high := b.generate(n.high)
	result := make([][]int, 0, len(low)+len(high))
	result = append(result, low...)
	if n.module {
		module := b.generate(b.modules[n.index])
		for _, cs := range high {
			for _, ms := range module {
				if len(cs)+len(ms) > b.limit {
					continue
				}
				combo := make([]int, 0, len(cs)+len(ms))
				combo = append(append(combo, cs...), ms...)
				result = append(result, combo)
			}
		}
	} else {
		for _, cs := range high {
			// A positive literal adds to the cardinality of every set.
			if n.index > 0 && len(cs) >= b.limit {
				continue
			}
			combo := make([]int, 0, len(cs)+1)
			combo = append(append(combo, cs...), int(n.index))
			result = append(result, combo)
		}
	}
	if b.nodes[v].count > 1 {
		b.nodes[v].sets = result
	}
	b.cutBranches(v)
	return result
}

// cutBranches releases the strong references of a node whose subgraph has
// been fully enumerated, collapsing long chains during generation.
func (b *ZBDD) cutBranches(v int) {
	b.nodes[v].high = emptyset
	b.nodes[v].low = emptyset
}
