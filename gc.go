// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import "github.com/sirupsen/logrus"

// Garbage collection of the node arena. Collection runs only at safe
// points, where the live set is exactly the root and the module subgraphs;
// no operation is in flight and no intermediate vertex is held by a caller.
// Sweeping a slot removes its unicity-table entry, so the table only ever
// observes live nodes.

// gbcIfNeeded collects when the free ratio of the arena dropped under the
// configured threshold.
func (b *ZBDD) gbcIfNeeded() {
	if b.unique == nil {
		return
	}
	if b.freenum*100/len(b.nodes) < b.minfreenodes {
		b.gbc()
	}
}

// gbc reclaims every slot not reachable from the root or a module. The
// operation caches are invalidated since reclaimed slot ids may be reused.
func (b *ZBDD) gbc() {
	if b.unique == nil {
		return
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("starting GC; free %d of %d", b.freenum, len(b.nodes))
	}
	b.markrec(b.root)
	for _, m := range b.modules {
		b.markrec(m)
	}
	b.freepos = 0
	b.freenum = 0
	for n := len(b.nodes) - 1; n > 1; n-- {
		if b.nodes[n].mark {
			b.nodes[n].mark = false
			continue
		}
		if b.nodes[n].low != -1 {
			delete(b.unique, triplet{index: b.nodes[n].index, high: b.nodes[n].high, low: b.nodes[n].low})
		}
		b.nodes[n].low = -1
		b.nodes[n].high = b.freepos
		b.nodes[n].sets = nil
		b.freepos = n
		b.freenum++
	}
	b.cachereset()
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("end GC; free %d of %d", b.freenum, len(b.nodes))
	}
}

func (b *ZBDD) markrec(n int) {
	if n < 2 || b.nodes[n].mark || b.nodes[n].low == -1 {
		return
	}
	b.nodes[n].mark = true
	b.markrec(b.nodes[n].low)
	b.markrec(b.nodes[n].high)
}

// releaseTables drops the unicity table and the operation caches. Called by
// Analyze before destructive cut-set generation so that no table outlives
// the nodes it refers to.
func (b *ZBDD) releaseTables() {
	b.unique = nil
	b.andcache.table = nil
	b.orcache.table = nil
	b.subsumecache.table = nil
	b.minimizecache.table = nil
}
