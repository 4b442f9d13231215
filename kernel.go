// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import (
	"github.com/sirupsen/logrus"
)

// _MINFREENODES is the ratio of free slots (%) under which a safe point
// triggers a garbage collection of the arena.
const _MINFREENODES int = 20

// _DEFAULTNODESIZE is the initial number of slots in the node arena.
const _DEFAULTNODESIZE int = 1 << 12

// _DEFAULTCACHESIZE is the default number of entries in each operation
// cache. The actual size is the next prime.
const _DEFAULTCACHESIZE int = 10000

// _DEFAULTMAXNODEINC is the maximal increase in the number of arena slots
// during a resize, about one million slots.
const _DEFAULTMAXNODEINC int = 1 << 20

var log = logrus.StandardLogger()

// Vertex is an opaque handle to a node of a ZBDD. The two constant families
// have the fixed handles 0 (Empty) and 1 (Base); every other handle is only
// meaningful to the instance that returned it.
type Vertex int

// ZBDD is a Zero-Suppressed Binary Decision Diagram over signed literals,
// together with the tables that keep it canonical. Instances are built with
// FromGraph, FromBDD, FromCutSets, or NewCutSetContainer and must not be
// shared between goroutines.
type ZBDD struct {
	limit     int   // maximum cut-set cardinality
	gatebound int32 // literal indices above this bound denote gate proxies

	nodes    []setnode       // node arena; slots 0 and 1 are the terminals
	unique   map[triplet]int // unicity table; nil once Analyze released it
	freenum  int             // number of free slots
	freepos  int             // first free slot, 0 when the free list is empty
	produced int             // total number of slots ever filled

	maxnodeincrease int // maximum number of slots added by one resize
	minfreenodes    int // free ratio (%) under which a safe point collects

	root    int           // root vertex of the diagram
	modules map[int32]int // module subgraphs keyed by proxy index

	andcache      cache // results of bounded AND computations
	orcache       cache // results of bounded OR computations
	subsumecache  cache // results of subsume computations
	minimizecache cache // results of minimize computations

	cutsets [][]int // cut sets produced by Analyze
}

// newZBDD allocates an instance with an empty root. Terminals take the
// first two slots and are never entered in the unicity table.
func newZBDD(settings Settings, gatebound int, options ...Option) *ZBDD {
	c := makeconfigs()
	for _, opt := range options {
		opt(c)
	}
	b := &ZBDD{
		limit:           settings.LimitOrder,
		gatebound:       int32(gatebound),
		maxnodeincrease: _DEFAULTMAXNODEINC,
		minfreenodes:    c.minfreenodes,
		root:            emptyset,
		modules:         make(map[int32]int),
	}
	nodesize := c.nodesize
	if nodesize < 16 {
		nodesize = 16
	}
	b.nodes = make([]setnode, nodesize)
	for k := range b.nodes {
		b.nodes[k] = setnode{low: -1, high: k + 1}
	}
	b.nodes[nodesize-1].high = 0
	// The terminals live outside the free list and the unicity table.
	b.nodes[emptyset] = setnode{low: emptyset, high: emptyset}
	b.nodes[baseset] = setnode{low: baseset, high: baseset}
	b.freepos = 2
	b.freenum = nodesize - 2
	b.unique = make(map[triplet]int, nodesize)
	b.andcache.init(c.cachesize)
	b.orcache.init(c.cachesize)
	b.subsumecache.init(c.cachesize)
	b.minimizecache.init(c.cachesize)
	return b
}

// makenode fetches the unique slot for the (index, high, low) triplet,
// allocating a fresh one when needed. The zero-suppressed reduction rules
// are folded in: a node whose high branch is Empty collapses to its low
// branch, and so does a node with equal branches (sound here because every
// family that survives an operation is minimized before use).
func (b *ZBDD) makenode(index, order int32, high, low int, module bool) int {
	if high == emptyset {
		return low
	}
	if high == low {
		return low
	}
	key := triplet{index: index, high: high, low: low}
	if res, ok := b.unique[key]; ok {
		return res
	}
	if b.freepos == 0 {
		b.noderesize()
	}
	res := b.freepos
	b.freepos = b.nodes[res].high
	b.freenum--
	b.produced++
	b.nodes[res] = setnode{index: index, order: order, low: low, high: high, module: module}
	b.unique[key] = res
	return res
}

// literal returns the single-literal family {{index}}.
func (b *ZBDD) literal(index, order int32, module bool) int {
	return b.makenode(index, order, baseset, emptyset, module)
}

// noderesize grows the arena and threads the new slots onto the free list.
func (b *ZBDD) noderesize() {
	oldsize := len(b.nodes)
	nodesize := oldsize << 1
	if b.maxnodeincrease > 0 && nodesize > oldsize+b.maxnodeincrease {
		nodesize = oldsize + b.maxnodeincrease
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("resizing node arena: %d -> %d", oldsize, nodesize)
	}
	tmp := b.nodes
	b.nodes = make([]setnode, nodesize)
	copy(b.nodes, tmp)
	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = setnode{low: -1, high: n + 1}
	}
	b.nodes[nodesize-1].high = b.freepos
	b.freepos = oldsize
	b.freenum += nodesize - oldsize
}

// cachereset invalidates all the operation caches. Called when arena slots
// may be reused, so that a stale probe can never match a recycled id, and
// after a gate is finished to bound the memory of the compute tables.
func (b *ZBDD) cachereset() {
	b.andcache.reset()
	b.orcache.reset()
	b.subsumecache.reset()
	b.minimizecache.reset()
}

// Root returns the handle of the current root vertex.
func (b *ZBDD) Root() Vertex {
	return Vertex(b.root)
}

// CutSets returns the cut sets produced by Analyze, one ascending slice of
// signed literal indices per set.
func (b *ZBDD) CutSets() [][]int {
	return b.cutsets
}
