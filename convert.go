// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FromGraph builds the ZBDD of a preprocessed Boolean graph. Variable
// arguments become single-literal families; gates are reduced bottom-up
// with the bounded apply of their connective. A module gate contributes a
// proxy node at its parent and its own subgraph in the modules map, unless
// it is constant, in which case the constant is inlined. Non-coherent
// graphs go through complement elimination before the instance is
// returned.
func FromGraph(g *BooleanGraph, settings Settings, options ...Option) (*ZBDD, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errors.Wrap(ErrInvalidGraph, "nil graph")
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	b := newZBDD(settings, g.GateIndexBound(), options...)
	root := g.Root()
	if root.IsConstant() {
		if root.State() == UnityState {
			b.root = baseset
		} else {
			b.root = emptyset
		}
	} else {
		memo := make(map[int]*graphMemo)
		inlined := make(map[int]int)
		b.root = b.convertGraph(g, root, memo, inlined)
	}
	if !g.Coherent() {
		b.eliminateAllComplements()
	}
	if _DEBUG {
		b.testStructure(b.root)
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("created ZBDD from Boolean graph in %v; %d nodes produced", time.Since(start), b.produced)
	}
	return b, nil
}

// graphMemo keeps the converted vertex of a shared gate together with the
// number of parents that still have to pick it up, so a child gate is
// rebuilt only once and the entry dies with its last use.
type graphMemo struct {
	vertex int
	count  int
}

func (b *ZBDD) convertGraph(g *BooleanGraph, gate *Gate, memo map[int]*graphMemo, inlined map[int]int) int {
	if e, ok := memo[gate.index]; ok {
		e.count--
		if e.count == 0 {
			delete(memo, gate.index)
		}
		return e.vertex
	}
	op := opOr
	res := emptyset
	if gate.typ == AndGate {
		op = opAnd
		res = baseset
	}
	for _, arg := range gate.args {
		abs := arg
		if abs < 0 {
			abs = -abs
		}
		var child int
		if abs <= g.numVariables {
			v := g.Variable(abs)
			child = b.literal(int32(arg), int32(v.order), false)
		} else {
			child = b.convertGateArg(g, g.gates[arg], memo, inlined)
		}
		res = b.apply(op, res, child, b.limit)
	}
	// The compute tables of the finished gate are of no use to its parents.
	b.andcache.reset()
	b.orcache.reset()
	if gate.parents > 1 && !gate.module {
		memo[gate.index] = &graphMemo{vertex: res, count: gate.parents - 1}
	}
	return res
}

func (b *ZBDD) convertGateArg(g *BooleanGraph, child *Gate, memo map[int]*graphMemo, inlined map[int]int) int {
	if child.IsConstant() {
		if child.State() == UnityState {
			return baseset
		}
		return emptyset
	}
	if !child.module {
		return b.convertGraph(g, child, memo, inlined)
	}
	if v, ok := inlined[child.index]; ok {
		return v
	}
	if _, seen := b.modules[int32(child.index)]; !seen {
		sub := b.convertGraph(g, child, memo, inlined)
		if b.terminal(sub) {
			// A constant module is inlined into its parents.
			inlined[child.index] = sub
			return sub
		}
		b.modules[int32(child.index)] = sub
	}
	return b.literal(int32(child.index), int32(child.order), true)
}

// FromBDD converts a Reduced Ordered BDD with attributed edges into a
// ZBDD. Complement edges are resolved against the single One terminal, so
// no complement elimination is needed afterwards; the path is meant for
// coherent fault trees.
func FromBDD(bdd *BDD, settings Settings, options ...Option) (*ZBDD, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if err := bdd.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	b := newZBDD(settings, 0, options...)
	ites := make(map[itekey]int)
	b.root = b.convertBDD(bdd, bdd.root.Vertex, bdd.root.Complement, b.limit, ites)
	if _DEBUG {
		b.testStructure(b.root)
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("created ZBDD from BDD in %v; %d nodes produced", time.Since(start), b.produced)
	}
	return b, nil
}

// itekey memoizes conversions by signed vertex id and remaining limit.
type itekey struct {
	id    int
	limit int
}

func (b *ZBDD) convertBDD(g *BDD, v *Ite, complement bool, limit int, ites map[itekey]int) int {
	if v.Terminal() {
		if complement {
			return emptyset
		}
		return baseset
	}
	key := itekey{id: v.id, limit: limit}
	if complement {
		key.id = -v.id
	}
	if res, ok := ites[key]; ok {
		return res
	}
	low := b.convertBDD(g, v.low, complement != v.complementEdge, limit, ites)
	var res int
	switch {
	case low == baseset:
		// The empty set subsumes everything the high branch could add.
		res = low
	case limit <= 0:
		// No room for another literal; the high branch is dropped.
		res = low
	default:
		dec := 1
		if v.module {
			dec = 0
		}
		high := b.convertBDD(g, v.high, complement, limit-dec, ites)
		if v.module {
			fn, ok := g.modules[v.index]
			if !ok {
				panic(errors.Wrapf(ErrInvalidBDD, "module %d has no function", v.index))
			}
			sub := b.convertBDD(g, fn.Vertex, fn.Complement, b.limit, ites)
			switch sub {
			case emptyset:
				res = low
			case baseset:
				res = b.apply(opOr, high, low, limit)
			default:
				b.modules[int32(v.index)] = sub
				res = b.makenode(int32(v.index), int32(v.order), high, low, true)
			}
		} else {
			res = b.makenode(int32(v.index), int32(v.order), high, low, false)
		}
	}
	ites[key] = res
	return res
}

// ModuleCutSets pairs a module index with the container holding its cut
// sets, the unit of the MOCUS assembly path.
type ModuleCutSets struct {
	Index     int
	Container *CutSetContainer
}

// FromCutSets assembles the containers produced by a MOCUS run into one
// ZBDD. Containers must be listed with every module before any container
// that refers to it; the root of the result is the container registered
// under rootIndex.
func FromCutSets(rootIndex int, containers []ModuleCutSets, settings Settings, options ...Option) (*ZBDD, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if len(containers) == 0 || containers[0].Container == nil {
		return nil, errors.Wrap(ErrInvalidModules, "no containers")
	}
	gatebound := containers[0].Container.gatebound
	b := newZBDD(settings, int(gatebound), options...)
	for _, mc := range containers {
		if mc.Container == nil {
			return nil, errors.Wrapf(ErrInvalidModules, "module %d has no container", mc.Index)
		}
		if _, dup := b.modules[int32(mc.Index)]; dup {
			return nil, errors.Wrapf(ErrInvalidModules, "module %d appears twice", mc.Index)
		}
		memo := make(map[int]int)
		b.modules[int32(mc.Index)] = b.transfer(&mc.Container.ZBDD, mc.Container.root, memo)
		// Every module the container refers to must already be registered.
		if err := b.closure(b.modules[int32(mc.Index)], make(map[int]bool)); err != nil {
			return nil, err
		}
	}
	root, ok := b.modules[int32(rootIndex)]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidModules, "no container for root module %d", rootIndex)
	}
	delete(b.modules, int32(rootIndex))
	b.root = root
	if err := b.checkModuleClosure(); err != nil {
		return nil, err
	}
	if _DEBUG {
		b.testStructure(b.root)
	}
	return b, nil
}

// transfer rebuilds a subgraph of another instance inside this one,
// carrying module entries and minimal flags along. Memoized by source
// slot.
func (b *ZBDD) transfer(src *ZBDD, v int, memo map[int]int) int {
	if v < 2 {
		return v
	}
	if res, ok := memo[v]; ok {
		return res
	}
	n := src.nodes[v]
	high := b.transfer(src, n.high, memo)
	low := b.transfer(src, n.low, memo)
	if n.module {
		if sub, ok := src.modules[n.index]; ok {
			if _, present := b.modules[n.index]; !present {
				b.modules[n.index] = b.transfer(src, sub, memo)
			}
		}
	}
	res := b.makenode(n.index, n.order, high, low, n.module)
	if res >= 2 && n.minimal {
		b.nodes[res].minimal = true
	}
	memo[v] = res
	return res
}

// checkModuleClosure verifies that every reachable module proxy has an
// entry in the modules map.
func (b *ZBDD) checkModuleClosure() error {
	visited := make(map[int]bool)
	if err := b.closure(b.root, visited); err != nil {
		return err
	}
	for _, m := range b.modules {
		if err := b.closure(m, visited); err != nil {
			return err
		}
	}
	return nil
}

func (b *ZBDD) closure(v int, visited map[int]bool) error {
	if v < 2 || visited[v] {
		return nil
	}
	visited[v] = true
	n := b.nodes[v]
	if n.module {
		if _, ok := b.modules[n.index]; !ok {
			return errors.Wrapf(ErrInvalidModules, "module %d is referenced but not provided", n.index)
		}
	}
	if err := b.closure(n.high, visited); err != nil {
		return err
	}
	return b.closure(n.low, visited)
}
