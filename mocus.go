// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CutSetContainer is a mutable, ZBDD-backed set of cut sets used by the
// MOCUS driver. Unlike the direct graph conversion, gate arguments stay in
// the diagram as proxy literals and are expanded one gate at a time:
// ConvertGate introduces the proxies, GetNextGate finds one, expansion
// replaces it with the gate's own cut sets. Gate indices lie strictly above
// the container's gate index bound.
type CutSetContainer struct {
	ZBDD
}

// NewCutSetContainer creates a container with an Empty root.
func NewCutSetContainer(settings Settings, gateIndexBound int, options ...Option) (*CutSetContainer, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if gateIndexBound < 1 {
		return nil, errors.Wrapf(ErrInvalidGraph, "gate index bound must be positive, got %d", gateIndexBound)
	}
	c := &CutSetContainer{}
	c.ZBDD = *newZBDD(settings, gateIndexBound, options...)
	return c, nil
}

// isGate reports whether a node stands for an unexpanded gate.
func (c *CutSetContainer) isGate(n setnode) bool {
	return n.index > c.gatebound
}

// ConvertGate builds the family of an AND/OR gate whose arguments are
// treated as single literals: variables by signed index, child gates as
// proxy literals, module gates as module proxies. Arguments are applied in
// decreasing order so the chain grows bottom-up.
func (c *CutSetContainer) ConvertGate(gate *Gate) Vertex {
	type litarg struct {
		index  int32
		order  int32
		module bool
	}
	args := make([]litarg, 0, len(gate.args))
	for _, arg := range gate.args {
		abs := arg
		if abs < 0 {
			abs = -abs
		}
		if abs <= int(c.gatebound) {
			v := gate.variableArgs[arg]
			args = append(args, litarg{index: int32(arg), order: int32(v.order)})
		} else {
			child := gate.gateArgs[arg]
			args = append(args, litarg{index: int32(arg), order: int32(child.order), module: child.module})
		}
	}
	sort.Slice(args, func(i, j int) bool {
		if args[i].order != args[j].order {
			return args[i].order > args[j].order
		}
		return args[i].index < args[j].index
	})
	op := opOr
	res := emptyset
	if gate.typ == AndGate {
		op = opAnd
		res = baseset
	}
	for _, a := range args {
		res = c.apply(op, res, c.literal(a.index, a.order, a.module), c.limit)
	}
	return Vertex(res)
}

// GetNextGate searches the subgraph under v for a non-module gate proxy
// and returns its index, or 0 when every gate has been expanded. The DFS
// path to the found proxy is marked so that extraction can retrace it.
func (c *CutSetContainer) GetNextGate(v Vertex) int {
	visited := make(map[int]bool)
	return int(c.findGate(int(v), visited))
}

func (c *CutSetContainer) findGate(v int, visited map[int]bool) int32 {
	if v < 2 || visited[v] {
		return 0
	}
	visited[v] = true
	n := &c.nodes[v]
	if c.isGate(*n) && !n.module {
		n.mark = true
		return n.index
	}
	if idx := c.findGate(n.high, visited); idx != 0 {
		n.mark = true
		return idx
	}
	if idx := c.findGate(n.low, visited); idx != 0 {
		n.mark = true
		return idx
	}
	return 0
}

// ExtractIntermediateCutSets removes from the container the cut sets whose
// marked path carries the gate literal and returns them with the literal
// already dropped; the remaining sets become the new root. Requires the
// path marks left by GetNextGate.
func (c *CutSetContainer) ExtractIntermediateCutSets(index int) Vertex {
	ext, rem := c.extract(c.root, int32(index))
	c.root = rem
	return Vertex(ext)
}

func (c *CutSetContainer) extract(v int, index int32) (int, int) {
	n := c.nodes[v]
	c.nodes[v].mark = false
	if n.index == index {
		return n.high, n.low
	}
	if n.high >= 2 && c.nodes[n.high].mark {
		eh, el := c.extract(n.high, index)
		ext := c.makenode(n.index, n.order, eh, emptyset, n.module)
		rem := c.makenode(n.index, n.order, el, n.low, n.module)
		return ext, rem
	}
	if n.low < 2 || !c.nodes[n.low].mark {
		panic("extraction path is not marked")
	}
	eh, el := c.extract(n.low, index)
	rem := c.makenode(n.index, n.order, n.high, el, n.module)
	return eh, rem
}

// ExpandGate substitutes the cut sets of a gate into the intermediate cut
// sets that carried its literal.
func (c *CutSetContainer) ExpandGate(gateZbdd, cutSets Vertex) Vertex {
	return Vertex(c.apply(opAnd, int(gateZbdd), int(cutSets), c.limit))
}

// Merge adds a set of cut sets to the container. The volatile compute
// tables are cleared and the arena is collected when it runs low; this is
// the safe point of the driver loop.
func (c *CutSetContainer) Merge(v Vertex) {
	c.root = c.apply(opOr, c.root, int(v), c.limit)
	c.cachereset()
	c.gbcIfNeeded()
}

// EliminateComplements removes the negative literals of a non-coherent
// expansion from every cut set and minimizes the result.
func (c *CutSetContainer) EliminateComplements() {
	c.eliminateAllComplements()
}

// JoinModule installs the root of another container as the subgraph of the
// module proxy with the given index, transferring the other container's
// own module entries along. The joined cut sets must be final.
func (c *CutSetContainer) JoinModule(index int, other *CutSetContainer) {
	if _, dup := c.modules[int32(index)]; dup {
		panic(errors.Wrapf(ErrInvalidModules, "module %d joined twice", index))
	}
	memo := make(map[int]int)
	c.modules[int32(index)] = c.transfer(&other.ZBDD, other.root, memo)
}

// Sanitize inlines constant modules after all joins, so that no module
// entry is terminal.
func (c *CutSetContainer) Sanitize() {
	memo := make(map[int]int)
	entries := make(map[int32]bool)
	c.root = c.sanitize(c.root, memo, entries)
	for k, m := range c.modules {
		if c.terminal(m) {
			delete(c.modules, k)
		}
	}
}

func (c *CutSetContainer) sanitize(v int, memo map[int]int, entries map[int32]bool) int {
	if v < 2 {
		return v
	}
	if res, ok := memo[v]; ok {
		return res
	}
	n := c.nodes[v]
	high := c.sanitize(n.high, memo, entries)
	low := c.sanitize(n.low, memo, entries)
	var res int
	if n.module {
		if !entries[n.index] {
			entries[n.index] = true
			if sub, ok := c.modules[n.index]; ok {
				c.modules[n.index] = c.sanitize(sub, memo, entries)
			}
		}
		sub, ok := c.modules[n.index]
		switch {
		case !ok:
			res = c.makenode(n.index, n.order, high, low, true)
		case sub == emptyset:
			res = low
		case sub == baseset:
			res = c.apply(opOr, high, low, c.limit)
		default:
			res = c.makenode(n.index, n.order, high, low, true)
		}
	} else {
		res = c.makenode(n.index, n.order, high, low, false)
	}
	memo[v] = res
	return res
}

// moduleReferences lists the distinct module indices referenced by proxies
// under the root, in ascending order.
func (b *ZBDD) moduleReferences() []int {
	visited := make(map[int]bool)
	set := make(map[int32]bool)
	var walk func(v int)
	walk = func(v int) {
		if v < 2 || visited[v] {
			return
		}
		visited[v] = true
		n := b.nodes[v]
		if n.module {
			set[n.index] = true
		}
		walk(n.high)
		walk(n.low)
	}
	walk(b.root)
	refs := make([]int, 0, len(set))
	for k := range set {
		refs = append(refs, int(k))
	}
	sort.Ints(refs)
	return refs
}

// ************************************************************

// CutSet is an explicit cut set handed over by an external MOCUS
// implementation: variable literals in ascending order plus the indices of
// the modules it contains. The empty cut set denotes Unity.
type CutSet struct {
	literals []int
	modules  []int
}

// NewCutSet wraps literal and module indices into a cut set.
func NewCutSet(literals, modules []int) *CutSet {
	return &CutSet{literals: literals, modules: modules}
}

// Literals returns the signed variable indices of the cut set.
func (s *CutSet) Literals() []int { return s.literals }

// Modules returns the module indices of the cut set.
func (s *CutSet) Modules() []int { return s.modules }

// Size returns the total number of elements.
func (s *CutSet) Size() int { return len(s.literals) + len(s.modules) }

// Order returns the number of elements that count towards the cardinality
// limit: positive literals only, since complements and module proxies do
// not add to the order of a set.
func (s *CutSet) Order() int {
	order := 0
	for _, lit := range s.literals {
		if lit > 0 {
			order++
		}
	}
	return order
}

// Empty reports whether the cut set is the Unity set.
func (s *CutSet) Empty() bool { return s.Size() == 0 }

// EmplaceCutSet adds one explicit cut set to the container. Negative
// literals are discarded, as cut-set semantics requires; module members
// become module proxies to be joined later. For this input the ordering
// key of a literal is its index.
func (c *CutSetContainer) EmplaceCutSet(cs *CutSet) {
	if cs.Order() > c.limit {
		return
	}
	type member struct {
		index  int32
		module bool
	}
	members := make([]member, 0, cs.Size())
	for _, lit := range cs.literals {
		if lit > 0 {
			members = append(members, member{index: int32(lit)})
		}
	}
	for _, idx := range cs.modules {
		members = append(members, member{index: int32(idx), module: true})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].index > members[j].index })
	v := baseset
	for _, m := range members {
		v = c.makenode(m.index, m.index, v, emptyset, m.module)
	}
	c.root = c.apply(opOr, c.root, v, c.limit)
}

// ************************************************************

// Mocus generates minimal cut sets by expanding the gates of a Boolean
// graph one at a time inside ZBDD-backed containers, one container per
// module, and assembling the containers into a final diagram.
type Mocus struct {
	graph    *BooleanGraph
	settings Settings
}

// NewMocus validates the inputs and prepares a driver.
func NewMocus(g *BooleanGraph, settings Settings) (*Mocus, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errors.Wrap(ErrInvalidGraph, "nil graph")
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &Mocus{graph: g, settings: settings}, nil
}

// Analyze runs the gate-by-gate expansion and returns the minimal cut
// sets.
func (m *Mocus) Analyze() ([][]int, error) {
	start := time.Now()
	root := m.graph.Root()
	if root.IsConstant() {
		b, err := FromGraph(m.graph, m.settings)
		if err != nil {
			return nil, err
		}
		return b.Analyze(), nil
	}
	var pairs []ModuleCutSets
	seen := make(map[int]bool)
	if err := m.analyzeModule(root, &pairs, seen); err != nil {
		return nil, err
	}
	b, err := FromCutSets(root.Index(), pairs, m.settings)
	if err != nil {
		return nil, err
	}
	cutsets := b.Analyze()
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("MOCUS analysis found %d cut sets in %v", len(cutsets), time.Since(start))
	}
	return cutsets, nil
}

// analyzeModule expands one module into its own container and recurses
// into the modules it refers to, appending them to the vector first so
// that every module precedes its referrers.
func (m *Mocus) analyzeModule(gate *Gate, pairs *[]ModuleCutSets, seen map[int]bool) error {
	if seen[gate.index] {
		return nil
	}
	seen[gate.index] = true
	c, err := NewCutSetContainer(m.settings, m.graph.GateIndexBound())
	if err != nil {
		return err
	}
	c.Merge(c.ConvertGate(gate))
	for idx := c.GetNextGate(c.Root()); idx != 0; idx = c.GetNextGate(c.Root()) {
		next := m.graph.Gate(idx)
		if next == nil {
			return errors.Wrapf(ErrInvalidGraph, "no gate with index %d", idx)
		}
		extracted := c.ExtractIntermediateCutSets(idx)
		c.Merge(c.ExpandGate(c.ConvertGate(next), extracted))
	}
	if !m.graph.Coherent() {
		c.EliminateComplements()
	}
	for _, idx := range c.moduleReferences() {
		sub := m.graph.Gate(idx)
		if sub == nil {
			return errors.Wrapf(ErrInvalidGraph, "no module gate with index %d", idx)
		}
		if err := m.analyzeModule(sub, pairs, seen); err != nil {
			return err
		}
	}
	*pairs = append(*pairs, ModuleCutSets{Index: gate.index, Container: c})
	return nil
}
