// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

// Complement elimination, needed only for non-coherent inputs. Cut-set
// semantics drops negative literals: a set {¬a, b} cannot be reported as a
// prime implicant of a fault, so the family of a complement node is the
// union of its branches. Precondition: gate complements were pushed down to
// variables by the preprocessor; afterwards no reachable node carries a
// negative index.

// eliminateAllComplements rewrites the root and every module subgraph and
// minimizes the results.
func (b *ZBDD) eliminateAllComplements() {
	results := make(map[int]int)
	b.root = b.minimize(b.eliminateComplements(b.root, results))
	// A module may have collapsed to a terminal; such entries were inlined
	// into their parents and must not linger in the map.
	for k, m := range b.modules {
		if b.terminal(m) {
			delete(b.modules, k)
		}
	}
}

func (b *ZBDD) eliminateComplements(v int, results map[int]int) int {
	if b.terminal(v) {
		return v
	}
	if res, ok := results[v]; ok {
		return res
	}
	n := b.nodes[v]
	high := b.eliminateComplements(n.high, results)
	low := b.eliminateComplements(n.low, results)
	var res int
	switch {
	case n.module:
		sub, ok := b.modules[n.index]
		if !ok {
			// The module is joined later; keep the proxy untouched.
			res = b.makenode(n.index, n.order, high, low, true)
			break
		}
		module := b.minimize(b.eliminateComplements(sub, results))
		b.modules[n.index] = module
		switch module {
		case emptyset:
			// The module cannot occur; its proxy drops the high branch.
			res = low
		case baseset:
			// The module always occurs; the proxy dissolves.
			res = b.apply(opOr, high, low, b.limit)
		default:
			res = b.makenode(n.index, n.order, high, low, true)
		}
	case n.index < 0:
		res = b.apply(opOr, high, low, b.limit)
	default:
		res = b.makenode(n.index, n.order, high, low, false)
	}
	results[v] = res
	return res
}
