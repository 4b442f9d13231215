// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

// operator identifies the Boolean operations available on families of sets.
type operator int

const (
	opAnd operator = iota
	opOr
)

var opnames = [2]string{
	opAnd: "and",
	opOr:  "or",
}

func (op operator) String() string {
	return opnames[op]
}

// apply computes the family for f OR g or f AND g, restricted to sets of
// size at most limit. The restriction is a pruning aid, not a guarantee on
// every intermediate result; the cardinality bound is enforced again during
// cut-set generation. The result is reduced and ordered but not necessarily
// minimal.
func (b *ZBDD) apply(op operator, f, g int, limit int) int {
	if limit < 0 {
		return emptyset
	}
	// Terminal cases. Any Base dominates an OR, any Empty an AND; the other
	// terminal is the identity of its operation.
	switch op {
	case opOr:
		if f == baseset || g == baseset {
			return baseset
		}
		if f == emptyset {
			return g
		}
		if g == emptyset {
			return f
		}
	case opAnd:
		if f == emptyset || g == emptyset {
			return emptyset
		}
		if f == baseset {
			return g
		}
		if g == baseset {
			return f
		}
	}
	if f == g {
		return f
	}
	// Canonicalize so that f carries the outer literal: smaller order first,
	// ties broken by the larger index (a complement sorts below its
	// positive variant).
	if b.nodes[f].order > b.nodes[g].order ||
		(b.nodes[f].order == b.nodes[g].order && b.nodes[f].index < b.nodes[g].index) {
		f, g = g, f
	}
	table := &b.orcache
	if op == opAnd {
		table = &b.andcache
	}
	x, y := f, g
	if x > y {
		x, y = y, x
	}
	if res, ok := table.match3(x, y, limit); ok {
		return res
	}

	fn := b.nodes[f]
	gn := b.nodes[g]
	// The outer literal counts towards the cardinality of a set unless it
	// is a complement or a module proxy.
	dec := 1
	if fn.index < 0 || fn.module {
		dec = 0
	}
	var high, low int
	samevar := fn.order == gn.order && fn.index == gn.index
	switch op {
	case opOr:
		if samevar {
			high = b.apply(opOr, fn.high, gn.high, limit-dec)
			low = b.apply(opOr, fn.low, gn.low, limit)
		} else {
			high = fn.high
			low = b.apply(opOr, fn.low, g, limit)
		}
	case opAnd:
		if samevar {
			// Minato's intersection of covers:
			// (x f1 + f0)(x g1 + g0) = x (f1 (g1 + g0) + f0 g1) + f0 g0
			lim := limit - dec
			high = b.apply(opOr,
				b.apply(opAnd, fn.high, b.apply(opOr, gn.high, gn.low, lim), lim),
				b.apply(opAnd, fn.low, gn.high, lim),
				lim)
			low = b.apply(opAnd, fn.low, gn.low, limit)
		} else {
			high = b.apply(opAnd, fn.high, g, limit-dec)
			low = b.apply(opAnd, fn.low, g, limit)
		}
	}
	// A non-terminal high branch on the same order starts with the
	// complement of the outer variable: a set cannot carry a literal and
	// its complement, so those sets are dropped.
	if high >= 2 && b.nodes[high].order == fn.order {
		high = b.nodes[high].low
	}
	res := b.makenode(fn.index, fn.order, high, low, fn.module)
	return table.set3(x, y, limit, res)
}
