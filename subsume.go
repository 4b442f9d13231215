// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

// subsume returns the family {S in high : no T in low with T ⊆ S}, that is,
// it drops from high every set that has a subset in low. This is the
// workhorse of minimization: the high branch of a node must not keep sets
// that its low branch already covers.
func (b *ZBDD) subsume(high, low int) int {
	if low == baseset {
		// Every set is a superset of the empty set.
		return emptyset
	}
	if low == emptyset || b.terminal(high) {
		return high
	}
	if res, ok := b.subsumecache.match2(high, low); ok {
		return res
	}
	hn := b.nodes[high]
	ln := b.nodes[low]
	// Outer-before comparison on the (order, -index) key.
	if hn.order > ln.order || (hn.order == ln.order && hn.index < ln.index) {
		// The sets in high cannot contain ln's literal, so only the sets
		// of low without it can subsume anything.
		return b.subsumecache.set2(high, low, b.subsume(high, ln.low))
	}
	var subhigh, sublow int
	if hn.order == ln.order && hn.index == ln.index {
		// Sets with the shared literal are subsumed by low sets with or
		// without it; sets without are only subsumed by sets without.
		subhigh = b.subsume(b.subsume(hn.high, ln.high), ln.low)
		sublow = b.subsume(hn.low, ln.low)
	} else {
		subhigh = b.subsume(hn.high, low)
		sublow = b.subsume(hn.low, low)
	}
	res := b.makenode(hn.index, hn.order, subhigh, sublow, hn.module)
	if res >= 2 && hn.minimal {
		b.nodes[res].minimal = true
	}
	return b.subsumecache.set2(high, low, res)
}

// minimize removes subsumed sets from the whole family rooted at v and
// flags the result, so repeated calls return the identical vertex. Module
// subgraphs referenced by proxies are minimized in place.
func (b *ZBDD) minimize(v int) int {
	if b.terminal(v) {
		return v
	}
	if b.nodes[v].minimal {
		return v
	}
	if res, ok := b.minimizecache.match1(v); ok {
		return res
	}
	n := b.nodes[v]
	if n.module {
		// A container may hold proxies whose modules are joined later.
		if sub, ok := b.modules[n.index]; ok {
			b.modules[n.index] = b.minimize(sub)
		}
	}
	high := b.minimize(n.high)
	low := b.minimize(n.low)
	high = b.subsume(high, low)
	var res int
	if high == emptyset {
		res = low
	} else {
		res = b.makenode(n.index, n.order, high, low, n.module)
		if res >= 2 {
			b.nodes[res].minimal = true
		}
	}
	return b.minimizecache.set1(v, res)
}
