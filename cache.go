// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

// cache is a direct-mapped table for memoizing operation results. A probe
// either hits an entry carrying exactly the requested arguments or misses;
// colliding entries simply overwrite each other, which only costs a
// recomputation.
type cache struct {
	table []cacheData
}

// cacheData is a unit of information stored in an operation cache.
type cacheData struct {
	res int
	a   int
	b   int
	c   int
}

func (bc *cache) init(size int) {
	bc.table = make([]cacheData, primeGte(size))
	bc.reset()
}

func (bc *cache) reset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// ************************************************************

// The hash for a binary bounded operation is #(a, b, limit); arguments are
// already id-ordered by the caller so that commuting calls share a slot.

func (bc *cache) match3(a, b, c int) (int, bool) {
	entry := bc.table[triple(a, b, c, len(bc.table))]
	if entry.a == a && entry.b == b && entry.c == c {
		return entry.res, true
	}
	return -1, false
}

func (bc *cache) set3(a, b, c, res int) int {
	bc.table[triple(a, b, c, len(bc.table))] = cacheData{a: a, b: b, c: c, res: res}
	return res
}

// The hash for subsume is #(high, low).

func (bc *cache) match2(a, b int) (int, bool) {
	entry := bc.table[pair(a, b, len(bc.table))]
	if entry.a == a && entry.b == b {
		return entry.res, true
	}
	return -1, false
}

func (bc *cache) set2(a, b, res int) int {
	bc.table[pair(a, b, len(bc.table))] = cacheData{a: a, b: b, res: res}
	return res
}

// The hash for a unary operation is simply the node id.

func (bc *cache) match1(a int) (int, bool) {
	entry := bc.table[a%len(bc.table)]
	if entry.a == a {
		return entry.res, true
	}
	return -1, false
}

func (bc *cache) set1(a, res int) int {
	bc.table[a%len(bc.table)] = cacheData{a: a, res: res}
	return res
}
