// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

// configs stores the values of the tunable parameters of a ZBDD instance.
type configs struct {
	nodesize     int // initial number of slots in the node arena
	cachesize    int // number of entries in each operation cache
	minfreenodes int // free-slot ratio (%) below which a safe point collects
}

func makeconfigs() *configs {
	return &configs{
		nodesize:     _DEFAULTNODESIZE,
		cachesize:    _DEFAULTCACHESIZE,
		minfreenodes: _MINFREENODES,
	}
}

// Option is a configuration option (function) accepted by the constructors.
type Option func(*configs)

// Nodesize is a configuration option (function). Used as a parameter in a
// constructor it sets a preferred initial size for the node arena. The arena
// grows whenever a computation needs more slots, so the value only matters
// for the efficiency of the first operations. Sizes below the two terminal
// slots are ignored.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size > 2 {
			c.nodesize = size
		}
	}
}

// Cachesize is a configuration option (function). Used as a parameter in a
// constructor it sets the number of entries in each operation cache (AND,
// OR, subsume, minimize). The value is rounded up to a prime.
func Cachesize(size int) Option {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Minfreenodes is a configuration option (function). Used as a parameter in
// a constructor it sets the ratio of free slots (%) below which a safe point
// triggers a garbage collection of the arena. The default is 20%.
func Minfreenodes(ratio int) Option {
	return func(c *configs) {
		if ratio >= 0 && ratio <= 100 {
			c.minfreenodes = ratio
		}
	}
}
