// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import "github.com/pkg/errors"

// Typed input contract for the BDD construction path. The probability
// engine keeps its fault tree as a Reduced Ordered BDD with attributed
// (complement) edges and a single terminal; FromBDD converts such a graph
// into a ZBDD without rebuilding it from the Boolean graph.

// Ite is an if-then-else vertex of a ROBDD. The terminal One is the unique
// vertex with nil branches; complements are expressed as attributes on the
// low edges, so the high branch is never complemented.
type Ite struct {
	index int
	order int
	id    int

	high *Ite
	low  *Ite

	complementEdge bool // the low edge is complemented
	module         bool // the vertex is a proxy for a module function
}

// One is the single terminal vertex of every attributed-edge BDD; its id
// is fixed to 1.
var One = &Ite{id: 1}

// NewIte creates a non-terminal ROBDD vertex. Ids must be unique across
// the whole BDD and distinct from the terminal id 1.
func NewIte(index, order, id int, high, low *Ite, complementEdge, module bool) *Ite {
	return &Ite{
		index:          index,
		order:          order,
		id:             id,
		high:           high,
		low:            low,
		complementEdge: complementEdge,
		module:         module,
	}
}

// Terminal reports whether the vertex is the One terminal.
func (v *Ite) Terminal() bool { return v.high == nil }

// Index returns the variable or module index of the vertex.
func (v *Ite) Index() int { return v.index }

// Order returns the ordering key of the vertex.
func (v *Ite) Order() int { return v.order }

// ID returns the unique id of the vertex.
func (v *Ite) ID() int { return v.id }

// High returns the then branch.
func (v *Ite) High() *Ite { return v.high }

// Low returns the else branch.
func (v *Ite) Low() *Ite { return v.low }

// ComplementEdge reports whether the low edge is complemented.
func (v *Ite) ComplementEdge() bool { return v.complementEdge }

// Module reports whether the vertex is a module proxy.
func (v *Ite) Module() bool { return v.module }

// Function is a rooted, possibly complemented BDD graph.
type Function struct {
	Vertex     *Ite
	Complement bool
}

// BDD is the attributed-edge ROBDD input of FromBDD: a root function and
// the functions of the module gates, keyed by gate index.
type BDD struct {
	root    Function
	modules map[int]Function
}

// NewBDD wraps a root function.
func NewBDD(root *Ite, complement bool) *BDD {
	return &BDD{
		root:    Function{Vertex: root, Complement: complement},
		modules: make(map[int]Function),
	}
}

// AddModule registers the function of a module gate.
func (b *BDD) AddModule(index int, vertex *Ite, complement bool) {
	b.modules[index] = Function{Vertex: vertex, Complement: complement}
}

// Root returns the root function.
func (b *BDD) Root() Function { return b.root }

// Module returns the function of a module gate.
func (b *BDD) Module(index int) (Function, bool) {
	fn, ok := b.modules[index]
	return fn, ok
}

func (b *BDD) validate() error {
	if b == nil || b.root.Vertex == nil {
		return errors.Wrap(ErrInvalidBDD, "missing root vertex")
	}
	return nil
}
