// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import "github.com/pkg/errors"

// GateType is the connective of an indexed gate. After preprocessing a
// fault tree only AND and OR gates remain; a NULL gate is a single-argument
// pass-through that a preprocessor may leave at the root.
type GateType int

const (
	AndGate GateType = iota
	OrGate
	NullGate
)

var gatenames = [3]string{
	AndGate:  "and",
	OrGate:   "or",
	NullGate: "null",
}

func (t GateType) String() string {
	return gatenames[t]
}

// State describes constant gates. A gate is NormalState unless constant
// propagation reduced it to one of the Boolean constants.
type State int

const (
	NormalState State = iota
	NullState         // constant false
	UnityState        // constant true
)

// Variable is a basic event of the indexed fault tree. Indices are
// sequential starting from 1; the order key is assigned by the preprocessor
// and defaults to the index.
type Variable struct {
	index int
	order int
}

// Index returns the positive index of the variable.
func (v *Variable) Index() int { return v.index }

// Order returns the ordering key of the variable.
func (v *Variable) Order() int { return v.order }

// Gate is an indexed gate of the Boolean graph. Arguments are signed
// variable indices (negative for complements) or positive gate indices;
// gate arguments are never complemented.
type Gate struct {
	index  int
	order  int
	typ    GateType
	module bool
	state  State

	args         []int             // all arguments, signed, in insertion order
	variableArgs map[int]*Variable // keyed by signed argument index
	gateArgs     map[int]*Gate     // keyed by gate index
	parents      int
}

// Index returns the index of the gate. Gate indices are sequential above
// the graph's variable indices.
func (g *Gate) Index() int { return g.index }

// Order returns the ordering key of the gate.
func (g *Gate) Order() int { return g.order }

// SetOrder overrides the ordering key assigned at creation.
func (g *Gate) SetOrder(order int) { g.order = order }

// Type returns the connective of the gate.
func (g *Gate) Type() GateType { return g.typ }

// IsModule reports whether the subgraph below this gate shares no variable
// with the rest of the graph and can be solved independently.
func (g *Gate) IsModule() bool { return g.module }

// IsConstant reports whether constant propagation reduced this gate.
func (g *Gate) IsConstant() bool { return g.state != NormalState }

// State returns the constant state of the gate.
func (g *Gate) State() State { return g.state }

// Args returns the signed argument indices in insertion order.
func (g *Gate) Args() []int { return g.args }

// Parents returns the number of gates that use this gate as an argument.
func (g *Gate) Parents() int { return g.parents }

// BooleanGraph is the indexed, preprocessed view of a fault tree: AND/OR
// gates over variables 1..NumVariables, complements pushed to the leaves,
// modules flagged. It is the main input of the cut-set engine.
type BooleanGraph struct {
	numVariables int
	variables    map[int]*Variable
	gates        map[int]*Gate
	root         *Gate
	coherent     bool
}

// NewBooleanGraph creates an empty graph over the given number of basic
// events. Variables are implicit: any argument index v with |v| in
// [1..numVariables] refers to the basic event |v|.
func NewBooleanGraph(numVariables int) *BooleanGraph {
	return &BooleanGraph{
		numVariables: numVariables,
		variables:    make(map[int]*Variable),
		gates:        make(map[int]*Gate),
		coherent:     true,
	}
}

// NumVariables returns the number of basic events of the graph.
func (g *BooleanGraph) NumVariables() int { return g.numVariables }

// GateIndexBound returns the exclusive lower bound for gate indices;
// every index above it denotes a gate.
func (g *BooleanGraph) GateIndexBound() int { return g.numVariables }

// Coherent reports whether the graph is free of complemented variables.
func (g *BooleanGraph) Coherent() bool { return g.coherent }

// Root returns the top gate.
func (g *BooleanGraph) Root() *Gate { return g.root }

// Gate returns the gate with the given index, or nil.
func (g *BooleanGraph) Gate(index int) *Gate { return g.gates[index] }

// Variable returns the basic event with the given positive index, creating
// its record on first use.
func (g *BooleanGraph) Variable(index int) *Variable {
	if v, ok := g.variables[index]; ok {
		return v
	}
	v := &Variable{index: index, order: index}
	g.variables[index] = v
	return v
}

// SetVariableOrder overrides the default ordering key of a basic event.
func (g *BooleanGraph) SetVariableOrder(index, order int) error {
	if index < 1 || index > g.numVariables {
		return errors.Wrapf(ErrInvalidGraph, "no variable with index %d", index)
	}
	if order < 1 {
		return errors.Wrapf(ErrInvalidGraph, "order must be positive, got %d", order)
	}
	g.Variable(index).order = order
	return nil
}

// AddGate creates a gate. The index must be above the variable indices and
// unused; arguments refer to variables by signed index and to previously
// added gates by positive index (bottom-up construction). The gate's order
// defaults to its index, which keeps gate proxies sorted after variables
// unless the caller assigns explicit orders.
func (g *BooleanGraph) AddGate(index int, typ GateType, module bool, args ...int) (*Gate, error) {
	if index <= g.numVariables {
		return nil, errors.Wrapf(ErrInvalidGraph, "gate index %d is not above the variable indices", index)
	}
	if _, dup := g.gates[index]; dup {
		return nil, errors.Wrapf(ErrInvalidGraph, "duplicate gate index %d", index)
	}
	if typ == NullGate && len(args) != 1 {
		return nil, errors.Wrapf(ErrInvalidGraph, "null gate %d must have exactly one argument", index)
	}
	if len(args) == 0 {
		return nil, errors.Wrapf(ErrInvalidGraph, "gate %d has no arguments", index)
	}
	gate := &Gate{
		index:        index,
		order:        index,
		typ:          typ,
		module:       module,
		variableArgs: make(map[int]*Variable),
		gateArgs:     make(map[int]*Gate),
	}
	for _, arg := range args {
		abs := arg
		if abs < 0 {
			abs = -abs
		}
		switch {
		case arg == 0:
			return nil, errors.Wrapf(ErrInvalidGraph, "gate %d has a zero argument", index)
		case abs <= g.numVariables:
			gate.variableArgs[arg] = g.Variable(abs)
			if arg < 0 {
				g.coherent = false
			}
		case arg < 0:
			return nil, errors.Wrapf(ErrInvalidGraph, "gate %d complements gate %d; complements must be pushed to variables", index, abs)
		default:
			child, ok := g.gates[arg]
			if !ok {
				return nil, errors.Wrapf(ErrInvalidGraph, "gate %d refers to unknown gate %d", index, arg)
			}
			gate.gateArgs[arg] = child
			child.parents++
		}
		gate.args = append(gate.args, arg)
	}
	g.gates[index] = gate
	return gate, nil
}

// SetRoot declares the top gate of the graph. The root is a module by
// definition.
func (g *BooleanGraph) SetRoot(index int) error {
	gate, ok := g.gates[index]
	if !ok {
		return errors.Wrapf(ErrInvalidGraph, "no gate with index %d", index)
	}
	gate.module = true
	g.root = gate
	return nil
}

// SetConstantRoot replaces the root with a constant gate, the shape a graph
// takes when constant propagation trivializes the whole tree.
func (g *BooleanGraph) SetConstantRoot(state State) error {
	if state == NormalState {
		return errors.Wrap(ErrInvalidGraph, "constant root needs a constant state")
	}
	index := g.numVariables + 1
	for k := range g.gates {
		if k >= index {
			index = k + 1
		}
	}
	gate := &Gate{
		index:        index,
		order:        index,
		typ:          NullGate,
		module:       true,
		state:        state,
		variableArgs: make(map[int]*Variable),
		gateArgs:     make(map[int]*Gate),
	}
	g.gates[gate.index] = gate
	g.root = gate
	return nil
}

// validate checks the input contract of the construction paths.
func (g *BooleanGraph) validate() error {
	if g.root == nil {
		return errors.Wrap(ErrInvalidGraph, "graph has no root gate")
	}
	for _, gate := range g.gates {
		if gate.order < 1 {
			return errors.Wrapf(ErrInvalidGraph, "gate %d has non-positive order %d", gate.index, gate.order)
		}
		if gate.IsConstant() {
			if gate != g.root {
				return errors.Wrapf(ErrInvalidGraph, "constant gate %d below the root; constants must be propagated", gate.index)
			}
			continue
		}
		switch gate.typ {
		case AndGate, OrGate:
		case NullGate:
			if gate != g.root {
				return errors.Wrapf(ErrInvalidGraph, "null gate %d below the root", gate.index)
			}
		default:
			return errors.Wrapf(ErrInvalidGraph, "gate %d has unsupported type %s", gate.index, gate.typ)
		}
	}
	return nil
}
