// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustGate adds a gate or fails the test.
func mustGate(t *testing.T, g *BooleanGraph, index int, typ GateType, module bool, args ...int) *Gate {
	t.Helper()
	gate, err := g.AddGate(index, typ, module, args...)
	require.NoError(t, err)
	return gate
}

// mustRoot declares the root gate or fails the test.
func mustRoot(t *testing.T, g *BooleanGraph, index int) {
	t.Helper()
	require.NoError(t, g.SetRoot(index))
}

// evalGate evaluates the Boolean formula of a gate under an assignment of
// the basic events. Unassigned variables are false.
func evalGate(g *BooleanGraph, gate *Gate, assign map[int]bool) bool {
	if gate.IsConstant() {
		return gate.State() == UnityState
	}
	res := gate.Type() == AndGate
	for _, arg := range gate.Args() {
		abs := arg
		neg := false
		if abs < 0 {
			abs = -abs
			neg = true
		}
		var v bool
		if abs <= g.NumVariables() {
			v = assign[abs]
			if neg {
				v = !v
			}
		} else {
			v = evalGate(g, g.Gate(arg), assign)
		}
		if gate.Type() == AndGate {
			res = res && v
		} else {
			res = res || v
		}
	}
	return res
}

// sortCutSets normalizes a cut-set list the way Analyze reports it.
func sortCutSets(sets [][]int) [][]int {
	for _, cs := range sets {
		sort.Ints(cs)
	}
	sort.Slice(sets, func(i, j int) bool {
		x, y := sets[i], sets[j]
		if len(x) != len(y) {
			return len(x) < len(y)
		}
		for k := range x {
			if x[k] != y[k] {
				return x[k] < y[k]
			}
		}
		return false
	})
	return sets
}

// bruteMinimalCutSets enumerates the minimal satisfying assignments of a
// coherent graph with Hamming weight at most limit, by exhausting all the
// assignments. For monotone formulas a satisfying set is minimal exactly
// when dropping any single element falsifies the formula.
func bruteMinimalCutSets(g *BooleanGraph, limit int) [][]int {
	n := g.NumVariables()
	out := [][]int{}
	for m := 1; m < 1<<uint(n); m++ {
		assign := make(map[int]bool, n)
		vars := []int{}
		for i := 1; i <= n; i++ {
			if m>>uint(i-1)&1 == 1 {
				assign[i] = true
				vars = append(vars, i)
			}
		}
		if len(vars) > limit {
			continue
		}
		if !evalGate(g, g.Root(), assign) {
			continue
		}
		minimal := true
		for _, v := range vars {
			assign[v] = false
			sat := evalGate(g, g.Root(), assign)
			assign[v] = true
			if sat {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, vars)
		}
	}
	return sortCutSets(out)
}
