// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGraphRejectsBadSettings(t *testing.T) {
	g := NewBooleanGraph(2)
	mustGate(t, g, 3, AndGate, false, 1, 2)
	mustRoot(t, g, 3)
	_, err := FromGraph(g, Settings{LimitOrder: 0})
	assert.ErrorIs(t, err, ErrSettings)
	_, err = FromGraph(nil, Settings{LimitOrder: 2})
	assert.ErrorIs(t, err, ErrInvalidGraph)
}

func TestGraphBuilderRejectsBadInput(t *testing.T) {
	g := NewBooleanGraph(3)
	_, err := g.AddGate(2, AndGate, false, 1)
	assert.ErrorIs(t, err, ErrInvalidGraph) // index collides with a variable
	_, err = g.AddGate(4, AndGate, false)
	assert.ErrorIs(t, err, ErrInvalidGraph) // no arguments
	_, err = g.AddGate(4, AndGate, false, 1, 5)
	assert.ErrorIs(t, err, ErrInvalidGraph) // unknown gate argument
	mustGate(t, g, 4, AndGate, false, 1, 2)
	_, err = g.AddGate(5, OrGate, false, -4, 3)
	assert.ErrorIs(t, err, ErrInvalidGraph) // complemented gate argument
	_, err = g.AddGate(4, OrGate, false, 1)
	assert.ErrorIs(t, err, ErrInvalidGraph) // duplicate index
	assert.ErrorIs(t, g.SetRoot(9), ErrInvalidGraph)
}

// OR(AND(A,B), AND(A,C)) has the cut sets {1,2} and {1,3}.
func TestAnalyzeDisjunctionOfProducts(t *testing.T) {
	g := NewBooleanGraph(3)
	mustGate(t, g, 4, AndGate, false, 1, 2)
	mustGate(t, g, 5, AndGate, false, 1, 3)
	mustGate(t, g, 6, OrGate, false, 4, 5)
	mustRoot(t, g, 6)
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {1, 3}}, b.Analyze())
}

// AND(OR(A,B), OR(A,C)) minimizes to A alone plus {B,C}.
func TestAnalyzeMinimizesSharedEvent(t *testing.T) {
	g := NewBooleanGraph(3)
	mustGate(t, g, 4, OrGate, false, 1, 2)
	mustGate(t, g, 5, OrGate, false, 1, 3)
	mustGate(t, g, 6, AndGate, false, 4, 5)
	mustRoot(t, g, 6)
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}, {2, 3}}, b.Analyze())
}

// XOR(A,B) expanded as OR(AND(A,¬B), AND(¬A,B)) loses its complements.
func TestAnalyzeExclusiveOr(t *testing.T) {
	g := NewBooleanGraph(2)
	mustGate(t, g, 3, AndGate, false, 1, -2)
	mustGate(t, g, 4, AndGate, false, -1, 2)
	mustGate(t, g, 5, OrGate, false, 3, 4)
	mustRoot(t, g, 5)
	require.False(t, g.Coherent())
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}, {2}}, b.Analyze())
}

// A module gate is solved independently and embedded through a proxy.
func TestAnalyzeModuleGate(t *testing.T) {
	g := NewBooleanGraph(3)
	mustGate(t, g, 4, AndGate, true, 2, 3)
	mustGate(t, g, 5, OrGate, false, 1, 4)
	mustRoot(t, g, 5)
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	require.Len(t, b.modules, 1)
	assert.Equal(t, [][]int{{1}, {2, 3}}, b.Analyze())
}

// A cardinality limit of one drops every multi-event cut set.
func TestAnalyzeLimitOrderOne(t *testing.T) {
	g := NewBooleanGraph(3)
	mustGate(t, g, 4, AndGate, false, 1, 2)
	mustGate(t, g, 5, OrGate, false, 4, 3)
	mustRoot(t, g, 5)
	b, err := FromGraph(g, Settings{LimitOrder: 1})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{3}}, b.Analyze())
}

// Non-coherent conjunction: AND(OR(A,B), ¬A) keeps only {B}.
func TestAnalyzeNonCoherentConflict(t *testing.T) {
	g := NewBooleanGraph(2)
	mustGate(t, g, 3, OrGate, false, 1, 2)
	mustGate(t, g, 4, AndGate, false, 3, -1)
	mustRoot(t, g, 4)
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2}}, b.Analyze())
}

func TestAnalyzeConstantRoots(t *testing.T) {
	g := NewBooleanGraph(2)
	require.NoError(t, g.SetConstantRoot(NullState))
	b, err := FromGraph(g, Settings{LimitOrder: 2})
	require.NoError(t, err)
	assert.Empty(t, b.Analyze())

	g = NewBooleanGraph(2)
	require.NoError(t, g.SetConstantRoot(UnityState))
	b, err = FromGraph(g, Settings{LimitOrder: 2})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{}}, b.Analyze())
}

func TestAnalyzeNullRoot(t *testing.T) {
	g := NewBooleanGraph(2)
	mustGate(t, g, 3, AndGate, false, 1, 2)
	mustGate(t, g, 4, NullGate, false, 3)
	mustRoot(t, g, 4)
	b, err := FromGraph(g, Settings{LimitOrder: 2})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}}, b.Analyze())
}

// A shared gate is converted once and reused by all its parents.
func TestSharedGateConversion(t *testing.T) {
	g := NewBooleanGraph(4)
	shared := mustGate(t, g, 5, OrGate, false, 1, 2)
	mustGate(t, g, 6, AndGate, false, 5, 3)
	mustGate(t, g, 7, AndGate, false, 5, 4)
	mustGate(t, g, 8, OrGate, false, 6, 7)
	mustRoot(t, g, 8)
	require.Equal(t, 2, shared.Parents())
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 3}, {1, 4}, {2, 3}, {2, 4}}, b.Analyze())
}

func TestCountSetNodesAndCutSets(t *testing.T) {
	g := NewBooleanGraph(3)
	mustGate(t, g, 4, AndGate, false, 1, 2)
	mustGate(t, g, 5, AndGate, false, 1, 3)
	mustGate(t, g, 6, OrGate, false, 4, 5)
	mustRoot(t, g, 6)
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 2, b.CountCutSets())
	// Chain 1 -> (2 | 3): three set nodes.
	assert.Equal(t, 3, b.CountSetNodes())
	// Counting twice must agree: the marks were cleared in between.
	assert.EqualValues(t, 2, b.CountCutSets())
}

func TestStatsAndDot(t *testing.T) {
	g := NewBooleanGraph(3)
	mustGate(t, g, 4, AndGate, true, 2, 3)
	mustGate(t, g, 5, OrGate, false, 1, 4)
	mustRoot(t, g, 5)
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	assert.Contains(t, b.Stats(), "Produced:")
	var buf bytes.Buffer
	require.NoError(t, b.PrintDot(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph zbdd {"))
	assert.Contains(t, out, "style=dotted") // the module edge
}

func TestGarbageCollectionKeepsLiveNodes(t *testing.T) {
	g := NewBooleanGraph(3)
	mustGate(t, g, 4, AndGate, false, 1, 2)
	mustGate(t, g, 5, AndGate, false, 1, 3)
	mustGate(t, g, 6, OrGate, false, 4, 5)
	mustRoot(t, g, 6)
	b, err := FromGraph(g, Settings{LimitOrder: 3})
	require.NoError(t, err)
	before := b.CountCutSets()
	b.gbc()
	b.testStructure(b.root)
	assert.Equal(t, before, b.CountCutSets())
	assert.Equal(t, [][]int{{1, 2}, {1, 3}}, b.Analyze())
}
