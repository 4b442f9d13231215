// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsumeIdentities(t *testing.T) {
	b := newTestZBDD(4)
	x := b.literal(1, 1, false)
	y := b.literal(2, 2, false)
	f := b.apply(opOr, x, y, b.limit)
	// Nothing subsumes against the Empty family.
	assert.Equal(t, f, b.subsume(f, emptyset))
	// Everything is a superset of the empty set.
	assert.Equal(t, emptyset, b.subsume(f, baseset))
	// Terminal families need no reduction.
	assert.Equal(t, baseset, b.subsume(baseset, f))
	assert.Equal(t, emptyset, b.subsume(emptyset, f))
}

func TestSubsumeDropsSupersets(t *testing.T) {
	b := newTestZBDD(4)
	x := b.literal(1, 1, false)
	y := b.literal(2, 2, false)
	z := b.literal(3, 3, false)
	xy := b.apply(opAnd, x, y, b.limit)
	high := b.apply(opOr, xy, z, b.limit) // {{1,2},{3}}
	low := x                              // {{1}}
	assert.Equal(t, z, b.subsume(high, low))
	// A family with no subset in low passes through.
	assert.Equal(t, z, b.subsume(z, low))
}

func TestMinimizeRemovesSubsumedSets(t *testing.T) {
	b := newTestZBDD(4)
	x := b.literal(1, 1, false)
	y := b.literal(2, 2, false)
	z := b.literal(3, 3, false)
	xyz := b.apply(opAnd, b.apply(opAnd, x, y, b.limit), z, b.limit)
	// {{2},{1,2,3}} survives apply unminimized.
	v := b.apply(opOr, xyz, y, b.limit)
	require.False(t, b.terminal(v))
	require.EqualValues(t, 2, func() int64 { b.root = v; return b.CountCutSets() }())
	min := b.minimize(v)
	assert.Equal(t, y, min)
	assert.True(t, b.nodes[min].minimal)
}

// Minimize is idempotent: the second pass returns the identical vertex.
func TestMinimizeIdempotent(t *testing.T) {
	b := newTestZBDD(4)
	x := b.literal(1, 1, false)
	y := b.literal(2, 2, false)
	z := b.literal(3, 3, false)
	xyz := b.apply(opAnd, b.apply(opAnd, x, y, b.limit), z, b.limit)
	yz := b.apply(opAnd, y, z, b.limit)
	v := b.apply(opOr, b.apply(opOr, xyz, yz, b.limit), x, b.limit)
	min := b.minimize(v)
	assert.Equal(t, min, b.minimize(min))
	assert.True(t, b.terminal(min) || b.nodes[min].minimal)
}

func TestMinimizeMarksDescendants(t *testing.T) {
	b := newTestZBDD(4)
	x := b.literal(1, 1, false)
	y := b.literal(2, 2, false)
	z := b.literal(3, 3, false)
	f := b.apply(opOr, b.apply(opAnd, x, y, b.limit), b.apply(opAnd, y, z, b.limit), b.limit)
	min := b.minimize(f)
	var check func(v int)
	check = func(v int) {
		if b.terminal(v) {
			return
		}
		assert.True(t, b.nodes[v].minimal, "descendant %d of a minimal vertex is not minimal", v)
		check(b.nodes[v].high)
		check(b.nodes[v].low)
	}
	check(min)
}
