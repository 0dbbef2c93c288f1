package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/ptpure/core"
)

func TestNode_ID(t *testing.T) {
	cases := []struct {
		name string
		node core.Node
		want string
	}{
		{"inside", core.Inside(3), "I3"},
		{"parameter", core.Parameter(0), "P0"},
		{"load", core.Load(7), "L7"},
		{"global", core.Global, "GBL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.node.ID())
		})
	}
}

// Node carries nothing beyond Kind and Index, so two nodes built from
// the same site always collapse to one NodeSet member — the property
// the merger and every closure in purity rely on for termination.
func TestNode_Identity_IsKindAndIndexOnly(t *testing.T) {
	a := core.Inside(1)
	b := core.Inside(1)
	assert.Equal(t, a, b)
	assert.Equal(t, a.ID(), b.ID())

	s := core.NewNodeSet(a, b)
	assert.Len(t, s, 1)
}

func TestNode_Less_KindPriority(t *testing.T) {
	param := core.Parameter(5)
	global := core.Global
	inside := core.Inside(0)
	load := core.Load(0)

	assert.True(t, param.Less(global))
	assert.True(t, global.Less(inside))
	assert.True(t, inside.Less(load))
	assert.False(t, load.Less(param))
}

func TestNode_Less_TieBreakIsLexicographic(t *testing.T) {
	a := core.Inside(2)
	b := core.Inside(10)
	// "I10" < "I2" lexicographically, even though 10 > 2 numerically.
	assert.True(t, b.Less(a))
	assert.False(t, a.Less(b))
}

func TestField_ArrayElem_IsNotZeroValue(t *testing.T) {
	assert.NotEqual(t, core.Field{}, core.ArrayElem)
}

func TestNodeSet_UnionDoesNotMutateOperands(t *testing.T) {
	a := core.NewNodeSet(core.Inside(0))
	b := core.NewNodeSet(core.Inside(1))
	u := a.Union(b)

	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
	assert.Len(t, u, 2)
}
