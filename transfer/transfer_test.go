package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptpure/core"
	"github.com/katalvlaran/ptpure/ir"
	"github.com/katalvlaran/ptpure/registry"
	"github.com/katalvlaran/ptpure/transfer"
)

func TestApply_IdentityThis(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(false, 1, nil, nil)
	transfer.Apply(ir.Stmt{Kind: ir.StmtIdentityThis, LHS: "this"}, g, ctx)
	assert.True(t, g.PointsTo("this").Contains(core.Parameter(0)))
}

func TestApply_IdentityParam_InstanceShiftsIndex(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(false, 1, nil, nil)
	transfer.Apply(ir.Stmt{Kind: ir.StmtIdentityParam, LHS: "v", ParamIndex: 0}, g, ctx)
	assert.True(t, g.PointsTo("v").Contains(core.Parameter(1)))
}

func TestApply_IdentityParam_StaticKeepsIndex(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(true, 2, nil, nil)
	transfer.Apply(ir.Stmt{Kind: ir.StmtIdentityParam, LHS: "v", ParamIndex: 0}, g, ctx)
	assert.True(t, g.PointsTo("v").Contains(core.Parameter(0)))
}

func TestApply_Alloc(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(true, 0, nil, nil)
	transfer.Apply(ir.Stmt{Kind: ir.StmtAlloc, LHS: "a", AllocSite: 3}, g, ctx)
	assert.True(t, g.PointsTo("a").Contains(core.Inside(3)))
}

func TestApply_ArrayStore_RecordsArrayElemSentinel(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(true, 2, nil, nil)
	g.StrongUpdate("arr", core.NewNodeSet(core.Parameter(0)))
	transfer.Apply(ir.Stmt{Kind: ir.StmtArrayStore, Receiver: "arr", Args: []string{"v"}}, g, ctx)
	assert.True(t, g.Mutated(core.Parameter(0), core.ArrayElem))
}

// Scenario 2: mutate parameter array.
func TestScenario_MutateParameterArray(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(true, 2, nil, nil)
	transfer.Apply(ir.Stmt{Kind: ir.StmtIdentityParam, LHS: "arr", ParamIndex: 0}, g, ctx)
	transfer.Apply(ir.Stmt{Kind: ir.StmtArrayStore, Receiver: "arr", Args: []string{"v"}}, g, ctx)

	assert.True(t, g.Mutated(core.Parameter(0), core.ArrayElem))
}

// Scenario 3: static-field write.
func TestScenario_StaticFieldWrite(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(true, 0, nil, nil)
	f := ir.Field{Name: "c", IsStatic: true, Class: "Counter"}
	transfer.Apply(ir.Stmt{Kind: ir.StmtStaticStore, Field: f, Args: []string{"v"}}, g, ctx)

	assert.True(t, g.Mutated(core.Global, core.Field{Name: "c", IsStatic: true}))
	assert.True(t, g.GlobalSideEffect())
}

// Scenario 6: impure chaining through a parameter via a Load node.
func TestScenario_ChainingThroughParameterField(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(false, 1, nil, nil)
	transfer.Apply(ir.Stmt{Kind: ir.StmtIdentityThis, LHS: "this"}, g, ctx)
	transfer.Apply(ir.Stmt{Kind: ir.StmtFieldLoad, LHS: "acct", Receiver: "this", Field: ir.Field{Name: "account"}, LoadSite: 0}, g, ctx)
	transfer.Apply(ir.Stmt{Kind: ir.StmtFieldStore, Receiver: "acct", Field: ir.Field{Name: "balance"}, Args: []string{"n"}}, g, ctx)

	acctNodes := g.PointsTo("acct")
	require.Len(t, acctNodes, 1)
	var loadNode core.Node
	for n := range acctNodes {
		loadNode = n
	}
	assert.Equal(t, core.KindLoad, loadNode.Kind)
	assert.True(t, g.Mutated(loadNode, core.Field{Name: "balance"}))
}

func TestApply_FieldLoad_IsIdempotentAcrossReEvaluation(t *testing.T) {
	g := core.NewGraph()
	ctx := transfer.NewContext(false, 1, nil, nil)
	stmt := ir.Stmt{Kind: ir.StmtFieldLoad, LHS: "v", Receiver: "this", Field: ir.Field{Name: "x"}, LoadSite: 5}
	g.StrongUpdate("this", core.NewNodeSet(core.Parameter(0)))

	transfer.Apply(stmt, g, ctx)
	first := g.PointsTo("v").Clone()
	transfer.Apply(stmt, g, ctx)
	second := g.PointsTo("v")

	assert.Equal(t, first, second)
}

func TestApply_Call_SafeCalleeNoSideEffect(t *testing.T) {
	g := core.NewGraph()
	reg := registry.New(registry.WithSafeMethod("java.util.ArrayList#add"))
	ctx := transfer.NewContext(false, 0, reg, nil)
	g.StrongUpdate("l", core.NewNodeSet(core.Inside(0)))

	transfer.Apply(ir.Stmt{
		Kind: ir.StmtCall, Receiver: "l", Target: "java.util.ArrayList#add", Args: []string{"x"},
	}, g, ctx)

	assert.False(t, g.GlobalSideEffect())
	assert.Empty(t, g.EscapeSet())
}

func TestApply_Call_UnknownCalleeEscapesAndSetsSideEffect(t *testing.T) {
	g := core.NewGraph()
	reg := registry.New()
	ctx := transfer.NewContext(false, 0, reg, nil)
	g.StrongUpdate("l", core.NewNodeSet(core.Parameter(0)))

	transfer.Apply(ir.Stmt{
		Kind: ir.StmtCall, Receiver: "l", Target: "java.util.ArrayList#add", Args: []string{"x"},
	}, g, ctx)

	assert.True(t, g.GlobalSideEffect())
	assert.True(t, g.Escaped(core.Parameter(0)))
}

func TestApply_Call_SafeConstructorBindsFreshInside(t *testing.T) {
	g := core.NewGraph()
	reg := registry.New(registry.WithSafeConstructor("java.util.ArrayList"))
	ctx := transfer.NewContext(false, 0, reg, nil)

	transfer.Apply(ir.Stmt{
		Kind: ir.StmtCall, LHS: "l", Target: "java.util.ArrayList#<init>", ResultIsRef: true, CallSite: 9,
	}, g, ctx)

	assert.True(t, g.PointsTo("l").Contains(core.Inside(9)))
}
