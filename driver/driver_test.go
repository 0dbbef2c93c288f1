package driver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptpure/cfgbuilder"
	"github.com/katalvlaran/ptpure/driver"
	"github.com/katalvlaran/ptpure/purity"
)

type fixtureLoader struct {
	methods []driver.Method
}

func (f fixtureLoader) Methods() ([]driver.Method, error) { return f.methods, nil }

func TestRun_PreservesOrderAndJudgesEachMethod(t *testing.T) {
	pureCFG, err := cfgbuilder.New(cfgbuilder.WithStatic(), cfgbuilder.WithParamArity(2)).
		Block("entry").
		IdentityParam("a", 0).
		IdentityParam("b", 1).
		Return().
		Build()
	require.NoError(t, err)

	impureCFG, err := cfgbuilder.New(cfgbuilder.WithStatic()).
		Block("entry").
		StaticLoad("tmp", "Counter", "c").
		StaticStore("Counter", "c", "tmp").
		Return().
		Build()
	require.NoError(t, err)

	loader := fixtureLoader{methods: []driver.Method{
		{Signature: "Math#add", CFG: pureCFG, IsStatic: true},
		{Signature: "Counter#inc", CFG: impureCFG, IsStatic: true},
	}}

	results, err := driver.Run(context.Background(), loader)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Math#add", results[0].Signature)
	assert.Equal(t, purity.Pure, results[0].Result)
	assert.Equal(t, "Counter#inc", results[1].Signature)
	assert.Equal(t, purity.Impure, results[1].Result)
}

func TestRun_MethodFilterRestrictsSelection(t *testing.T) {
	cfg, err := cfgbuilder.New(cfgbuilder.WithStatic()).Block("entry").Return().Build()
	require.NoError(t, err)

	loader := fixtureLoader{methods: []driver.Method{
		{Signature: "A#foo", CFG: cfg, IsStatic: true},
		{Signature: "B#bar", CFG: cfg, IsStatic: true},
	}}

	results, err := driver.Run(context.Background(), loader, driver.WithMethodFilter("bar"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "B#bar", results[0].Signature)
}

// P5: enabling or disabling the node merger must never change a verdict.
func TestRun_MergeToggleNeverChangesVerdict(t *testing.T) {
	chained, err := cfgbuilder.New(cfgbuilder.WithParamArity(1)).
		Block("entry").
		Identity("this").
		IdentityParam("n", 0).
		FieldLoad("acct", "this", "account").
		FieldLoad("acct2", "this", "account").
		FieldStore("acct", "balance", "n").
		FieldStore("acct2", "balance", "n").
		Return().
		Build()
	require.NoError(t, err)

	loader := fixtureLoader{methods: []driver.Method{
		{Signature: "Wallet#addFunds", CFG: chained},
	}}

	withMerge, err := driver.Run(context.Background(), loader, driver.WithMerge(true))
	require.NoError(t, err)
	withoutMerge, err := driver.Run(context.Background(), loader, driver.WithMerge(false))
	require.NoError(t, err)

	require.Len(t, withMerge, 1)
	require.Len(t, withoutMerge, 1)
	assert.Equal(t, withMerge[0].Result, withoutMerge[0].Result)
	assert.Equal(t, purity.Impure, withMerge[0].Result)
}

// Running the same loader twice produces identical verdicts and
// reasons (spec.md §8.3: deterministic fresh-node numbering given a
// deterministic IR statement order).
func TestRun_IsDeterministicAcrossRepeatedRuns(t *testing.T) {
	cfg, err := cfgbuilder.New(cfgbuilder.WithStatic(), cfgbuilder.WithParamArity(1)).
		Block("entry").
		IdentityParam("n", 0).
		AllocArray("a").
		ArrayStore("a", "n").
		Return().
		Build()
	require.NoError(t, err)
	loader := fixtureLoader{methods: []driver.Method{{Signature: "Arrays#create", CFG: cfg, IsStatic: true}}}

	first, err := driver.Run(context.Background(), loader)
	require.NoError(t, err)
	second, err := driver.Run(context.Background(), loader)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Result, second[0].Result)
	assert.Equal(t, first[0].Reason, second[0].Reason)
}

func TestRun_WorkerCountDoesNotAffectOrdering(t *testing.T) {
	cfg, err := cfgbuilder.New(cfgbuilder.WithStatic()).Block("entry").Return().Build()
	require.NoError(t, err)

	var methods []driver.Method
	for i := 0; i < 20; i++ {
		methods = append(methods, driver.Method{Signature: "C#m", CFG: cfg, IsStatic: true})
	}
	loader := fixtureLoader{methods: methods}

	results, err := driver.Run(context.Background(), loader, driver.WithWorkerCount(4))
	require.NoError(t, err)
	require.Len(t, results, 20)
	for _, r := range results {
		assert.Equal(t, purity.Pure, r.Result)
	}
}
