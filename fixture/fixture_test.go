package fixture_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptpure/driver"
	"github.com/katalvlaran/ptpure/fixture"
	"github.com/katalvlaran/ptpure/purity"
)

const doc = `
classes:
  - name: Math
    methods:
      - name: add
        static: true
        param_arity: 2
        blocks:
          - label: entry
            ops:
              - op: identity_param
                var: a
                index: 0
              - op: identity_param
                var: b
                index: 1
              - op: return
  - name: Counter
    methods:
      - name: inc
        static: true
        blocks:
          - label: entry
            ops:
              - op: static_load
                var: tmp
                class: Counter
                field: c
              - op: static_store
                class: Counter
                field: c
                value: tmp
              - op: return
`

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ParsesMultipleClassesAndMethods(t *testing.T) {
	loader, err := fixture.Load(writeFixture(t, doc))
	require.NoError(t, err)

	methods, err := loader.Methods()
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "Math#add", methods[0].Signature)
	assert.Equal(t, "Counter#inc", methods[1].Signature)
	assert.True(t, methods[0].IsStatic)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := fixture.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFixtureDrivesDriverToExpectedVerdicts(t *testing.T) {
	loader, err := fixture.Load(writeFixture(t, doc))
	require.NoError(t, err)

	results, err := driver.Run(context.Background(), loader)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, purity.Pure, results[0].Result)
	assert.Equal(t, purity.Impure, results[1].Result)
}

func TestBranchingFixtureWiresSuccessorsByLabel(t *testing.T) {
	branching := `
classes:
  - name: Cond
    methods:
      - name: pick
        static: true
        param_arity: 1
        blocks:
          - label: entry
            succs: [then, join]
            ops:
              - op: identity_param
                var: a
                index: 0
              - op: branch
          - label: then
            succs: [join]
            ops:
              - op: noop
          - label: join
            ops:
              - op: return
`
	loader, err := fixture.Load(writeFixture(t, branching))
	require.NoError(t, err)

	results, err := driver.Run(context.Background(), loader)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, purity.Pure, results[0].Result)
}
