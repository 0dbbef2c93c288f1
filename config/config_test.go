package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptpure/config"
)

func TestDefault_HasMergeEnabledAndDotFormat(t *testing.T) {
	o := config.Default()
	assert.True(t, o.Merge)
	assert.Equal(t, "dot", o.Format)
	assert.NoError(t, o.Validate())
}

func TestLoad_MissingPathReturnsDefault(t *testing.T) {
	o, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), o)
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	o, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), o)
}

func TestLoad_ParsesYAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ptpure.yaml")
	doc := "show_graph: true\nmethod_filter: \"add\"\nworker_count: 4\nformat: html\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	o, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, o.ShowGraph)
	assert.Equal(t, "add", o.MethodFilter)
	assert.Equal(t, 4, o.WorkerCount)
	assert.Equal(t, "html", o.Format)
	assert.True(t, o.Merge, "merge default survives when the document doesn't mention it")
}

func TestLoad_InvalidYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("show_graph: [this is not a bool"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	o := config.Default()
	o.Format = "xml"
	assert.Error(t, o.Validate())
}

func TestValidate_RejectsNegativeWorkerCount(t *testing.T) {
	o := config.Default()
	o.WorkerCount = -1
	assert.Error(t, o.Validate())
}

func TestMerge_FlagOverridesWin(t *testing.T) {
	base := config.Default()
	filter := "foo"
	mergeOff := false
	overrides := config.Overrides{MethodFilter: &filter, Merge: &mergeOff}

	out := config.Merge(base, overrides)
	assert.Equal(t, "foo", out.MethodFilter)
	assert.False(t, out.Merge)
	assert.Equal(t, "dot", out.Format, "unset override fields keep the base value")
}

func TestMerge_DebugImpliesShowGraph(t *testing.T) {
	base := config.Default()
	debug := true
	out := config.Merge(base, config.Overrides{Debug: &debug})

	assert.True(t, out.Debug)
	assert.True(t, out.ShowGraph)
}

func TestMerge_BaseDebugAlreadyTrueStillForcesShowGraph(t *testing.T) {
	base := config.Default()
	base.Debug = true
	base.ShowGraph = false

	out := config.Merge(base, config.Overrides{})
	assert.True(t, out.ShowGraph)
}
