package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dagflow/internal/components"
	"github.com/alexisbeaulieu97/dagflow/internal/dagctxlog"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
	"github.com/alexisbeaulieu97/dagflow/internal/registry"
	"github.com/alexisbeaulieu97/dagflow/internal/resultcache"
	"github.com/alexisbeaulieu97/dagflow/internal/scheduler"
)

func newTestApp(t *testing.T) *AppContext {
	t.Helper()
	reg := registry.New()
	components.RegisterAll(reg)
	logger, err := dagctxlog.New(dagctxlog.Options{})
	require.NoError(t, err)
	return &AppContext{Logger: logger, Registry: reg}
}

func execCLI(t *testing.T, app *AppContext, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_SingleSourceNode(t *testing.T) {
	app := newTestApp(t)
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"n1","component_type":"adder","config":{"value":5},"inputs":10}]`), 0o644))

	out, err := execCLI(t, app, "run", path)
	require.NoError(t, err)

	var results map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.EqualValues(t, 15, results["n1"]["Integer"])
}

func TestPlan_PrintsLayers(t *testing.T) {
	app := newTestApp(t)
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"a","component_type":"adder","inputs":1},
		{"id":"b","component_type":"adder","depends_on":["a"]}
	]`), 0o644))

	out, err := execCLI(t, app, "plan", path)
	require.NoError(t, err)
	assert.Contains(t, out, "layers: 2")
	assert.Contains(t, out, "layer 0: a")
	assert.Contains(t, out, "layer 1: b")
}

func TestRun_UnknownComponentReturnsError(t *testing.T) {
	app := newTestApp(t)
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"n1","component_type":"does_not_exist"}]`), 0o644))

	_, err := execCLI(t, app, "run", path)
	require.Error(t, err)
}

func TestReplay_ReturnsStoredRecord(t *testing.T) {
	app := newTestApp(t)
	cache, err := resultcache.New(8, "")
	require.NoError(t, err)
	app.Cache = cache

	results := scheduler.NewResultMap(1)
	results.Set("n1", dagvalue.NewInteger(42))
	cache.Store(resultcache.Key{IRHash: 1}, resultcache.NewRecord("req-123", results))

	cmd := newRootCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"replay", "req-123"})
	require.NoError(t, cmd.Execute())

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.EqualValues(t, 42, decoded["n1"]["Integer"])
}

func TestReplay_UnknownRequestIDReturnsError(t *testing.T) {
	app := newTestApp(t)
	cache, err := resultcache.New(8, "")
	require.NoError(t, err)
	app.Cache = cache

	cmd := newRootCmd(app)
	cmd.SetArgs([]string{"replay", "does-not-exist"})
	require.Error(t, cmd.Execute())
}

func TestVersion_PrintsBuildInfo(t *testing.T) {
	app := newTestApp(t)
	out, err := execCLI(t, app, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dagctl")
}
