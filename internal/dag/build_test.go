package dag

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagerrors"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
	"github.com/alexisbeaulieu97/dagflow/internal/ir"
	"github.com/alexisbeaulieu97/dagflow/internal/registry"
)

type intIdentity struct{}

func (intIdentity) Execute(_ context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	return input, nil
}
func (intIdentity) InputType() dagvalue.Type  { return dagvalue.Integer }
func (intIdentity) OutputType() dagvalue.Type { return dagvalue.Integer }

type textSink struct{}

func (textSink) Execute(_ context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	return input, nil
}
func (textSink) InputType() dagvalue.Type  { return dagvalue.Text }
func (textSink) OutputType() dagvalue.Type { return dagvalue.Text }

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Register("IntIdentity", func(_ json.RawMessage) (component.Component, error) {
		return intIdentity{}, nil
	}))
	require.NoError(t, r.Register("TextSink", func(_ json.RawMessage) (component.Component, error) {
		return textSink{}, nil
	}))
	return r
}

func TestBuild_SingleSourceNode(t *testing.T) {
	t.Parallel()

	parsed, err := ir.Parse([]byte(`[{"id": "n1", "component_type": "IntIdentity", "inputs": 5}]`))
	require.NoError(t, err)

	g, err := Build(parsed, newTestRegistry(t), NewConfig())
	require.NoError(t, err)
	require.Len(t, g.Levels, 1)
	assert.Equal(t, []string{"n1"}, g.Levels[0])

	n, ok := g.SeedInputs["n1"].AsInteger()
	require.True(t, ok)
	assert.Equal(t, int32(5), n)
}

func TestBuild_Chain(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"id": "a", "component_type": "IntIdentity", "inputs": 1},
		{"id": "b", "component_type": "IntIdentity", "depends_on": ["a"]},
		{"id": "c", "component_type": "IntIdentity", "depends_on": ["b"]}
	]`)
	parsed, err := ir.Parse(doc)
	require.NoError(t, err)

	g, err := Build(parsed, newTestRegistry(t), NewConfig())
	require.NoError(t, err)
	require.Len(t, g.Levels, 3)
	assert.Equal(t, []string{"a"}, g.Levels[0])
	assert.Equal(t, []string{"b"}, g.Levels[1])
	assert.Equal(t, []string{"c"}, g.Levels[2])
}

func TestBuild_TypeMismatchAtBuild(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"id": "a", "component_type": "IntIdentity", "inputs": 1},
		{"id": "b", "component_type": "TextSink", "depends_on": ["a"]}
	]`)
	parsed, err := ir.Parse(doc)
	require.NoError(t, err)

	_, err = Build(parsed, newTestRegistry(t), NewConfig())
	require.Error(t, err)
	var mismatch *dagerrors.TypeMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestBuild_UnknownComponent(t *testing.T) {
	t.Parallel()

	parsed, err := ir.Parse([]byte(`[{"id": "n1", "component_type": "NoSuch"}]`))
	require.NoError(t, err)

	_, err = Build(parsed, newTestRegistry(t), NewConfig())
	var unknown *dagerrors.UnknownComponent
	assert.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Error(), "NoSuch")
}

func TestBuild_UnknownDependency(t *testing.T) {
	t.Parallel()

	parsed, err := ir.Parse([]byte(`[{"id": "n1", "component_type": "IntIdentity", "depends_on": ["ghost"]}]`))
	require.NoError(t, err)

	_, err = Build(parsed, newTestRegistry(t), NewConfig())
	var unknown *dagerrors.UnknownDependency
	assert.ErrorAs(t, err, &unknown)
}

func TestBuild_CycleDetected(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"id": "a", "component_type": "IntIdentity", "depends_on": ["b"]},
		{"id": "b", "component_type": "IntIdentity", "depends_on": ["a"]}
	]`)
	parsed, err := ir.Parse(doc)
	require.NoError(t, err)

	_, err = Build(parsed, newTestRegistry(t), NewConfig())
	var cycle *dagerrors.CycleDetected
	assert.ErrorAs(t, err, &cycle)
}

func TestBuild_LayersSortedByInputOrder(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"id": "z", "component_type": "IntIdentity", "inputs": 1},
		{"id": "a", "component_type": "IntIdentity", "inputs": 2}
	]`)
	parsed, err := ir.Parse(doc)
	require.NoError(t, err)

	g, err := Build(parsed, newTestRegistry(t), NewConfig())
	require.NoError(t, err)
	require.Len(t, g.Levels, 1)
	assert.Equal(t, []string{"z", "a"}, g.Levels[0])
}
