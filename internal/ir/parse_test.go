package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

func TestParse_BareArrayShape(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"id": "src", "component_type": "Adder", "config": {"amount": 1}, "inputs": 5},
		{"id": "dst", "component_type": "Adder", "config": {"amount": 2}, "depends_on": ["src"]}
	]`)

	parsed, err := Parse(doc)
	require.NoError(t, err)
	assert.Empty(t, parsed.Alias)
	require.Len(t, parsed.Nodes, 2)
	assert.Equal(t, "src", parsed.Nodes[0].ID)
	assert.Equal(t, 0, parsed.Nodes[0].InputOrder())

	n, ok := parsed.Nodes[0].SeedValue.AsInteger()
	require.True(t, ok)
	assert.Equal(t, int32(5), n)
}

func TestParse_AliasedObjectShape(t *testing.T) {
	t.Parallel()

	doc := []byte(`{"alias": "demo", "nodes": [
		{"id": "n1", "component_type": "Adder"}
	]}`)

	parsed, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "demo", parsed.Alias)
	require.Len(t, parsed.Nodes, 1)
	assert.Equal(t, dagvalue.KindNull, parsed.Nodes[0].SeedValue.Kind())
}

func TestParse_DefaultSeedIsNull(t *testing.T) {
	t.Parallel()

	doc := []byte(`[{"id": "mult1", "component_type": "Multiplier", "config": {"multiplier": 2.0}}]`)
	parsed, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, dagvalue.KindNull, parsed.Nodes[0].SeedValue.Kind())
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"id": "a", "component_type": "Adder"},
		{"id": "a", "component_type": "Adder"}
	]`)
	_, err := Parse(doc)
	assert.Error(t, err)
}

func TestParse_RejectsMalformedShape(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"not": "a pipeline"}`))
	assert.Error(t, err)
}

func TestParse_RejectsEmptyNodeSet(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`[]`))
	assert.Error(t, err)
}

func TestParse_IRHashStableAcrossConfigKeyOrder(t *testing.T) {
	t.Parallel()

	a, err := Parse([]byte(`[{"id": "n1", "component_type": "Adder", "config": {"a": 1, "b": 2}}]`))
	require.NoError(t, err)

	b, err := Parse([]byte(`[{"id": "n1", "component_type": "Adder", "config": {"b": 2, "a": 1}}]`))
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestSeedInputs_OnlySourceNodes(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"id": "src", "component_type": "Adder", "inputs": 1},
		{"id": "dst", "component_type": "Adder", "depends_on": ["src"]}
	]`)
	parsed, err := Parse(doc)
	require.NoError(t, err)

	seeds := SeedInputs(parsed)
	require.Len(t, seeds, 1)
	_, ok := seeds["src"]
	assert.True(t, ok)
}
