package components

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

func TestExprEvaluator_EvaluatesAgainstEnvironment(t *testing.T) {
	c, err := NewExprEvaluator(json.RawMessage(`{"expression":"a + b"}`))
	require.NoError(t, err)

	out, err := c.Execute(context.Background(), dagvalue.NewJson(map[string]any{"a": 1, "b": 2}))
	require.NoError(t, err)
	doc, ok := out.AsJson()
	require.True(t, ok)
	assert.EqualValues(t, 3, doc)
}

func TestExprEvaluator_InvalidExpressionFailsAtConfigure(t *testing.T) {
	_, err := NewExprEvaluator(json.RawMessage(`{"expression":"a +++ "}`))
	require.Error(t, err)
}

func TestExprEvaluator_RejectsNonJsonInput(t *testing.T) {
	c, err := NewExprEvaluator(json.RawMessage(`{"expression":"1"}`))
	require.NoError(t, err)

	_, err = c.Execute(context.Background(), dagvalue.NewText("nope"))
	require.Error(t, err)
}
