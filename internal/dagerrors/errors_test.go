package dagerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

func TestErrorsAs(t *testing.T) {
	t.Parallel()

	var err error = &TypeMismatch{Edge: "a->b", Expected: dagvalue.Integer, Got: dagvalue.Text}
	var mismatch *TypeMismatch
	assert.True(t, errors.As(err, &mismatch))
	assert.Contains(t, mismatch.Error(), "expected Integer, got Text")

	wrapped := &ComponentFailure{NodeID: "n1", Err: errors.New("boom")}
	var failure *ComponentFailure
	assert.True(t, errors.As(error(wrapped), &failure))
	assert.ErrorContains(t, failure, "boom")
	assert.Equal(t, "boom", errors.Unwrap(wrapped).Error())
}

func TestCycleDetectedMessage(t *testing.T) {
	t.Parallel()

	err := &CycleDetected{Path: []string{"a", "b", "a"}}
	assert.Equal(t, "cycle detected: a -> b -> a", err.Error())
}
