// Package component defines the contract every pipeline node implements.
// Configuration happens once, at construction (see internal/registry's
// Factory), so the interface itself stays narrow: execute, and report the
// declared input/output types the DAG builder checks edges against.
package component

import (
	"context"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// Component transforms one input Value into one output Value. An
// implementation's InputType/OutputType are fixed for its lifetime — they
// describe the configured instance, not a per-call signature.
type Component interface {
	Execute(ctx context.Context, input dagvalue.Value) (dagvalue.Value, error)
	InputType() dagvalue.Type
	OutputType() dagvalue.Type
}

// Deferrable is an optional interface a component may implement to report
// whether its execution is deferrable. The scheduler does not consult it:
// every node in every layer is executed.
type Deferrable interface {
	IsDeferrable() bool
}
