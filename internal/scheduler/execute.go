// Package scheduler runs a validated dag.Graph layer by layer: every node
// in a layer executes concurrently, and the scheduler joins strictly
// before starting the next layer, since a later layer's nodes may read
// any earlier layer's results.
package scheduler

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/alexisbeaulieu97/dagflow/internal/dag"
	"github.com/alexisbeaulieu97/dagflow/internal/dagerrors"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// Options controls a single Execute call.
type Options struct {
	// RequestID, if set, is attached to the resulting history-log record
	// by the caller (internal/resultcache); the scheduler itself does not
	// interpret it.
	RequestID string

	// OnNodeDone, if set, is called once per node immediately after it
	// completes (success or failure), before the next layer starts. Used
	// by internal/tui to drive a live per-node progress view; callers
	// that don't need progress reporting leave it nil.
	OnNodeDone func(nodeID string, err error)
}

// Execute runs every node in graph, one conc.ContextPool per layer, and
// returns the aggregated ResultMap. The first node error encountered
// cancels the run's context and is returned wrapped as
// dagerrors.ComponentFailure; the run stops at that layer rather than
// continuing to execute the rest of the graph.
func Execute(ctx context.Context, graph *dag.Graph, opts Options) (*ResultMap, error) {
	results := NewResultMap(len(graph.Nodes))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, level := range graph.Levels {
		p := pool.New().WithContext(runCtx).WithCancelOnError().WithFirstError()

		for _, id := range level {
			id := id
			node := graph.Nodes[id]

			p.Go(func(ctx context.Context) error {
				input := resolveInput(graph, results, node)

				out, err := node.Component.Execute(ctx, input)
				if err != nil {
					wrapped := &dagerrors.ComponentFailure{NodeID: id, Err: err}
					if opts.OnNodeDone != nil {
						opts.OnNodeDone(id, wrapped)
					}
					return wrapped
				}

				results.Set(id, out)
				if opts.OnNodeDone != nil {
					opts.OnNodeDone(id, nil)
				}
				return nil
			})
		}

		if err := p.Wait(); err != nil {
			return nil, err
		}
	}

	// results holds entries in completion order; re-record them layer by
	// layer (each layer already sorted by IR input order) so the returned
	// order does not depend on goroutine scheduling.
	ordered := NewResultMap(len(graph.Nodes))
	for _, level := range graph.Levels {
		for _, id := range level {
			if v, ok := results.Get(id); ok {
				ordered.Set(id, v)
			}
		}
	}
	return ordered, nil
}

// resolveInput computes a node's input Value: its literal seed if it has
// no dependencies, the sole upstream's result if it has exactly one, or an
// ordered List of upstream results (in depends_on declaration order) if it
// has more than one.
func resolveInput(graph *dag.Graph, results *ResultMap, node *dag.Node) dagvalue.Value {
	if len(node.DependsOn) == 0 {
		if seed, ok := graph.SeedInputs[node.ID]; ok {
			return seed
		}
		return dagvalue.NewNull()
	}

	if len(node.DependsOn) == 1 {
		v, _ := results.Get(node.DependsOn[0])
		return v
	}

	items := make([]dagvalue.Value, len(node.DependsOn))
	for i, dep := range node.DependsOn {
		items[i], _ = results.Get(dep)
	}
	return dagvalue.NewList(items)
}
