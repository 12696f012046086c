// Package dag builds a validated, layered execution graph from IR and a
// component registry: it resolves every node to a configured component,
// checks dependency existence, detects cycles, computes topological
// layers, and checks every edge's declared type against what actually
// flows across it.
package dag

import (
	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// Node is one resolved, configured vertex in the execution graph.
type Node struct {
	ID        string
	Component component.Component
	DependsOn []string
	// inputOrder mirrors the node's position in the source IR document,
	// used to sort layers deterministically.
	inputOrder int
}

// Graph is the immutable, validated execution graph. Levels partitions
// Nodes into topological layers: every node in Levels[i] depends only on
// nodes in Levels[0..i-1] (testable property 4 — within a layer, no
// ordering guarantee beyond IR input order, which is what sorting by
// inputOrder buys determinism from).
type Graph struct {
	Nodes  map[string]*Node
	Levels [][]string

	// SeedInputs holds the literal input Value for every node with no
	// DependsOn, keyed by node id.
	SeedInputs map[string]dagvalue.Value
}

// Config is the DAG-build configuration passed to Build.
type Config struct {
	// EnableMemoryCache is set to true by NewConfig; the zero value leaves
	// it false. Neither Build nor the scheduler reads it: Build ignores its
	// Config argument, and memoization lookups and stores are made by the
	// callers of scheduler.Execute (cmd/dagctl, internal/httpapi).
	EnableMemoryCache bool
}

// NewConfig returns the default Config (EnableMemoryCache set to true).
func NewConfig() Config {
	return Config{EnableMemoryCache: true}
}
