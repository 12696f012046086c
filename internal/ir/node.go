// Package ir parses the declarative pipeline document into validated,
// content-hashed intermediate representation. It performs no lookups
// against a registry and knows nothing about execution — that is the DAG
// builder's job, one layer up.
package ir

import (
	"encoding/json"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// Node is one parsed pipeline-document entry: a component instantiation
// plus its wiring (literal inputs or upstream dependencies).
type Node struct {
	ID            string          `json:"id" validate:"required,node_id"`
	ComponentType string          `json:"component_type" validate:"required"`
	Config        json.RawMessage `json:"config,omitempty"`
	DependsOn     []string        `json:"depends_on,omitempty"`

	// Inputs is the raw literal-inputs document, if any, as written in the
	// pipeline file. A node with DependsOn instead receives its input from
	// upstream execution results, not here.
	Inputs json.RawMessage `json:"inputs,omitempty"`

	// SeedValue is Inputs coerced into a dagvalue.Value via
	// dagvalue.FromJSON, computed once at parse time. Absent (Inputs ==
	// nil) seeds as dagvalue.NewNull(), per the default-seed rule.
	SeedValue dagvalue.Value `json:"-"`

	// inputOrder records this node's position in the document, used to
	// break ties deterministically when the DAG builder sorts a layer.
	inputOrder int
}

// InputOrder returns the node's position in the pipeline document.
func (n Node) InputOrder() int { return n.inputOrder }

// IR is the parsed, validated, content-hashed pipeline document.
type IR struct {
	// Alias is the optional pipeline name carried by the {alias, nodes}
	// document shape; empty when the document was a bare node array.
	Alias string
	Nodes []Node

	// hash is the content hash over id/component_type/config/depends_on,
	// excluding literal inputs (see internal/fingerprint).
	hash uint64
}

// Hash returns the IR's content hash, as computed at Parse time.
func (ir *IR) Hash() uint64 { return ir.hash }

// NodeByID looks up a node by id. Parse guarantees ids are unique, so this
// is a simple linear scan over what is typically a small node list; a map
// index is built by the DAG builder where lookups are on the hot path.
func (ir *IR) NodeByID(id string) (Node, bool) {
	for _, n := range ir.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
