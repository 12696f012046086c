package ir

import (
	"encoding/json"
	"fmt"

	"github.com/alexisbeaulieu97/dagflow/internal/dagerrors"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
	"github.com/alexisbeaulieu97/dagflow/internal/fingerprint"
)

// document is the {alias, nodes} document shape.
type document struct {
	Alias string `json:"alias"`
	Nodes []Node `json:"nodes" validate:"required,min=1,dive"`
}

// Parse decodes a declarative pipeline document into IR. Two JSON shapes
// are accepted: a bare array of node descriptors, or an object with an
// "alias" string and a "nodes" array. Either way, parsing:
//  1. rejects malformed shapes,
//  2. coerces each node's literal inputs into a dagvalue.Value,
//  3. preserves document order,
//  4. computes the node-set content hash (excluding literal inputs).
func Parse(doc []byte) (*IR, error) {
	nodes, alias, err := decodeShape(doc)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, &dagerrors.MalformedIR{Message: "pipeline document contains no nodes"}
	}

	v := validatorInstance()
	seen := make(map[string]struct{}, len(nodes))
	shapes := make([]fingerprint.NodeShape, len(nodes))

	for i := range nodes {
		nodes[i].inputOrder = i

		if err := v.Struct(nodes[i]); err != nil {
			return nil, &dagerrors.MalformedIR{
				Message: fmt.Sprintf("node %d: %v", i, err),
				Err:     err,
			}
		}
		if _, dup := seen[nodes[i].ID]; dup {
			return nil, &dagerrors.MalformedIR{Message: fmt.Sprintf("duplicate node id %q", nodes[i].ID)}
		}
		seen[nodes[i].ID] = struct{}{}

		nodes[i].SeedValue = seedValue(nodes[i].Inputs)

		shapes[i] = fingerprint.NodeShape{
			ID:            nodes[i].ID,
			ComponentType: nodes[i].ComponentType,
			Config:        nodes[i].Config,
			DependsOn:     nodes[i].DependsOn,
		}
	}

	return &IR{
		Alias: alias,
		Nodes: nodes,
		hash:  fingerprint.IRHash(shapes),
	}, nil
}

// decodeShape tries the {alias, nodes} object shape first, then falls back
// to a bare node array, matching the declarative document's two permitted
// forms.
func decodeShape(doc []byte) ([]Node, string, error) {
	var obj document
	if err := json.Unmarshal(doc, &obj); err == nil && obj.Nodes != nil {
		return obj.Nodes, obj.Alias, nil
	}

	var bare []Node
	if err := json.Unmarshal(doc, &bare); err != nil {
		return nil, "", &dagerrors.MalformedIR{
			Message: "pipeline document is neither a node array nor an {alias, nodes} object",
			Err:     err,
		}
	}
	return bare, "", nil
}

// seedValue coerces a node's literal inputs document into a Value. Absent
// inputs seed as Null, the default-seed rule (testable property S4): a
// source node declared with no inputs still receives a value, not a
// missing map entry.
func seedValue(raw json.RawMessage) dagvalue.Value {
	if len(raw) == 0 {
		return dagvalue.NewNull()
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return dagvalue.NewNull()
	}
	return dagvalue.FromJSON(doc)
}

// SeedInputs collects the SeedValue of every node with no DependsOn, keyed
// by node id — the map internal/fingerprint.SeedInputsHash and the DAG
// builder's seed-inputs capture both consume.
func SeedInputs(ir *IR) map[string]dagvalue.Value {
	seeds := make(map[string]dagvalue.Value)
	for _, n := range ir.Nodes {
		if len(n.DependsOn) == 0 {
			seeds[n.ID] = n.SeedValue
		}
	}
	return seeds
}
