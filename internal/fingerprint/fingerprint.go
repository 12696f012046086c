// Package fingerprint computes the content hashes the IR builder, DAG
// builder, and result cache key on: the IR hash (topology + configuration,
// excluding seed inputs) and the seed-inputs hash (the literal inputs
// attached to source nodes), both xxhash-based uint64s so the memoization
// fingerprint — (ir_hash, inputs_hash) — is cheap to compute and compare.
package fingerprint

import (
	"encoding/json"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// NodeShape is the subset of a node descriptor that feeds the IR content
// hash: id, component type, canonicalized configuration, and ordered
// dependency list. Literal inputs are deliberately excluded — they are
// hashed separately via SeedInputs so that changing a seed value
// invalidates only that axis of the memoization cache.
type NodeShape struct {
	ID            string
	ComponentType string
	Config        json.RawMessage
	DependsOn     []string
}

// IRHash computes the content hash of an ordered node list.
func IRHash(nodes []NodeShape) uint64 {
	d := xxhash.New()
	for _, n := range nodes {
		_, _ = d.WriteString("node")
		_, _ = d.WriteString(n.ID)
		_, _ = d.WriteString(n.ComponentType)
		_, _ = d.WriteString(canonicalConfig(n.Config))
		for _, dep := range n.DependsOn {
			_, _ = d.WriteString("dep")
			_, _ = d.WriteString(dep)
		}
	}
	return d.Sum64()
}

// SeedInputsHash computes a stable hash over the seed-inputs map (node id ->
// literal Value), independent of Go's randomized map iteration order, using
// the Value hashing rules from internal/dagvalue.
func SeedInputsHash(seeds map[string]dagvalue.Value) uint64 {
	ids := make([]string, 0, len(seeds))
	for id := range seeds {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	d := xxhash.New()
	for _, id := range ids {
		_, _ = d.WriteString(id)
		var buf [8]byte
		putUint64(buf[:], dagvalue.Hash(seeds[id]))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// canonicalConfig re-marshals a raw configuration document with object keys
// sorted, so semantically identical configs with differently ordered keys
// hash identically.
func canonicalConfig(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return string(raw)
	}
	out, err := json.Marshal(canonicalize(doc))
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// canonicalize recursively rebuilds a decoded-JSON document. Key order in
// canonicalConfig's output comes from encoding/json, which marshals every
// map[string]any with its keys sorted.
func canonicalize(doc any) any {
	switch t := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = canonicalize(v)
		}
		return out
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = canonicalize(item)
		}
		return items
	default:
		return t
	}
}
