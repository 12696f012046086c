// Package resultcache provides two cache keyspaces over the same kind of
// record — one for memoization (keyed by IR + seed-inputs fingerprint),
// one for replay (keyed by request id) — plus a best-effort history-file
// append so a replay keyspace miss in memory can still be resolved from
// disk.
package resultcache

import (
	"time"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
	"github.com/alexisbeaulieu97/dagflow/internal/scheduler"
)

// Record is one stored execution outcome: the request id that produced it,
// when it was produced, and its node results keyed by node id. node_results
// is a JSON object on the wire (per the history log format), so result
// order is not preserved across a round trip — callers needing the
// execution's result order hold onto the originating *scheduler.ResultMap
// instead.
type Record struct {
	RequestID   string                    `json:"request_id"`
	Timestamp   time.Time                 `json:"timestamp"`
	NodeResults map[string]dagvalue.Value `json:"node_results"`
}

// NewRecord builds a Record from a completed ResultMap.
func NewRecord(requestID string, results *scheduler.ResultMap) Record {
	ordered := results.Ordered()
	nodeResults := make(map[string]dagvalue.Value, len(ordered))
	for _, pair := range ordered {
		nodeResults[pair.ID] = pair.Value
	}

	return Record{
		RequestID:   requestID,
		Timestamp:   time.Now(),
		NodeResults: nodeResults,
	}
}

// Get returns the result recorded for a node id.
func (r Record) Get(nodeID string) (dagvalue.Value, bool) {
	v, ok := r.NodeResults[nodeID]
	return v, ok
}
