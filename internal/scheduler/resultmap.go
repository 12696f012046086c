package scheduler

import (
	"sync"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// ResultMap holds one Value per executed node and iterates in the order
// entries were first Set. The map Execute returns is filled layer by
// layer, each layer in IR document order, so its order does not depend on
// which node finished first; across layers the order is topological, so a
// node the document lists before one of its upstream nodes comes after
// that upstream node. The underlying store is an insertion-ordered slice
// plus an index, guarded by a single mutex for concurrent distinct-key
// writes.
type ResultMap struct {
	mu    sync.Mutex
	order []string
	byID  map[string]dagvalue.Value
}

// NewResultMap returns an empty ResultMap sized for n nodes.
func NewResultMap(n int) *ResultMap {
	return &ResultMap{
		order: make([]string, 0, n),
		byID:  make(map[string]dagvalue.Value, n),
	}
}

// Set records the result for id. Each id is expected to be set exactly
// once — one goroutine per node, one key per node — so no caller needs to
// branch on whether an entry already exists.
func (m *ResultMap) Set(id string, v dagvalue.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[id]; !exists {
		m.order = append(m.order, id)
	}
	m.byID[id] = v
}

// Get returns the recorded result for id, if any.
func (m *ResultMap) Get(id string) (dagvalue.Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.byID[id]
	return v, ok
}

// Ordered returns (id, Value) pairs in the order they were first Set.
func (m *ResultMap) Ordered() []IDValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]IDValue, len(m.order))
	for i, id := range m.order {
		out[i] = IDValue{ID: id, Value: m.byID[id]}
	}
	return out
}

// Len reports how many results have been recorded.
func (m *ResultMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// IDValue pairs a node id with its recorded Value.
type IDValue struct {
	ID    string
	Value dagvalue.Value
}
