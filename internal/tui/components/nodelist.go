package components

// NodeEntry represents a single node for rendering, with an optional
// error message when its status is NodeStatusFailed.
type NodeEntry struct {
	ID     string
	Status NodeStatus
	Err    string
}

// NodeList renders an ordered list of nodes with their current status.
type NodeList struct {
	entries []NodeEntry
}

// NewNodeList constructs a node list component from an ordered id slice
// and a status/error lookup keyed by node id.
func NewNodeList(order []string, statuses map[string]NodeStatus, errs map[string]string) NodeList {
	entries := make([]NodeEntry, 0, len(order))
	for _, id := range order {
		status, ok := statuses[id]
		if !ok {
			status = NodeStatusPending
		}
		entries = append(entries, NodeEntry{ID: id, Status: status, Err: errs[id]})
	}
	return NodeList{entries: entries}
}

// Entries returns the ordered node entries.
func (l NodeList) Entries() []NodeEntry {
	clone := make([]NodeEntry, len(l.entries))
	copy(clone, l.entries)
	return clone
}
