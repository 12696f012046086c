package resultcache

import (
	"bufio"
	"encoding/json"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Key identifies a memoization entry: an IR's content hash plus the hash
// of the seed inputs it was run with.
type Key struct {
	IRHash     uint64
	InputsHash uint64
}

// Cache wraps two bounded LRU keyspaces over the same Record shape — one
// for memoization (Key -> Record), one for replay (request id -> Record)
// — plus an optional append-only history file backing the replay
// keyspace once it's evicted from memory.
type Cache struct {
	memo    *lru.Cache[Key, Record]
	replay  *lru.Cache[string, Record]
	history string // path to the history file, empty if disabled
}

// New builds a Cache with the given per-keyspace capacity. A zero or
// negative capacity is raised to 1, so each in-memory keyspace always
// holds at least one entry.
func New(capacity int, historyFile string) (*Cache, error) {
	if capacity <= 0 {
		capacity = 1
	}

	memo, err := lru.New[Key, Record](capacity)
	if err != nil {
		return nil, err
	}
	replay, err := lru.New[string, Record](capacity)
	if err != nil {
		return nil, err
	}

	return &Cache{memo: memo, replay: replay, history: historyFile}, nil
}

// Lookup returns the memoized Record for key, if present.
func (c *Cache) Lookup(key Key) (Record, bool) {
	return c.memo.Get(key)
}

// Store records result under both keyspaces and, if a history file is
// configured, appends a line-delimited JSON record to it in a detached
// goroutine, fire-and-forget: a failed append is silently dropped rather
// than propagated, since Store must not block or fail the caller's
// execution on a disk write.
func (c *Cache) Store(key Key, record Record) {
	c.memo.Add(key, record)
	c.replay.Add(record.RequestID, record)

	if c.history == "" {
		return
	}

	go func(path string, rec Record) {
		appendHistoryLine(path, rec)
	}(c.history, record)
}

// Replay returns the Record for a request id: first consulting the
// in-memory replay keyspace, then — on a miss — streaming the history
// file looking for a matching line. A corrupt line is skipped, not fatal.
func (c *Cache) Replay(requestID string) (Record, bool) {
	if rec, ok := c.replay.Get(requestID); ok {
		return rec, true
	}
	if c.history == "" {
		return Record{}, false
	}

	f, err := os.Open(c.history)
	if err != nil {
		return Record{}, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		if rec.RequestID == requestID {
			c.replay.Add(requestID, rec)
			return rec, true
		}
	}

	return Record{}, false
}

func appendHistoryLine(path string, rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	data = append(data, '\n')
	_, _ = f.Write(data)
}
