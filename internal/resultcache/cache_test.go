package resultcache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
	"github.com/alexisbeaulieu97/dagflow/internal/scheduler"
)

func sampleResults() *scheduler.ResultMap {
	rm := scheduler.NewResultMap(1)
	rm.Set("n1", dagvalue.NewInteger(42))
	return rm
}

func TestCache_MemoizeLookup(t *testing.T) {
	t.Parallel()

	c, err := New(8, "")
	require.NoError(t, err)

	key := Key{IRHash: 1, InputsHash: 2}
	record := NewRecord("r1", sampleResults())
	c.Store(key, record)

	got, ok := c.Lookup(key)
	require.True(t, ok)
	v, ok := got.Get("n1")
	require.True(t, ok)
	n, _ := v.AsInteger()
	assert.Equal(t, int32(42), n)
}

func TestCache_ReplayInMemory(t *testing.T) {
	t.Parallel()

	c, err := New(8, "")
	require.NoError(t, err)

	record := NewRecord("r1", sampleResults())
	c.Store(Key{IRHash: 1, InputsHash: 2}, record)

	got, ok := c.Replay("r1")
	require.True(t, ok)
	assert.Equal(t, "r1", got.RequestID)
}

func TestCache_ReplayFromHistoryFile(t *testing.T) {
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.jsonl")

	c, err := New(8, historyPath)
	require.NoError(t, err)

	record := NewRecord("r1", sampleResults())
	c.Store(Key{IRHash: 1, InputsHash: 2}, record)

	require.Eventually(t, func() bool {
		_, ok := loadFreshCache(t, historyPath).Replay("r1")
		return ok
	}, 2*time.Second, 20*time.Millisecond, "history file should gain a matching record")
}

func TestCache_ReplaySkipsCorruptLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.jsonl")
	require.NoError(t, writeRawLines(historyPath, []string{
		"not json",
		mustMarshal(t, NewRecord("r2", sampleResults())),
	}))

	c, err := New(8, historyPath)
	require.NoError(t, err)

	got, ok := c.Replay("r2")
	require.True(t, ok)
	assert.Equal(t, "r2", got.RequestID)
}

func loadFreshCache(t *testing.T, historyPath string) *Cache {
	t.Helper()
	c, err := New(8, historyPath)
	require.NoError(t, err)
	return c
}
