package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStore_SQLite(t *testing.T) {
	store, err := NewCacheStore(scoreTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	now := time.Now()
	_, err = store.GetScore("missing", 1, now.Add(-time.Hour))
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, store.PutScore("k1", 1, schema.CachedScore{Score: 4.5, Found: true}, now.Add(-10*time.Second)))
	require.NoError(t, store.PutScore("k2", 1, schema.CachedScore{}, now))

	got, err := store.GetScore("k1", 1, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, schema.CachedScore{Score: 4.5, Found: true}, got)

	got, err = store.GetScore("k2", 1, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, schema.CachedScore{}, got, "a file without a score is still cached")

	// PutScore replaces existing keys
	require.NoError(t, store.PutScore("k1", 1, schema.CachedScore{Score: 9, Found: true}, now))
	got, err = store.GetScore("k1", 1, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.Score)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, 1, status.UnscoredEntries)
	assert.Equal(t, now.Unix(), status.LastEntryTime.Unix())
	assert.Equal(t, now.Unix(), status.OldestEntryTime.Unix(), "k1 was rewritten with the newer timestamp")
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestCacheStore_GetScoreFilters(t *testing.T) {
	store, err := NewCacheStore(scoreTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	written := time.Now().Add(-time.Hour)
	require.NoError(t, store.PutScore("key", 2, schema.CachedScore{Score: 3, Found: true}, written))

	_, err = store.GetScore("key", 1, written)
	assert.ErrorIs(t, err, sql.ErrNoRows, "other versions miss")
	_, err = store.GetScore("key", 2, written.Add(time.Second))
	assert.ErrorIs(t, err, sql.ErrNoRows, "entries older than the cutoff miss")
	_, err = store.GetScore("key", 2, written)
	assert.NoError(t, err, "the cutoff itself is inclusive")
}

func TestCacheStore_Prune(t *testing.T) {
	store, err := NewCacheStore(scoreTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)
	require.NoError(t, store.PutScore("fresh", 1, schema.CachedScore{Score: 1, Found: true}, now))
	require.NoError(t, store.PutScore("expired", 1, schema.CachedScore{Score: 2, Found: true}, cutoff.Add(-time.Minute)))
	require.NoError(t, store.PutScore("old-format", 0, schema.CachedScore{Score: 3, Found: true}, now))

	removed, err := store.Prune(1, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = store.GetScore("fresh", 1, cutoff)
	assert.NoError(t, err)
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalEntries)

	removed, err = store.Prune(1, cutoff)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCacheStore_Persistent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	written := time.Unix(100, 0)

	store, err := NewCacheStore(scoreTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.PutScore("key", 1, schema.CachedScore{Score: 7.25, Found: true}, written))
	require.NoError(t, store.Close())

	reopened, err := NewCacheStore(scoreTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	got, err := reopened.GetScore("key", 1, written)
	require.NoError(t, err)
	assert.Equal(t, schema.CachedScore{Score: 7.25, Found: true}, got)
}

func TestCacheStore_NoneBackend(t *testing.T) {
	store, err := NewCacheStore(scoreTable, schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.PutScore("key", 1, schema.CachedScore{Score: 1, Found: true}, time.Now()))
	_, err = store.GetScore("key", 1, time.Time{})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	removed, err := store.Prune(1, time.Now())
	assert.NoError(t, err)
	assert.Zero(t, removed)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestCacheStore_InvalidInput(t *testing.T) {
	_, err := NewCacheStore("bad table", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)

	_, err = NewCacheStore(scoreTable, schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cache backend")
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(scoreTable, schema.SQLiteBackend), `"score_cache"`)
	assert.Contains(t, getCreateTableQuery(scoreTable, schema.SQLiteBackend), "found INTEGER NOT NULL")
	assert.Contains(t, getCreateTableQuery(scoreTable, schema.MySQLBackend), "score DOUBLE NOT NULL")
	assert.Contains(t, getCreateTableQuery(scoreTable, schema.PostgreSQLBackend), "found BOOLEAN NOT NULL")
}
