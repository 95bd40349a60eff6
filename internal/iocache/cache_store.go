// Package iocache persists tool scores and run history in SQL databases.
package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// ScoreStore keeps one parsed tool score per cache key.
// Rows carry the cache format version and the unix time they were written,
// so readers can ignore stale entries and Prune can drop them.
type ScoreStore struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.CacheStore = &ScoreStore{} // Compile-time check

// NewCacheStore opens the score table for the backend, creating it when missing.
// An empty connStr on SQLite means the default file in the home directory.
// The none backend yields a store that never hits.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}
	if backend == schema.NoneBackend {
		return &ScoreStore{tableName: tableName, backend: backend, connStr: connStr}, nil
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	db, err := openDB(backend, connStr, GetDBFilePath())
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(getCreateTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &ScoreStore{db: db, tableName: tableName, backend: backend, connStr: connStr}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the score table.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key CHAR(64) PRIMARY KEY,
				score DOUBLE NOT NULL,
				found BOOLEAN NOT NULL,
				cache_version INT NOT NULL,
				created_at BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				score DOUBLE PRECISION NOT NULL,
				found BOOLEAN NOT NULL,
				cache_version INTEGER NOT NULL,
				created_at BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				score REAL NOT NULL,
				found INTEGER NOT NULL,
				cache_version INTEGER NOT NULL,
				created_at INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

func (ss *ScoreStore) disabled() bool {
	return ss.backend == schema.NoneBackend || ss.db == nil
}

// GetScore returns the score stored under key when it was written with version
// at or after notBefore. Anything else is reported as sql.ErrNoRows.
func (ss *ScoreStore) GetScore(key string, version int, notBefore time.Time) (schema.CachedScore, error) {
	if ss.disabled() {
		return schema.CachedScore{}, sql.ErrNoRows
	}

	query := fmt.Sprintf(`SELECT score, found FROM %s WHERE cache_key = %s AND cache_version = %s AND created_at >= %s`,
		quoteTableName(ss.tableName, ss.backend),
		placeholder(ss.backend, 1), placeholder(ss.backend, 2), placeholder(ss.backend, 3))

	var cached schema.CachedScore
	if err := ss.db.QueryRow(query, key, version, notBefore.Unix()).Scan(&cached.Score, &cached.Found); err != nil {
		return schema.CachedScore{}, err
	}
	return cached, nil
}

// PutScore inserts or replaces the score stored under key.
func (ss *ScoreStore) PutScore(key string, version int, score schema.CachedScore, at time.Time) error {
	if ss.disabled() {
		return nil
	}
	_, err := ss.db.Exec(ss.getUpsertQuery(), key, score.Score, score.Found, version, at.Unix())
	return err
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ss *ScoreStore) getUpsertQuery() string {
	quotedTableName := quoteTableName(ss.tableName, ss.backend)
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, score, found, cache_version, created_at) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE score = new.score, found = new.found, cache_version = new.cache_version, created_at = new.created_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, score, found, cache_version, created_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (cache_key) DO UPDATE SET score = EXCLUDED.score, found = EXCLUDED.found, cache_version = EXCLUDED.cache_version, created_at = EXCLUDED.created_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, score, found, cache_version, created_at) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}
}

// Prune deletes rows written before the cutoff or under another version.
// It returns the number of rows removed.
func (ss *ScoreStore) Prune(version int, before time.Time) (int64, error) {
	if ss.disabled() {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE cache_version <> %s OR created_at < %s`,
		quoteTableName(ss.tableName, ss.backend), placeholder(ss.backend, 1), placeholder(ss.backend, 2))
	res, err := ss.db.Exec(query, version, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune %s: %w", ss.tableName, err)
	}
	return res.RowsAffected()
}

// Close closes the underlying DB connection.
func (ss *ScoreStore) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// GetStatus returns entry counts, age range and size of the score table.
func (ss *ScoreStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}
	if ss.disabled() {
		return status, nil
	}

	quotedTableName := quoteTableName(ss.tableName, ss.backend)
	row := ss.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	status.TableSizeBytes = ss.tableSizeBytes(status.TotalEntries)
	if status.TotalEntries == 0 {
		return status, nil
	}

	row = ss.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE found = %s", quotedTableName, placeholder(ss.backend, 1)), false)
	if err := row.Scan(&status.UnscoredEntries); err != nil {
		return status, fmt.Errorf("failed to count unscored entries: %w", err)
	}

	var lastTs, oldestTs int64
	row = ss.db.QueryRow(fmt.Sprintf("SELECT MAX(created_at), MIN(created_at) FROM %s", quotedTableName))
	if err := row.Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)
	return status, nil
}

// tableSizeBytes asks the backend for the table size and falls back to a rough
// per-row estimate when it cannot tell.
func (ss *ScoreStore) tableSizeBytes(entries int) int64 {
	estimate := int64(entries) * 128
	var size int64
	switch ss.backend {
	case schema.SQLiteBackend:
		row := ss.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ss.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		row := ss.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, ss.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	case schema.PostgreSQLBackend:
		row := ss.db.QueryRow("SELECT pg_total_relation_size($1)", ss.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	default:
		return estimate
	}
	return size
}
