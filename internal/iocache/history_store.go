package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// Table names for run history.
const (
	analysisRunsTable = "codequal_analysis_runs"
	fileScoresTable   = "codequal_file_scores"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{analysisRunsTable, getCreateAnalysisRunsQuery(backend)},
		{fileScoresTable, getCreateFileScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateAnalysisRunsQuery returns the CREATE TABLE query for codequal_analysis_runs.
func getCreateAnalysisRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(analysisRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				language VARCHAR(50) NOT NULL,
				root_path VARCHAR(1024) NOT NULL,
				repo_root VARCHAR(1024),
				commit_hash VARCHAR(64),
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_files INT NOT NULL DEFAULT 0,
				total_loc BIGINT NOT NULL DEFAULT 0,
				average_complexity DOUBLE NOT NULL DEFAULT 0,
				percentile_95_complexity DOUBLE NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGSERIAL PRIMARY KEY,
				language TEXT NOT NULL,
				root_path TEXT NOT NULL,
				repo_root TEXT,
				commit_hash TEXT,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_files INT NOT NULL DEFAULT 0,
				total_loc BIGINT NOT NULL DEFAULT 0,
				average_complexity DOUBLE PRECISION NOT NULL DEFAULT 0,
				percentile_95_complexity DOUBLE PRECISION NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
				language TEXT NOT NULL,
				root_path TEXT NOT NULL,
				repo_root TEXT,
				commit_hash TEXT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_files INTEGER NOT NULL DEFAULT 0,
				total_loc INTEGER NOT NULL DEFAULT 0,
				average_complexity REAL NOT NULL DEFAULT 0,
				percentile_95_complexity REAL NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateFileScoresQuery returns the CREATE TABLE query for codequal_file_scores.
func getCreateFileScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(fileScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				file_path VARCHAR(512) NOT NULL,
				score DOUBLE NOT NULL,
				line_count INT NOT NULL,
				score_label VARCHAR(50) NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				file_path TEXT NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				line_count INT NOT NULL,
				score_label TEXT NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				file_path TEXT NOT NULL,
				score REAL NOT NULL,
				line_count INTEGER NOT NULL,
				score_label TEXT NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)
	}
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// disabled reports whether the store is a no-op.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new analysis run and returns its unique ID.
// Empty repoRoot and commitHash values are stored as NULL.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, language, rootPath, repoRoot, commitHash string, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, hs.backend)
	columns := "language, root_path, repo_root, commit_hash, start_time, config_params"
	args := []any{language, rootPath, nullString(repoRoot), nullString(commitHash), formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING analysis_id`,
			quotedTableName, columns, placeholders(hs.backend, len(args)))
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			quotedTableName, columns, placeholders(hs.backend, len(args)))
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return runID, nil
}

// RecordFileScore stores the score of a single file for a run.
func (hs *HistoryStoreImpl) RecordFileScore(runID int64, entry schema.ScoreEntry, label string) error {
	if hs.disabled() {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (analysis_id, file_path, score, line_count, score_label) VALUES (%s)`,
		quoteTableName(fileScoresTable, hs.backend), placeholders(hs.backend, 5))
	if _, err := hs.db.Exec(query, runID, entry.Path, entry.Score, entry.Lines, label); err != nil {
		return fmt.Errorf("failed to insert file score: %w", err)
	}
	return nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, summary schema.Summary) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, hs.backend)
	selectQuery := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	startTime, err := hs.scanTime(hs.db.QueryRow(selectQuery, runID))
	if err != nil {
		return fmt.Errorf("failed to get start time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_files = %s, total_loc = %s,
		average_complexity = %s, percentile_95_complexity = %s WHERE analysis_id = %s`,
		quotedTableName,
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3), placeholder(hs.backend, 4),
		placeholder(hs.backend, 5), placeholder(hs.backend, 6), placeholder(hs.backend, 7))
	_, err = hs.db.Exec(updateQuery,
		formatTime(endTime, hs.backend), durationMs, summary.TotalFiles, summary.TotalLOC,
		summary.AverageComplexity, summary.Percentile95Complexity, runID)
	if err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// scanTime reads a single time column, which SQLite stores as text.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend != schema.SQLiteBackend {
		var t time.Time
		err := row.Scan(&t)
		return t, err
	}
	var s string
	if err := row.Scan(&s); err != nil {
		return time.Time{}, err
	}
	return parseTime(s)
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(analysisRunsTable, hs.backend)
	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row = hs.db.QueryRow(fmt.Sprintf("SELECT MAX(analysis_id) FROM %s", quotedRuns))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		lastTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf(
			"SELECT start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", quotedRuns)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastTime

		oldestTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf(
			"SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", quotedRuns)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestTime

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_files), 0) FROM %s", quotedRuns))
		if err := row.Scan(&status.TotalFilesAnalyzed); err != nil {
			return status, fmt.Errorf("failed to get total files analyzed: %w", err)
		}
	}

	for _, table := range []string{analysisRunsTable, fileScoresTable} {
		var count int64
		row = hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRuns retrieves all analysis runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, language, root_path, repo_root, commit_hash, start_time, end_time, run_duration_ms,
		total_files, total_loc, average_complexity, percentile_95_complexity, config_params
		FROM %s ORDER BY analysis_id`, quoteTableName(analysisRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.AnalysisID, &record.Language, &record.RootPath, &record.RepoRoot, &record.CommitHash,
				&startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalFiles, &record.TotalLOC,
				&record.AverageComplexity, &record.Percentile95Complexity, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
			startTime, err := parseTime(startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AnalysisID, &record.Language, &record.RootPath, &record.RepoRoot, &record.CommitHash,
				&record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalFiles, &record.TotalLOC,
				&record.AverageComplexity, &record.Percentile95Complexity, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllFileScores retrieves all file scores from the store.
func (hs *HistoryStoreImpl) GetAllFileScores() ([]schema.FileScoreRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, file_path, score, line_count, score_label
		FROM %s ORDER BY analysis_id, file_path`, quoteTableName(fileScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query file scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileScoreRecord
	for rows.Next() {
		var record schema.FileScoreRecord
		if err := rows.Scan(&record.AnalysisID, &record.FilePath, &record.Score, &record.Lines, &record.Label); err != nil {
			return nil, fmt.Errorf("failed to scan file score: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file scores: %w", err)
	}
	return results, nil
}
