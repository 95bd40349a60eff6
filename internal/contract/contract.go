// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/codequal/schema"
)

// ToolRunner executes external analysis tools.
// This allows the orchestration logic to be tested without the real binaries.
type ToolRunner interface {
	// Run executes name with args inside dir (empty dir means the current
	// directory) and returns standard output. Failures are *ToolError values.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

	// LookPath reports where name would be found on PATH.
	LookPath(name string) (string, error)
}

// GitClient defines the Git operations needed to annotate analysis runs.
type GitClient interface {
	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// Observer receives progress notifications from the orchestrator.
// A total of -1 means the number of units is not known up front.
type Observer interface {
	OnStart(total int)
	OnUnitProcessed(path string)
	OnFinish()
}

// CacheManager defines the interface for managing the stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetScoreStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for the tool score cache.
// This allows mocking the store for testing.
type CacheStore interface {
	// GetScore returns sql.ErrNoRows unless key holds a score of version written at or after notBefore
	GetScore(key string, version int, notBefore time.Time) (schema.CachedScore, error)
	PutScore(key string, version int, score schema.CachedScore, at time.Time) error
	// Prune removes scores of other versions and scores written before the cutoff
	Prune(version int, before time.Time) (int64, error)
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking analysis runs and their scores.
type HistoryStore interface {
	// BeginRun creates a new analysis run and returns its unique ID
	BeginRun(startTime time.Time, language, rootPath, repoRoot, commitHash string, configParams map[string]any) (int64, error)

	// RecordFileScore stores the score of a single file for a run
	RecordFileScore(runID int64, entry schema.ScoreEntry, label string) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, summary schema.Summary) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every recorded run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllFileScores retrieves every recorded file score ordered by run and path
	GetAllFileScores() ([]schema.FileScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
