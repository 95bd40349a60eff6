package iocache

import (
	"time"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetScoreStore implements the CacheManager interface.
func (m *MockCacheManager) GetScoreStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetHistoryStore implements the CacheManager interface.
func (m *MockCacheManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	if store, ok := ret.Get(0).(contract.HistoryStore); ok && store != nil {
		return store
	}
	return nil
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// GetScore implements the CacheStore interface.
func (m *MockCacheStore) GetScore(key string, version int, notBefore time.Time) (schema.CachedScore, error) {
	args := m.Called(key, version, notBefore)
	cached, _ := args.Get(0).(schema.CachedScore)
	return cached, args.Error(1)
}

// PutScore implements the CacheStore interface.
func (m *MockCacheStore) PutScore(key string, version int, score schema.CachedScore, at time.Time) error {
	args := m.Called(key, version, score, at)
	return args.Error(0)
}

// Prune implements the CacheStore interface.
func (m *MockCacheStore) Prune(version int, before time.Time) (int64, error) {
	args := m.Called(version, before)
	return args.Get(0).(int64), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, language, rootPath, repoRoot, commitHash string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, language, rootPath, repoRoot, commitHash, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordFileScore implements the HistoryStore interface.
func (m *MockHistoryStore) RecordFileScore(runID int64, entry schema.ScoreEntry, label string) error {
	args := m.Called(runID, entry, label)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, summary schema.Summary) error {
	args := m.Called(runID, endTime, summary)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllFileScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllFileScores() ([]schema.FileScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.FileScoreRecord)
	return scores, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
