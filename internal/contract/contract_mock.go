package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockToolRunner is a mock implementation of ToolRunner for testing.
type MockToolRunner struct {
	mock.Mock
}

var _ ToolRunner = &MockToolRunner{} // Compile-time check

// Run implements the ToolRunner interface.
// The context is not passed to the mock so expectations stay readable.
func (m *MockToolRunner) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	mockArgs := []any{dir, name}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// LookPath implements the ToolRunner interface.
func (m *MockToolRunner) LookPath(name string) (string, error) {
	ret := m.Called(name)
	return ret.String(0), ret.Error(1)
}

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(_ context.Context, repoPath string) (string, error) {
	ret := m.Called(repoPath)
	return ret.String(0), ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	ret := m.Called(contextPath)
	return ret.String(0), ret.Error(1)
}

// MockObserver is a mock implementation of Observer for testing.
type MockObserver struct {
	mock.Mock
}

var _ Observer = &MockObserver{} // Compile-time check

// OnStart implements the Observer interface.
func (m *MockObserver) OnStart(total int) {
	m.Called(total)
}

// OnUnitProcessed implements the Observer interface.
func (m *MockObserver) OnUnitProcessed(path string) {
	m.Called(path)
}

// OnFinish implements the Observer interface.
func (m *MockObserver) OnFinish() {
	m.Called()
}
