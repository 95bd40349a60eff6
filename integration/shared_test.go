//go:build basic || database

// Package integration contains end-to-end tests for the codequal binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a codequal binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the codequal binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "codequal-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "codequal")
		buildCmd := exec.Command("go", "build", "-o", binPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build codequal: %v\n%s", err, out))
		}

		sharedBinaryPath = binPath
	})

	return sharedBinaryPath
}

// fakeToolDir writes a fake flog that scores every file by its line count.
func fakeToolDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	script := "#!/bin/sh\nn=$(wc -l < \"$2\")\necho \"  $n.0: flog total\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flog"), []byte(script), 0o755))
	return dir
}

// rubyProject writes a small Ruby tree with files of 1..n lines.
func rubyProject(t *testing.T, n int) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))
	for i := 1; i <= n; i++ {
		body := strings.Repeat("x = 1\n", i)
		require.NoError(t, os.WriteFile(filepath.Join(root, "lib", fmt.Sprintf("file%02d.rb", i)), []byte(body), 0o644))
	}
	return root
}

// runCodequal runs the binary with a private HOME and the given extra environment.
func runCodequal(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}

// withFakeTool returns env entries that put the fake flog first on PATH.
func withFakeTool(t *testing.T, env map[string]string) map[string]string {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	env["PATH"] = fakeToolDir(t) + string(os.PathListSeparator) + os.Getenv("PATH")
	return env
}
