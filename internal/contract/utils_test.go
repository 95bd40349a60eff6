package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	bands := schema.ScoreBands{Critical: 60, High: 40, Moderate: 20}
	tests := []struct {
		name  string
		score float64
		label string
	}{
		{"low", 10, schema.LowLabel},
		{"moderate", 25, schema.ModerateLabel},
		{"high", 45, schema.HighLabel},
		{"critical", 90, schema.CriticalLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.score, bands)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "report.json")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "missing", "report.json"))
		assert.Error(t, err)
	})
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		excludes   []string
		wantIgnore bool
	}{
		{
			name:       "empty excludes",
			path:       "app/models/user.rb",
			excludes:   []string{},
			wantIgnore: false,
		},
		{
			name:       "prefix match",
			path:       "vendor/bundle/ruby/gem.rb",
			excludes:   []string{"vendor/"},
			wantIgnore: true,
		},
		{
			name:       "suffix match",
			path:       "lib/generated.pb.go",
			excludes:   []string{".pb.go"},
			wantIgnore: true,
		},
		{
			name:       "glob match basename",
			path:       "spec/models/user_spec.rb",
			excludes:   []string{"*_spec.rb"},
			wantIgnore: true,
		},
		{
			name:       "glob match with test suffix",
			path:       "core/plugin/ruby_test.go",
			excludes:   []string{"*_test.go"},
			wantIgnore: true,
		},
		{
			name:       "substring match",
			path:       "app/generated/code.rb",
			excludes:   []string{"generated"},
			wantIgnore: true,
		},
		{
			name:       "no match",
			path:       "app/core/engine.rb",
			excludes:   []string{"vendor/", "spec/", ".pb.go"},
			wantIgnore: false,
		},
		{
			name:       "blank patterns are skipped",
			path:       "app/core/engine.rb",
			excludes:   []string{"", "  "},
			wantIgnore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIgnore, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestGetDBFilePaths(t *testing.T) {
	cachePath := GetCacheDBFilePath()
	historyPath := GetHistoryDBFilePath()

	assert.NotEmpty(t, cachePath)
	assert.NotEmpty(t, historyPath)
	assert.Equal(t, ".codequal_cache.db", filepath.Base(cachePath))
	assert.Equal(t, ".codequal_history.db", filepath.Base(historyPath))
	assert.NotEqual(t, cachePath, historyPath)
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"fits", "app/user.rb", 20, "app/user.rb"},
		{"truncated", "app/models/concerns/user.rb", 10, "...user.rb"},
		{"tiny width unchanged", "app/models/user.rb", 3, "app/models/user.rb"},
		{"multibyte", "アプリ/モデル/ユーザー.rb", 8, "...ザー.rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
