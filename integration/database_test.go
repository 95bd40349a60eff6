//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestCodequalWithMySQL tests the codequal CLI with a MySQL backend.
func TestCodequalWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "codequal",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/codequal?parseTime=true", host, port.Port())
	runBackendScenario(t, "mysql", connStr)
}

// TestCodequalWithPostgres tests the codequal CLI with a PostgreSQL backend.
func TestCodequalWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runBackendScenario(t, "postgresql", connStr)
}

// runBackendScenario drives cache and history commands against one server.
// Cache and history share the database but use different tables.
func runBackendScenario(t *testing.T, backend, connStr string) {
	t.Helper()
	root := rubyProject(t, 3)
	env := withFakeTool(t, map[string]string{
		"CODEQUAL_CACHE_BACKEND":      backend,
		"CODEQUAL_CACHE_DB_CONNECT":   connStr,
		"CODEQUAL_HISTORY_BACKEND":    backend,
		"CODEQUAL_HISTORY_DB_CONNECT": connStr,
	})

	_, err := runCodequal(t, env, "cache", "clear")
	require.NoError(t, err)
	_, err = runCodequal(t, env, "history", "clear")
	require.NoError(t, err)

	_, err = runCodequal(t, env, "history", "migrate")
	require.NoError(t, err)

	// Second run is served from the score cache
	for range 2 {
		_, err = runCodequal(t, env, "analyze", root, "--language", "ruby", "--limit", "5")
		require.NoError(t, err)
	}

	output, err := runCodequal(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, output, backend)

	output, err = runCodequal(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "History Backend: "+backend)

	_, err = runCodequal(t, env, "history", "migrate", "--target-version", "0")
	require.NoError(t, err)
}
