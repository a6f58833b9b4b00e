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

// exerciseStores runs the store-backed commands against the given backend.
func exerciseStores(t *testing.T, backend, connStr string) {
	api := newFakeBackend(t)
	env := []string{
		"SHIPBOARD_PREFS_BACKEND=" + backend,
		"SHIPBOARD_PREFS_DB_CONNECT=" + connStr,
		"SHIPBOARD_HISTORY_BACKEND=" + backend,
		"SHIPBOARD_HISTORY_DB_CONNECT=" + connStr,
	}

	_, err := runShipboard(t, api.URL, env, "prefs", "clear")
	require.NoError(t, err)
	_, err = runShipboard(t, api.URL, env, "history", "clear")
	require.NoError(t, err)

	// Saved filter survives across processes
	_, err = runShipboard(t, api.URL, env, "filter", "set", "--sprint-id", "2")
	require.NoError(t, err)
	out, err := runShipboard(t, api.URL, env, "filter", "show", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"sprint_id": 2`)

	// Dashboard refresh records a snapshot
	_, err = runShipboard(t, api.URL, env, "dashboard", "--limit", "5")
	require.NoError(t, err)

	out, err = runShipboard(t, api.URL, env, "prefs", "status")
	require.NoError(t, err)
	assert.Contains(t, out, backend)

	out, err = runShipboard(t, api.URL, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, backend)
}

// TestShipboardWithMySQL tests the shipboard CLI with a MySQL backend.
func TestShipboardWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "shipboard",
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/shipboard?parseTime=true", host, port.Port())
	exerciseStores(t, "mysql", connStr)
}

// TestShipboardWithPostgres tests the shipboard CLI with a PostgreSQL backend.
func TestShipboardWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
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
	exerciseStores(t, "postgresql", connStr)
}
