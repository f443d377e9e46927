package db_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/nfriedel/flint/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NOTE: TestMain, getTestConfig() and testClient() are defined in db_test.go.
// All files here share the db_test package.

func TestClientConnect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := getTestConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := db.NewClient(ctx, cfg, logger)
	require.NoError(t, err, "should connect to SurrealDB")
	defer client.Close(ctx)

	assert.NotNil(t, client.DB(), "should have valid DB reference")
}

func TestClientInitSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := getTestConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := db.NewClient(ctx, cfg, logger)
	require.NoError(t, err, "should connect to SurrealDB")
	defer client.Close(ctx)

	err = client.InitSchema(ctx)
	require.NoError(t, err, "should initialize schema without error")

	// Running it again must be a no-op, the CLI applies it on every start
	err = client.InitSchema(ctx)
	require.NoError(t, err, "schema init should be idempotent")

	result, err := client.Query(ctx, "INFO FOR DB", nil)
	require.NoError(t, err, "should query database info")
	assert.NotNil(t, result, "should return database info")
}

func TestClientQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := getTestConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := db.NewClient(ctx, cfg, logger)
	require.NoError(t, err, "should connect to SurrealDB")
	defer client.Close(ctx)

	err = client.InitSchema(ctx)
	require.NoError(t, err, "should initialize schema")

	result, err := client.Query(ctx, "SELECT count() FROM note GROUP ALL", nil)
	require.NoError(t, err, "should execute count query")
	assert.NotNil(t, result, "should return result")
}

func TestClientReconnection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := getTestConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := db.NewClient(ctx, cfg, logger)
	require.NoError(t, err, "should connect to SurrealDB")
	defer client.Close(ctx)

	// Execute query before and after a short wait to verify connection stays alive
	_, err = client.Query(ctx, "RETURN 1", nil)
	require.NoError(t, err, "should execute query before wait")

	time.Sleep(2 * time.Second)

	_, err = client.Query(ctx, "RETURN 2", nil)
	require.NoError(t, err, "should execute query after wait (connection maintained)")
}
