// Package db_test contains integration tests for the SurrealDB store.
package db_test

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/nfriedel/flint/internal/db"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestMain provisions a throwaway SurrealDB container for the test run.
// Set SURREALDB_URL to use a running instance instead. Short mode skips
// the container entirely since every test skips itself.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() || os.Getenv("SURREALDB_URL") != "" {
		os.Exit(m.Run())
	}

	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0-beta.1",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--log", "info", "--user", "root", "--pass", "root"},
			WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start SurrealDB container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	// Workaround: testcontainers may return "null" as host in some environments
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := container.MappedPort(ctx, "8000")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}

	os.Setenv("SURREALDB_URL", fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port()))

	code := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(code)
}

// getTestConfig returns config from environment or defaults for local testing.
func getTestConfig() db.Config {
	return db.Config{
		URL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		Namespace: getEnv("SURREALDB_NAMESPACE", "test_flint"),
		Database:  getEnv("SURREALDB_DATABASE", "test_vault"),
		Username:  getEnv("SURREALDB_USER", "root"),
		Password:  getEnv("SURREALDB_PASS", "root"),
		AuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// testClient creates a connected client with the schema applied.
// Skips the test in short mode.
func testClient(t *testing.T) (*db.Client, context.Context) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(func() { cancel() })

	cfg := getTestConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	client, err := db.NewClient(ctx, cfg, logger)
	require.NoError(t, err, "should connect to SurrealDB")
	t.Cleanup(func() { client.Close(ctx) })

	err = client.InitSchema(ctx)
	require.NoError(t, err, "should initialize schema")

	return client, ctx
}

// cleanupNotes removes test notes (and their edges) by path prefix.
func cleanupNotes(t *testing.T, client *db.Client, ctx context.Context, prefix string) {
	_, err := client.Query(ctx, `DELETE note WHERE string::starts_with(path, $prefix)`, map[string]any{"prefix": prefix})
	require.NoError(t, err, "cleanup notes")
}

// cleanupHistory clears the history table.
func cleanupHistory(t *testing.T, client *db.Client, ctx context.Context) {
	_, err := client.Query(ctx, `DELETE history`, nil)
	require.NoError(t, err, "cleanup history")
}

// cleanupSettings removes the settings singleton.
func cleanupSettings(t *testing.T, client *db.Client, ctx context.Context) {
	_, err := client.Query(ctx, `DELETE settings`, nil)
	require.NoError(t, err, "cleanup settings")
}
