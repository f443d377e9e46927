//go:build integration

package tools_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nfriedel/flint/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger creates a logger for test visibility.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestPingTool(t *testing.T) {
	impl := &mcp.Implementation{
		Name:    "test-flint",
		Version: "0.0.1-test",
	}
	server := mcp.NewServer(impl, nil)

	// Ping and tools/list never touch the services, nil is fine here.
	deps := &tools.Dependencies{
		Strike:    nil,
		Collector: nil,
		Logger:    testLogger(),
	}
	tools.RegisterAll(server, deps)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(ctx, serverTransport)
	}()

	time.Sleep(50 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	defer session.Close()

	t.Run("tools/list returns the full set", func(t *testing.T) {
		result, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Len(t, result.Tools, 7)

		names := make(map[string]bool, len(result.Tools))
		for _, tool := range result.Tools {
			names[tool.Name] = true
		}
		for _, want := range []string{
			"ping", "draw_pair", "swap_note", "record_spark",
			"skip_pair", "pair_history", "vault_stats",
		} {
			assert.True(t, names[want], "tool %s should be registered", want)
		}
	})

	t.Run("ping returns pong", func(t *testing.T) {
		params := &mcp.CallToolParams{
			Name:      "ping",
			Arguments: map[string]any{},
		}
		result, err := session.CallTool(ctx, params)
		require.NoError(t, err)
		require.Len(t, result.Content, 1)

		textContent, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok, "content should be TextContent")
		assert.Equal(t, "pong", textContent.Text)
		assert.False(t, result.IsError)
	})

	t.Run("ping echoes input", func(t *testing.T) {
		params := &mcp.CallToolParams{
			Name:      "ping",
			Arguments: map[string]any{"echo": "hello vault"},
		}
		result, err := session.CallTool(ctx, params)
		require.NoError(t, err)
		require.Len(t, result.Content, 1)

		textContent, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok, "content should be TextContent")
		assert.Equal(t, "hello vault", textContent.Text)
		assert.False(t, result.IsError)
	})

	cancel()

	select {
	case err := <-serverErr:
		if err != nil {
			t.Logf("server stopped with: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("server did not stop within timeout")
	}
}
