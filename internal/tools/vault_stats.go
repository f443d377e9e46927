package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nfriedel/flint/internal/metrics"
)

// VaultStatsInput defines the input schema for the vault_stats tool.
// The tool takes no arguments.
type VaultStatsInput struct{}

// vaultStatsPayload combines index counts with runtime metrics.
type vaultStatsPayload struct {
	Notes   int               `json:"notes"`
	Edges   int               `json:"edges"`
	History int               `json:"history"`
	Metrics *metrics.Snapshot `json:"metrics,omitempty"`
}

// NewVaultStatsHandler creates the vault_stats tool handler. Reports
// index counts and, when a collector is wired, in-process operation
// timings.
func NewVaultStatsHandler(deps *Dependencies) mcp.ToolHandlerFor[VaultStatsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input VaultStatsInput) (
		*mcp.CallToolResult, any, error,
	) {
		stats, err := deps.Strike.Stats(ctx)
		if err != nil {
			deps.Logger.Error("stats query failed", "error", err)
			return ErrorResult("Failed to load stats", "Database may be unavailable"), nil, nil
		}

		payload := vaultStatsPayload{
			Notes:   stats.Notes,
			Edges:   stats.Edges,
			History: stats.History,
		}
		if deps.Collector != nil {
			snapshot := deps.Collector.Snapshot()
			payload.Metrics = &snapshot
		}

		return JSONResult(payload), nil, nil
	}
}
