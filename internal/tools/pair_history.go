package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nfriedel/flint/internal/history"
	"github.com/nfriedel/flint/internal/models"
)

// PairHistoryInput defines the input schema for the pair_history tool.
type PairHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max entries 1-200, default 10"`
}

// historyPayload is the JSON shape of the pair_history result.
type historyPayload struct {
	Entries []models.HistoryEntry `json:"entries"`
	Count   int                   `json:"count"`
}

// NewPairHistoryHandler creates the pair_history tool handler. Lists
// recent pair outcomes, newest first.
func NewPairHistoryHandler(deps *Dependencies) mcp.ToolHandlerFor[PairHistoryInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PairHistoryInput) (
		*mcp.CallToolResult, any, error,
	) {
		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > history.MaxEntries {
			return ErrorResult(
				fmt.Sprintf("Limit must be 1-%d", history.MaxEntries),
				"Reduce limit value",
			), nil, nil
		}

		entries, err := deps.Strike.History(ctx, limit)
		if err != nil {
			deps.Logger.Error("history query failed", "error", err)
			return ErrorResult("Failed to load history", "Database may be unavailable"), nil, nil
		}

		deps.Logger.Debug("history listed", "entries", len(entries))
		return JSONResult(historyPayload{Entries: entries, Count: len(entries)}), nil, nil
	}
}
