package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nfriedel/flint/internal/service"
)

// SkipPairInput defines the input schema for the skip_pair tool.
// The tool takes no arguments.
type SkipPairInput struct{}

// NewSkipPairHandler creates the skip_pair tool handler. Dismisses the
// displayed pair without writing anything, the skip still lands in
// history so the pair is not redrawn immediately.
func NewSkipPairHandler(deps *Dependencies) mcp.ToolHandlerFor[SkipPairInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SkipPairInput) (
		*mcp.CallToolResult, any, error,
	) {
		if err := deps.Strike.Skip(ctx); err != nil {
			if errors.Is(err, service.ErrNoActivePair) {
				return ErrorResult("No active pair", "Draw a pair first with draw_pair"), nil, nil
			}
			deps.Logger.Error("skip failed", "error", err)
			return ErrorResult("Skip failed", "Database may be unavailable"), nil, nil
		}

		deps.Logger.Info("pair skipped")
		return TextResult("Pair skipped"), nil, nil
	}
}
