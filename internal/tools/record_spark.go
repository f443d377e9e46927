package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nfriedel/flint/internal/service"
)

// RecordSparkInput defines the input schema for the record_spark tool.
type RecordSparkInput struct {
	Reflection string `json:"reflection" jsonschema:"required,The reflection text connecting the two notes"`
}

// sparkPayload reports where the spark note landed.
type sparkPayload struct {
	Spark string `json:"spark"`
}

// NewRecordSparkHandler creates the record_spark tool handler. Writes
// the reflection as a new note linked to both sources and consumes the
// displayed pair.
func NewRecordSparkHandler(deps *Dependencies) mcp.ToolHandlerFor[RecordSparkInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecordSparkInput) (
		*mcp.CallToolResult, any, error,
	) {
		if strings.TrimSpace(input.Reflection) == "" {
			return ErrorResult("Reflection cannot be empty", "Provide the insight connecting the two notes"), nil, nil
		}

		sparkPath, err := deps.Strike.RecordSpark(ctx, input.Reflection)
		if err != nil {
			if errors.Is(err, service.ErrNoActivePair) {
				return ErrorResult("No active pair", "Draw a pair first with draw_pair"), nil, nil
			}
			deps.Logger.Error("spark write failed", "error", err)
			return ErrorResult("Failed to write spark note", "Check the vault is writable"), nil, nil
		}

		deps.Logger.Info("spark recorded", "spark", sparkPath)
		return JSONResult(sparkPayload{Spark: sparkPath}), nil, nil
	}
}
