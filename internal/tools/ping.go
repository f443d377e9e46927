package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PingInput defines the input schema for the ping tool.
type PingInput struct {
	Echo string `json:"echo,omitempty" jsonschema:"Text to echo back"`
}

// NewPingHandler creates the ping tool handler, a health check that
// responds with "pong" or echoes its input.
func NewPingHandler(deps *Dependencies) mcp.ToolHandlerFor[PingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, any, error) {
		if deps != nil && deps.Logger != nil {
			deps.Logger.Debug("ping tool called", "echo", input.Echo)
		}

		if input.Echo != "" {
			return TextResult(input.Echo), nil, nil
		}
		return TextResult("pong"), nil, nil
	}
}
