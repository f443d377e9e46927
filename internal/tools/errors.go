package tools

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrorResult creates a tool error result with an optional recovery
// hint, formatted as "{msg}. {hint}". Returns IsError=true so the
// calling model can see the error and self-correct.
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// JSONResult marshals v with indentation into a success result.
func JSONResult(v any) *mcp.CallToolResult {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("Failed to encode result", "")
	}
	return TextResult(string(jsonBytes))
}
