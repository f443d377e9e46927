package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nfriedel/flint/internal/draw"
)

// SwapNoteInput defines the input schema for the swap_note tool.
type SwapNoteInput struct {
	Slot       string `json:"slot" jsonschema:"required,Which side to swap: a or b"`
	WithPrompt bool   `json:"with_prompt,omitempty" jsonschema:"Include a reflective question for the new pair"`
}

// NewSwapNoteHandler creates the swap_note tool handler. Replaces one
// side of the displayed pair, the other side stays.
func NewSwapNoteHandler(deps *Dependencies) mcp.ToolHandlerFor[SwapNoteInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SwapNoteInput) (
		*mcp.CallToolResult, any, error,
	) {
		slot, ok := draw.ParseSlot(input.Slot)
		if !ok {
			return ErrorResult("Slot must be 'a' or 'b'", "Pass slot 'a' for the first note, 'b' for the second"), nil, nil
		}

		pair, ok, err := deps.Strike.Swap(ctx, slot)
		if err != nil {
			deps.Logger.Error("swap failed", "slot", input.Slot, "error", err)
			return ErrorResult("Swap failed", "Database may be unavailable"), nil, nil
		}
		if !ok {
			return ErrorResult(
				"No replacement available",
				"Draw a pair first with draw_pair, or record outcomes so recent notes rotate out",
			), nil, nil
		}

		prompt := ""
		if input.WithPrompt {
			if p, promptErr := deps.Strike.PairPrompt(ctx); promptErr == nil {
				prompt = p
			}
		}

		deps.Logger.Info("note swapped", "slot", input.Slot, "note_a", pair.A.Path, "note_b", pair.B.Path)
		return pairResult(pair, prompt), nil, nil
	}
}
