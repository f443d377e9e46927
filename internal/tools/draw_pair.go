package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nfriedel/flint/internal/service"
)

// DrawPairInput defines the input schema for the draw_pair tool.
type DrawPairInput struct {
	Weighted   *bool `json:"weighted,omitempty" jsonschema:"Bias selection toward sparsely linked notes (persisted as the session preference)"`
	WithPrompt bool  `json:"with_prompt,omitempty" jsonschema:"Include a reflective question for the pair"`
}

// pairNote is one side of a pair in tool output.
type pairNote struct {
	Path      string `json:"path"`
	Title     string `json:"title"`
	Relations int    `json:"relations"`
}

// pairPayload is the JSON shape returned by pair-producing tools.
type pairPayload struct {
	NoteA  pairNote `json:"note_a"`
	NoteB  pairNote `json:"note_b"`
	Prompt string   `json:"prompt,omitempty"`
}

func pairResult(pair *service.Pair, prompt string) *mcp.CallToolResult {
	return JSONResult(pairPayload{
		NoteA:  pairNote{Path: pair.A.Path, Title: pair.A.Title, Relations: pair.A.Relations},
		NoteB:  pairNote{Path: pair.B.Path, Title: pair.B.Title, Relations: pair.B.Relations},
		Prompt: prompt,
	})
}

// NewDrawPairHandler creates the draw_pair tool handler. Draws a fresh
// pair of notes, excluding the displayed pair and recent history.
func NewDrawPairHandler(deps *Dependencies) mcp.ToolHandlerFor[DrawPairInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DrawPairInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Weighted != nil {
			if err := deps.Strike.SetWeighted(ctx, *input.Weighted); err != nil {
				deps.Logger.Error("weighting update failed", "error", err)
				return ErrorResult("Failed to update weighting", "Database may be unavailable"), nil, nil
			}
		}

		pair, ok, err := deps.Strike.Draw(ctx)
		if err != nil {
			deps.Logger.Error("draw failed", "error", err)
			return ErrorResult("Draw failed", "Database may be unavailable"), nil, nil
		}
		if !ok {
			return ErrorResult(
				"No candidates available",
				"Index notes with 'flint scan', or record outcomes so recent notes rotate out",
			), nil, nil
		}

		prompt := ""
		if input.WithPrompt {
			if p, promptErr := deps.Strike.PairPrompt(ctx); promptErr == nil {
				prompt = p
			}
		}

		deps.Logger.Info("pair drawn", "note_a", pair.A.Path, "note_b", pair.B.Path)
		return pairResult(pair, prompt), nil, nil
	}
}
