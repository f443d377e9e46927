package tools

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// resultText unwraps the single text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

// discardDeps builds dependencies that only log, for handlers whose
// validation path never reaches the services.
func discardDeps() *Dependencies {
	return &Dependencies{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestErrorResult(t *testing.T) {
	result := ErrorResult("Something broke", "Try again")
	if !result.IsError {
		t.Error("expected IsError to be true")
	}
	if got := resultText(t, result); got != "Something broke. Try again" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestErrorResultWithoutHint(t *testing.T) {
	result := ErrorResult("Something broke", "")
	if got := resultText(t, result); got != "Something broke" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestTextResult(t *testing.T) {
	result := TextResult("done")
	if result.IsError {
		t.Error("expected IsError to be false")
	}
	if got := resultText(t, result); got != "done" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestJSONResult(t *testing.T) {
	result := JSONResult(map[string]int{"notes": 3})
	if result.IsError {
		t.Error("expected IsError to be false")
	}
	if got := resultText(t, result); !strings.Contains(got, "\"notes\": 3") {
		t.Errorf("expected indented JSON, got %q", got)
	}
}
