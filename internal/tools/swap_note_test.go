package tools

import (
	"context"
	"strings"
	"testing"
)

func TestSwapNoteRejectsBadSlot(t *testing.T) {
	handler := NewSwapNoteHandler(discardDeps())

	for _, slot := range []string{"", "c", "ab"} {
		result, _, err := handler(context.Background(), nil, SwapNoteInput{Slot: slot})
		if err != nil {
			t.Fatalf("slot %q: unexpected error: %v", slot, err)
		}
		if !result.IsError {
			t.Errorf("slot %q: expected error result", slot)
		}
		if text := resultText(t, result); !strings.Contains(text, "Slot must be") {
			t.Errorf("slot %q: unexpected message %q", slot, text)
		}
	}
}
