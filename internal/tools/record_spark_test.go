package tools

import (
	"context"
	"strings"
	"testing"
)

func TestRecordSparkRejectsEmptyReflection(t *testing.T) {
	handler := NewRecordSparkHandler(discardDeps())

	for _, reflection := range []string{"", "   ", "\n\t"} {
		result, _, err := handler(context.Background(), nil, RecordSparkInput{Reflection: reflection})
		if err != nil {
			t.Fatalf("reflection %q: unexpected error: %v", reflection, err)
		}
		if !result.IsError {
			t.Errorf("reflection %q: expected error result", reflection)
		}
		if text := resultText(t, result); !strings.Contains(text, "Reflection cannot be empty") {
			t.Errorf("reflection %q: unexpected message %q", reflection, text)
		}
	}
}
