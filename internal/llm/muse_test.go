package llm

import (
	"math/rand"
	"strings"
	"testing"
)

func TestMusePrompt(t *testing.T) {
	a := NoteRef{Title: "Slow thinking", Excerpt: "Deliberate reasoning is expensive."}
	b := NoteRef{Title: "Checklists"}

	prompt := musePrompt(a, b)

	if !strings.Contains(prompt, "Note one: Slow thinking") {
		t.Errorf("prompt missing first title: %q", prompt)
	}
	if !strings.Contains(prompt, "Deliberate reasoning is expensive.") {
		t.Errorf("prompt missing excerpt: %q", prompt)
	}
	if !strings.Contains(prompt, "Note two: Checklists") {
		t.Errorf("prompt missing second title: %q", prompt)
	}
	if strings.Index(prompt, "Note one:") > strings.Index(prompt, "Note two:") {
		t.Error("notes should appear in slot order")
	}
	if !strings.HasSuffix(prompt, "Your question:") {
		t.Errorf("prompt should end with the question cue: %q", prompt)
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "What links these?", "What links these?"},
		{"surrounding whitespace", "  What links these?\n", "What links these?"},
		{"multiline collapsed", "What links\nthese two\nnotes?", "What links these two notes?"},
		{"wrapping quotes stripped", `"What links these?"`, "What links these?"},
		{"inner quotes kept", `Why call it "deep work"?`, `Why call it "deep work"?`},
		{"empty", "   \n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanResponse(tt.in); got != tt.want {
				t.Errorf("cleanResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenUsage(t *testing.T) {
	in, out := tokenUsage(map[string]any{"PromptTokens": 120, "CompletionTokens": 18})
	if in != 120 || out != 18 {
		t.Errorf("tokenUsage = (%d, %d), want (120, 18)", in, out)
	}

	in, out = tokenUsage(nil)
	if in != 0 || out != 0 {
		t.Errorf("tokenUsage(nil) = (%d, %d), want zeros", in, out)
	}

	in, _ = tokenUsage(map[string]any{"PromptTokens": "not-a-number"})
	if in != 0 {
		t.Errorf("non-numeric token count should read as 0, got %d", in)
	}
}

func TestStaticPrompt(t *testing.T) {
	first := StaticPrompt(rand.New(rand.NewSource(7)))
	second := StaticPrompt(rand.New(rand.NewSource(7)))
	if first != second {
		t.Errorf("same seed should pick the same prompt: %q vs %q", first, second)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		prompt := StaticPrompt(rng)
		found := false
		for _, p := range staticPrompts {
			if prompt == p {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("StaticPrompt returned %q, not in the canned list", prompt)
		}
	}
}
