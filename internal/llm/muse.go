// Package llm provides the muse, an optional local-model companion that
// turns a drawn pair into a reflective question.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/nfriedel/flint/internal/config"
	"github.com/nfriedel/flint/internal/metrics"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// NoteRef carries what the muse sees of a note.
type NoteRef struct {
	Title   string
	Excerpt string
}

// Muse wraps a local ollama model that proposes a connecting question
// for a pair of notes.
type Muse struct {
	llm       llms.Model
	modelName string
	collector *metrics.Collector
}

// NewMuse creates a muse backed by the configured ollama model.
// The collector may be nil.
func NewMuse(cfg config.Config, collector *metrics.Collector) (*Muse, error) {
	opts := []ollama.Option{ollama.WithModel(cfg.MuseModel)}
	if cfg.OllamaHost != "" {
		opts = append(opts, ollama.WithServerURL(cfg.OllamaHost))
	}

	model, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama model: %w", err)
	}

	return &Muse{
		llm:       model,
		modelName: cfg.MuseModel,
		collector: collector,
	}, nil
}

// Model returns the muse model name.
func (m *Muse) Model() string {
	return m.modelName
}

const museSystemPrompt = `You are a writing companion for a note-taking practice.
Given two notes from the same vault, ask ONE short question that provokes the
writer to connect them. Reply with the question only, no preamble.`

// Prompt asks the model for a question connecting the two notes.
// Callers should fall back to StaticPrompt when this fails, the muse is
// best effort.
func (m *Muse) Prompt(ctx context.Context, a, b NoteRef) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, museSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, musePrompt(a, b)),
	}

	start := time.Now()
	response, err := m.llm.GenerateContent(ctx, messages)
	duration := time.Since(start)

	if err != nil {
		slog.Warn("muse generation failed", "model", m.modelName, "duration_ms", duration.Milliseconds(), "error", err)
		return "", fmt.Errorf("muse prompt: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("muse prompt: no response choices")
	}

	choice := response.Choices[0]
	if m.collector != nil {
		in, out := tokenUsage(choice.GenerationInfo)
		m.collector.RecordLLMUsage(metrics.OpMuse, duration, in, out)
	}

	question := cleanResponse(choice.Content)
	if question == "" {
		return "", fmt.Errorf("muse prompt: empty response")
	}

	slog.Debug("muse question generated", "model", m.modelName, "duration_ms", duration.Milliseconds())
	return question, nil
}

// musePrompt renders the user message for a pair.
func musePrompt(a, b NoteRef) string {
	var sb strings.Builder
	sb.WriteString("Note one: ")
	sb.WriteString(a.Title)
	if a.Excerpt != "" {
		sb.WriteString("\n")
		sb.WriteString(a.Excerpt)
	}
	sb.WriteString("\n\nNote two: ")
	sb.WriteString(b.Title)
	if b.Excerpt != "" {
		sb.WriteString("\n")
		sb.WriteString(b.Excerpt)
	}
	sb.WriteString("\n\nYour question:")
	return sb.String()
}

// cleanResponse flattens a model reply into a single trimmed line and
// strips wrapping quotes.
func cleanResponse(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// tokenUsage pulls token counts out of langchaingo's provider-specific
// generation info. Missing keys count as zero.
func tokenUsage(info map[string]any) (int64, int64) {
	return infoTokens(info, "PromptTokens"), infoTokens(info, "CompletionTokens")
}

func infoTokens(info map[string]any, key string) int64 {
	if info == nil {
		return 0
	}
	switch v := info[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// staticPrompts serve when the muse is disabled or unreachable.
var staticPrompts = []string{
	"What hidden thread connects these two notes?",
	"If these two ideas argued, what would each accuse the other of missing?",
	"What would a third note need to say to sit between these two?",
	"Which of these ideas is upstream of the other, and why?",
	"What problem could you only solve by using both of these at once?",
}

// StaticPrompt picks a canned reflective question. Deterministic under a
// seeded rand.
func StaticPrompt(rng *rand.Rand) string {
	return staticPrompts[rng.Intn(len(staticPrompts))]
}
