package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Babyaovo/Yaouo-sub000/internal/llm"
	"github.com/Babyaovo/Yaouo-sub000/internal/metrics"
	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

// SummaryTemperature is used for every summarization call regardless of the
// conversation's own sampling temperature.
const SummaryTemperature = 0.3

var errEmptySummary = errors.New("summary completion returned no text")

// MemoryService rolls recent history into a conversation's core memory.
type MemoryService struct {
	llm      llm.LLMProvider
	settings SettingsProvider
	metrics  *metrics.Metrics
}

// NewMemoryService creates a new MemoryService. m may be nil.
func NewMemoryService(llmProvider llm.LLMProvider, settings SettingsProvider, m *metrics.Metrics) *MemoryService {
	return &MemoryService{llm: llmProvider, settings: settings, metrics: m}
}

// ShouldSummarize reports whether the history has just reached a summary point:
// the message count is a positive multiple of memoryInterval*2, the last message
// was written by the assistant and a summary prompt is configured.
func ShouldSummarize(conv *model.Conversation) bool {
	interval := conv.Settings.MemoryInterval
	n := len(conv.Messages)
	if interval <= 0 || n == 0 || strings.TrimSpace(conv.Settings.SummaryPrompt) == "" {
		return false
	}
	return n%(interval*2) == 0 && conv.Messages[n-1].Role == model.RoleAssistant
}

// Summarize asks the model for an updated core memory covering the last
// memoryInterval*2 messages. It never touches the conversation itself.
func (s *MemoryService) Summarize(ctx context.Context, conv model.Conversation) (string, error) {
	summary, err := s.summarize(ctx, conv)
	if err != nil {
		s.observe(metrics.OutcomeFailure)
		return "", err
	}
	s.observe(metrics.OutcomeSuccess)
	return summary, nil
}

func (s *MemoryService) summarize(ctx context.Context, conv model.Conversation) (string, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("could not load settings: %w", err)
	}

	window := conv.Settings.MemoryInterval * 2
	recent := conv.Messages
	if window > 0 && len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	slog.Debug("Summarizing conversation", "conversation_id", conv.ID, "messages", len(recent))

	text, err := s.llm.Complete(ctx, &llm.CompletionRequest{
		Credentials: settings.Credentials(),
		Model:       settings.Model,
		Messages: []llm.Message{
			{Role: "system", Content: conv.Settings.SummaryPrompt},
			{Role: "user", Content: summaryInput(conv.Settings.CoreMemory, recent, conv.Name, settings.UserName)},
		},
		Temperature: SummaryTemperature,
	})
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptySummary
	}
	return text, nil
}

func (s *MemoryService) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.SummariesTotal.WithLabelValues(outcome).Inc()
	}
}

func summaryInput(coreMemory string, recent []model.Message, characterName, userName string) string {
	if characterName == "" {
		characterName = "Assistant"
	}
	if userName == "" {
		userName = "User"
	}

	var b strings.Builder
	b.WriteString("Existing core memory:\n")
	if mem := strings.TrimSpace(coreMemory); mem != "" {
		b.WriteString(mem)
	} else {
		b.WriteString("(none)")
	}
	b.WriteString("\n\nRecent conversation:\n")
	for _, m := range recent {
		if m.IsError || m.IsPlaceholder {
			continue
		}
		speaker := userName
		if m.Role == model.RoleAssistant {
			speaker = characterName
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
