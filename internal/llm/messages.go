package llm

import (
	"fmt"

	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

// BuildMessages prepends the system prompt to the most recent contextRounds*2
// history entries. contextRounds <= 0 sends the whole history.
func BuildMessages(systemPrompt string, history []model.Message, contextRounds int) []Message {
	if limit := contextRounds * 2; contextRounds > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	out := make([]Message, 0, len(history)+1)
	out = append(out, Message{Role: "system", Content: systemPrompt})
	for _, m := range history {
		out = append(out, Message{Role: string(m.Role), Content: historyContent(m)})
	}
	return out
}

// historyContent inlines a quoted message so the model sees what was referenced.
func historyContent(m model.Message) string {
	if m.Quote == nil {
		return m.Content
	}
	return fmt.Sprintf("[Quoting %s: %s]\n%s", m.Quote.Role, m.Quote.Content, m.Content)
}
