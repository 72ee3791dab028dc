package model

import (
	"fmt"
	"maps"
	"slices"
)

// Clone returns a deep copy of the conversation. State updates are applied to a
// clone and then swapped in whole, so readers never see a half-applied change.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = make([]Message, len(c.Messages))
	for i, m := range c.Messages {
		out.Messages[i] = m.clone()
	}
	out.PendingMessages = slices.Clone(c.PendingMessages)
	if c.PendingQuote != nil {
		q := *c.PendingQuote
		out.PendingQuote = &q
	}
	out.Settings.MemorySnippets = slices.Clone(c.Settings.MemorySnippets)
	out.Settings.Colors = maps.Clone(c.Settings.Colors)
	return out
}

func (m Message) clone() Message {
	if m.Quote != nil {
		q := *m.Quote
		m.Quote = &q
	}
	return m
}

// IndexOf returns the position of the message with the given id, or -1.
func (c *Conversation) IndexOf(messageID string) int {
	for i := range c.Messages {
		if c.Messages[i].ID == messageID {
			return i
		}
	}
	return -1
}

// AssistantRunStart walks back from index i to the first message of the
// uninterrupted assistant block containing it.
func (c *Conversation) AssistantRunStart(i int) int {
	for i > 0 && c.Messages[i-1].Role == RoleAssistant {
		i--
	}
	return i
}

// NextTimestamp returns a timestamp not earlier than now and strictly after
// every timestamp the conversation has handed out, including those of
// messages that were deleted since.
func (c *Conversation) NextTimestamp(nowMillis int64) int64 {
	latest := c.LatestTimestamp
	if n := len(c.Messages); n > 0 {
		latest = max(latest, c.Messages[n-1].Timestamp)
	}
	if nowMillis <= latest {
		return latest + 1
	}
	return nowMillis
}

// Append adds messages to the history and refreshes the preview fields.
func (c *Conversation) Append(msgs ...Message) {
	c.Messages = append(c.Messages, msgs...)
	for _, m := range msgs {
		c.LatestTimestamp = max(c.LatestTimestamp, m.Timestamp)
	}
	c.RefreshPreview()
}

// RefreshPreview recomputes LastMessage and LastTime from the tail of the history.
func (c *Conversation) RefreshPreview() {
	if len(c.Messages) == 0 {
		c.LastMessage = ""
		return
	}
	last := c.Messages[len(c.Messages)-1]
	c.LastMessage = last.Content
	c.LastTime = last.Timestamp
}

// RemoveMessages deletes every message whose id is in ids and reports how many
// were removed. Surviving messages are left untouched.
func (c *Conversation) RemoveMessages(ids ...string) int {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	before := len(c.Messages)
	c.Messages = slices.DeleteFunc(c.Messages, func(m Message) bool {
		_, ok := drop[m.ID]
		return ok
	})
	removed := before - len(c.Messages)
	if removed > 0 {
		c.RefreshPreview()
	}
	return removed
}

// Truncate keeps only the first n messages.
func (c *Conversation) Truncate(n int) {
	c.Messages = c.Messages[:n]
	c.RefreshPreview()
}

// MessageID builds a time-derived message id. The offset keeps ids unique and
// ordered for messages created in the same millisecond.
func MessageID(timestamp int64, offset int) string {
	return fmt.Sprintf("msg_%d_%d", timestamp, offset)
}

// FindConversation returns the index of the conversation with the given id, or -1.
func (s *AppState) FindConversation(id string) int {
	for i := range s.Conversations {
		if s.Conversations[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCharacter returns the character with the given id.
func (s *AppState) FindCharacter(id string) (Character, bool) {
	for _, ch := range s.Characters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Character{}, false
}
