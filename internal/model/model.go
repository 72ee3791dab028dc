package model

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMode selects the rule block that governs the shape of assistant replies.
type ChatMode string

const (
	// ChatModeMessage allows dialogue only.
	ChatModeMessage ChatMode = "message"
	// ChatModeImmersion allows parenthetical action descriptions.
	ChatModeImmersion ChatMode = "immersion"
	// ChatModeFree behaves like immersion for prompt composition.
	ChatModeFree ChatMode = "free"
)

// ChatModes lists the known chat modes in display order.
var ChatModes = []ChatMode{ChatModeMessage, ChatModeImmersion, ChatModeFree}

// Valid reports whether m is one of the known chat modes.
func (m ChatMode) Valid() bool {
	switch m {
	case ChatModeMessage, ChatModeImmersion, ChatModeFree:
		return true
	}
	return false
}

// Quote is a shallow snapshot of another message taken at quote time.
type Quote struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Message is one bubble of a conversation.
// ID and Timestamp never change after the message is appended.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds, monotonic within a conversation.
	Avatar    string `json:"avatar,omitempty"`
	Quote     *Quote `json:"quote,omitempty"`
	IsError   bool   `json:"isError,omitempty"`
	// IsPlaceholder marks filler content inserted for an empty completion.
	IsPlaceholder bool `json:"isPlaceholder,omitempty"`
}

// MemorySnippet is a user-curated memory entry; only active ones reach the prompt.
type MemorySnippet struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Active  bool   `json:"active"`
}

// Settings is the per-conversation configuration.
type Settings struct {
	ContextRounds  int             `json:"contextRounds" validate:"gte=0"`
	Temperature    float64         `json:"temperature" validate:"gte=0,lte=2"`
	ChatMode       ChatMode        `json:"chatMode" validate:"chatmode"`
	CoreMemory     string          `json:"coreMemory"`
	MemoryInterval int             `json:"memoryInterval" validate:"gte=0"`
	SummaryPrompt  string          `json:"summaryPrompt,omitempty"`
	MemorySnippets []MemorySnippet `json:"memorySnippets,omitempty"`

	ShowUserAvatar      bool              `json:"showUserAvatar"`
	ShowCharacterAvatar bool              `json:"showCharacterAvatar"`
	HeaderMode          string            `json:"headerMode,omitempty"`
	Colors              map[string]string `json:"colors,omitempty"`
}

// DefaultSettings returns the settings a new conversation starts with.
func DefaultSettings() Settings {
	return Settings{
		ContextRounds:       10,
		Temperature:         0.8,
		ChatMode:            ChatModeMessage,
		MemoryInterval:      10,
		ShowUserAvatar:      true,
		ShowCharacterAvatar: true,
	}
}

// ActiveSnippets returns the content of every active memory snippet, in order.
func (s Settings) ActiveSnippets() []string {
	var out []string
	for _, sn := range s.MemorySnippets {
		if sn.Active && sn.Content != "" {
			out = append(out, sn.Content)
		}
	}
	return out
}

// Character is owned by the surrounding UI. The engine reads it, never writes it.
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Avatar      string `json:"avatar,omitempty"`
	Definition  string `json:"definition"`
	Language    string `json:"language,omitempty"`
	UserPersona string `json:"userPersona,omitempty"`

	APIPermissions map[string]bool `json:"apiPermissions,omitempty"`
}

// UserProfile is the narrow view of the user the composer needs.
type UserProfile struct {
	Name         string `json:"name"`
	Avatar       string `json:"avatar,omitempty"`
	Persona      string `json:"persona,omitempty"`
	BaseLanguage string `json:"baseLanguage"`
}

// Conversation is one ongoing exchange with one character.
type Conversation struct {
	ID          string `json:"id"`
	CharacterID string `json:"characterId"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar,omitempty"`

	Messages        []Message `json:"messages"`
	PendingMessages []string  `json:"pendingMessages"`
	PendingQuote    *Quote    `json:"pendingQuote,omitempty"`

	LastMessage string `json:"lastMessage"`
	LastTime    int64  `json:"lastTime"`
	// LatestTimestamp is the largest message timestamp ever assigned. Deleting
	// or truncating messages never lowers it.
	LatestTimestamp int64    `json:"latestTimestamp,omitempty"`
	Wallpaper       string   `json:"wallpaper,omitempty"`
	Settings        Settings `json:"settings"`
}

// AppState is the whole persisted application state.
type AppState struct {
	Conversations []Conversation `json:"conversations"`
	Characters    []Character    `json:"characters"`
}

// StreamEvent is a single event sent to a client while a send is in flight.
type StreamEvent struct {
	Message *Message `json:"message,omitempty"`
	Done    bool     `json:"done,omitempty"`
	Error   string   `json:"error,omitempty"`
}
