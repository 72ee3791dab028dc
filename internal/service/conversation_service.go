package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	app_errors "github.com/Babyaovo/Yaouo-sub000/internal/errors"
	"github.com/Babyaovo/Yaouo-sub000/internal/llm"
	"github.com/Babyaovo/Yaouo-sub000/internal/metrics"
	"github.com/Babyaovo/Yaouo-sub000/internal/model"
	"github.com/Babyaovo/Yaouo-sub000/internal/prompt"
	"github.com/Babyaovo/Yaouo-sub000/internal/reply"
	"github.com/Babyaovo/Yaouo-sub000/internal/repository"
)

const (
	// DefaultBubbleDelay is the pause between two assistant bubbles of one reply.
	DefaultBubbleDelay = 800 * time.Millisecond

	// PlaceholderContent stands in for a completion that carried no text.
	PlaceholderContent = "..."

	NoticeConfigurationMissing = "The API address or key is not set. Open Settings and fill them in before chatting."
	NoticeSendFailed           = "Message failed to send. Check your network or API settings and try again."
)

// Option configures a ConversationService.
type Option func(*ConversationService)

// WithBubbleDelay overrides the pause between bubbles.
func WithBubbleDelay(d time.Duration) Option {
	return func(s *ConversationService) { s.bubbleDelay = d }
}

// WithSleep replaces time.Sleep, mostly for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *ConversationService) { s.sleep = sleep }
}

// WithAsync replaces the runner used for background summarization.
func WithAsync(async func(func())) Option {
	return func(s *ConversationService) { s.async = async }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ConversationService) { s.now = now }
}

// WithMetrics attaches Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ConversationService) { s.metrics = m }
}

// ConversationService owns the in-memory application state and runs the send
// pipeline. Every change is applied to a copy of the affected conversation,
// swapped in whole and then persisted.
type ConversationService struct {
	store    repository.StateStore
	llm      llm.LLMProvider
	settings SettingsProvider
	memory   *MemoryService
	metrics  *metrics.Metrics

	bubbleDelay time.Duration
	sleep       func(time.Duration)
	async       func(func())
	now         func() time.Time

	mu         sync.Mutex
	state      *model.AppState
	busy       map[string]bool
	generation uint64

	// saveMu serializes writes to the store; saved is the newest generation
	// handed to it.
	saveMu sync.Mutex
	saved  uint64
}

// NewConversationService creates the engine around an already loaded state.
// A nil initial state starts empty; a nil memory disables summarization.
func NewConversationService(
	store repository.StateStore,
	llmProvider llm.LLMProvider,
	settings SettingsProvider,
	memory *MemoryService,
	initial *model.AppState,
	opts ...Option,
) *ConversationService {
	if initial == nil {
		initial = &model.AppState{}
	}
	s := &ConversationService{
		store:       store,
		llm:         llmProvider,
		settings:    settings,
		memory:      memory,
		bubbleDelay: DefaultBubbleDelay,
		sleep:       time.Sleep,
		async:       func(fn func()) { go fn() },
		now:         time.Now,
		state:       initial,
		busy:        make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.NewRegistry())
	}
	return s
}

// ListConversations returns a snapshot of every conversation.
func (s *ConversationService) ListConversations(ctx context.Context) []model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Conversation, len(s.state.Conversations))
	for i, c := range s.state.Conversations {
		out[i] = c.Clone()
	}
	return out
}

// GetConversation returns a snapshot of one conversation.
func (s *ConversationService) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.FindConversation(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, id)
	}
	conv := s.state.Conversations[idx].Clone()
	return &conv, nil
}

// CreateConversation opens the conversation with a character, creating it with
// default settings when none exists yet.
func (s *ConversationService) CreateConversation(ctx context.Context, characterID string) (*model.Conversation, error) {
	var conv model.Conversation
	created := false
	err := s.apply(ctx, func(state *model.AppState) (*model.AppState, error) {
		character, ok := state.FindCharacter(characterID)
		if !ok {
			return nil, fmt.Errorf("%w: character %s", app_errors.ErrNotFound, characterID)
		}
		for _, c := range state.Conversations {
			if c.CharacterID == characterID {
				conv = c.Clone()
				return nil, nil
			}
		}

		conv = model.Conversation{
			ID:              uuid.NewString(),
			CharacterID:     character.ID,
			Name:            character.Name,
			Avatar:          character.Avatar,
			Messages:        []model.Message{},
			PendingMessages: []string{},
			LastTime:        s.now().UnixMilli(),
			Settings:        model.DefaultSettings(),
		}
		created = true

		next := *state
		next.Conversations = append(slices.Clone(state.Conversations), conv)
		return &next, nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		slog.Info("Created conversation", "conversation_id", conv.ID, "character_id", characterID)
	}
	out := conv.Clone()
	return &out, nil
}

// DeleteConversation removes a conversation and its history.
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	err := s.apply(ctx, func(state *model.AppState) (*model.AppState, error) {
		idx := state.FindConversation(id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, id)
		}
		next := *state
		next.Conversations = slices.Delete(slices.Clone(state.Conversations), idx, idx+1)
		return &next, nil
	})
	if err != nil {
		return err
	}

	slog.Info("Deleted conversation", "conversation_id", id)
	return nil
}

// UpdateConversationSettings replaces a conversation's settings.
func (s *ConversationService) UpdateConversationSettings(ctx context.Context, id string, settings model.Settings) (*model.Conversation, error) {
	if !settings.ChatMode.Valid() {
		return nil, fmt.Errorf("%w: unknown chat mode %q", app_errors.ErrValidation, settings.ChatMode)
	}
	if settings.Temperature < 0 || settings.Temperature > 2 || settings.ContextRounds < 0 || settings.MemoryInterval < 0 {
		return nil, fmt.Errorf("%w: settings out of range", app_errors.ErrValidation)
	}
	return s.update(ctx, id, func(c *model.Conversation) error {
		c.Settings = settings
		return nil
	})
}

// ListCharacters returns every stored character.
func (s *ConversationService) ListCharacters(ctx context.Context) []model.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Characters)
}

// UpsertCharacter stores a character and refreshes the cached name and avatar
// of its conversation. Messages keep the avatar they were written with.
func (s *ConversationService) UpsertCharacter(ctx context.Context, character model.Character) (*model.Character, error) {
	if strings.TrimSpace(character.Name) == "" {
		return nil, fmt.Errorf("%w: character name is required", app_errors.ErrValidation)
	}
	if character.ID == "" {
		character.ID = uuid.NewString()
	}

	err := s.apply(ctx, func(state *model.AppState) (*model.AppState, error) {
		next := *state
		next.Characters = slices.Clone(state.Characters)
		if i := slices.IndexFunc(next.Characters, func(ch model.Character) bool { return ch.ID == character.ID }); i >= 0 {
			next.Characters[i] = character
		} else {
			next.Characters = append(next.Characters, character)
		}

		next.Conversations = slices.Clone(state.Conversations)
		for i, c := range next.Conversations {
			if c.CharacterID == character.ID {
				c.Name = character.Name
				c.Avatar = character.Avatar
				next.Conversations[i] = c
			}
		}
		return &next, nil
	})
	if err != nil {
		return nil, err
	}
	return &character, nil
}

// Stage queues a draft for the next send. Blank drafts are rejected.
func (s *ConversationService) Stage(ctx context.Context, id, text string) (*model.Conversation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: draft is blank", app_errors.ErrValidation)
	}
	return s.update(ctx, id, func(c *model.Conversation) error {
		c.PendingMessages = append(c.PendingMessages, text)
		return nil
	})
}

// Unstage removes the draft at index.
func (s *ConversationService) Unstage(ctx context.Context, id string, index int) (*model.Conversation, error) {
	return s.update(ctx, id, func(c *model.Conversation) error {
		if index < 0 || index >= len(c.PendingMessages) {
			return fmt.Errorf("%w: no draft at index %d", app_errors.ErrValidation, index)
		}
		c.PendingMessages = slices.Delete(c.PendingMessages, index, index+1)
		return nil
	})
}

// Quote stages a snapshot of a message for the next send.
func (s *ConversationService) Quote(ctx context.Context, id, messageID string) (*model.Conversation, error) {
	return s.update(ctx, id, func(c *model.Conversation) error {
		idx := c.IndexOf(messageID)
		if idx < 0 {
			return fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
		}
		c.PendingQuote = &model.Quote{Role: c.Messages[idx].Role, Content: c.Messages[idx].Content}
		return nil
	})
}

// ClearQuote discards the staged quote.
func (s *ConversationService) ClearQuote(ctx context.Context, id string) (*model.Conversation, error) {
	return s.update(ctx, id, func(c *model.Conversation) error {
		c.PendingQuote = nil
		return nil
	})
}

// EditMessage rewrites a message's content. Blank content leaves it unchanged.
func (s *ConversationService) EditMessage(ctx context.Context, id, messageID, content string) (*model.Conversation, error) {
	if strings.TrimSpace(content) == "" {
		return s.GetConversation(ctx, id)
	}
	return s.update(ctx, id, func(c *model.Conversation) error {
		idx := c.IndexOf(messageID)
		if idx < 0 {
			return fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
		}
		c.Messages[idx].Content = content
		c.RefreshPreview()
		return nil
	})
}

// DeleteMessage removes one message.
func (s *ConversationService) DeleteMessage(ctx context.Context, id, messageID string) (*model.Conversation, error) {
	return s.update(ctx, id, func(c *model.Conversation) error {
		if c.RemoveMessages(messageID) == 0 {
			return fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
		}
		return nil
	})
}

// DeleteMessages removes every listed message. Unknown ids are ignored.
func (s *ConversationService) DeleteMessages(ctx context.Context, id string, messageIDs []string) (*model.Conversation, error) {
	if len(messageIDs) == 0 {
		return nil, fmt.Errorf("%w: no messages selected", app_errors.ErrValidation)
	}
	return s.update(ctx, id, func(c *model.Conversation) error {
		removed := c.RemoveMessages(messageIDs...)
		slog.Info("Deleted messages", "conversation_id", id, "requested", len(messageIDs), "removed", removed)
		return nil
	})
}

// Translation splits a stored message into its original and translated parts.
func (s *ConversationService) Translation(ctx context.Context, id, messageID string) (*reply.Translation, error) {
	conv, err := s.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := conv.IndexOf(messageID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
	}
	t := reply.ParseTranslation(conv.Messages[idx].Content)
	return &t, nil
}

// IsBusy reports whether a send or regenerate is in flight for the conversation.
func (s *ConversationService) IsBusy(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[id]
}

// SendAll turns every staged draft into a user message and asks for a reply.
// Each committed message is emitted on stream, which is closed on return.
// A conversation that is already sending is left untouched and ErrConflict is
// returned. Once the drafts are committed the pipeline ignores cancellation of
// ctx; it only stops emitting.
func (s *ConversationService) SendAll(ctx context.Context, id string, stream chan<- model.StreamEvent) error {
	if stream != nil {
		defer close(stream)
	}
	if !s.acquire(id) {
		return fmt.Errorf("%w: conversation %s is already sending", app_errors.ErrConflict, id)
	}
	defer s.release(id)

	pctx := context.WithoutCancel(ctx)
	userAvatar := ""
	if settings, err := s.settings.Get(pctx); err != nil {
		slog.Warn("Could not load settings for user avatar", "conversation_id", id, "error", err)
	} else {
		userAvatar = settings.UserAvatar
	}

	var created []model.Message
	conv, err := s.update(pctx, id, func(c *model.Conversation) error {
		if len(c.PendingMessages) == 0 {
			return fmt.Errorf("%w: nothing staged to send", app_errors.ErrValidation)
		}
		ts := c.NextTimestamp(s.now().UnixMilli())
		created = make([]model.Message, len(c.PendingMessages))
		for i, text := range c.PendingMessages {
			created[i] = model.Message{
				ID:        model.MessageID(ts, i),
				Role:      model.RoleUser,
				Content:   text,
				Timestamp: ts + int64(i),
				Avatar:    userAvatar,
			}
		}
		if c.PendingQuote != nil {
			q := *c.PendingQuote
			created[0].Quote = &q
		}
		c.Append(created...)
		c.PendingMessages = []string{}
		c.PendingQuote = nil
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Sending staged messages", "conversation_id", id, "count", len(created))
	for i := range created {
		s.emit(ctx, stream, created[i])
	}
	s.afterAppend(conv)

	s.respond(ctx, pctx, id, stream)
	return nil
}

// Regenerate drops the assistant run containing messageID and asks for a new
// reply to the history before it.
func (s *ConversationService) Regenerate(ctx context.Context, id, messageID string, stream chan<- model.StreamEvent) error {
	if stream != nil {
		defer close(stream)
	}
	if !s.acquire(id) {
		return fmt.Errorf("%w: conversation %s is already sending", app_errors.ErrConflict, id)
	}
	defer s.release(id)

	pctx := context.WithoutCancel(ctx)
	_, err := s.update(pctx, id, func(c *model.Conversation) error {
		idx := c.IndexOf(messageID)
		if idx < 0 {
			return fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
		}
		if c.Messages[idx].Role != model.RoleAssistant {
			return fmt.Errorf("%w: only assistant messages can be regenerated", app_errors.ErrValidation)
		}
		start := c.AssistantRunStart(idx)
		slog.Info("Regenerating reply", "conversation_id", id, "message_id", messageID, "removed", len(c.Messages)-start)
		c.Truncate(start)
		return nil
	})
	if err != nil {
		return err
	}

	s.respond(ctx, pctx, id, stream)
	return nil
}

// respond runs one completion against the current history and appends the
// result: one message per bubble, one error message on a fault, or a
// placeholder for an empty reply.
func (s *ConversationService) respond(streamCtx, ctx context.Context, id string, stream chan<- model.StreamEvent) {
	avatar := ""
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Send pipeline panicked", "conversation_id", id, "panic", r)
			s.appendAssistant(streamCtx, ctx, id, stream, model.Message{Content: NoticeSendFailed, IsError: true, Avatar: avatar})
		}
	}()

	conv, character, err := s.snapshot(id)
	if err != nil {
		slog.Warn("Conversation disappeared before reply", "conversation_id", id, "error", err)
		return
	}
	avatar = character.Avatar
	if avatar == "" {
		avatar = conv.Avatar
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		slog.Error("Could not load settings for send", "conversation_id", id, "error", err)
		s.appendAssistant(streamCtx, ctx, id, stream, model.Message{Content: NoticeSendFailed, IsError: true, Avatar: avatar})
		return
	}

	system := prompt.Compose(character, conv.Settings.ChatMode, conv.Settings.CoreMemory, conv.Settings.ActiveSnippets(), settings.Profile())
	req := &llm.CompletionRequest{
		Credentials: settings.Credentials(),
		Model:       settings.Model,
		Messages:    llm.BuildMessages(system, conv.Messages, conv.Settings.ContextRounds),
		Temperature: conv.Settings.Temperature,
	}

	started := s.now()
	text, err := s.llm.Complete(ctx, req)
	s.metrics.CompletionDuration.Observe(s.now().Sub(started).Seconds())

	if err != nil {
		s.metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeFault).Inc()
		notice := NoticeSendFailed
		if llm.IsConfigurationMissing(err) {
			notice = NoticeConfigurationMissing
		}
		slog.Warn("Completion failed", "conversation_id", id, "error", err)
		s.appendAssistant(streamCtx, ctx, id, stream, model.Message{Content: notice, IsError: true, Avatar: avatar})
		return
	}

	bubbles := reply.Split(text)
	if len(bubbles) == 0 {
		s.metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		slog.Warn("Completion returned no usable text, inserting placeholder", "conversation_id", id)
		s.appendAssistant(streamCtx, ctx, id, stream, model.Message{Content: PlaceholderContent, IsPlaceholder: true, Avatar: avatar})
		return
	}

	s.metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	for i, bubble := range bubbles {
		if i > 0 {
			s.sleep(s.bubbleDelay)
		}
		if !s.appendAssistant(streamCtx, ctx, id, stream, model.Message{Content: bubble, Avatar: avatar}) {
			return
		}
		s.metrics.BubblesAppended.Inc()
	}
	slog.Info("Reply appended", "conversation_id", id, "bubbles", len(bubbles))
}

// appendAssistant commits one assistant message, emits it and checks whether a
// summary is due. It reports false when the conversation no longer exists.
func (s *ConversationService) appendAssistant(streamCtx, ctx context.Context, id string, stream chan<- model.StreamEvent, msg model.Message) bool {
	conv, err := s.update(ctx, id, func(c *model.Conversation) error {
		ts := c.NextTimestamp(s.now().UnixMilli())
		msg.ID = model.MessageID(ts, 0)
		msg.Role = model.RoleAssistant
		msg.Timestamp = ts
		c.Append(msg)
		return nil
	})
	if err != nil {
		slog.Warn("Could not append reply", "conversation_id", id, "error", err)
		return false
	}
	s.emit(streamCtx, stream, conv.Messages[len(conv.Messages)-1])
	s.afterAppend(conv)
	return true
}

func (s *ConversationService) afterAppend(conv *model.Conversation) {
	if s.memory == nil || !ShouldSummarize(conv) {
		return
	}
	snapshot := conv.Clone()
	s.async(func() { s.summarize(snapshot) })
}

// summarize replaces the core memory on success. Failures are only logged.
func (s *ConversationService) summarize(conv model.Conversation) {
	ctx := context.Background()
	summary, err := s.memory.Summarize(ctx, conv)
	if err != nil {
		slog.Warn("Memory summarization failed", "conversation_id", conv.ID, "error", err)
		return
	}
	if _, err := s.update(ctx, conv.ID, func(c *model.Conversation) error {
		c.Settings.CoreMemory = summary
		return nil
	}); err != nil {
		slog.Warn("Could not store summarized memory", "conversation_id", conv.ID, "error", err)
		return
	}
	slog.Info("Core memory updated", "conversation_id", conv.ID)
}

func (s *ConversationService) emit(ctx context.Context, stream chan<- model.StreamEvent, msg model.Message) {
	if stream == nil {
		return
	}
	select {
	case stream <- model.StreamEvent{Message: &msg}:
	case <-ctx.Done():
	}
}

func (s *ConversationService) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[id] {
		s.metrics.SendsRejected.Inc()
		slog.Info("Conversation is already sending, ignoring request", "conversation_id", id)
		return false
	}
	s.busy[id] = true
	return true
}

func (s *ConversationService) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, id)
}

// snapshot returns copies of the conversation and its character. A character
// that no longer exists is rebuilt from the conversation's cached fields.
func (s *ConversationService) snapshot(id string) (model.Conversation, model.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.FindConversation(id)
	if idx < 0 {
		return model.Conversation{}, model.Character{}, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, id)
	}
	conv := s.state.Conversations[idx].Clone()
	character, ok := s.state.FindCharacter(conv.CharacterID)
	if !ok {
		character = model.Character{ID: conv.CharacterID, Name: conv.Name, Avatar: conv.Avatar}
	}
	return conv, character, nil
}

// update applies fn to a copy of the conversation and swaps the copy into a
// new state. Nothing changes when fn fails.
func (s *ConversationService) update(ctx context.Context, id string, fn func(*model.Conversation) error) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.apply(ctx, func(state *model.AppState) (*model.AppState, error) {
		idx := state.FindConversation(id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, id)
		}
		conv = state.Conversations[idx].Clone()
		if err := fn(&conv); err != nil {
			return nil, err
		}

		next := *state
		next.Conversations = slices.Clone(state.Conversations)
		next.Conversations[idx] = conv
		return &next, nil
	})
	if err != nil {
		return nil, err
	}
	out := conv.Clone()
	return &out, nil
}

// apply builds the next state from the current one under mu and persists it
// once mu is released. A nil state from fn leaves everything unchanged.
func (s *ConversationService) apply(ctx context.Context, fn func(*model.AppState) (*model.AppState, error)) error {
	gen, next, err := s.swap(fn)
	if err != nil || next == nil {
		return err
	}
	s.persist(ctx, gen, next)
	return nil
}

func (s *ConversationService) swap(fn func(*model.AppState) (*model.AppState, error)) (uint64, *model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil || next == nil {
		return 0, nil, err
	}
	s.state = next
	s.generation++
	return s.generation, next, nil
}

// persist writes state unless a newer generation already reached the store.
// The write outlives ctx: a committed change is saved even if the caller has
// gone away. A failed save is logged; the in-memory state stays authoritative.
func (s *ConversationService) persist(ctx context.Context, gen uint64, state *model.AppState) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if gen <= s.saved {
		slog.Debug("Skipping stale state save", "generation", gen, "saved", s.saved)
		return
	}
	s.saved = gen
	if err := s.store.Save(context.WithoutCancel(ctx), state); err != nil {
		slog.Error("Failed to persist state", "generation", gen, "error", err)
	}
}
