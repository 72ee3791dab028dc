package interfaces

import (
	"context"

	"github.com/Babyaovo/Yaouo-sub000/internal/llm"
	"github.com/Babyaovo/Yaouo-sub000/internal/model"
	"github.com/Babyaovo/Yaouo-sub000/internal/reply"
	"github.com/Babyaovo/Yaouo-sub000/internal/service"
)

// This file defines the interfaces for our core services.
// The API layer depends on these contracts rather than on the concrete
// services, so handlers can be tested against mocks.

// ConversationService defines the contract for the conversation engine.
type ConversationService interface {
	ListConversations(ctx context.Context) []model.Conversation
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)
	CreateConversation(ctx context.Context, characterID string) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	UpdateConversationSettings(ctx context.Context, id string, settings model.Settings) (*model.Conversation, error)

	ListCharacters(ctx context.Context) []model.Character
	UpsertCharacter(ctx context.Context, character model.Character) (*model.Character, error)

	Stage(ctx context.Context, id, text string) (*model.Conversation, error)
	Unstage(ctx context.Context, id string, index int) (*model.Conversation, error)
	Quote(ctx context.Context, id, messageID string) (*model.Conversation, error)
	ClearQuote(ctx context.Context, id string) (*model.Conversation, error)
	EditMessage(ctx context.Context, id, messageID, content string) (*model.Conversation, error)
	DeleteMessage(ctx context.Context, id, messageID string) (*model.Conversation, error)
	DeleteMessages(ctx context.Context, id string, messageIDs []string) (*model.Conversation, error)
	Translation(ctx context.Context, id, messageID string) (*reply.Translation, error)

	SendAll(ctx context.Context, id string, stream chan<- model.StreamEvent) error
	Regenerate(ctx context.Context, id, messageID string, stream chan<- model.StreamEvent) error
	IsBusy(id string) bool
}

// ModelService defines the contract for model listing.
type ModelService interface {
	List(ctx context.Context) (*llm.ListModelsResponse, error)
}

// SettingsService defines the contract for managing application settings.
type SettingsService interface {
	InitAndGet(ctx context.Context, defaults *service.Settings) (*service.Settings, error)
	Get(ctx context.Context) (*service.Settings, error)
	Save(ctx context.Context, settings *service.Settings) error
}

var (
	_ ConversationService = (*service.ConversationService)(nil)
	_ ModelService        = (*service.ModelService)(nil)
	_ SettingsService     = (*service.SettingsService)(nil)
)
