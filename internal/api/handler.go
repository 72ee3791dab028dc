package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "github.com/Babyaovo/Yaouo-sub000/internal/errors"
	"github.com/Babyaovo/Yaouo-sub000/internal/interfaces"
	"github.com/Babyaovo/Yaouo-sub000/internal/model"
	"github.com/Babyaovo/Yaouo-sub000/internal/service"
)

// ConversationHandler serves conversations, characters and global settings.
type ConversationHandler struct {
	conversations interfaces.ConversationService
	settings      interfaces.SettingsService
}

func NewConversationHandler(conversations interfaces.ConversationService, settings interfaces.SettingsService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, settings: settings}
}

// GetSettings godoc
// @Summary      Get settings
// @Description  Returns the global settings: API endpoint, model, base language and user profile.
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings [get]
func (h *ConversationHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update settings
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings  body      service.Settings  true  "New settings"
// @Success      200       {object}  service.Settings
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /v1/settings [post]
func (h *ConversationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req service.Settings
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.settings.Save(r.Context(), &req); err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("Settings updated", "model", req.Model, "base_language", req.BaseLanguage)
	respondWithJSON(w, http.StatusOK, req)
}

// GetCharacters godoc
// @Summary      List characters
// @Tags         Characters
// @Produce      json
// @Success      200  {array}  model.Character
// @Router       /v1/characters [get]
func (h *ConversationHandler) GetCharacters(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.conversations.ListCharacters(r.Context()))
}

// PutCharacter godoc
// @Summary      Create or replace a character
// @Tags         Characters
// @Accept       json
// @Produce      json
// @Param        characterID  path      string           true  "Character ID"
// @Param        character    body      model.Character  true  "Character"
// @Success      200          {object}  model.Character
// @Failure      400          {object}  ErrorResponse
// @Router       /v1/characters/{characterID} [put]
func (h *ConversationHandler) PutCharacter(w http.ResponseWriter, r *http.Request) {
	var req model.Character
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "characterID")
	character, err := h.conversations.UpsertCharacter(r.Context(), req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, character)
}

// GetConversations godoc
// @Summary      List conversations
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}  model.Conversation
// @Router       /v1/conversations [get]
func (h *ConversationHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.conversations.ListConversations(r.Context()))
}

// CreateConversation godoc
// @Summary      Open a conversation
// @Description  Returns the conversation with the character, creating it if needed.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        request  body      CreateConversationRequest  true  "Character"
// @Success      200      {object}  model.Conversation
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/conversations [post]
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.conversations.CreateConversation(r.Context(), req.CharacterID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// GetConversation godoc
// @Summary      Get a conversation
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.Conversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [get]
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.conversations.GetConversation(r.Context(), chi.URLParam(r, "conversationID"))
	h.respondConversation(w, conv, err)
}

// DeleteConversation godoc
// @Summary      Delete a conversation
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.conversations.DeleteConversation(r.Context(), chi.URLParam(r, "conversationID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// UpdateConversationSettings godoc
// @Summary      Replace conversation settings
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string          true  "Conversation ID"
// @Param        settings        body      model.Settings  true  "Settings"
// @Success      200             {object}  model.Conversation
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/settings [put]
func (h *ConversationHandler) UpdateConversationSettings(w http.ResponseWriter, r *http.Request) {
	var req model.Settings
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.conversations.UpdateConversationSettings(r.Context(), chi.URLParam(r, "conversationID"), req)
	h.respondConversation(w, conv, err)
}

// StageMessage godoc
// @Summary      Stage a draft
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string        true  "Conversation ID"
// @Param        request         body      StageRequest  true  "Draft"
// @Success      200             {object}  model.Conversation
// @Failure      400             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/pending [post]
func (h *ConversationHandler) StageMessage(w http.ResponseWriter, r *http.Request) {
	var req StageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.conversations.Stage(r.Context(), chi.URLParam(r, "conversationID"), req.Text)
	h.respondConversation(w, conv, err)
}

// UnstageMessage godoc
// @Summary      Remove a staged draft
// @Tags         Messages
// @Produce      json
// @Param        conversationID  path      string   true  "Conversation ID"
// @Param        index           path      integer  true  "Draft position"
// @Success      200             {object}  model.Conversation
// @Failure      400             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/pending/{index} [delete]
func (h *ConversationHandler) UnstageMessage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: index must be an integer", app_errors.ErrValidation))
		return
	}
	conv, err := h.conversations.Unstage(r.Context(), chi.URLParam(r, "conversationID"), index)
	h.respondConversation(w, conv, err)
}

// QuoteMessage godoc
// @Summary      Quote a message in the next send
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string        true  "Conversation ID"
// @Param        request         body      QuoteRequest  true  "Quoted message"
// @Success      200             {object}  model.Conversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/quote [post]
func (h *ConversationHandler) QuoteMessage(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.conversations.Quote(r.Context(), chi.URLParam(r, "conversationID"), req.MessageID)
	h.respondConversation(w, conv, err)
}

// ClearQuote godoc
// @Summary      Discard the staged quote
// @Tags         Messages
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.Conversation
// @Router       /v1/conversations/{conversationID}/quote [delete]
func (h *ConversationHandler) ClearQuote(w http.ResponseWriter, r *http.Request) {
	conv, err := h.conversations.ClearQuote(r.Context(), chi.URLParam(r, "conversationID"))
	h.respondConversation(w, conv, err)
}

// EditMessage godoc
// @Summary      Edit a message
// @Description  Rewrites the content in place. Blank content leaves the message unchanged.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string              true  "Conversation ID"
// @Param        messageID       path      string              true  "Message ID"
// @Param        request         body      EditMessageRequest  true  "New content"
// @Success      200             {object}  model.Conversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages/{messageID} [put]
func (h *ConversationHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	var req EditMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.conversations.EditMessage(r.Context(), chi.URLParam(r, "conversationID"), chi.URLParam(r, "messageID"), req.Content)
	h.respondConversation(w, conv, err)
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Tags         Messages
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Param        messageID       path      string  true  "Message ID"
// @Success      200             {object}  model.Conversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages/{messageID} [delete]
func (h *ConversationHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	conv, err := h.conversations.DeleteMessage(r.Context(), chi.URLParam(r, "conversationID"), chi.URLParam(r, "messageID"))
	h.respondConversation(w, conv, err)
}

// DeleteMessages godoc
// @Summary      Delete several messages
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string                 true  "Conversation ID"
// @Param        request         body      DeleteMessagesRequest  true  "Message IDs"
// @Success      200             {object}  model.Conversation
// @Failure      400             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages/delete [post]
func (h *ConversationHandler) DeleteMessages(w http.ResponseWriter, r *http.Request) {
	var req DeleteMessagesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.conversations.DeleteMessages(r.Context(), chi.URLParam(r, "conversationID"), req.MessageIDs)
	h.respondConversation(w, conv, err)
}

// GetTranslation godoc
// @Summary      Split a message into original and translation
// @Tags         Messages
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Param        messageID       path      string  true  "Message ID"
// @Success      200             {object}  reply.Translation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages/{messageID}/translation [get]
func (h *ConversationHandler) GetTranslation(w http.ResponseWriter, r *http.Request) {
	t, err := h.conversations.Translation(r.Context(), chi.URLParam(r, "conversationID"), chi.URLParam(r, "messageID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, t)
}

// HandleSend godoc
// @Summary      Send every staged draft
// @Description  Streams one SSE event per committed message, then {"done": true}. A conversation that is already sending gets an error event.
// @Tags         Messages
// @Produce      text/event-stream
// @Param        conversationID  path  string  true  "Conversation ID"
// @Success      200  {object}  model.StreamEvent
// @Router       /v1/conversations/{conversationID}/send [post]
func (h *ConversationHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")
	h.stream(w, r, func(ctx context.Context, stream chan<- model.StreamEvent) error {
		return h.conversations.SendAll(ctx, id, stream)
	})
}

// HandleRegenerate godoc
// @Summary      Regenerate an assistant reply
// @Description  Drops the assistant run containing the message and streams a fresh reply.
// @Tags         Messages
// @Produce      text/event-stream
// @Param        conversationID  path  string  true  "Conversation ID"
// @Param        messageID       path  string  true  "Assistant message ID"
// @Success      200  {object}  model.StreamEvent
// @Router       /v1/conversations/{conversationID}/messages/{messageID}/regenerate [post]
func (h *ConversationHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")
	messageID := chi.URLParam(r, "messageID")
	h.stream(w, r, func(ctx context.Context, stream chan<- model.StreamEvent) error {
		return h.conversations.Regenerate(ctx, id, messageID, stream)
	})
}

// stream runs a pipeline and relays its events as SSE. The channel is always
// drained so the pipeline never blocks on a client that went away.
func (h *ConversationHandler) stream(w http.ResponseWriter, r *http.Request, run func(context.Context, chan<- model.StreamEvent) error) {
	setStreamHeaders(w)

	stream := make(chan model.StreamEvent)
	errCh := make(chan error, 1)
	go func() { errCh <- run(r.Context(), stream) }()

	disconnected := false
	for event := range stream {
		if disconnected {
			continue
		}
		if err := writeStreamEvent(w, event); err != nil {
			slog.Warn("Client disconnected, reply continues in the background", "error", err)
			disconnected = true
		}
	}

	if err := <-errCh; err != nil {
		if !disconnected {
			_, message := classifyError(err)
			sendStreamError(w, message)
		}
		return
	}
	if !disconnected {
		_ = writeStreamEvent(w, model.StreamEvent{Done: true})
	}
	slog.Debug("Finished streaming response.")
}

func (h *ConversationHandler) respondConversation(w http.ResponseWriter, conv *model.Conversation, err error) {
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}
