package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "github.com/Babyaovo/Yaouo-sub000/internal/errors"
)

// This file contains shared DTOs (Data Transfer Objects) for API requests and
// responses and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations that don't
// need to return a full resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// CreateConversationRequest opens the conversation with a character.
type CreateConversationRequest struct {
	CharacterID string `json:"characterId" validate:"required" example:"ch_1"`
}

// StageRequest queues one draft message.
type StageRequest struct {
	Text string `json:"text" validate:"required" example:"Good morning!"`
}

// EditMessageRequest rewrites a message. Blank content leaves it unchanged.
type EditMessageRequest struct {
	Content string `json:"content" example:"Edited text"`
}

// QuoteRequest stages a quote of an existing message.
type QuoteRequest struct {
	MessageID string `json:"messageId" validate:"required" example:"msg_1700000000000_0"`
}

// DeleteMessagesRequest removes several messages at once.
type DeleteMessagesRequest struct {
	MessageIDs []string `json:"messageIds" validate:"required,min=1,dive,required"`
}

// classifyError maps business-layer errors to an HTTP status and a message that
// is safe to show to the client.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		return http.StatusNotFound, "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		// Validation messages from the service layer are already user-friendly.
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		return http.StatusConflict, "This conversation is already waiting for a reply."
	default:
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}

// respondWithError is the centralized error handling function for the API layer.
func respondWithError(w http.ResponseWriter, err error) {
	statusCode, message := classifyError(err)

	// The detailed error is logged; the client only sees the generic message.
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// decodeAndValidate reads a JSON body into payload and runs its validation tags.
func decodeAndValidate(r *http.Request, payload interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid request payload: %v", app_errors.ErrValidation, err)
	}
	return validateRequest(payload)
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// sendStreamError sends a structured error message over a Server-Sent Events (SSE) stream.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)

	jsonData, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		slog.Error("Failed to marshal stream error payload", "error", err)
		return
	}

	// `event: error` lets clients register a dedicated listener.
	if _, err := fmt.Fprintf(w, "event: error\ndata: %s\n\n", string(jsonData)); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
		return
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// writeStreamEvent marshals data and writes it to an SSE stream.
// A write error means the client has disconnected.
func writeStreamEvent(w http.ResponseWriter, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", string(jsonData)); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
